// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Settings
	KeySettingsUpdated         = "settings.updated"
	KeySettingsInvalidLanguage = "settings.invalid_language"
	KeySettingsInvalidCurrency = "settings.invalid_currency"

	// Products
	KeyProductCreated      = "product.created"
	KeyProductUpdated      = "product.updated"
	KeyProductDeleted      = "product.deleted"
	KeyProductNotFound     = "product.not_found"
	KeyProductInvalidStock = "product.invalid_stock"
	KeyProductInvalidPrice = "product.invalid_price"

	// Sales
	KeySaleRecorded          = "sale.recorded"
	KeySaleInsufficientStock = "sale.insufficient_stock"
	KeySaleInvalidQuantity   = "sale.invalid_quantity"

	// Expenses
	KeyExpenseAdded              = "expense.added"
	KeyExpenseDeleted            = "expense.deleted"
	KeyExpenseNotFound           = "expense.not_found"
	KeyExpenseInvalidAmount      = "expense.invalid_amount"
	KeyExpenseInvalidDescription = "expense.invalid_description"

	// Reports
	KeyReportExported     = "report.exported"
	KeyReportExportFailed = "report.export_failed"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
)
