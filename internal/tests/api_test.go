// internal/tests/api_test.go
package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wl-sites/offgrid-biz-flow/internal/config"
	"github.com/wl-sites/offgrid-biz-flow/internal/handlers"
	"github.com/wl-sites/offgrid-biz-flow/internal/middleware"
	"github.com/wl-sites/offgrid-biz-flow/internal/models"
	"github.com/wl-sites/offgrid-biz-flow/internal/services"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	token  string
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)

	// One connection only: each :memory: connection is its own database
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.Expense{},
	))
	suite.db = db

	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db, nil)
	productService := services.NewProductService(db, nil)
	saleService := services.NewSaleService(db, nil)
	expenseService := services.NewExpenseService(db, nil)
	statsService := services.NewStatsService(db)

	authHandler := handlers.NewAuthHandler(authService)
	settingsHandler := handlers.NewSettingsHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	statsHandler := handlers.NewStatsHandler(statsService, userService)

	r := gin.New()
	r.Use(middleware.I18nMiddleware())

	v1 := r.Group("/v1")
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthRequired())
	{
		protected.GET("/settings", settingsHandler.GetSettings)
		protected.PUT("/settings", settingsHandler.UpdateSettings)
		protected.GET("/products", productHandler.GetProducts)
		protected.POST("/products", productHandler.CreateProduct)
		protected.POST("/sales", saleHandler.RecordSale)
		protected.GET("/sales", saleHandler.GetSales)
		protected.POST("/expenses", expenseHandler.AddExpense)
		protected.GET("/dashboard/stats", statsHandler.GetDashboardStats)
	}
	suite.router = r

	// Every test starts from a fresh account
	resp := suite.request("POST", "/v1/auth/register", map[string]interface{}{
		"email":    "shop@example.com",
		"password": "Secret123",
	}, "")
	suite.Require().Equal(http.StatusCreated, resp.Code)

	body := suite.decode(resp)
	authData := body["data"].(map[string]interface{})["auth"].(map[string]interface{})
	suite.token = authData["access_token"].(string)
}

func (suite *APITestSuite) request(method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (suite *APITestSuite) createProduct(name string, stock int, purchase, sale string) string {
	resp := suite.request("POST", "/v1/products", map[string]interface{}{
		"name":           name,
		"category":       "general",
		"initial_stock":  stock,
		"purchase_price": purchase,
		"sale_price":     sale,
	}, suite.token)
	suite.Require().Equal(http.StatusCreated, resp.Code)

	body := suite.decode(resp)
	product := body["data"].(map[string]interface{})["product"].(map[string]interface{})
	return product["id"].(string)
}

func (suite *APITestSuite) TestLogin() {
	resp := suite.request("POST", "/v1/auth/login", map[string]interface{}{
		"email":    "shop@example.com",
		"password": "Secret123",
	}, "")
	suite.Equal(http.StatusOK, resp.Code)

	body := suite.decode(resp)
	suite.True(body["success"].(bool))

	resp = suite.request("POST", "/v1/auth/login", map[string]interface{}{
		"email":    "shop@example.com",
		"password": "WrongPass1",
	}, "")
	suite.Equal(http.StatusUnauthorized, resp.Code)
}

func (suite *APITestSuite) TestRegisterDuplicateEmail() {
	resp := suite.request("POST", "/v1/auth/register", map[string]interface{}{
		"email":    "shop@example.com",
		"password": "Another456",
	}, "")
	suite.Equal(http.StatusConflict, resp.Code)
}

func (suite *APITestSuite) TestRequiresAuthentication() {
	resp := suite.request("GET", "/v1/products", nil, "")
	suite.Equal(http.StatusUnauthorized, resp.Code)

	resp = suite.request("GET", "/v1/products", nil, "not-a-valid-token")
	suite.Equal(http.StatusUnauthorized, resp.Code)
}

func (suite *APITestSuite) TestSaleFlow() {
	productID := suite.createProduct("Soap", 10, "1.00", "2.50")

	// Sell 3 of 10
	resp := suite.request("POST", "/v1/sales", map[string]interface{}{
		"product_id": productID,
		"quantity":   3,
	}, suite.token)
	suite.Require().Equal(http.StatusCreated, resp.Code)

	body := suite.decode(resp)
	sale := body["data"].(map[string]interface{})["sale"].(map[string]interface{})
	suite.Equal("Soap", sale["product_name"])
	suite.Equal("7.5", sale["total_amount"])
	suite.Equal("4.5", sale["profit"])

	// Overselling the remaining 7 is refused and maps to a stable error code
	resp = suite.request("POST", "/v1/sales", map[string]interface{}{
		"product_id": productID,
		"quantity":   8,
	}, suite.token)
	suite.Require().Equal(http.StatusBadRequest, resp.Code)

	body = suite.decode(resp)
	apiError := body["error"].(map[string]interface{})
	suite.Equal("INSUFFICIENT_STOCK", apiError["code"])

	// Stock is down to 7, not 7-8
	resp = suite.request("GET", "/v1/products", nil, suite.token)
	suite.Require().Equal(http.StatusOK, resp.Code)

	body = suite.decode(resp)
	products := body["data"].([]interface{})
	suite.Require().Len(products, 1)
	suite.Equal(float64(7), products[0].(map[string]interface{})["current_stock"])
}

func (suite *APITestSuite) TestDashboardStats() {
	productID := suite.createProduct("Soap", 10, "1.00", "2.50")

	resp := suite.request("POST", "/v1/sales", map[string]interface{}{
		"product_id": productID,
		"quantity":   3,
	}, suite.token)
	suite.Require().Equal(http.StatusCreated, resp.Code)

	resp = suite.request("POST", "/v1/expenses", map[string]interface{}{
		"amount":      "5.00",
		"description": "Transport",
	}, suite.token)
	suite.Require().Equal(http.StatusCreated, resp.Code)

	resp = suite.request("GET", "/v1/dashboard/stats", nil, suite.token)
	suite.Require().Equal(http.StatusOK, resp.Code)

	body := suite.decode(resp)
	data := body["data"].(map[string]interface{})
	stats := data["stats"].(map[string]interface{})
	suite.Equal("7.5", stats["total_revenue"])
	suite.Equal("5", stats["total_expenses"])
	suite.Equal("-0.5", stats["net_profit"])

	// Default account currency is CDF
	formatted := data["formatted"].(map[string]interface{})
	suite.Equal("FC 7.5", formatted["total_revenue"])
	suite.Equal("FC -0.5", formatted["net_profit"])
}

func (suite *APITestSuite) TestUpdateSettingsChangesFormatting() {
	resp := suite.request("PUT", "/v1/settings", map[string]interface{}{
		"language": "en",
		"currency": "USD",
	}, suite.token)
	suite.Require().Equal(http.StatusOK, resp.Code)

	resp = suite.request("GET", "/v1/dashboard/stats", nil, suite.token)
	suite.Require().Equal(http.StatusOK, resp.Code)

	body := suite.decode(resp)
	formatted := body["data"].(map[string]interface{})["formatted"].(map[string]interface{})
	suite.Equal("$ 0", formatted["total_revenue"])
}

func (suite *APITestSuite) TestUpdateSettingsRejectsUnknownCurrency() {
	resp := suite.request("PUT", "/v1/settings", map[string]interface{}{
		"language": "fr",
		"currency": "GBP",
	}, suite.token)
	suite.Equal(http.StatusBadRequest, resp.Code)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
