// internal/services/report_service.go
package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wl-sites/offgrid-biz-flow/internal/config"
	"github.com/wl-sites/offgrid-biz-flow/internal/models"
)

// ReportService exports CSV snapshots of the sale ledger or expense log.
// With AWS credentials configured the file goes to S3 and the caller gets
// a short-lived presigned URL; otherwise it lands under ./exports for
// local development.
type ReportService struct {
	db       *gorm.DB
	s3Client *s3.S3
	cfg      *config.Config
}

type ExportResult struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	RowCount  int       `json:"row_count"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

const presignTTL = 15 * time.Minute

func NewReportService(db *gorm.DB, cfg *config.Config) (*ReportService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local development: exports are written to disk instead of S3
		return &ReportService{db: db, cfg: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &ReportService{
		db:       db,
		s3Client: s3.New(sess),
		cfg:      cfg,
	}, nil
}

func (s *ReportService) ExportSales(userID uuid.UUID) (*ExportResult, error) {
	var sales []models.Sale
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"date", "product_name", "quantity", "unit_price", "total_amount", "profit"})
	for _, sale := range sales {
		w.Write([]string{
			sale.Date.Format(time.RFC3339),
			sale.ProductName,
			fmt.Sprintf("%d", sale.Quantity),
			sale.UnitPrice.StringFixed(2),
			sale.TotalAmount.StringFixed(2),
			sale.Profit.StringFixed(2),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to build CSV: %w", err)
	}

	return s.store(userID, "sales", buf.Bytes(), len(sales))
}

func (s *ReportService) ExportExpenses(userID uuid.UUID) (*ExportResult, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"date", "description", "category", "amount"})
	for _, expense := range expenses {
		w.Write([]string{
			expense.Date.Format(time.RFC3339),
			expense.Description,
			expense.Category,
			expense.Amount.StringFixed(2),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to build CSV: %w", err)
	}

	return s.store(userID, "expenses", buf.Bytes(), len(expenses))
}

func (s *ReportService) store(userID uuid.UUID, kind string, data []byte, rows int) (*ExportResult, error) {
	key := fmt.Sprintf("reports/%s/%s-%s.csv", userID, kind, time.Now().UTC().Format("20060102-150405"))

	if s.s3Client == nil {
		return s.storeLocal(key, data, rows)
	}

	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("text/csv"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload report to S3: %w", err)
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.cfg.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(presignTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &ExportResult{
		URL:       url,
		Key:       key,
		Size:      int64(len(data)),
		RowCount:  rows,
		ExpiresAt: time.Now().Add(presignTTL),
	}, nil
}

func (s *ReportService) storeLocal(key string, data []byte, rows int) (*ExportResult, error) {
	path := filepath.Join("exports", filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	return &ExportResult{
		URL:      fmt.Sprintf("http://%s:%s/exports/%s", s.cfg.Server.Host, s.cfg.Server.Port, key),
		Key:      key,
		Size:     int64(len(data)),
		RowCount: rows,
	}, nil
}
