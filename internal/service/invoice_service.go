package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/akmanlar/rentroll/internal/domain"
	"github.com/akmanlar/rentroll/internal/repository"
	customError "github.com/akmanlar/rentroll/pkg/errors"
	"github.com/akmanlar/rentroll/pkg/utils"
)

type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	companyRepo repository.CompanyRepository
	storageDir  string
	baseURL     string
	now         func() time.Time
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	storageDir string,
	baseURL string,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		companyRepo: companyRepo,
		storageDir:  storageDir,
		baseURL:     baseURL,
		now:         time.Now,
	}
}

// Upload stores the document bytes on disk and records its metadata. The
// file contents are opaque; nothing here inspects them.
func (s *InvoiceService) Upload(ctx context.Context, companyID uuid.UUID, paymentType domain.PaymentType, period, fileName string, file io.Reader) (*domain.Invoice, error) {
	if !paymentType.Valid() {
		return nil, customError.WrapValidation(fmt.Sprintf("unknown payment type %q", paymentType))
	}
	if !utils.ValidPeriod(period) {
		return nil, customError.WrapValidation("period must be formatted as YYYY-MM")
	}
	if fileName == "" {
		return nil, customError.WrapValidation("file name is required")
	}

	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapCompanyNotFound(companyID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	id := uuid.New()

	// Stored name is the invoice ID plus the original extension so uploads
	// can never collide or traverse paths.
	storedName := id.String() + filepath.Ext(fileName)

	if err := os.MkdirAll(s.storageDir, 0o755); err != nil {
		return nil, customError.WrapStorageError(err)
	}

	dst, err := os.Create(filepath.Join(s.storageDir, storedName))
	if err != nil {
		return nil, customError.WrapStorageError(err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		return nil, customError.WrapStorageError(err)
	}

	invoice := &domain.Invoice{
		ID:         id,
		CompanyID:  companyID,
		Type:       paymentType,
		Period:     period,
		FileName:   filepath.Base(fileName),
		FileURL:    s.baseURL + "/" + storedName,
		FileSize:   &size,
		UploadedAt: s.now(),
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return invoice, nil
}

// GetInvoice returns one invoice's metadata.
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvoiceNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return invoice, nil
}

// ListInvoices lists invoice metadata matching the filter.
func (s *InvoiceService) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return invoices, nil
}
