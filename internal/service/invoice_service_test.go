package service

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/akmanlar/rentroll/internal/domain"
	customError "github.com/akmanlar/rentroll/pkg/errors"
	"github.com/akmanlar/rentroll/tests/mocks"
)

func newInvoiceService(t *testing.T) (*InvoiceService, *mocks.MockInvoiceRepository, *mocks.MockCompanyRepository, string) {
	t.Helper()

	invoiceRepo := &mocks.MockInvoiceRepository{}
	companyRepo := &mocks.MockCompanyRepository{}
	dir := t.TempDir()

	svc := NewInvoiceService(invoiceRepo, companyRepo, dir, "/uploads/invoices")
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) }
	return svc, invoiceRepo, companyRepo, dir
}

func TestUploadInvoice(t *testing.T) {
	svc, invoiceRepo, companyRepo, dir := newInvoiceService(t)

	company := &domain.Company{ID: uuid.New(), Name: "Teknoloji A.S.", RentAmount: decimal.NewFromInt(25000), RentDueDay: 1, IsActive: true}
	companyRepo.On("GetByID", mock.Anything, company.ID).Return(company, nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	body := strings.NewReader("%PDF-1.4 fake invoice body")
	invoice, err := svc.Upload(context.Background(), company.ID, domain.PaymentTypeElectricity, "2024-01", "ocak-fatura.pdf", body)

	assert.NoError(t, err)
	assert.Equal(t, domain.PaymentTypeElectricity, invoice.Type)
	assert.Equal(t, "2024-01", invoice.Period)
	assert.Equal(t, "ocak-fatura.pdf", invoice.FileName)
	assert.Equal(t, "/uploads/invoices/"+invoice.ID.String()+".pdf", invoice.FileURL)
	if assert.NotNil(t, invoice.FileSize) {
		assert.Equal(t, int64(26), *invoice.FileSize)
	}

	written, err := os.ReadFile(filepath.Join(dir, invoice.ID.String()+".pdf"))
	assert.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake invoice body", string(written))

	invoiceRepo.AssertExpectations(t)
}

func TestUploadInvoice_StoredNameIgnoresClientPath(t *testing.T) {
	svc, invoiceRepo, companyRepo, dir := newInvoiceService(t)

	company := &domain.Company{ID: uuid.New(), Name: "Mimarlik Studyosu", RentAmount: decimal.NewFromInt(12000), RentDueDay: 5, IsActive: true}
	companyRepo.On("GetByID", mock.Anything, company.ID).Return(company, nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	invoice, err := svc.Upload(context.Background(), company.ID, domain.PaymentTypeWater, "2024-02", "../../etc/passwd.png", strings.NewReader("data"))

	assert.NoError(t, err)
	assert.Equal(t, "passwd.png", invoice.FileName)

	_, err = os.Stat(filepath.Join(dir, invoice.ID.String()+".png"))
	assert.NoError(t, err)
}

func TestUploadInvoice_Validation(t *testing.T) {
	svc, _, _, _ := newInvoiceService(t)

	tests := []struct {
		name        string
		paymentType domain.PaymentType
		period      string
		fileName    string
	}{
		{"unknown type", domain.PaymentType("GAS"), "2024-01", "fatura.pdf"},
		{"bad period", domain.PaymentTypeRent, "2024-13", "fatura.pdf"},
		{"missing file name", domain.PaymentTypeRent, "2024-01", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), uuid.New(), tt.paymentType, tt.period, tt.fileName, strings.NewReader("data"))
			assert.ErrorIs(t, err, customError.ErrValidation)
		})
	}
}

func TestUploadInvoice_CompanyNotFound(t *testing.T) {
	svc, _, companyRepo, dir := newInvoiceService(t)

	companyID := uuid.New()
	companyRepo.On("GetByID", mock.Anything, companyID).Return(nil, sql.ErrNoRows)

	_, err := svc.Upload(context.Background(), companyID, domain.PaymentTypeRent, "2024-01", "fatura.pdf", strings.NewReader("data"))

	assert.ErrorIs(t, err, customError.ErrCompanyNotFound)

	entries, readErr := os.ReadDir(dir)
	assert.NoError(t, readErr)
	assert.Empty(t, entries, "nothing should be written for a rejected upload")
}

func TestGetInvoice_NotFound(t *testing.T) {
	svc, invoiceRepo, _, _ := newInvoiceService(t)

	id := uuid.New()
	invoiceRepo.On("GetByID", mock.Anything, id).Return(nil, sql.ErrNoRows)

	_, err := svc.GetInvoice(context.Background(), id)

	assert.ErrorIs(t, err, customError.ErrInvoiceNotFound)
}

func TestListInvoices_RepositoryError(t *testing.T) {
	svc, invoiceRepo, _, _ := newInvoiceService(t)

	invoiceRepo.On("List", mock.Anything, domain.InvoiceFilter{}).Return(nil, errors.New("connection reset"))

	_, err := svc.ListInvoices(context.Background(), domain.InvoiceFilter{})

	assert.Error(t, err)
}
