package domain

import "github.com/shopspring/decimal"

// DashboardStats is the admin landing-page payload.
type DashboardStats struct {
	TotalCompanies  int             `json:"total_companies"`
	ActiveCompanies int             `json:"active_companies"`
	TotalPaid       int             `json:"total_paid"`
	TotalPending    int             `json:"total_pending"`
	TotalOverdue    int             `json:"total_overdue"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PendingAmount   decimal.Decimal `json:"pending_amount"`
	OverdueAmount   decimal.Decimal `json:"overdue_amount"`
	Outstanding     decimal.Decimal `json:"outstanding"`

	RecentPayments   []*Payment       `json:"recent_payments"`
	CompanySummaries []CompanySummary `json:"company_summaries"`
}
