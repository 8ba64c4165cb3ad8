package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusBucket is the count and amount sum for one payment status.
type StatusBucket struct {
	Count int             `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
}

// Rollup is a reduction of a payment collection into per-status totals.
// Outstanding is the combined PENDING+OVERDUE sum, the single debt figure
// dashboard views use.
type Rollup struct {
	Paid        StatusBucket    `json:"paid"`
	Pending     StatusBucket    `json:"pending"`
	Overdue     StatusBucket    `json:"overdue"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// RollupPayments reduces payments into per-status counts and sums. The
// reduction is a single pass, order-independent, and never fails: an empty
// input yields zero buckets. Statuses are taken as stored; callers wanting
// time-derived figures apply EffectiveStatus first.
func RollupPayments(payments []*Payment) Rollup {
	r := Rollup{
		Paid:        StatusBucket{Sum: decimal.Zero},
		Pending:     StatusBucket{Sum: decimal.Zero},
		Overdue:     StatusBucket{Sum: decimal.Zero},
		Outstanding: decimal.Zero,
	}

	for _, p := range payments {
		switch p.Status {
		case PaymentStatusPaid:
			r.Paid.Count++
			r.Paid.Sum = r.Paid.Sum.Add(p.Amount)
		case PaymentStatusPending:
			r.Pending.Count++
			r.Pending.Sum = r.Pending.Sum.Add(p.Amount)
		case PaymentStatusOverdue:
			r.Overdue.Count++
			r.Overdue.Sum = r.Overdue.Sum.Add(p.Amount)
		}
	}

	r.Outstanding = r.Pending.Sum.Add(r.Overdue.Sum)
	return r
}

// CompanySummary is the per-company dashboard row.
type CompanySummary struct {
	CompanyID         string          `json:"company_id"`
	Name              string          `json:"name"`
	Floor             *string         `json:"floor"`
	Unit              *string         `json:"unit"`
	RentAmount        decimal.Decimal `json:"rent_amount"`
	LastPaymentStatus *PaymentStatus  `json:"last_payment_status"`
	PaymentCount      int             `json:"payment_count"`
	OverdueCount      int             `json:"overdue_count"`
	PendingAmount     decimal.Decimal `json:"pending_amount"`
}

// SummarizeCompany reduces one company's payments into a summary row.
// LastPaymentStatus is the status of the payment with the most recent due
// date; ties break on most recent CreatedAt. Empty input yields zero
// counts/sums and a nil last status.
func SummarizeCompany(company *Company, payments []*Payment) CompanySummary {
	s := CompanySummary{
		CompanyID:     company.ID.String(),
		Name:          company.Name,
		Floor:         company.Floor,
		Unit:          company.Unit,
		RentAmount:    company.RentAmount,
		PendingAmount: decimal.Zero,
	}

	var last *Payment
	for _, p := range payments {
		s.PaymentCount++

		switch p.Status {
		case PaymentStatusOverdue:
			s.OverdueCount++
			s.PendingAmount = s.PendingAmount.Add(p.Amount)
		case PaymentStatusPending:
			s.PendingAmount = s.PendingAmount.Add(p.Amount)
		}

		if last == nil || laterPayment(p, last) {
			last = p
		}
	}

	if last != nil {
		status := last.Status
		s.LastPaymentStatus = &status
	}
	return s
}

// laterPayment reports whether a should be considered more recent than b:
// later due date wins, equal due dates break on later creation time.
func laterPayment(a, b *Payment) bool {
	ad, bd := truncateToDay(a.DueDate), truncateToDay(b.DueDate)
	if !ad.Equal(bd) {
		return ad.After(bd)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// DeriveAll returns a copy of payments with each status replaced by its
// effective status at the reference instant. The input slice is not mutated.
func DeriveAll(payments []*Payment, now time.Time) []*Payment {
	out := make([]*Payment, 0, len(payments))
	for _, p := range payments {
		cp := *p
		cp.Status = p.EffectiveStatus(now)
		out = append(out, &cp)
	}
	return out
}
