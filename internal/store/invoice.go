package store

import (
	"context"

	"github.com/shopspring/decimal"

	"hvac-office-api/internal/model"
)

const invoiceCols = `id, service_history_id, client_id, invoice_date, due_date, amount_due,
	status, payment_method, check_number, is_estimate`

func scanInvoice(row interface{ Scan(...any) error }) (*model.Invoice, error) {
	i := &model.Invoice{}
	err := row.Scan(&i.ID, &i.ServiceHistoryID, &i.ClientID, &i.InvoiceDate, &i.DueDate,
		&i.AmountDue, &i.Status, &i.PaymentMethod, &i.CheckNumber, &i.IsEstimate)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return i, nil
}

func (s *Store) CreateInvoice(ctx context.Context, i *model.Invoice) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO invoices (service_history_id, client_id, invoice_date, due_date,
		   amount_due, status, payment_method, check_number, is_estimate)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`,
		i.ServiceHistoryID, i.ClientID, i.InvoiceDate, i.DueDate, i.AmountDue,
		i.Status, i.PaymentMethod, i.CheckNumber, i.IsEstimate,
	).Scan(&i.ID)
}

func (s *Store) InvoiceByID(ctx context.Context, id int64) (*model.Invoice, error) {
	return scanInvoice(s.pool.QueryRow(ctx,
		`SELECT `+invoiceCols+` FROM invoices WHERE id = $1`, id))
}

func (s *Store) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+invoiceCols+` FROM invoices ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Invoice
	for rows.Next() {
		i, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}

func (s *Store) UpdateInvoice(ctx context.Context, i *model.Invoice) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE invoices SET service_history_id=$1, client_id=$2, invoice_date=$3, due_date=$4,
		   amount_due=$5, status=$6, payment_method=$7, check_number=$8, is_estimate=$9
		 WHERE id=$10`,
		i.ServiceHistoryID, i.ClientID, i.InvoiceDate, i.DueDate, i.AmountDue,
		i.Status, i.PaymentMethod, i.CheckNumber, i.IsEstimate, i.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM invoices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Analytics is the admin revenue summary: paid non-estimate revenue and
// the average estimate value, both zero when no rows match.
type Analytics struct {
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	AverageEstimateValue decimal.Decimal `json:"average_estimate_value"`
}

func (s *Store) InvoiceAnalytics(ctx context.Context) (*Analytics, error) {
	a := &Analytics{}
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_due) FILTER (WHERE status = $1 AND NOT is_estimate), 0),
		        COALESCE(AVG(amount_due) FILTER (WHERE is_estimate), 0)
		 FROM invoices`, model.InvoicePaid,
	).Scan(&a.TotalRevenue, &a.AverageEstimateValue)
	if err != nil {
		return nil, err
	}
	return a, nil
}
