package db

import (
	"context"

	"estate/models"

	"github.com/jmoiron/sqlx"
)

// Invoice (Счёт)

// CreateInvoice сохраняет счёт вместе со строками. Вызывать внутри WithTx.
func (s *Storage) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	query := `
        INSERT INTO invoice (reference, move_type, partner_id, property_id, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	err := s.q.QueryRowxContext(ctx, query,
		inv.Reference, inv.MoveType, inv.PartnerID, inv.PropertyID, inv.CreatedAt).
		Scan(&inv.ID)
	if err != nil {
		return translate(err)
	}

	for i := range inv.Lines {
		line := &inv.Lines[i]
		line.InvoiceID = inv.ID
		query := `
            INSERT INTO invoice_line (invoice_id, name, quantity, price_unit)
            VALUES ($1, $2, $3, $4)
            RETURNING id`
		err := s.q.QueryRowxContext(ctx, query, line.InvoiceID, line.Name, line.Quantity, line.PriceUnit).
			Scan(&line.ID)
		if err != nil {
			return translate(err)
		}
	}
	return nil
}

func (s *Storage) GetInvoicesForProperty(ctx context.Context, propertyID int) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	query := `
        SELECT id, reference, move_type, partner_id, property_id, created_at
        FROM invoice WHERE property_id=$1 ORDER BY id ASC`
	if err := sqlx.SelectContext(ctx, s.q, &invoices, query, propertyID); err != nil {
		return nil, translate(err)
	}

	for i := range invoices {
		lines := []models.InvoiceLine{}
		query := `
            SELECT id, invoice_id, name, quantity, price_unit
            FROM invoice_line WHERE invoice_id=$1 ORDER BY id ASC`
		if err := sqlx.SelectContext(ctx, s.q, &lines, query, invoices[i].ID); err != nil {
			return nil, translate(err)
		}
		invoices[i].Lines = lines
	}
	return invoices, nil
}
