package accounting

import (
	"context"
	"fmt"
	"time"

	"estate/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MoveTypeOutInvoice = "out_invoice"
	AdministrativeFee  = 100.00
)

var commissionRate = decimal.RequireFromString("0.06")

// InvoiceStore - куда записывается счёт (обычно транзакция db.Storage)
type InvoiceStore interface {
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
}

type Invoicer struct {
	now func() time.Time
}

func NewInvoicer(now func() time.Time) *Invoicer {
	if now == nil {
		now = time.Now
	}
	return &Invoicer{now: now}
}

// Commission - 6% от цены продажи, округлено до копеек
func Commission(sellingPrice float64) float64 {
	f, _ := decimal.NewFromFloat(sellingPrice).Mul(commissionRate).Round(models.PriceDigits).Float64()
	return f
}

// InvoiceSale выставляет покупателю счёт: комиссия и административный сбор.
// Без цены продажи или покупателя возвращает ValidationError.
func (i *Invoicer) InvoiceSale(ctx context.Context, store InvoiceStore, p *models.Property) (*models.Invoice, error) {
	if models.FloatIsZero(p.SellingPrice, models.PriceDigits) || p.BuyerID == nil {
		return nil, models.NewValidationError("Cannot create invoice: Selling price and buyer are required.")
	}

	inv := &models.Invoice{
		Reference:  uuid.NewString(),
		MoveType:   MoveTypeOutInvoice,
		PartnerID:  *p.BuyerID,
		PropertyID: p.ID,
		CreatedAt:  i.now().UTC(),
		Lines: []models.InvoiceLine{
			{
				Name:      fmt.Sprintf("Commission (6%%) for property %s", p.Name),
				Quantity:  1,
				PriceUnit: Commission(p.SellingPrice),
			},
			{
				Name:      "Administrative Fees",
				Quantity:  1,
				PriceUnit: AdministrativeFee,
			},
		},
	}
	if err := store.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Total - сумма по строкам счёта
func Total(inv *models.Invoice) float64 {
	sum := decimal.Zero
	for _, l := range inv.Lines {
		sum = sum.Add(decimal.NewFromFloat(l.PriceUnit).Mul(decimal.NewFromFloat(l.Quantity)))
	}
	f, _ := sum.Round(models.PriceDigits).Float64()
	return f
}
