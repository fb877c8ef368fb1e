package db

import (
	"context"
	"time"

	"estate/models"

	"github.com/jmoiron/sqlx"
)

// Offer (Предложение)

// property_type_id берётся из объекта, поэтому всегда совпадает с ним
const offerSelect = `
    SELECT o.id, o.price, o.status, o.partner_id, o.property_id, o.validity, o.created_at,
        p.property_type_id
    FROM offer o
    JOIN property p ON p.id = o.property_id`

func (s *Storage) CreateOffer(ctx context.Context, o *models.Offer) error {
	query := `
        INSERT INTO offer (price, status, partner_id, property_id, validity, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`
	err := s.q.QueryRowxContext(ctx, query,
		o.Price, o.Status, o.PartnerID, o.PropertyID, o.Validity, o.CreatedAt).
		Scan(&o.ID)
	return translate(err)
}

func (s *Storage) GetOffer(ctx context.Context, id int) (*models.Offer, error) {
	o := &models.Offer{}
	if err := sqlx.GetContext(ctx, s.q, o, offerSelect+` WHERE o.id=$1`, id); err != nil {
		return nil, translate(err)
	}
	o.Derive(time.Now())
	return o, nil
}

func (s *Storage) GetOffersForProperty(ctx context.Context, propertyID int) ([]models.Offer, error) {
	offers := []models.Offer{}
	query := offerSelect + ` WHERE o.property_id=$1 ORDER BY o.price DESC, o.id ASC`
	if err := sqlx.SelectContext(ctx, s.q, &offers, query, propertyID); err != nil {
		return nil, translate(err)
	}
	deriveOffers(offers)
	return offers, nil
}

func (s *Storage) GetOffersByStatus(ctx context.Context, status models.OfferStatus) ([]models.Offer, error) {
	offers := []models.Offer{}
	query := offerSelect + ` WHERE o.status=$1 ORDER BY o.id ASC`
	if err := sqlx.SelectContext(ctx, s.q, &offers, query, status); err != nil {
		return nil, translate(err)
	}
	deriveOffers(offers)
	return offers, nil
}

// MaxOfferPrice - наибольшая цена среди предложений объекта (0, если их нет)
func (s *Storage) MaxOfferPrice(ctx context.Context, propertyID int) (float64, error) {
	var best float64
	query := `SELECT COALESCE(MAX(price), 0) FROM offer WHERE property_id=$1`
	if err := sqlx.GetContext(ctx, s.q, &best, query, propertyID); err != nil {
		return 0, translate(err)
	}
	return best, nil
}

// UpdateOffer сохраняет цену и срок действия
func (s *Storage) UpdateOffer(ctx context.Context, o *models.Offer) error {
	res, err := s.q.ExecContext(ctx, `UPDATE offer SET price=$1, validity=$2 WHERE id=$3`, o.Price, o.Validity, o.ID)
	if err != nil {
		return translate(err)
	}
	return affectedOne(res)
}

func (s *Storage) SetOfferStatus(ctx context.Context, id int, status models.OfferStatus) error {
	res, err := s.q.ExecContext(ctx, `UPDATE offer SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return translate(err)
	}
	return affectedOne(res)
}

// AcceptOffer атомарно помечает предложение принятым, только если у объекта
// нет другого принятого предложения. Иначе возвращает ConflictError.
func (s *Storage) AcceptOffer(ctx context.Context, offerID, propertyID int) error {
	query := `
        UPDATE offer SET status = $1
        WHERE id = $2 AND property_id = $3 AND NOT EXISTS (
            SELECT 1 FROM offer other
            WHERE other.property_id = $3 AND other.status = $1 AND other.id <> $2
        )`
	res, err := s.q.ExecContext(ctx, query, models.OfferAccepted, offerID, propertyID)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errAlreadyAccepted
	}
	return nil
}

// deriveOffers заполняет дедлайн, который в базе не хранится
func deriveOffers(offers []models.Offer) {
	now := time.Now()
	for i := range offers {
		offers[i].Derive(now)
	}
}
