package estate

import (
	"context"

	"estate/db"
	"estate/models"
)

// OfferUpdate - изменяемые поля предложения. Дедлайн пересчитывает validity.
type OfferUpdate struct {
	Price        *float64     `json:"price"`
	Validity     *int         `json:"validity"`
	DateDeadline *models.Date `json:"dateDeadline"`
}

// CreateOffer регистрирует предложение и переводит объект в offer_received.
func (s *Service) CreateOffer(ctx context.Context, o *models.Offer) (*models.Offer, error) {
	o.Status = models.OfferUnset
	o.CreatedAt = s.today()
	if err := models.Validate(o); err != nil {
		return nil, err
	}

	err := s.store.WithTx(ctx, func(tx *db.Storage) error {
		p, err := tx.GetPropertyForUpdate(ctx, o.PropertyID)
		if err != nil {
			return requireFound(err, "Property")
		}
		if _, err := tx.GetPartner(ctx, o.PartnerID); err != nil {
			return requireFound(err, "Partner")
		}
		if err := p.CheckAcceptsOffers(); err != nil {
			return err
		}
		if err := models.ValidateOfferPrice(o.Price, p.ExpectedPrice); err != nil {
			return err
		}
		best, err := tx.MaxOfferPrice(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := models.CheckNotBelowExisting(o.Price, best); err != nil {
			return err
		}

		if err := tx.CreateOffer(ctx, o); err != nil {
			return err
		}
		p.State = models.StateOfferReceived
		return tx.UpdatePropertyWorkflow(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.OffersCreated.Inc()
	return s.store.GetOffer(ctx, o.ID)
}

// UpdateOffer меняет цену (с проверкой 90%), срок или дедлайн.
func (s *Service) UpdateOffer(ctx context.Context, id int, upd OfferUpdate) (*models.Offer, error) {
	err := s.store.WithTx(ctx, func(tx *db.Storage) error {
		o, err := tx.GetOffer(ctx, id)
		if err != nil {
			return err
		}
		if upd.Price != nil {
			p, err := tx.GetPropertyForUpdate(ctx, o.PropertyID)
			if err != nil {
				return err
			}
			o.Price = *upd.Price
			if err := models.Validate(o); err != nil {
				return err
			}
			if err := models.ValidateOfferPrice(o.Price, p.ExpectedPrice); err != nil {
				return err
			}
		}
		if upd.Validity != nil {
			o.Validity = *upd.Validity
		}
		if upd.DateDeadline != nil {
			o.SetDeadlineAndRecomputeValidity(*upd.DateDeadline, s.today())
		}
		return tx.UpdateOffer(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return s.store.GetOffer(ctx, id)
}

// AcceptOffer принимает предложение и в той же транзакции переносит цену
// и покупателя в объект. Второе принятое предложение - ConflictError.
func (s *Service) AcceptOffer(ctx context.Context, id int) (*models.Offer, error) {
	err := s.store.WithTx(ctx, func(tx *db.Storage) error {
		o, err := tx.GetOffer(ctx, id)
		if err != nil {
			return err
		}
		p, err := tx.GetPropertyForUpdate(ctx, o.PropertyID)
		if err != nil {
			return err
		}
		if err := p.CheckCanAcceptOffer(); err != nil {
			return err
		}
		if err := tx.AcceptOffer(ctx, o.ID, p.ID); err != nil {
			return err
		}
		p.AcceptOffer(*o)
		return tx.UpdatePropertyWorkflow(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.OffersAccepted.Inc()
	return s.store.GetOffer(ctx, id)
}

// RefuseOffer отклоняет предложение. Объект не меняется.
func (s *Service) RefuseOffer(ctx context.Context, id int) (*models.Offer, error) {
	if err := s.store.SetOfferStatus(ctx, id, models.OfferRefused); err != nil {
		return nil, err
	}
	s.metrics.OffersRefused.Inc()
	return s.store.GetOffer(ctx, id)
}

// ExpireOffers отклоняет предложения без решения, чей дедлайн уже прошёл.
func (s *Service) ExpireOffers(ctx context.Context) (int, error) {
	today := s.today()
	expired := 0
	err := s.store.WithTx(ctx, func(tx *db.Storage) error {
		offers, err := tx.GetOffersByStatus(ctx, models.OfferUnset)
		if err != nil {
			return err
		}
		for _, o := range offers {
			if !o.IsExpired(today) {
				continue
			}
			if err := tx.SetOfferStatus(ctx, o.ID, models.OfferRefused); err != nil {
				return err
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.metrics.OffersExpired.Add(float64(expired))
	return expired, nil
}
