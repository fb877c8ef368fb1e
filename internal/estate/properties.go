package estate

import (
	"context"
	"log"

	"estate/db"
	"estate/internal/accounting"
	"estate/models"
)

// PropertyUpdate - изменяемые поля объекта. nil означает "не менять".
type PropertyUpdate struct {
	Name              *string      `json:"name"`
	Description       *string      `json:"description"`
	Postcode          *string      `json:"postcode"`
	DateAvailability  *models.Date `json:"dateAvailability"`
	ExpectedPrice     *float64     `json:"expectedPrice"`
	Bedrooms          *int         `json:"bedrooms"`
	LivingArea        *int         `json:"livingArea"`
	Facades           *int         `json:"facades"`
	Garage            *bool        `json:"garage"`
	Garden            *bool        `json:"garden"`
	GardenArea        *int         `json:"gardenArea"`
	GardenOrientation *string      `json:"gardenOrientation"`
	Active            *bool        `json:"active"`
	PropertyTypeID    *int         `json:"propertyTypeId"` // 0 снимает тип
	SalespersonID     *int         `json:"salespersonId"`
	TagIDs            []int        `json:"tagIds"`
}

// CreateProperty создаёт объект. Продавец по умолчанию - actor.
func (s *Service) CreateProperty(ctx context.Context, actor *models.User, p *models.Property, tagIDs []int) (*models.Property, error) {
	if p.SalespersonID == 0 && actor != nil {
		p.SalespersonID = actor.ID
	}
	now := s.today()
	p.ApplyDefaults(now)
	p.CreatedAt = now
	if err := models.Validate(p); err != nil {
		return nil, err
	}

	err := s.store.WithTx(ctx, func(tx *db.Storage) error {
		if _, err := tx.GetUser(ctx, p.SalespersonID); err != nil {
			return requireFound(err, "Salesperson")
		}
		if err := tx.CreateProperty(ctx, p); err != nil {
			return err
		}
		return tx.SetPropertyTags(ctx, p.ID, tagIDs)
	})
	if err != nil {
		return nil, err
	}
	return s.GetProperty(ctx, p.ID)
}

// GetProperty возвращает объект с тегами, предложениями и вычисляемыми полями
func (s *Service) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	p, err := s.store.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Tags, err = s.store.GetTagsForProperty(ctx, id); err != nil {
		return nil, err
	}
	if p.Offers, err = s.store.GetOffersForProperty(ctx, id); err != nil {
		return nil, err
	}
	p.Derive(s.today())
	return p, nil
}

func (s *Service) UpdateProperty(ctx context.Context, id int, upd PropertyUpdate) (*models.Property, error) {
	err := s.store.WithTx(ctx, func(tx *db.Storage) error {
		p, err := tx.GetPropertyForUpdate(ctx, id)
		if err != nil {
			return err
		}
		applyPropertyUpdate(p, upd)
		if err := models.Validate(p); err != nil {
			return err
		}
		if err := tx.UpdateProperty(ctx, p); err != nil {
			return err
		}
		if upd.TagIDs != nil {
			return tx.SetPropertyTags(ctx, id, upd.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetProperty(ctx, id)
}

func applyPropertyUpdate(p *models.Property, upd PropertyUpdate) {
	setString(&p.Name, upd.Name)
	setString(&p.Description, upd.Description)
	setString(&p.Postcode, upd.Postcode)
	if upd.DateAvailability != nil {
		p.DateAvailability = *upd.DateAvailability
	}
	if upd.ExpectedPrice != nil {
		p.ExpectedPrice = *upd.ExpectedPrice
	}
	setInt(&p.Bedrooms, upd.Bedrooms)
	setInt(&p.LivingArea, upd.LivingArea)
	setInt(&p.Facades, upd.Facades)
	if upd.Garage != nil {
		p.Garage = *upd.Garage
	}
	if upd.Garden != nil {
		// Подсказки по саду, только если площадь и ориентацию не прислали явно
		if *upd.Garden != p.Garden && upd.GardenArea == nil && upd.GardenOrientation == nil {
			p.OnGardenToggle(*upd.Garden)
		}
		p.Garden = *upd.Garden
	}
	setInt(&p.GardenArea, upd.GardenArea)
	setString(&p.GardenOrientation, upd.GardenOrientation)
	if upd.Active != nil {
		p.Active = *upd.Active
	}
	if upd.PropertyTypeID != nil {
		if *upd.PropertyTypeID == 0 {
			p.PropertyTypeID = nil
		} else {
			typeID := *upd.PropertyTypeID
			p.PropertyTypeID = &typeID
		}
	}
	setInt(&p.SalespersonID, upd.SalespersonID)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// DeleteProperty удаляет объект в состоянии new или canceled
func (s *Service) DeleteProperty(ctx context.Context, id int) error {
	return s.store.WithTx(ctx, func(tx *db.Storage) error {
		p, err := tx.GetPropertyForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.CheckDeletable(); err != nil {
			return err
		}
		return tx.DeleteProperty(ctx, id)
	})
}

func (s *Service) CancelProperty(ctx context.Context, id int) (*models.Property, error) {
	err := s.store.WithTx(ctx, func(tx *db.Storage) error {
		p, err := tx.GetPropertyForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := p.Cancel(); err != nil {
			return err
		}
		return tx.UpdatePropertyWorkflow(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.PropertiesCanceled.Inc()
	return s.GetProperty(ctx, id)
}

// SellProperty помечает объект проданным и в той же транзакции выставляет счёт покупателю.
func (s *Service) SellProperty(ctx context.Context, id int) (*models.Property, *models.Invoice, error) {
	var (
		invoice *models.Invoice
		sold    *models.Property
	)
	err := s.store.WithTx(ctx, func(tx *db.Storage) error {
		p, err := tx.GetPropertyForUpdate(ctx, id)
		if err != nil {
			return err
		}
		err = p.MarkSold(func(p *models.Property) error {
			invoice, err = s.invoicer.InvoiceSale(ctx, tx, p)
			return err
		})
		if err != nil {
			return err
		}
		sold = p
		return tx.UpdatePropertyWorkflow(ctx, p)
	})
	if err != nil {
		return nil, nil, err
	}

	log.Printf("Invoice created for property %s (ID: %d) - Invoice ID: %d, total %s",
		sold.Name, sold.ID, invoice.ID, models.FormatPrice(accounting.Total(invoice)))
	s.metrics.PropertiesSold.Inc()
	s.metrics.InvoicesCreated.Inc()

	p, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, invoice, nil
}

// SalespersonProperties - объекты продавца в состояниях new и offer_received
func (s *Service) SalespersonProperties(ctx context.Context, userID int) ([]models.Property, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetProperties(ctx, db.PropertyFilter{
		States:        models.OpenForSalesperson,
		SalespersonID: userID,
	})
}
