package models

import "time"

// NewProperty возвращает объект с умолчаниями, которые нельзя отличить от нулевых
// значений после декодирования. Запрос декодируется поверх него.
func NewProperty() Property {
	return Property{Bedrooms: DefaultBedrooms, Active: true}
}

// ApplyDefaults заполняет значения по умолчанию для нового объекта.
// Новый объект всегда начинает в состоянии new, без покупателя и цены продажи.
func (p *Property) ApplyDefaults(now time.Time) {
	p.State = StateNew
	if p.DateAvailability.IsZero() {
		p.DateAvailability = DateOf(now).AddDays(AvailabilityDelayDays)
	}
	if p.Garden && p.GardenArea == 0 && p.GardenOrientation == "" {
		p.OnGardenToggle(true)
	}
	p.SellingPrice = 0
	p.BuyerID = nil
}

func (p Property) ComputeTotalArea() int {
	return p.LivingArea + p.GardenArea
}

// BestPrice - максимальная цена среди предложений, 0 если их нет
func BestPrice(offers []Offer) float64 {
	best := 0.0
	for i, o := range offers {
		if i == 0 || o.Price > best {
			best = o.Price
		}
	}
	return best
}

// Derive пересчитывает вычисляемые поля. Если предложения не загружены,
// BestPrice остаётся тем, что посчитала база.
func (p *Property) Derive(today time.Time) {
	p.TotalArea = p.ComputeTotalArea()
	if p.Offers != nil {
		p.BestPrice = BestPrice(p.Offers)
		for i := range p.Offers {
			p.Offers[i].Derive(today)
		}
	}
	if p.Tags == nil {
		p.Tags = []PropertyTag{}
	}
}

// OnGardenToggle подставляет площадь и ориентацию сада по умолчанию.
func (p *Property) OnGardenToggle(hasGarden bool) {
	p.Garden = hasGarden
	if hasGarden {
		p.GardenArea = DefaultGardenArea
		p.GardenOrientation = DefaultGardenOrientation
		return
	}
	p.GardenArea = 0
	p.GardenOrientation = ""
}

func (p *Property) Cancel() error {
	if p.State == StateSold {
		return &TransitionError{From: p.State, Action: "cancel", Message: "A sold property cannot be canceled."}
	}
	p.State = StateCanceled
	return nil
}

// MarkSold переводит объект в sold. invoice вызывается до смены состояния,
// его ошибка отменяет переход.
func (p *Property) MarkSold(invoice func(*Property) error) error {
	if p.State == StateCanceled {
		return &TransitionError{From: p.State, Action: "sold", Message: "A canceled property cannot be set as sold."}
	}
	if invoice != nil {
		if err := invoice(p); err != nil {
			return err
		}
	}
	p.State = StateSold
	return nil
}

func (p Property) CheckDeletable() error {
	if p.State != StateNew && p.State != StateCanceled {
		return &TransitionError{
			From:    p.State,
			Action:  "delete",
			Message: "You cannot delete a property that is not in 'New' or 'Canceled' state.",
		}
	}
	return nil
}

// CheckAcceptsOffers: новые предложения принимаются только в new и offer_received
func (p Property) CheckAcceptsOffers() error {
	switch p.State {
	case StateNew, StateOfferReceived:
		return nil
	}
	return &TransitionError{
		From:    p.State,
		Action:  "offer",
		Message: "Cannot create an offer for a property in '" + string(p.State) + "' state.",
	}
}

// CheckCanAcceptOffer: из sold и canceled выхода нет
func (p Property) CheckCanAcceptOffer() error {
	if p.State == StateSold || p.State == StateCanceled {
		return &TransitionError{
			From:    p.State,
			Action:  "accept",
			Message: "Cannot accept an offer for a property in '" + string(p.State) + "' state.",
		}
	}
	return nil
}

// AcceptOffer переносит данные принятого предложения в объект.
func (p *Property) AcceptOffer(o Offer) {
	p.SellingPrice = o.Price
	partnerID := o.PartnerID
	p.BuyerID = &partnerID
	p.State = StateOfferAccepted
}

// OpenForSalesperson - состояния, показываемые продавцу в его списке
var OpenForSalesperson = []PropertyState{StateNew, StateOfferReceived}
