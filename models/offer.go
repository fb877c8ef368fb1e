package models

import "time"

// ComputeDeadline: дата создания + validity дней; без даты создания - от сегодня.
func (o Offer) ComputeDeadline(today time.Time) Date {
	base := o.CreatedAt
	if base.IsZero() {
		base = today
	}
	return DateOf(base).AddDays(o.Validity)
}

// SetDeadlineAndRecomputeValidity - единственный путь записи дедлайна:
// хранится только validity.
func (o *Offer) SetDeadlineAndRecomputeValidity(deadline Date, today time.Time) {
	base := o.CreatedAt
	if base.IsZero() {
		base = today
	}
	o.Validity = deadline.DaysSince(DateOf(base))
	o.DateDeadline = deadline
}

func (o *Offer) Derive(today time.Time) {
	o.DateDeadline = o.ComputeDeadline(today)
}

// IsExpired: решение не принято, а дедлайн уже прошёл
func (o Offer) IsExpired(today time.Time) bool {
	return o.Status == OfferUnset && o.ComputeDeadline(today).Before(DateOf(today).Time)
}

// ValidateOfferPrice: цена не ниже 90% ожидаемой (если ожидаемая задана).
func ValidateOfferPrice(price, expected float64) error {
	if FloatIsZero(expected, PriceDigits) {
		return nil
	}
	if FloatCompare(price, MinimumOfferPrice(expected), PriceDigits) < 0 {
		return &ValidationError{
			Field: "price",
			Message: "The offer price cannot be lower than 90% of the expected price! The expected price is " +
				FormatPrice(expected),
		}
	}
	return nil
}

// CheckNotBelowExisting: новое предложение не может быть ниже уже имеющихся.
// Сравнение точное, без округления.
func CheckNotBelowExisting(price, currentBest float64) error {
	if price < currentBest {
		return &ValidationError{
			Field:   "price",
			Message: "You cannot create an offer with a lower amount than an existing offer.",
		}
	}
	return nil
}
