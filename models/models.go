package models

import "time"

// Состояния объекта недвижимости
type PropertyState string

const (
	StateNew           PropertyState = "new"
	StateOfferReceived PropertyState = "offer_received"
	StateOfferAccepted PropertyState = "offer_accepted"
	StateSold          PropertyState = "sold"
	StateCanceled      PropertyState = "canceled"
)

// Статусы предложения. Пустая строка означает "без решения".
type OfferStatus string

const (
	OfferUnset    OfferStatus = ""
	OfferAccepted OfferStatus = "accepted"
	OfferRefused  OfferStatus = "refused"
)

const (
	DefaultValidityDays      = 7
	DefaultBedrooms          = 2
	AvailabilityDelayDays    = 90
	DefaultGardenArea        = 10
	DefaultGardenOrientation = "north"
)

// Тип недвижимости
type PropertyType struct {
	ID         int        `db:"id" json:"id"`
	Name       string     `db:"name" json:"name" validate:"required,max=100"`
	Sequence   int        `db:"sequence" json:"sequence"`
	OfferCount int        `db:"offer_count" json:"offerCount"`
	Properties []Property `db:"-" json:"properties,omitempty"`
}

// Тег недвижимости
type PropertyTag struct {
	ID    int    `db:"id" json:"id"`
	Name  string `db:"name" json:"name" validate:"required,max=100"`
	Color int    `db:"color" json:"color"`
}

// Пользователь системы (продавец)
type User struct {
	ID        int       `db:"id" json:"id"`
	Login     string    `db:"login" json:"login" validate:"required,max=100"`
	Name      string    `db:"name" json:"name" validate:"required,max=200"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Контрагент (покупатель или автор предложения)
type Partner struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name" validate:"required,max=200"`
	Email     string    `db:"email" json:"email" validate:"omitempty,email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Сущность объекта недвижимости
type Property struct {
	ID                int           `db:"id" json:"id"`
	Name              string        `db:"name" json:"name" validate:"required,max=200"`
	Description       string        `db:"description" json:"description"`
	Postcode          string        `db:"postcode" json:"postcode" validate:"max=20"`
	DateAvailability  Date          `db:"date_availability" json:"dateAvailability"`
	ExpectedPrice     float64       `db:"expected_price" json:"expectedPrice" validate:"gt=0"`
	SellingPrice      float64       `db:"selling_price" json:"sellingPrice" validate:"gte=0"`
	Bedrooms          int           `db:"bedrooms" json:"bedrooms" validate:"gte=0"`
	LivingArea        int           `db:"living_area" json:"livingArea" validate:"gte=0"`
	Facades           int           `db:"facades" json:"facades" validate:"gte=0"`
	Garage            bool          `db:"garage" json:"garage"`
	Garden            bool          `db:"garden" json:"garden"`
	GardenArea        int           `db:"garden_area" json:"gardenArea" validate:"gte=0"`
	GardenOrientation string        `db:"garden_orientation" json:"gardenOrientation" validate:"omitempty,oneof=north south east west"`
	Active            bool          `db:"active" json:"active"`
	State             PropertyState `db:"state" json:"state" validate:"required,oneof=new offer_received offer_accepted sold canceled"`
	PropertyTypeID    *int          `db:"property_type_id" json:"propertyTypeId"`
	SalespersonID     int           `db:"salesperson_id" json:"salespersonId" validate:"required"`
	BuyerID           *int          `db:"buyer_id" json:"buyerId"`
	CreatedAt         time.Time     `db:"created_at" json:"createdAt"`

	// Вычисляемые поля
	TotalArea int     `db:"-" json:"totalArea"`
	BestPrice float64 `db:"best_price" json:"bestPrice"`

	Tags   []PropertyTag `db:"-" json:"tags"`
	Offers []Offer       `db:"-" json:"offers,omitempty"`
}

// Сущность предложения
type Offer struct {
	ID             int         `db:"id" json:"id"`
	Price          float64     `db:"price" json:"price" validate:"gt=0"`
	Status         OfferStatus `db:"status" json:"status" validate:"omitempty,oneof=accepted refused"`
	PartnerID      int         `db:"partner_id" json:"partnerId" validate:"required"`
	PropertyID     int         `db:"property_id" json:"propertyId" validate:"required"`
	Validity       int         `db:"validity" json:"validity"`
	CreatedAt      time.Time   `db:"created_at" json:"createdAt"`
	PropertyTypeID *int        `db:"property_type_id" json:"propertyTypeId"`

	DateDeadline Date `db:"-" json:"dateDeadline"`
}

// Счёт, выставляемый покупателю при продаже
type Invoice struct {
	ID         int           `db:"id" json:"id"`
	Reference  string        `db:"reference" json:"reference"`
	MoveType   string        `db:"move_type" json:"moveType"`
	PartnerID  int           `db:"partner_id" json:"partnerId"`
	PropertyID int           `db:"property_id" json:"propertyId"`
	CreatedAt  time.Time     `db:"created_at" json:"createdAt"`
	Lines      []InvoiceLine `db:"-" json:"lines"`
}

type InvoiceLine struct {
	ID        int     `db:"id" json:"id"`
	InvoiceID int     `db:"invoice_id" json:"invoiceId"`
	Name      string  `db:"name" json:"name"`
	Quantity  float64 `db:"quantity" json:"quantity"`
	PriceUnit float64 `db:"price_unit" json:"priceUnit"`
}
