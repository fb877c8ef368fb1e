package handlers

import (
	"context"

	"estate/db"
	"estate/internal/estate"
	"estate/models"
)

// StorageInterface - чтения, которым не нужна транзакция
type StorageInterface interface {
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetPartner(ctx context.Context, id int) (*models.Partner, error)
	GetPropertyTypes(ctx context.Context) ([]models.PropertyType, error)
	GetPropertyTags(ctx context.Context) ([]models.PropertyTag, error)
	GetProperties(ctx context.Context, f db.PropertyFilter) ([]models.Property, error)
	GetInvoicesForProperty(ctx context.Context, propertyID int) ([]models.Invoice, error)
}

// EstateService - команды процесса продажи (см. estate.Service)
type EstateService interface {
	CreateUser(ctx context.Context, u *models.User) error
	CreatePartner(ctx context.Context, p *models.Partner) error

	CreatePropertyType(ctx context.Context, t *models.PropertyType) error
	GetPropertyType(ctx context.Context, id int) (*models.PropertyType, error)
	DeletePropertyType(ctx context.Context, id int) error
	CreatePropertyTag(ctx context.Context, t *models.PropertyTag) error
	DeletePropertyTag(ctx context.Context, id int) error

	CreateProperty(ctx context.Context, actor *models.User, p *models.Property, tagIDs []int) (*models.Property, error)
	GetProperty(ctx context.Context, id int) (*models.Property, error)
	UpdateProperty(ctx context.Context, id int, upd estate.PropertyUpdate) (*models.Property, error)
	DeleteProperty(ctx context.Context, id int) error
	CancelProperty(ctx context.Context, id int) (*models.Property, error)
	SellProperty(ctx context.Context, id int) (*models.Property, *models.Invoice, error)
	SalespersonProperties(ctx context.Context, userID int) ([]models.Property, error)

	CreateOffer(ctx context.Context, o *models.Offer) (*models.Offer, error)
	UpdateOffer(ctx context.Context, id int, upd estate.OfferUpdate) (*models.Offer, error)
	AcceptOffer(ctx context.Context, id int) (*models.Offer, error)
	RefuseOffer(ctx context.Context, id int) (*models.Offer, error)
}
