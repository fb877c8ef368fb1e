package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"estate/db"
	"estate/db/dbtest"
	"estate/models"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store      *db.Storage
	user       *models.User
	partner    *models.Partner
	otherBuyer *models.Partner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{store: dbtest.New(t)}

	f.user = &models.User{Login: "mitchell", Name: "Mitchell Admin", CreatedAt: now}
	require.NoError(t, f.store.CreateUser(ctx, f.user))
	f.partner = &models.Partner{Name: "Azure Interior", CreatedAt: now}
	require.NoError(t, f.store.CreatePartner(ctx, f.partner))
	f.otherBuyer = &models.Partner{Name: "Deco Addict", CreatedAt: now}
	require.NoError(t, f.store.CreatePartner(ctx, f.otherBuyer))
	return f
}

func (f *fixture) property(t *testing.T, name string) *models.Property {
	t.Helper()
	p := &models.Property{
		Name:          name,
		ExpectedPrice: 100000,
		LivingArea:    120,
		Bedrooms:      models.DefaultBedrooms,
		Active:        true,
		State:         models.StateNew,
		SalespersonID: f.user.ID,
		CreatedAt:     now,
	}
	p.ApplyDefaults(now)
	require.NoError(t, f.store.CreateProperty(context.Background(), p))
	return p
}

func (f *fixture) offer(t *testing.T, propertyID int, partnerID int, price float64) *models.Offer {
	t.Helper()
	o := &models.Offer{Price: price, PartnerID: partnerID, PropertyID: propertyID, Validity: 7, CreatedAt: now}
	require.NoError(t, f.store.CreateOffer(context.Background(), o))
	return o
}

func TestUsersAndPartners(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.store.GetUserByLogin(ctx, "mitchell")
	require.NoError(t, err)
	require.Equal(t, f.user.ID, u.ID)

	_, err = f.store.GetUserByLogin(ctx, "ghost")
	require.ErrorIs(t, err, models.ErrNotFound)

	err = f.store.CreateUser(ctx, &models.User{Login: "mitchell", Name: "Dup", CreatedAt: now})
	require.True(t, models.IsValidation(err))
	require.Equal(t, "The login must be unique.", err.Error())

	p, err := f.store.GetPartner(ctx, f.partner.ID)
	require.NoError(t, err)
	require.Equal(t, "Azure Interior", p.Name)
}

func TestPropertyTypeUniqueAndOfferCount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	house := &models.PropertyType{Name: "House", Sequence: 2}
	require.NoError(t, f.store.CreatePropertyType(ctx, house))
	flat := &models.PropertyType{Name: "Apartment", Sequence: 1}
	require.NoError(t, f.store.CreatePropertyType(ctx, flat))

	err := f.store.CreatePropertyType(ctx, &models.PropertyType{Name: "House"})
	require.True(t, models.IsValidation(err))
	require.Equal(t, "Property type names must be unique.", err.Error())

	p := f.property(t, "Villa")
	p.PropertyTypeID = &house.ID
	require.NoError(t, f.store.UpdateProperty(ctx, p))
	f.offer(t, p.ID, f.partner.ID, 95000)
	f.offer(t, p.ID, f.otherBuyer.ID, 96000)

	types, err := f.store.GetPropertyTypes(ctx)
	require.NoError(t, err)
	require.Len(t, types, 2)
	require.Equal(t, "Apartment", types[0].Name)
	require.Equal(t, 2, types[1].OfferCount)

	// удаление типа обнуляет ссылку у объекта
	require.NoError(t, f.store.DeletePropertyType(ctx, house.ID))
	got, err := f.store.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Nil(t, got.PropertyTypeID)

	require.ErrorIs(t, f.store.DeletePropertyType(ctx, house.ID), models.ErrNotFound)
}

func TestPropertyTags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cozy := &models.PropertyTag{Name: "cozy"}
	require.NoError(t, f.store.CreatePropertyTag(ctx, cozy))
	renovated := &models.PropertyTag{Name: "renovated", Color: 2}
	require.NoError(t, f.store.CreatePropertyTag(ctx, renovated))

	err := f.store.CreatePropertyTag(ctx, &models.PropertyTag{Name: "cozy"})
	require.True(t, models.IsValidation(err))
	require.Equal(t, "The name must be unique.", err.Error())

	p := f.property(t, "Villa")
	require.NoError(t, f.store.SetPropertyTags(ctx, p.ID, []int{renovated.ID, cozy.ID, cozy.ID}))
	tags, err := f.store.GetTagsForProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	require.Equal(t, "cozy", tags[0].Name)

	require.NoError(t, f.store.SetPropertyTags(ctx, p.ID, []int{renovated.ID}))
	tags, err = f.store.GetTagsForProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	err = f.store.SetPropertyTags(ctx, p.ID, []int{999})
	require.True(t, models.IsValidation(err))
}

func TestPropertyRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.property(t, "Villa")

	got, err := f.store.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Villa", got.Name)
	require.Equal(t, models.StateNew, got.State)
	require.Equal(t, 2, got.Bedrooms)
	require.Equal(t, "2025-05-30", got.DateAvailability.String())
	require.Equal(t, 120, got.TotalArea)
	require.Zero(t, got.BestPrice)
	require.True(t, got.Active)

	f.offer(t, p.ID, f.partner.ID, 95000)
	f.offer(t, p.ID, f.otherBuyer.ID, 97000.5)
	got, err = f.store.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 97000.5, got.BestPrice)

	_, err = f.store.GetProperty(ctx, 999)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestCheckConstraints(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p := &models.Property{Name: "Free", ExpectedPrice: 0, State: models.StateNew, SalespersonID: f.user.ID, CreatedAt: now}
	err := f.store.CreateProperty(ctx, p)
	require.True(t, models.IsValidation(err))
	require.Equal(t, "The expected price must be strictly positive.", err.Error())

	ok := f.property(t, "Villa")
	err = f.store.CreateOffer(ctx, &models.Offer{Price: -1, PartnerID: f.partner.ID, PropertyID: ok.ID, CreatedAt: now})
	require.True(t, models.IsValidation(err))
	require.Equal(t, "The price offer must be strictly positive.", err.Error())

	ok.SellingPrice = -5
	err = f.store.UpdatePropertyWorkflow(ctx, ok)
	require.True(t, models.IsValidation(err))
	require.Equal(t, "The selling price must be positive.", err.Error())

	err = f.store.CreateOffer(ctx, &models.Offer{Price: 1, PartnerID: 999, PropertyID: ok.ID, CreatedAt: now})
	require.True(t, models.IsValidation(err))
}

func TestGetPropertiesFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	a := f.property(t, "A")
	b := f.property(t, "B")
	c := f.property(t, "C")

	b.State = models.StateOfferReceived
	require.NoError(t, f.store.UpdatePropertyWorkflow(ctx, b))
	c.Active = false
	require.NoError(t, f.store.UpdateProperty(ctx, c))

	all, err := f.store.GetProperties(ctx, db.PropertyFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, b.ID, all[0].ID) // id desc
	require.Equal(t, a.ID, all[1].ID)

	withArchived, err := f.store.GetProperties(ctx, db.PropertyFilter{IncludeArchived: true})
	require.NoError(t, err)
	require.Len(t, withArchived, 3)

	received, err := f.store.GetProperties(ctx, db.PropertyFilter{States: []models.PropertyState{models.StateOfferReceived}})
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.Equal(t, "B", received[0].Name)

	page, err := f.store.GetProperties(ctx, db.PropertyFilter{IncludeArchived: true, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, b.ID, page[0].ID)

	mine, err := f.store.GetProperties(ctx, db.PropertyFilter{SalespersonID: f.user.ID + 1})
	require.NoError(t, err)
	require.Empty(t, mine)
}

func TestOffersOrderAndDeadline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.property(t, "Villa")

	f.offer(t, p.ID, f.partner.ID, 91000)
	f.offer(t, p.ID, f.otherBuyer.ID, 99000)

	offers, err := f.store.GetOffersForProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	require.Equal(t, 99000.0, offers[0].Price)
	require.Equal(t, "2025-03-08", offers[0].DateDeadline.String())

	best, err := f.store.MaxOfferPrice(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 99000.0, best)

	o := offers[1]
	o.Validity = 3
	require.NoError(t, f.store.UpdateOffer(ctx, &o))
	got, err := f.store.GetOffer(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.Validity)
	require.Equal(t, "2025-03-04", got.DateDeadline.String())
}

func TestAcceptOfferConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.property(t, "Villa")

	first := f.offer(t, p.ID, f.partner.ID, 95000)
	second := f.offer(t, p.ID, f.otherBuyer.ID, 96000)

	require.NoError(t, f.store.AcceptOffer(ctx, first.ID, p.ID))

	err := f.store.AcceptOffer(ctx, second.ID, p.ID)
	require.True(t, models.IsConflict(err))

	// индекс страхует от обхода условного UPDATE
	err = f.store.SetOfferStatus(ctx, second.ID, models.OfferAccepted)
	require.True(t, models.IsConflict(err))

	accepted, err := f.store.GetOffersByStatus(ctx, models.OfferAccepted)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	require.Equal(t, first.ID, accepted[0].ID)
}

func TestWithTxRollback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.property(t, "Villa")

	boom := errors.New("boom")
	err := f.store.WithTx(ctx, func(tx *db.Storage) error {
		p.State = models.StateCanceled
		require.NoError(t, tx.UpdatePropertyWorkflow(ctx, p))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := f.store.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, models.StateNew, got.State)
}

func TestDeletePropertyCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.property(t, "Villa")
	o := f.offer(t, p.ID, f.partner.ID, 95000)

	require.NoError(t, f.store.DeleteProperty(ctx, p.ID))
	_, err := f.store.GetOffer(ctx, o.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
	require.ErrorIs(t, f.store.DeleteProperty(ctx, p.ID), models.ErrNotFound)
}

func TestInvoices(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.property(t, "Villa")

	inv := &models.Invoice{
		Reference:  "ref-1",
		MoveType:   "out_invoice",
		PartnerID:  f.partner.ID,
		PropertyID: p.ID,
		CreatedAt:  now,
		Lines: []models.InvoiceLine{
			{Name: "Commission (6%) for property Villa", Quantity: 1, PriceUnit: 5700},
			{Name: "Administrative Fees", Quantity: 1, PriceUnit: 100},
		},
	}
	require.NoError(t, f.store.CreateInvoice(ctx, inv))
	require.NotZero(t, inv.ID)
	require.Equal(t, inv.ID, inv.Lines[1].InvoiceID)

	invoices, err := f.store.GetInvoicesForProperty(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	require.Len(t, invoices[0].Lines, 2)
	require.Equal(t, "Administrative Fees", invoices[0].Lines[1].Name)
}
