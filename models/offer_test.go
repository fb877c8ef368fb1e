package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComputeDeadline(t *testing.T) {
	o := Offer{Validity: 7, CreatedAt: time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC)}
	require.Equal(t, "2025-01-17", o.ComputeDeadline(today).String())

	// без даты создания считаем от сегодня
	o = Offer{Validity: 7}
	require.Equal(t, "2025-03-08", o.ComputeDeadline(today).String())
}

func TestDeadlineRoundTrip(t *testing.T) {
	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	o := &Offer{Validity: 10, CreatedAt: created}
	deadline := o.ComputeDeadline(today)
	require.Equal(t, "2025-01-11", deadline.String())

	o.SetDeadlineAndRecomputeValidity(deadline.AddDays(-5), today)
	require.Equal(t, 5, o.Validity)
	require.Equal(t, "2025-01-06", o.ComputeDeadline(today).String())

	o.SetDeadlineAndRecomputeValidity(deadline.AddDays(5), today)
	require.Equal(t, 15, o.Validity)
}

func TestSetDeadlineWithoutCreation(t *testing.T) {
	o := &Offer{}
	d, err := ParseDate("2025-03-04")
	require.NoError(t, err)
	o.SetDeadlineAndRecomputeValidity(d, today)
	require.Equal(t, 3, o.Validity)
}

func TestIsExpired(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	o := Offer{Validity: 7, CreatedAt: created}
	require.True(t, o.IsExpired(today))

	o.Status = OfferRefused
	require.False(t, o.IsExpired(today))

	// дедлайн сегодня - ещё не истёк
	o = Offer{Validity: 28, CreatedAt: created}
	require.False(t, o.IsExpired(today))
}

func TestValidateOfferPrice(t *testing.T) {
	err := ValidateOfferPrice(89999.99, 100000)
	require.True(t, IsValidation(err))
	require.Equal(t,
		"The offer price cannot be lower than 90% of the expected price! The expected price is 100,000.00",
		err.Error())

	require.NoError(t, ValidateOfferPrice(90000.00, 100000))
	require.NoError(t, ValidateOfferPrice(89999.999, 100000))
	require.NoError(t, ValidateOfferPrice(89999.995, 100000))
	require.True(t, IsValidation(ValidateOfferPrice(89999.994, 100000)))
	require.NoError(t, ValidateOfferPrice(1, 0))
}

func TestCheckNotBelowExisting(t *testing.T) {
	require.NoError(t, CheckNotBelowExisting(1000, 0))
	require.NoError(t, CheckNotBelowExisting(1000, 1000))
	err := CheckNotBelowExisting(999, 1000)
	require.True(t, IsValidation(err))
	require.True(t, IsValidation(CheckNotBelowExisting(99.999, 100)))
	require.Equal(t, "You cannot create an offer with a lower amount than an existing offer.", err.Error())
}
