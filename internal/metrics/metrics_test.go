package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.OffersCreated.Inc()
	m.OffersExpired.Add(3)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 7)
	require.Equal(t, 3.0, testutil.ToFloat64(m.OffersExpired))

	expected := `
# HELP estate_offers_created_total Offers created.
# TYPE estate_offers_created_total counter
estate_offers_created_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "estate_offers_created_total"))
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	require.Panics(t, func() { New(reg) })
}
