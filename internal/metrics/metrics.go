package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "estate"

// Metrics - счётчики событий процесса продажи
type Metrics struct {
	OffersCreated      prometheus.Counter
	OffersAccepted     prometheus.Counter
	OffersRefused      prometheus.Counter
	OffersExpired      prometheus.Counter
	PropertiesSold     prometheus.Counter
	PropertiesCanceled prometheus.Counter
	InvoicesCreated    prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	counter := func(name, help string) prometheus.Counter {
		return f.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}
	return &Metrics{
		OffersCreated:      counter("offers_created_total", "Offers created."),
		OffersAccepted:     counter("offers_accepted_total", "Offers accepted."),
		OffersRefused:      counter("offers_refused_total", "Offers refused by a user."),
		OffersExpired:      counter("offers_expired_total", "Offers refused after their deadline passed."),
		PropertiesSold:     counter("properties_sold_total", "Properties marked as sold."),
		PropertiesCanceled: counter("properties_canceled_total", "Properties canceled."),
		InvoicesCreated:    counter("invoices_created_total", "Sale invoices created."),
	}
}
