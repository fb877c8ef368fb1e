package handlers

import (
	"net/http"

	"estate/internal/estate"
	"estate/models"
)

type createOfferRequest struct {
	PropertyID int     `json:"propertyId"`
	PartnerID  int     `json:"partnerId"`
	Price      float64 `json:"price"`
	Validity   *int    `json:"validity"`
}

// CreateOfferHandler обрабатывает POST /api/offers
func (h *Handler) CreateOfferHandler(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if !readJSON(w, r, &req) {
		return
	}

	offer := &models.Offer{
		PropertyID: req.PropertyID,
		PartnerID:  req.PartnerID,
		Price:      req.Price,
		Validity:   models.DefaultValidityDays,
	}
	if req.Validity != nil {
		offer.Validity = *req.Validity
	}

	created, err := h.Estate.CreateOffer(r.Context(), offer)
	if err != nil {
		writeError(w, err, "Offer not found")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// UpdateOfferHandler обрабатывает PATCH /api/offers/{offerId}
func (h *Handler) UpdateOfferHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "offerId")
	if !ok {
		return
	}
	var upd estate.OfferUpdate
	if !readJSON(w, r, &upd) {
		return
	}
	offer, err := h.Estate.UpdateOffer(r.Context(), id, upd)
	if err != nil {
		writeError(w, err, "Offer not found")
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *Handler) AcceptOfferHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "offerId")
	if !ok {
		return
	}
	offer, err := h.Estate.AcceptOffer(r.Context(), id)
	if err != nil {
		writeError(w, err, "Offer not found")
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

func (h *Handler) RefuseOfferHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "offerId")
	if !ok {
		return
	}
	offer, err := h.Estate.RefuseOffer(r.Context(), id)
	if err != nil {
		writeError(w, err, "Offer not found")
		return
	}
	writeJSON(w, http.StatusOK, offer)
}
