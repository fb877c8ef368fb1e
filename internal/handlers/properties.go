package handlers

import (
	"net/http"
	"strconv"

	"estate/db"
	"estate/internal/accounting"
	"estate/internal/estate"
	"estate/models"
)

type PaginationParams struct {
	Limit  int
	Offset int
}

// parsePaginationParams парсит limit и offset из query, с дефолтами и ограничениями
func parsePaginationParams(r *http.Request) PaginationParams {
	var params PaginationParams
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	params.Limit = 5 // дефолт
	params.Offset = 0

	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 50 {
			params.Limit = l
		}
	}
	if offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			params.Offset = o
		}
	}
	return params
}

var allowedStates = map[models.PropertyState]bool{
	models.StateNew:           true,
	models.StateOfferReceived: true,
	models.StateOfferAccepted: true,
	models.StateSold:          true,
	models.StateCanceled:      true,
}

// parsePropertyFilter: state (несколько), type, include_archived и пагинация
func parsePropertyFilter(r *http.Request) db.PropertyFilter {
	params := parsePaginationParams(r)
	f := db.PropertyFilter{Limit: params.Limit, Offset: params.Offset}

	for _, v := range r.URL.Query()["state"] {
		if st := models.PropertyState(v); allowedStates[st] {
			f.States = append(f.States, st)
		}
	}
	if t, err := strconv.Atoi(r.URL.Query().Get("type")); err == nil && t > 0 {
		f.PropertyTypeID = t
	}
	if archived, err := strconv.ParseBool(r.URL.Query().Get("include_archived")); err == nil {
		f.IncludeArchived = archived
	}
	return f
}

type createPropertyRequest struct {
	models.Property
	TagIDs []int `json:"tagIds"`
}

// CreatePropertyHandler обрабатывает POST /api/properties?username=
func (h *Handler) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r, false)
	if !ok {
		return
	}

	req := createPropertyRequest{Property: models.NewProperty()}
	if !readJSON(w, r, &req) {
		return
	}

	property, err := h.Estate.CreateProperty(r.Context(), actor, &req.Property, req.TagIDs)
	if err != nil {
		writeError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, property)
}

// GetPropertiesHandler возвращает список объектов с фильтрами
func (h *Handler) GetPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	properties, err := h.Store.GetProperties(r.Context(), parsePropertyFilter(r))
	if err != nil {
		http.Error(w, "Failed to get properties", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

// GetMyPropertiesHandler - открытые объекты продавца username
func (h *Handler) GetMyPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.actor(w, r, true)
	if !ok {
		return
	}
	properties, err := h.Estate.SalespersonProperties(r.Context(), user.ID)
	if err != nil {
		writeError(w, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *Handler) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "propertyId")
	if !ok {
		return
	}
	property, err := h.Estate.GetProperty(r.Context(), id)
	if err != nil {
		writeError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *Handler) UpdatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "propertyId")
	if !ok {
		return
	}
	var upd estate.PropertyUpdate
	if !readJSON(w, r, &upd) {
		return
	}
	property, err := h.Estate.UpdateProperty(r.Context(), id, upd)
	if err != nil {
		writeError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *Handler) DeletePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "propertyId")
	if !ok {
		return
	}
	if err := h.Estate.DeleteProperty(r.Context(), id); err != nil {
		writeError(w, err, "Property not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CancelPropertyHandler обрабатывает PUT /api/properties/{propertyId}/cancel
func (h *Handler) CancelPropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "propertyId")
	if !ok {
		return
	}
	property, err := h.Estate.CancelProperty(r.Context(), id)
	if err != nil {
		writeError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, property)
}

type soldResponse struct {
	Property     *models.Property `json:"property"`
	Invoice      *models.Invoice  `json:"invoice"`
	InvoiceTotal float64          `json:"invoiceTotal"`
}

// SellPropertyHandler помечает объект проданным и возвращает выставленный счёт
func (h *Handler) SellPropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "propertyId")
	if !ok {
		return
	}
	property, invoice, err := h.Estate.SellProperty(r.Context(), id)
	if err != nil {
		writeError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, soldResponse{
		Property:     property,
		Invoice:      invoice,
		InvoiceTotal: accounting.Total(invoice),
	})
}

// GetPropertyOffersHandler - предложения объекта по убыванию цены
func (h *Handler) GetPropertyOffersHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "propertyId")
	if !ok {
		return
	}
	property, err := h.Estate.GetProperty(r.Context(), id)
	if err != nil {
		writeError(w, err, "Property not found")
		return
	}
	writeJSON(w, http.StatusOK, property.Offers)
}

func (h *Handler) GetPropertyInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "propertyId")
	if !ok {
		return
	}
	if _, err := h.Estate.GetProperty(r.Context(), id); err != nil {
		writeError(w, err, "Property not found")
		return
	}
	invoices, err := h.Store.GetInvoicesForProperty(r.Context(), id)
	if err != nil {
		http.Error(w, "Failed to get invoices", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}
