package handlers

import (
	"net/http"

	"estate/models"
)

func (h *Handler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var u models.User
	if !readJSON(w, r, &u) {
		return
	}
	if err := h.Estate.CreateUser(r.Context(), &u); err != nil {
		writeError(w, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// GetUserPropertiesHandler - объекты продавца в состояниях new и offer_received
func (h *Handler) GetUserPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "userId")
	if !ok {
		return
	}
	properties, err := h.Estate.SalespersonProperties(r.Context(), id)
	if err != nil {
		writeError(w, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *Handler) CreatePartnerHandler(w http.ResponseWriter, r *http.Request) {
	var p models.Partner
	if !readJSON(w, r, &p) {
		return
	}
	if err := h.Estate.CreatePartner(r.Context(), &p); err != nil {
		writeError(w, err, "Partner not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) GetPartnerHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "partnerId")
	if !ok {
		return
	}
	p, err := h.Store.GetPartner(r.Context(), id)
	if err != nil {
		writeError(w, err, "Partner not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
