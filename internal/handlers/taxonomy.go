package handlers

import (
	"net/http"

	"estate/models"
)

func (h *Handler) CreatePropertyTypeHandler(w http.ResponseWriter, r *http.Request) {
	var t models.PropertyType
	if !readJSON(w, r, &t) {
		return
	}
	if err := h.Estate.CreatePropertyType(r.Context(), &t); err != nil {
		writeError(w, err, "Property type not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// GetPropertyTypesHandler - типы в порядке sequence, name
func (h *Handler) GetPropertyTypesHandler(w http.ResponseWriter, r *http.Request) {
	types, err := h.Store.GetPropertyTypes(r.Context())
	if err != nil {
		http.Error(w, "Failed to get property types", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types)
}

func (h *Handler) GetPropertyTypeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "typeId")
	if !ok {
		return
	}
	t, err := h.Estate.GetPropertyType(r.Context(), id)
	if err != nil {
		writeError(w, err, "Property type not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) DeletePropertyTypeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "typeId")
	if !ok {
		return
	}
	if err := h.Estate.DeletePropertyType(r.Context(), id); err != nil {
		writeError(w, err, "Property type not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreatePropertyTagHandler(w http.ResponseWriter, r *http.Request) {
	var t models.PropertyTag
	if !readJSON(w, r, &t) {
		return
	}
	if err := h.Estate.CreatePropertyTag(r.Context(), &t); err != nil {
		writeError(w, err, "Property tag not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) GetPropertyTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := h.Store.GetPropertyTags(r.Context())
	if err != nil {
		http.Error(w, "Failed to get property tags", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (h *Handler) DeletePropertyTagHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "tagId")
	if !ok {
		return
	}
	if err := h.Estate.DeletePropertyTag(r.Context(), id); err != nil {
		writeError(w, err, "Property tag not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
