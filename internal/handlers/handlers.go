package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"estate/models"

	"github.com/go-chi/chi/v5"
)

// Handler оборачивает хранилище (чтения) и сервис (команды)
type Handler struct {
	Store  StorageInterface
	Estate EstateService
}

// NewHandler создает новый Handler
func NewHandler(store StorageInterface, svc EstateService) *Handler {
	return &Handler{Store: store, Estate: svc}
}

// Routes регистрирует маршруты API (монтируется под /api)
func (h *Handler) Routes(r chi.Router) {
	r.Get("/ping", h.PingHandler)

	// справочники
	r.Post("/property-types", h.CreatePropertyTypeHandler)
	r.Get("/property-types", h.GetPropertyTypesHandler)
	r.Get("/property-types/{typeId}", h.GetPropertyTypeHandler)
	r.Delete("/property-types/{typeId}", h.DeletePropertyTypeHandler)
	r.Post("/property-tags", h.CreatePropertyTagHandler)
	r.Get("/property-tags", h.GetPropertyTagsHandler)
	r.Delete("/property-tags/{tagId}", h.DeletePropertyTagHandler)

	// объекты
	r.Post("/properties", h.CreatePropertyHandler)
	r.Get("/properties", h.GetPropertiesHandler)
	r.Get("/properties/my", h.GetMyPropertiesHandler)
	r.Get("/properties/{propertyId}", h.GetPropertyHandler)
	r.Patch("/properties/{propertyId}", h.UpdatePropertyHandler)
	r.Delete("/properties/{propertyId}", h.DeletePropertyHandler)
	r.Put("/properties/{propertyId}/cancel", h.CancelPropertyHandler)
	r.Put("/properties/{propertyId}/sold", h.SellPropertyHandler)
	r.Get("/properties/{propertyId}/offers", h.GetPropertyOffersHandler)
	r.Get("/properties/{propertyId}/invoices", h.GetPropertyInvoicesHandler)

	// предложения
	r.Post("/offers", h.CreateOfferHandler)
	r.Patch("/offers/{offerId}", h.UpdateOfferHandler)
	r.Put("/offers/{offerId}/accept", h.AcceptOfferHandler)
	r.Put("/offers/{offerId}/refuse", h.RefuseOfferHandler)

	// пользователи и контрагенты
	r.Post("/users", h.CreateUserHandler)
	r.Get("/users/{userId}/properties", h.GetUserPropertiesHandler)
	r.Post("/partners", h.CreatePartnerHandler)
	r.Get("/partners/{partnerId}", h.GetPartnerHandler)
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// readJSON читает тело запроса в v
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	// Ограничение размера тела, чтобы избежать DoS
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return false
	}
	defer r.Body.Close()

	if err := json.Unmarshal(body, v); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError переводит доменную ошибку в HTTP-статус
func writeError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, notFound, http.StatusNotFound)
	case models.IsValidation(err), models.IsTransition(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case models.IsConflict(err):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("request failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// urlID парсит положительный числовой параметр пути
func urlID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		http.Error(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// actor находит пользователя по query-параметру username.
// required=false: без параметра возвращается nil.
func (h *Handler) actor(w http.ResponseWriter, r *http.Request, required bool) (*models.User, bool) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		if required {
			http.Error(w, "Missing username parameter", http.StatusBadRequest)
			return nil, false
		}
		return nil, true
	}

	user, err := h.Store.GetUserByLogin(r.Context(), username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.Error(w, "User not found", http.StatusUnauthorized)
		} else {
			writeError(w, err, "User not found")
		}
		return nil, false
	}
	return user, true
}
