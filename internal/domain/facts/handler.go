package facts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-ai-context/internal/domain/dogs"
	"pet-ai-context/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, dogsSvc *dogs.Service) {
	r.Route("/dogs/{dogID}/facts", func(fr chi.Router) {
		fr.Post("/", createFactHandler(svc, dogsSvc))
		fr.Get("/", listFactsHandler(svc, dogsSvc))
		fr.Patch("/{factID}", updateFactHandler(svc, dogsSvc))
	})
}

type createFactRequest struct {
	Fact     string   `json:"fact"`
	Category Category `json:"category" enums:"symptom,digestive,allergy,health,behavior,diet,medication,vet_visit,weight,condition"`
	Tags     []string `json:"tags"`
	Severity Severity `json:"severity" enums:"mild,moderate,severe"` // opcional, default mild
	Status   Status   `json:"status"`                                // opcional, default active

	OccurredAt string `json:"occurred_at"` // RFC3339 opcional; default: ahora

	Notes              string   `json:"notes"`
	PossibleConditions []string `json:"possible_conditions"`
	RecommendedActions []string `json:"recommended_actions"`

	Pinned bool   `json:"pinned"`
	Source Source `json:"source"` // opcional: manual, chat, photo
}

type updateFactRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Status *Status `json:"status"`
	Notes  *string `json:"notes"`
}

type factResponse struct {
	ID       string   `json:"id"`
	DogID    string   `json:"dog_id"`
	Fact     string   `json:"fact"`
	Category Category `json:"category"`
	Tags     []string `json:"tags"`
	Severity Severity `json:"severity"`
	Status   Status   `json:"status"`

	OccurredAt time.Time  `json:"occurred_at"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	Notes              string   `json:"notes,omitempty"`
	PossibleConditions []string `json:"possible_conditions,omitempty"`
	RecommendedActions []string `json:"recommended_actions,omitempty"`

	Pinned bool   `json:"pinned"`
	Source Source `json:"source"`
}

// createFactHandler godoc
// @Summary Registrar observación de salud
// @Description Crea una observación puntual (pet fact) para el perro indicado. Solo el dueño. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags facts
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param dogID path string true "ID del perro"
// @Param payload body createFactRequest true "Observación; occurred_at en RFC3339 (opcional)"
// @Success 201 {object} factResponse
// @Failure 400 {string} string "invalid json / occurred_at inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "dog not found"
// @Router /dogs/{dogID}/facts [post]
func createFactHandler(svc *Service, dogsSvc *dogs.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, dogID, ok := authorizeOwner(w, r, dogsSvc)
		if !ok {
			return
		}

		var req createFactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var occurred *time.Time
		if strings.TrimSpace(req.OccurredAt) != "" {
			t, err := time.Parse(time.RFC3339, req.OccurredAt)
			if err != nil {
				http.Error(w, "occurred_at must be RFC3339", http.StatusBadRequest)
				return
			}
			occurred = &t
		}

		f, err := svc.Create(r.Context(), dogID, CreateInput{
			Fact:               req.Fact,
			Category:           req.Category,
			Tags:               req.Tags,
			Severity:           req.Severity,
			Status:             req.Status,
			OccurredAt:         occurred,
			Notes:              req.Notes,
			PossibleConditions: req.PossibleConditions,
			RecommendedActions: req.RecommendedActions,
			Pinned:             req.Pinned,
			Source:             req.Source,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toFactResponse(f))
	}
}

// listFactsHandler godoc
// @Summary Listar observaciones de un perro
// @Description Lista las observaciones de salud del perro. Permite filtrar por categorías, estados y texto libre.
// @Tags facts
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param dogID path string true "ID del perro"
// @Param limit query int false "Máximo de observaciones (1-200). Por defecto 50"
// @Param categories query string false "Lista CSV de categorías (ej: symptom,digestive)"
// @Param statuses query string false "Lista CSV de estados (ej: active,monitoring)"
// @Param q query string false "Texto de búsqueda libre en fact/notes"
// @Success 200 {array} factResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "dog not found"
// @Router /dogs/{dogID}/facts [get]
func listFactsHandler(svc *Service, dogsSvc *dogs.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, dogID, ok := authorizeOwner(w, r, dogsSvc)
		if !ok {
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByDog(r.Context(), dogID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]factResponse, 0, len(items))
		for _, f := range items {
			out = append(out, toFactResponse(f))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// updateFactHandler godoc
// @Summary Actualizar estado/notas de una observación
// @Description Solo status y notes son mutables. Las observaciones nunca se borran.
// @Tags facts
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param dogID path string true "ID del perro"
// @Param factID path string true "ID de la observación"
// @Param payload body updateFactRequest true "Campos a modificar"
// @Success 200 {object} factResponse
// @Failure 400 {string} string "invalid json / status inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "fact not found"
// @Router /dogs/{dogID}/facts/{factID} [patch]
func updateFactHandler(svc *Service, dogsSvc *dogs.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, dogID, ok := authorizeOwner(w, r, dogsSvc)
		if !ok {
			return
		}

		factID := chi.URLParam(r, "factID")
		current, err := svc.GetByID(r.Context(), factID)
		if err != nil || current.DogID != dogID {
			http.Error(w, "fact not found", http.StatusNotFound)
			return
		}

		var req updateFactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.Update(r.Context(), factID, UpdateInput{
			Status: req.Status,
			Notes:  req.Notes,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toFactResponse(updated))
	}
}

// authorizeOwner valida claims + ownership del perro. Escribe la respuesta
// de error si corresponde y devuelve ok=false.
func authorizeOwner(w http.ResponseWriter, r *http.Request, dogsSvc *dogs.Service) (userID, dogID string, ok bool) {
	claims, has := middleware.GetClaims(r.Context())
	if !has || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	dogID = chi.URLParam(r, "dogID")
	owner, err := dogsSvc.OwnerOf(r.Context(), dogID)
	if err != nil {
		http.Error(w, "dog not found", http.StatusNotFound)
		return "", "", false
	}
	if owner != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", "", false
	}

	return claims.UserID, dogID, true
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	filter := ListFilter{}

	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 200 {
			return ListFilter{}, errors.New("limit must be 1-200")
		}
		filter.Limit = n
	}

	if v := strings.TrimSpace(q.Get("categories")); v != "" {
		for _, c := range strings.Split(v, ",") {
			c = strings.TrimSpace(c)
			if c != "" {
				filter.Categories = append(filter.Categories, Category(c))
			}
		}
	}

	if v := strings.TrimSpace(q.Get("statuses")); v != "" {
		for _, st := range strings.Split(v, ",") {
			st = strings.TrimSpace(st)
			if st != "" {
				filter.Statuses = append(filter.Statuses, Status(st))
			}
		}
	}

	filter.Query = strings.TrimSpace(q.Get("q"))

	return filter, nil
}

func toFactResponse(f PetFact) factResponse {
	return factResponse{
		ID:                 f.ID,
		DogID:              f.DogID,
		Fact:               f.Fact,
		Category:           f.Category,
		Tags:               f.Tags,
		Severity:           f.Severity,
		Status:             f.Status,
		OccurredAt:         f.OccurredAt,
		CreatedAt:          f.CreatedAt,
		ResolvedAt:         f.ResolvedAt,
		Notes:              f.Notes,
		PossibleConditions: f.PossibleConditions,
		RecommendedActions: f.RecommendedActions,
		Pinned:             f.Pinned,
		Source:             f.Source,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
