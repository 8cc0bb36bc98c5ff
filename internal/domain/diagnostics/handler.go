package diagnostics

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-ai-context/internal/domain/dogs"
	"pet-ai-context/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, dogsSvc *dogs.Service) {
	r.Route("/dogs/{dogID}/diagnostics", func(dr chi.Router) {
		dr.Post("/", createDiagnosticHandler(svc, dogsSvc))
		dr.Get("/", listDiagnosticsHandler(svc, dogsSvc))
	})
}

type createDiagnosticRequest struct {
	Kind        Kind     `json:"kind" enums:"xray,blood_work,lab"`
	Assessment  string   `json:"assessment"`
	Findings    []string `json:"findings"`
	PerformedAt string   `json:"performed_at"` // RFC3339
}

type diagnosticResponse struct {
	ID          string    `json:"id"`
	DogID       string    `json:"dog_id"`
	Kind        Kind      `json:"kind"`
	Assessment  string    `json:"assessment"`
	Findings    []string  `json:"findings,omitempty"`
	PerformedAt time.Time `json:"performed_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// createDiagnosticHandler godoc
// @Summary Registrar estudio diagnóstico
// @Description Registra un estudio (radiografía, análisis de sangre o laboratorio) para el perro. Solo el dueño.
// @Tags diagnostics
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param dogID path string true "ID del perro"
// @Param payload body createDiagnosticRequest true "Estudio; performed_at en RFC3339"
// @Success 201 {object} diagnosticResponse
// @Failure 400 {string} string "invalid json / performed_at inválido / kind inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "dog not found"
// @Router /dogs/{dogID}/diagnostics [post]
func createDiagnosticHandler(svc *Service, dogsSvc *dogs.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dogID, ok := authorizeOwner(w, r, dogsSvc)
		if !ok {
			return
		}

		var req createDiagnosticRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := time.Parse(time.RFC3339, req.PerformedAt)
		if err != nil {
			http.Error(w, "performed_at must be RFC3339", http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), dogID, CreateInput{
			Kind:        req.Kind,
			Assessment:  req.Assessment,
			Findings:    req.Findings,
			PerformedAt: t,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toDiagnosticResponse(rec))
	}
}

// listDiagnosticsHandler godoc
// @Summary Listar estudios recientes de un perro
// @Description Lista los estudios de los últimos N días (default 30).
// @Tags diagnostics
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param dogID path string true "ID del perro"
// @Param days query int false "Ventana hacia atrás en días (default 30)"
// @Success 200 {array} diagnosticResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "dog not found"
// @Router /dogs/{dogID}/diagnostics [get]
func listDiagnosticsHandler(svc *Service, dogsSvc *dogs.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dogID, ok := authorizeOwner(w, r, dogsSvc)
		if !ok {
			return
		}

		days := 30
		if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				days = n
			}
		}

		since := time.Now().AddDate(0, 0, -days)
		items, err := svc.ListRecent(r.Context(), dogID, since)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]diagnosticResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toDiagnosticResponse(rec))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func authorizeOwner(w http.ResponseWriter, r *http.Request, dogsSvc *dogs.Service) (dogID string, ok bool) {
	claims, has := middleware.GetClaims(r.Context())
	if !has || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}

	dogID = chi.URLParam(r, "dogID")
	owner, err := dogsSvc.OwnerOf(r.Context(), dogID)
	if err != nil {
		http.Error(w, "dog not found", http.StatusNotFound)
		return "", false
	}
	if owner != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return "", false
	}

	return dogID, true
}

func toDiagnosticResponse(rec Record) diagnosticResponse {
	return diagnosticResponse{
		ID:          rec.ID,
		DogID:       rec.DogID,
		Kind:        rec.Kind,
		Assessment:  rec.Assessment,
		Findings:    rec.Findings,
		PerformedAt: rec.PerformedAt,
		CreatedAt:   rec.CreatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
