package dogs

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-ai-context/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dogs", func(dr chi.Router) {
		dr.Post("/", createDogHandler(svc))
		dr.Get("/", listDogsHandler(svc))
		dr.Get("/{dogID}", getDogHandler(svc))
		dr.Patch("/{dogID}", updateDogHandler(svc))
	})
}

type medicationPayload struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
}

type createDogRequest struct {
	Name        string              `json:"name"`
	Breed       string              `json:"breed"`
	Sex         string              `json:"sex" enums:"male,female,unknown"`
	BirthDate   string              `json:"birth_date"` // YYYY-MM-DD opcional
	Weight      float64             `json:"weight"`
	WeightUnit  string              `json:"weight_unit"`
	Allergies   []string            `json:"allergies"`
	Medications []medicationPayload `json:"medications"`
	Conditions  []string            `json:"conditions"`
}

type updateDogRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string              `json:"name"`
	Breed       *string              `json:"breed"`
	Sex         *string              `json:"sex"`
	Weight      *float64             `json:"weight"`
	WeightUnit  *string              `json:"weight_unit"`
	Allergies   *[]string            `json:"allergies"`
	Medications *[]medicationPayload `json:"medications"`
	Conditions  *[]string            `json:"conditions"`
}

type dogResponse struct {
	ID          string              `json:"id"`
	OwnerUserID string              `json:"owner_user_id"`
	Name        string              `json:"name"`
	Breed       string              `json:"breed"`
	Sex         Sex                 `json:"sex"`
	BirthDate   *time.Time          `json:"birth_date,omitempty"`
	Weight      float64             `json:"weight,omitempty"`
	WeightUnit  string              `json:"weight_unit,omitempty"`
	Allergies   []string            `json:"allergies"`
	Medications []medicationPayload `json:"medications"`
	Conditions  []string            `json:"conditions"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// createDogHandler godoc
// @Summary Registrar un perro
// @Description Crea el perfil clínico de un perro para el usuario autenticado. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags dogs
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body createDogRequest true "Datos del perfil; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} dogResponse
// @Failure 400 {string} string "invalid json / birth_date inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /dogs [post]
func createDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createDogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		d, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Sex:         req.Sex,
			BirthDate:   bd,
			Weight:      req.Weight,
			WeightUnit:  req.WeightUnit,
			Allergies:   req.Allergies,
			Medications: toMedications(req.Medications),
			Conditions:  req.Conditions,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toDogResponse(d))
	}
}

// listDogsHandler godoc
// @Summary Listar mis perros
// @Tags dogs
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} dogResponse
// @Failure 401 {string} string "unauthorized"
// @Router /dogs [get]
func listDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getDogHandler godoc
// @Summary Ver perfil de un perro
// @Tags dogs
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param dogID path string true "ID del perro"
// @Success 200 {object} dogResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "dog not found"
// @Router /dogs/{dogID} [get]
func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dogID := chi.URLParam(r, "dogID")
		d, err := svc.GetByID(r.Context(), dogID)
		if err != nil {
			http.Error(w, "dog not found", http.StatusNotFound)
			return
		}

		if d.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, toDogResponse(d))
	}
}

// updateDogHandler godoc
// @Summary Actualizar perfil de un perro
// @Tags dogs
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param dogID path string true "ID del perro"
// @Param payload body updateDogRequest true "Campos a modificar (PATCH parcial)"
// @Success 200 {object} dogResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "dog not found"
// @Router /dogs/{dogID} [patch]
func updateDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dogID := chi.URLParam(r, "dogID")
		current, err := svc.GetByID(r.Context(), dogID)
		if err != nil {
			http.Error(w, "dog not found", http.StatusNotFound)
			return
		}
		if current.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateDogRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var meds *[]Medication
		if req.Medications != nil {
			m := toMedications(*req.Medications)
			meds = &m
		}

		updated, err := svc.Update(r.Context(), dogID, UpdateInput{
			Name:        req.Name,
			Breed:       req.Breed,
			Sex:         req.Sex,
			Weight:      req.Weight,
			WeightUnit:  req.WeightUnit,
			Allergies:   req.Allergies,
			Medications: meds,
			Conditions:  req.Conditions,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "dog not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toDogResponse(updated))
	}
}

func toMedications(in []medicationPayload) []Medication {
	out := make([]Medication, 0, len(in))
	for _, m := range in {
		out = append(out, Medication{Name: m.Name, Dosage: m.Dosage})
	}
	return out
}

func toDogResponse(d Dog) dogResponse {
	meds := make([]medicationPayload, 0, len(d.Medications))
	for _, m := range d.Medications {
		meds = append(meds, medicationPayload{Name: m.Name, Dosage: m.Dosage})
	}

	return dogResponse{
		ID:          d.ID,
		OwnerUserID: d.OwnerUserID,
		Name:        d.Name,
		Breed:       d.Breed,
		Sex:         d.Sex,
		BirthDate:   d.BirthDate,
		Weight:      d.Weight,
		WeightUnit:  d.WeightUnit,
		Allergies:   d.Allergies,
		Medications: meds,
		Conditions:  d.Conditions,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
