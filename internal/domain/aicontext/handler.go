package aicontext

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"pet-ai-context/internal/domain/dogs"
	"pet-ai-context/internal/domain/facts"
	"pet-ai-context/internal/middleware"
	"pet-ai-context/internal/ports/entitlements"
	"pet-ai-context/internal/ports/llm"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, dogsSvc *dogs.Service, factsSvc *facts.Service, ent entitlements.Resolver, chat llm.Client) {
	r.Route("/dogs/{dogID}/ai", func(ar chi.Router) {
		ar.Post("/context", buildContextHandler(svc, dogsSvc, factsSvc, ent))
		ar.Post("/chat", chatHandler(svc, dogsSvc, factsSvc, ent, chat))
	})
}

type photoContextPayload struct {
	Summary            string   `json:"summary"`
	BodyArea           string   `json:"body_area"`
	Urgency            string   `json:"urgency"`
	PossibleConditions []string `json:"possible_conditions"`
}

type buildContextRequest struct {
	ConversationTags []string             `json:"conversation_tags"`
	PhotoContext     *photoContextPayload `json:"photo_context"`
}

type buildContextResponse struct {
	SystemPrompt    string   `json:"system_prompt"`
	ContextSections Sections `json:"context_sections"`
}

type chatRequest struct {
	Message          string               `json:"message"`
	ConversationTags []string             `json:"conversation_tags"`
	PhotoContext     *photoContextPayload `json:"photo_context"`
}

type chatResponse struct {
	Reply        string `json:"reply"`
	SystemPrompt string `json:"system_prompt"`
}

// buildContextHandler godoc
// @Summary Armar contexto de IA para un perro
// @Description Arma el system prompt (perfil + observaciones relevantes + foto + diagnósticos) respetando tiers de prioridad y presupuesto de palabras. Las secciones premium dependen del plan del usuario.
// @Tags ai
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param dogID path string true "ID del perro"
// @Param payload body buildContextRequest true "Tags de la conversación y contexto de foto (ambos opcionales)"
// @Success 200 {object} buildContextResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "dog not found"
// @Router /dogs/{dogID}/ai/context [post]
func buildContextHandler(svc *Service, dogsSvc *dogs.Service, factsSvc *facts.Service, ent entitlements.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req buildContextRequest
		in, ok := prepareBuild(w, r, dogsSvc, factsSvc, ent, func() (conversationTags []string, photo *photoContextPayload, ok bool) {
			if err := decodeOptionalBody(r, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return nil, nil, false
			}
			return req.ConversationTags, req.PhotoContext, true
		})
		if !ok {
			return
		}

		out := svc.Build(r.Context(), in)

		writeJSON(w, http.StatusOK, buildContextResponse{
			SystemPrompt:    out.SystemPrompt,
			ContextSections: out.Sections,
		})
	}
}

// chatHandler godoc
// @Summary Turno de chat con el asistente de IA
// @Description Arma el contexto igual que /context y envía el mensaje del usuario al backend generativo. Devuelve la respuesta y el prompt usado.
// @Tags ai
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param dogID path string true "ID del perro"
// @Param payload body chatRequest true "Mensaje del usuario; tags y foto opcionales"
// @Success 200 {object} chatResponse
// @Failure 400 {string} string "invalid json / message requerido"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "dog not found"
// @Failure 502 {string} string "ai backend error"
// @Router /dogs/{dogID}/ai/chat [post]
func chatHandler(svc *Service, dogsSvc *dogs.Service, factsSvc *facts.Service, ent entitlements.Resolver, chat llm.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		in, ok := prepareBuild(w, r, dogsSvc, factsSvc, ent, func() (conversationTags []string, photo *photoContextPayload, ok bool) {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return nil, nil, false
			}
			return req.ConversationTags, req.PhotoContext, true
		})
		if !ok {
			return
		}

		if strings.TrimSpace(req.Message) == "" {
			http.Error(w, "message required", http.StatusBadRequest)
			return
		}
		if chat == nil {
			http.Error(w, "ai backend not configured", http.StatusBadGateway)
			return
		}

		out := svc.Build(r.Context(), in)

		reply, err := chat.Chat(r.Context(), []llm.Message{
			{Role: "system", Content: out.SystemPrompt},
			{Role: "user", Content: req.Message},
		})
		if err != nil {
			http.Error(w, "ai backend error", http.StatusBadGateway)
			return
		}

		writeJSON(w, http.StatusOK, chatResponse{
			Reply:        reply,
			SystemPrompt: out.SystemPrompt,
		})
	}
}

// prepareBuild concentra lo común de los dos endpoints: auth + ownership,
// decode del body, carga de perfil y observaciones, y resolución de
// entitlement (una sola vez por request; si el resolver falla se degrada
// a free tier en vez de cortar).
func prepareBuild(
	w http.ResponseWriter,
	r *http.Request,
	dogsSvc *dogs.Service,
	factsSvc *facts.Service,
	ent entitlements.Resolver,
	decode func() (conversationTags []string, photo *photoContextPayload, ok bool),
) (BuildInput, bool) {
	claims, has := middleware.GetClaims(r.Context())
	if !has || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return BuildInput{}, false
	}

	dogID := chi.URLParam(r, "dogID")
	d, err := dogsSvc.GetByID(r.Context(), dogID)
	if err != nil {
		http.Error(w, "dog not found", http.StatusNotFound)
		return BuildInput{}, false
	}
	if d.OwnerUserID != claims.UserID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return BuildInput{}, false
	}

	tags, photo, ok := decode()
	if !ok {
		return BuildInput{}, false
	}

	list, err := factsSvc.ListByDog(r.Context(), dogID, facts.ListFilter{Limit: 200})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return BuildInput{}, false
	}

	premium := false
	if ent != nil {
		if ok, err := ent.IsPremium(r.Context(), claims.UserID); err == nil {
			premium = ok
		}
	}

	in := BuildInput{
		Dog:              &d,
		Facts:            list,
		Premium:          premium,
		ConversationTags: tags,
	}
	if photo != nil {
		in.Photo = &PhotoContext{
			Summary:            photo.Summary,
			BodyArea:           photo.BodyArea,
			Urgency:            photo.Urgency,
			PossibleConditions: photo.PossibleConditions,
		}
	}

	return in, true
}

// decodeOptionalBody tolera body vacío (POST /context sin payload es válido).
func decodeOptionalBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
