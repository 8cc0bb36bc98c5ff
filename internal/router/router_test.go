package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-ai-context/internal/ports/llm"
)

// stubs para no depender de servicios externos en los tests e2e

type stubEntitlements struct {
	premium map[string]bool
}

func (s *stubEntitlements) IsPremium(_ context.Context, userID string) (bool, error) {
	return s.premium[userID], nil
}

type stubChat struct {
	lastMessages []llm.Message
	reply        string
}

func (s *stubChat) Chat(_ context.Context, messages []llm.Message) (string, error) {
	s.lastMessages = messages
	return s.reply, nil
}

func newTestServer(t *testing.T, chat llm.Client) *httptest.Server {
	t.Helper()
	h := NewRouter(Options{
		Entitlements: &stubEntitlements{premium: map[string]bool{"owner-premium": true}},
		Chat:         chat,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, userID string, body any) (*http.Response, []byte) {
	t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func createDog(t *testing.T, srv *httptest.Server, userID string) string {
	t.Helper()

	resp, raw := doJSON(t, srv, http.MethodPost, "/dogs", userID, map[string]any{
		"name":        "Buddy",
		"breed":       "Golden Retriever",
		"sex":         "male",
		"allergies":   []string{"chicken"},
		"medications": []map[string]string{{"name": "Apoquel", "dosage": "16mg daily"}},
		"conditions":  []string{"hip dysplasia"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create dog: status %d body %s", resp.StatusCode, raw)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode dog: %v", err)
	}
	return out.ID
}

func addFact(t *testing.T, srv *httptest.Server, userID, dogID string, body map[string]any) {
	t.Helper()
	resp, raw := doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/facts", userID, body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create fact: status %d body %s", resp.StatusCode, raw)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, raw := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(raw)) != "ok" {
		t.Fatalf("health: status %d body %q", resp.StatusCode, raw)
	}
}

func TestDogsCRUD(t *testing.T) {
	srv := newTestServer(t, nil)

	// Sin auth => 401
	resp, _ := doJSON(t, srv, http.MethodGet, "/dogs", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", resp.StatusCode)
	}

	dogID := createDog(t, srv, "owner-1")

	resp, raw := doJSON(t, srv, http.MethodGet, "/dogs/"+dogID, "owner-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get dog: status %d body %s", resp.StatusCode, raw)
	}

	// Otro usuario no puede verlo
	resp, _ = doJSON(t, srv, http.MethodGet, "/dogs/"+dogID, "intruder", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", resp.StatusCode)
	}

	// PATCH parcial
	resp, raw = doJSON(t, srv, http.MethodPatch, "/dogs/"+dogID, "owner-1", map[string]any{
		"weight":      31.5,
		"weight_unit": "kg",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("patch dog: status %d body %s", resp.StatusCode, raw)
	}
	var patched struct {
		Name   string  `json:"name"`
		Weight float64 `json:"weight"`
	}
	if err := json.Unmarshal(raw, &patched); err != nil {
		t.Fatalf("decode patched dog: %v", err)
	}
	if patched.Name != "Buddy" || patched.Weight != 31.5 {
		t.Fatalf("partial patch must only touch sent fields: %+v", patched)
	}
}

func TestBuildContext_PremiumOwner(t *testing.T) {
	srv := newTestServer(t, nil)

	dogID := createDog(t, srv, "owner-premium")
	addFact(t, srv, "owner-premium", dogID, map[string]any{
		"fact":     "limping on left hind leg",
		"category": "symptom",
		"tags":     []string{"limping"},
		"severity": "moderate",
	})

	resp, raw := doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/ai/context", "owner-premium", map[string]any{
		"conversation_tags": []string{"limping"},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("build context: status %d body %s", resp.StatusCode, raw)
	}

	var out struct {
		SystemPrompt    string `json:"system_prompt"`
		ContextSections struct {
			P0 []string `json:"p0"`
			P1 []string `json:"p1"`
		} `json:"context_sections"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode context: %v", err)
	}

	for _, want := range []string{
		"Buddy",
		"ALLERGIES (critical): chicken",
		"Current Medications: Apoquel (16mg daily)",
		"- [moderate] limping on left hind leg (symptom, tags: limping)",
	} {
		if !strings.Contains(out.SystemPrompt, want) {
			t.Fatalf("premium prompt missing %q\n---\n%s", want, out.SystemPrompt)
		}
	}
	if len(out.ContextSections.P0) == 0 || len(out.ContextSections.P1) == 0 {
		t.Fatalf("expected populated p0 and p1 sections")
	}
}

func TestBuildContext_FreeOwner(t *testing.T) {
	srv := newTestServer(t, nil)

	dogID := createDog(t, srv, "owner-free")
	addFact(t, srv, "owner-free", dogID, map[string]any{
		"fact":     "limping on left hind leg",
		"category": "symptom",
		"severity": "moderate",
	})

	// Body vacío es válido para /context
	resp, raw := doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/ai/context", "owner-free", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("build context: status %d body %s", resp.StatusCode, raw)
	}

	var out struct {
		SystemPrompt string `json:"system_prompt"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode context: %v", err)
	}

	if strings.Contains(out.SystemPrompt, "Apoquel") || strings.Contains(out.SystemPrompt, "[moderate]") {
		t.Fatalf("free tier prompt leaks premium detail\n---\n%s", out.SystemPrompt)
	}
	if !strings.Contains(out.SystemPrompt, "- limping on left hind leg") {
		t.Fatalf("free tier must still carry the plain fact\n---\n%s", out.SystemPrompt)
	}
}

func TestBuildContext_Authorization(t *testing.T) {
	srv := newTestServer(t, nil)

	dogID := createDog(t, srv, "owner-premium")

	resp, _ := doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/ai/context", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/ai/context", "intruder", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, srv, http.MethodPost, "/dogs/missing/ai/context", "owner-premium", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown dog, got %d", resp.StatusCode)
	}
}

func TestChat_UsesAssembledPrompt(t *testing.T) {
	chat := &stubChat{reply: "That limp could be a sprain; rest Buddy for a couple of days."}
	srv := newTestServer(t, chat)

	dogID := createDog(t, srv, "owner-premium")

	resp, raw := doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/ai/chat", "owner-premium", map[string]any{
		"message": "Why is my dog limping?",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat: status %d body %s", resp.StatusCode, raw)
	}

	var out struct {
		Reply        string `json:"reply"`
		SystemPrompt string `json:"system_prompt"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode chat: %v", err)
	}
	if out.Reply != chat.reply {
		t.Fatalf("reply must come from the chat backend, got %q", out.Reply)
	}

	if len(chat.lastMessages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(chat.lastMessages))
	}
	if chat.lastMessages[0].Role != "system" || !strings.Contains(chat.lastMessages[0].Content, "Buddy") {
		t.Fatalf("system message must carry the assembled context")
	}
	if chat.lastMessages[1].Role != "user" || chat.lastMessages[1].Content != "Why is my dog limping?" {
		t.Fatalf("user message must carry the raw question")
	}
}

func TestChat_Validation(t *testing.T) {
	srv := newTestServer(t, &stubChat{reply: "ok"})

	dogID := createDog(t, srv, "owner-premium")

	// message requerido
	resp, _ := doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/ai/chat", "owner-premium", map[string]any{
		"message": "   ",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank message, got %d", resp.StatusCode)
	}
}

func TestChat_NoBackendConfigured(t *testing.T) {
	srv := newTestServer(t, nil)

	dogID := createDog(t, srv, "owner-premium")

	resp, _ := doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/ai/chat", "owner-premium", map[string]any{
		"message": "hello",
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 without chat backend, got %d", resp.StatusCode)
	}
}

func TestDiagnosticsOverHTTP(t *testing.T) {
	srv := newTestServer(t, nil)

	dogID := createDog(t, srv, "owner-premium")

	// Relativo al reloj real: el armado de contexto usa time.Now
	performed := time.Now().UTC().AddDate(0, 0, -2)

	resp, raw := doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/diagnostics", "owner-premium", map[string]any{
		"kind":         "xray",
		"assessment":   "mild joint narrowing",
		"findings":     []string{"left hip"},
		"performed_at": performed.Format(time.RFC3339),
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create diagnostic: status %d body %s", resp.StatusCode, raw)
	}

	resp, raw = doJSON(t, srv, http.MethodGet, "/dogs/"+dogID+"/diagnostics", "owner-premium", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list diagnostics: status %d body %s", resp.StatusCode, raw)
	}
	var list []struct {
		Kind       string `json:"kind"`
		Assessment string `json:"assessment"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("decode diagnostics: %v", err)
	}
	if len(list) != 1 || list[0].Kind != "xray" || list[0].Assessment != "mild joint narrowing" {
		t.Fatalf("unexpected diagnostics list: %+v", list)
	}

	// El estudio reciente entra al contexto premium
	resp, raw = doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/ai/context", "owner-premium", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("build context: status %d body %s", resp.StatusCode, raw)
	}
	var out struct {
		SystemPrompt string `json:"system_prompt"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode context: %v", err)
	}
	wantLine := "[X-ray " + performed.Format("2006-01-02") + "] mild joint narrowing"
	if !strings.Contains(out.SystemPrompt, "Recent Diagnostics:") ||
		!strings.Contains(out.SystemPrompt, wantLine) {
		t.Fatalf("diagnostics missing from premium context\n---\n%s", out.SystemPrompt)
	}
}

func TestFactLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t, nil)

	dogID := createDog(t, srv, "owner-1")

	resp, raw := doJSON(t, srv, http.MethodPost, "/dogs/"+dogID+"/facts", "owner-1", map[string]any{
		"fact": "vomiting after meals",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create fact: status %d body %s", resp.StatusCode, raw)
	}
	var created struct {
		ID       string `json:"id"`
		Severity string `json:"severity"`
		Status   string `json:"status"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode fact: %v", err)
	}
	if created.Severity != "mild" || created.Status != "active" {
		t.Fatalf("defaults not applied over HTTP: %+v", created)
	}

	resp, raw = doJSON(t, srv, http.MethodPatch, "/dogs/"+dogID+"/facts/"+created.ID, "owner-1", map[string]any{
		"status": "resolved",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update fact: status %d body %s", resp.StatusCode, raw)
	}
	var updated struct {
		Status     string  `json:"status"`
		ResolvedAt *string `json:"resolved_at"`
	}
	if err := json.Unmarshal(raw, &updated); err != nil {
		t.Fatalf("decode updated fact: %v", err)
	}
	if updated.Status != "resolved" || updated.ResolvedAt == nil {
		t.Fatalf("resolving over HTTP must seal resolved_at: %+v", updated)
	}
}
