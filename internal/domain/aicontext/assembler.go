package aicontext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pet-ai-context/internal/domain/diagnostics"
	"pet-ai-context/internal/domain/dogs"
	"pet-ai-context/internal/domain/facts"
)

// Presupuesto aproximado del prompt, medido en palabras (separadas por
// whitespace). Si el total lo excede, se recortan tiers completos en
// orden estricto P3 -> P2 -> P1. P0 no se recorta nunca.
const wordBudget = 2000

// Límites de la sub-sección de diagnósticos recientes.
const (
	diagnosticsWindowDays = 30
	maxXRayItems          = 3
	maxBloodWorkItems     = 3
	maxLabItems           = 2
)

const maxTopFacts = 10

// DiagnosticsSource expone los estudios recientes de un perro.
// Lo implementa diagnostics.Service; el armado lo trata como lectura
// sincrónica sin side effects.
type DiagnosticsSource interface {
	ListRecent(ctx context.Context, dogID string, since time.Time) ([]diagnostics.Record, error)
}

// Service arma el system prompt para el backend generativo.
// Computación pura salvo la lectura de diagnósticos: misma entrada
// (y mismo reloj) => mismo prompt, byte a byte.
type Service struct {
	diags DiagnosticsSource // puede ser nil
	now   func() time.Time
}

func NewService(diags DiagnosticsSource) *Service {
	return &Service{
		diags: diags,
		now:   time.Now,
	}
}

// Build produce el prompt y el desglose por tier. No devuelve error:
// ante datos ausentes degrada secciones a vacío y sigue.
func (s *Service) Build(ctx context.Context, in BuildInput) BuildResult {
	now := s.now()

	sec := Sections{
		P0: []string{},
		P1: []string{},
		P2: []string{},
		P3: []string{},
	}

	// P0: identidad y fundamentos. Siempre llega al modelo.
	sec.P0 = append(sec.P0, BasePrompt(in.Dog, now))
	appendIf(&sec.P0, profileLine(in.Dog))
	appendIf(&sec.P0, allergyLine(in.Dog))
	if in.Premium {
		appendIf(&sec.P0, medicationsLine(in.Dog))
		appendIf(&sec.P0, conditionsLine(in.Dog))
	}

	// P1: detalle situacional.
	top := facts.TopFactsAt(now, in.Facts, in.ConversationTags, maxTopFacts)
	appendIf(&sec.P1, factsBlock(top, in.Premium))
	appendIf(&sec.P1, photoBlock(in.Photo))
	if in.Premium {
		appendIf(&sec.P1, s.diagnosticsBlock(ctx, in.Dog, now))
	}

	// P2: análisis de patrones/riesgos (solo premium).
	if in.Premium {
		appendIf(&sec.P2, breedRiskNote(in.Dog))
		appendIf(&sec.P2, symptomPatternNote(in.Facts))
	}

	// P3: contexto de hogar multi-mascota. Reservado; hoy siempre vacío.

	trimmed := trimToBudget(sec)

	return BuildResult{
		SystemPrompt: joinSections(trimmed),
		Sections:     trimmed,
	}
}

func appendIf(bucket *[]string, section string) {
	if section != "" {
		*bucket = append(*bucket, section)
	}
}

// ---- builders de sección ----

func profileLine(d *dogs.Dog) string {
	if d == nil || strings.TrimSpace(d.Name) == "" {
		return ""
	}

	parts := []string{}
	if strings.TrimSpace(d.Breed) != "" {
		parts = append(parts, d.Breed)
	}
	if d.Sex != "" && d.Sex != dogs.SexUnknown {
		parts = append(parts, string(d.Sex))
	}
	if d.Weight > 0 {
		unit := d.WeightUnit
		if unit == "" {
			unit = "kg"
		}
		parts = append(parts, fmt.Sprintf("%.1f %s", d.Weight, unit))
	}

	if len(parts) == 0 {
		return "Patient: " + d.Name
	}
	return fmt.Sprintf("Patient: %s (%s)", d.Name, strings.Join(parts, ", "))
}

func allergyLine(d *dogs.Dog) string {
	if d == nil || len(d.Allergies) == 0 {
		return ""
	}
	return "ALLERGIES (critical): " + strings.Join(d.Allergies, ", ")
}

func medicationsLine(d *dogs.Dog) string {
	if d == nil || len(d.Medications) == 0 {
		return ""
	}

	items := make([]string, 0, len(d.Medications))
	for _, m := range d.Medications {
		dosage := m.Dosage
		if dosage == "" {
			dosage = "dosage unknown"
		}
		items = append(items, fmt.Sprintf("%s (%s)", m.Name, dosage))
	}
	return "Current Medications: " + strings.Join(items, ", ")
}

func conditionsLine(d *dogs.Dog) string {
	if d == nil || len(d.Conditions) == 0 {
		return ""
	}
	return "Known Conditions: " + strings.Join(d.Conditions, ", ")
}

// factsBlock lista las observaciones más relevantes.
// Free tier: solo la descripción, sin severidad/categoría/tags.
func factsBlock(top []facts.ScoredFact, premium bool) string {
	if len(top) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Recent Health Facts:")
	for _, f := range top {
		if premium {
			b.WriteString(fmt.Sprintf(
				"\n- [%s] %s (%s, tags: %s)",
				f.Severity, f.Fact, f.Category, strings.Join(f.Tags, ", "),
			))
		} else {
			b.WriteString("\n- " + f.Fact)
		}
	}
	return b.String()
}

func photoBlock(p *PhotoContext) string {
	if p == nil {
		return ""
	}

	lines := []string{}
	if strings.TrimSpace(p.Summary) != "" {
		lines = append(lines, "Summary: "+p.Summary)
	}
	if strings.TrimSpace(p.BodyArea) != "" {
		lines = append(lines, "Body area: "+p.BodyArea)
	}
	if strings.TrimSpace(p.Urgency) != "" {
		lines = append(lines, "Urgency: "+p.Urgency)
	}
	if len(p.PossibleConditions) > 0 {
		lines = append(lines, "Possible conditions: "+strings.Join(p.PossibleConditions, ", "))
	}

	if len(lines) == 0 {
		return ""
	}
	return "Photo Analysis Context:\n" + strings.Join(lines, "\n")
}

// diagnosticsBlock resume estudios de los últimos 30 días.
// Tope por tipo: 3 radiografías, 3 análisis de sangre, 2 de laboratorio.
// Si la lectura falla, la sección simplemente se omite.
func (s *Service) diagnosticsBlock(ctx context.Context, d *dogs.Dog, now time.Time) string {
	if s.diags == nil || d == nil || strings.TrimSpace(d.ID) == "" {
		return ""
	}

	since := now.AddDate(0, 0, -diagnosticsWindowDays)
	recs, err := s.diags.ListRecent(ctx, d.ID, since)
	if err != nil || len(recs) == 0 {
		return ""
	}

	var xray, blood, lab int
	lines := []string{}
	for _, rec := range recs {
		switch rec.Kind {
		case diagnostics.KindXRay:
			if xray >= maxXRayItems {
				continue
			}
			xray++
		case diagnostics.KindBloodWork:
			if blood >= maxBloodWorkItems {
				continue
			}
			blood++
		default:
			if lab >= maxLabItems {
				continue
			}
			lab++
		}

		lines = append(lines, fmt.Sprintf(
			"- [%s %s] %s",
			kindLabel(rec.Kind), rec.PerformedAt.Format("2006-01-02"), rec.Assessment,
		))
	}

	if len(lines) == 0 {
		return ""
	}
	return "Recent Diagnostics:\n" + strings.Join(lines, "\n")
}

func kindLabel(k diagnostics.Kind) string {
	switch k {
	case diagnostics.KindXRay:
		return "X-ray"
	case diagnostics.KindBloodWork:
		return "Blood work"
	default:
		return "Lab"
	}
}

func breedRiskNote(d *dogs.Dog) string {
	if d == nil || strings.TrimSpace(d.Breed) == "" {
		return ""
	}
	return fmt.Sprintf(
		"Breed context: %s — factor in breed-typical predispositions when assessing symptoms.",
		d.Breed,
	)
}

// symptomPatternNote reporta tags que se repiten (>= 2 veces) a lo largo
// de TODAS las observaciones, agrupando case-insensitive. El orden es el
// de primera aparición, para que el prompt sea determinista.
func symptomPatternNote(list []facts.PetFact) string {
	counts := map[string]int{}
	order := []string{}

	for _, f := range list {
		for _, t := range f.Tags {
			key := strings.ToLower(strings.TrimSpace(t))
			if key == "" {
				continue
			}
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	parts := []string{}
	for _, key := range order {
		if counts[key] >= 2 {
			parts = append(parts, fmt.Sprintf("%s (%dx)", key, counts[key]))
		}
	}

	if len(parts) == 0 {
		return ""
	}
	return "Recurring symptom patterns: " + strings.Join(parts, ", ")
}

// ---- presupuesto ----

// trimToBudget recorta tiers enteros, de menor a mayor prioridad,
// hasta que el total quepa. P0 sobrevive siempre, incluso si por sí
// solo excede el presupuesto.
func trimToBudget(sec Sections) Sections {
	if totalWords(sec) <= wordBudget {
		return sec
	}

	sec.P3 = []string{}
	if totalWords(sec) <= wordBudget {
		return sec
	}

	sec.P2 = []string{}
	if totalWords(sec) <= wordBudget {
		return sec
	}

	sec.P1 = []string{}
	return sec
}

func totalWords(sec Sections) int {
	n := 0
	for _, bucket := range [][]string{sec.P0, sec.P1, sec.P2, sec.P3} {
		for _, s := range bucket {
			n += len(strings.Fields(s))
		}
	}
	return n
}

func joinSections(sec Sections) string {
	all := []string{}
	all = append(all, sec.P0...)
	all = append(all, sec.P1...)
	all = append(all, sec.P2...)
	all = append(all, sec.P3...)
	return strings.Join(all, "\n\n")
}
