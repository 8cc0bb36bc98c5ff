package facts

import (
	"sort"
	"strings"
	"time"
)

// Pesos del score de relevancia. Los tres ejes no interactúan:
// el total es la suma simple (máximo 100).
const (
	recencyMaxPoints  = 40.0
	recencyWindowDays = 90.0

	severityPointsSevere   = 30.0
	severityPointsModerate = 20.0
	severityPointsMild     = 10.0

	tagMatchPoints    = 10.0
	tagMatchMaxPoints = 30.0
)

// Scorer asigna relevancia a observaciones de salud frente a los tags
// de la conversación actual. Sin side effects: no muta la entrada y
// lee el reloj una sola vez por llamada.
type Scorer struct {
	now func() time.Time
}

func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// ScoreFacts devuelve una lista nueva con cada observación más su score,
// ordenada descendente por score. El orden relativo original se preserva
// en empates (sort estable). Entrada nil o vacía => lista vacía, nunca panic.
func (s *Scorer) ScoreFacts(list []PetFact, conversationTags []string) []ScoredFact {
	return ScoreFactsAt(s.now(), list, conversationTags)
}

// TopFacts es ScoreFacts truncado a limit entradas (default 10 si limit <= 0).
func (s *Scorer) TopFacts(list []PetFact, conversationTags []string, limit int) []ScoredFact {
	return TopFactsAt(s.now(), list, conversationTags, limit)
}

// ScoreFactsAt es la variante con reloj explícito.
// El assembler la usa para que un mismo "now" gobierne todo el armado.
func ScoreFactsAt(now time.Time, list []PetFact, conversationTags []string) []ScoredFact {
	out := make([]ScoredFact, 0, len(list))
	for _, f := range list {
		out = append(out, ScoredFact{
			PetFact:        f,
			RelevanceScore: relevanceScore(now, f, conversationTags),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})

	return out
}

func TopFactsAt(now time.Time, list []PetFact, conversationTags []string, limit int) []ScoredFact {
	if limit <= 0 {
		limit = 10
	}

	scored := ScoreFactsAt(now, list, conversationTags)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func relevanceScore(now time.Time, f PetFact, conversationTags []string) float64 {
	return recencyPoints(now, f) + severityPoints(f.Severity) + tagMatchScore(f.Tags, conversationTags)
}

// recencyPoints: decaimiento lineal sobre 90 días.
// days=0 => 40 puntos; days>=90 => 0. Sin fecha => decaimiento máximo.
func recencyPoints(now time.Time, f PetFact) float64 {
	ts := f.OccurredAt
	if ts.IsZero() {
		ts = f.CreatedAt
	}
	if ts.IsZero() {
		return 0
	}

	days := now.Sub(ts).Hours() / 24
	if days < 0 {
		days = 0
	}

	factor := 1 - days/recencyWindowDays
	if factor < 0 {
		factor = 0
	}
	return factor * recencyMaxPoints
}

func severityPoints(sev Severity) float64 {
	switch sev {
	case SeveritySevere:
		return severityPointsSevere
	case SeverityModerate:
		return severityPointsModerate
	case SeverityMild:
		return severityPointsMild
	default:
		return 0
	}
}

// tagMatchScore: intersección case-insensitive, 10 puntos por match, tope 30.
// Los tags repetidos dentro de una misma observación cuentan cada uno
// (comportamiento heredado del producto, fijado por test).
func tagMatchScore(factTags, conversationTags []string) float64 {
	if len(factTags) == 0 || len(conversationTags) == 0 {
		return 0
	}

	wanted := make(map[string]struct{}, len(conversationTags))
	for _, t := range conversationTags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		wanted[t] = struct{}{}
	}

	score := 0.0
	for _, t := range factTags {
		if _, ok := wanted[strings.ToLower(strings.TrimSpace(t))]; ok {
			score += tagMatchPoints
		}
	}

	if score > tagMatchMaxPoints {
		score = tagMatchMaxPoints
	}
	return score
}
