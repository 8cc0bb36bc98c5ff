package facts

import (
	"testing"
	"time"
)

var scorerNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func factAt(daysAgo float64, sev Severity, tags ...string) PetFact {
	occurred := scorerNow.Add(-time.Duration(daysAgo * 24 * float64(time.Hour)))
	return PetFact{
		Fact:       "obs",
		Severity:   sev,
		Tags:       tags,
		OccurredAt: occurred,
		CreatedAt:  occurred,
	}
}

func TestScoreFacts_EmptyAndNil(t *testing.T) {
	if got := ScoreFactsAt(scorerNow, nil, nil); len(got) != 0 {
		t.Fatalf("expected empty result for nil input, got %d", len(got))
	}
	if got := ScoreFactsAt(scorerNow, []PetFact{}, []string{"limping"}); len(got) != 0 {
		t.Fatalf("expected empty result for empty input, got %d", len(got))
	}

	// La variante con reloj propio tampoco debe fallar
	s := NewScorer()
	if got := s.ScoreFacts(nil, nil); len(got) != 0 {
		t.Fatalf("expected empty result from scorer, got %d", len(got))
	}
}

func TestScoreFacts_RecencyMonotonicity(t *testing.T) {
	newer := factAt(5, SeverityMild)
	older := factAt(30, SeverityMild)

	got := ScoreFactsAt(scorerNow, []PetFact{older, newer}, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 scored facts, got %d", len(got))
	}

	if got[0].RelevanceScore <= got[1].RelevanceScore {
		t.Fatalf("newer fact must score strictly higher: %f vs %f",
			got[0].RelevanceScore, got[1].RelevanceScore)
	}
	if !got[0].OccurredAt.Equal(newer.OccurredAt) {
		t.Fatalf("newer fact must rank first")
	}
}

func TestScoreFacts_RecencyClampsAt90Days(t *testing.T) {
	at90 := factAt(90, SeverityMild)
	at180 := factAt(180, SeverityMild)

	got := ScoreFactsAt(scorerNow, []PetFact{at90, at180}, nil)
	if got[0].RelevanceScore != got[1].RelevanceScore {
		t.Fatalf("90 and 180 days must clamp to the same recency: %f vs %f",
			got[0].RelevanceScore, got[1].RelevanceScore)
	}
	// recency 0 + mild 10 + sin tags 0
	if got[0].RelevanceScore != 10 {
		t.Fatalf("expected score 10, got %f", got[0].RelevanceScore)
	}
}

func TestScoreFacts_SeverityOrdering(t *testing.T) {
	// misma fecha y sin tags: solo varía severidad
	severe := factAt(0, SeveritySevere)
	moderate := factAt(0, SeverityModerate)
	mild := factAt(0, SeverityMild)
	missing := factAt(0, "")

	got := ScoreFactsAt(scorerNow, []PetFact{missing, mild, moderate, severe}, nil)

	want := []float64{70, 60, 50, 40} // recency 40 + 30/20/10/0
	for i, w := range want {
		if got[i].RelevanceScore != w {
			t.Fatalf("position %d: expected score %f, got %f", i, w, got[i].RelevanceScore)
		}
	}
}

func TestScoreFacts_TagMatchSaturatesAt30(t *testing.T) {
	tags := []string{"a", "b", "c", "d", "e"}

	three := factAt(0, "", "a", "b", "c")
	five := factAt(0, "", "a", "b", "c", "d", "e")

	got := ScoreFactsAt(scorerNow, []PetFact{three, five}, tags)
	if got[0].RelevanceScore != got[1].RelevanceScore {
		t.Fatalf("5 matches must saturate like 3: %f vs %f",
			got[0].RelevanceScore, got[1].RelevanceScore)
	}
	if got[0].RelevanceScore != 70 { // recency 40 + tags 30
		t.Fatalf("expected score 70, got %f", got[0].RelevanceScore)
	}
}

func TestScoreFacts_TagMatchIsCaseInsensitive(t *testing.T) {
	f := factAt(0, "", "Limping")

	got := ScoreFactsAt(scorerNow, []PetFact{f}, []string{"LIMPING"})
	if got[0].RelevanceScore != 50 { // recency 40 + tag 10
		t.Fatalf("expected 50 with case-insensitive match, got %f", got[0].RelevanceScore)
	}
}

func TestScoreFacts_DuplicateTagsEachCount(t *testing.T) {
	// Comportamiento heredado: tags repetidos dentro de la misma
	// observación cuentan cada uno.
	single := factAt(0, "", "limping")
	double := factAt(0, "", "limping", "limping")

	got := ScoreFactsAt(scorerNow, []PetFact{single, double}, []string{"limping"})

	if got[0].RelevanceScore != 60 { // 40 + 10 + 10
		t.Fatalf("expected duplicated tag to count twice (60), got %f", got[0].RelevanceScore)
	}
	if got[1].RelevanceScore != 50 {
		t.Fatalf("expected single tag to score 50, got %f", got[1].RelevanceScore)
	}
}

func TestScoreFacts_MissingDateMeansMaximalDecay(t *testing.T) {
	noDate := PetFact{Fact: "obs", Severity: SeveritySevere}

	got := ScoreFactsAt(scorerNow, []PetFact{noDate}, nil)
	if got[0].RelevanceScore != 30 { // solo severidad
		t.Fatalf("expected 30 for undated severe fact, got %f", got[0].RelevanceScore)
	}
}

func TestScoreFacts_FallsBackToCreatedAt(t *testing.T) {
	f := PetFact{Fact: "obs", CreatedAt: scorerNow} // sin OccurredAt

	got := ScoreFactsAt(scorerNow, []PetFact{f}, nil)
	if got[0].RelevanceScore != 40 {
		t.Fatalf("expected createdAt fallback to give recency 40, got %f", got[0].RelevanceScore)
	}
}

func TestScoreFacts_StableOrderOnTies(t *testing.T) {
	a := factAt(10, SeverityMild)
	a.Fact = "first"
	b := factAt(10, SeverityMild)
	b.Fact = "second"

	got := ScoreFactsAt(scorerNow, []PetFact{a, b}, nil)
	if got[0].Fact != "first" || got[1].Fact != "second" {
		t.Fatalf("tie must preserve input order, got %q then %q", got[0].Fact, got[1].Fact)
	}
}

func TestTopFacts_LimitAndDefault(t *testing.T) {
	list := make([]PetFact, 0, 15)
	for i := 0; i < 15; i++ {
		list = append(list, factAt(float64(i), SeverityMild))
	}

	got := TopFactsAt(scorerNow, list, nil, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 facts, got %d", len(got))
	}

	// default limit = 10
	got = TopFactsAt(scorerNow, list, nil, 0)
	if len(got) != 10 {
		t.Fatalf("expected default limit 10, got %d", len(got))
	}

	// orden descendente por score
	for i := 1; i < len(got); i++ {
		if got[i].RelevanceScore > got[i-1].RelevanceScore {
			t.Fatalf("facts not sorted descending at position %d", i)
		}
	}

	// menos elementos que el límite => devuelve todos
	got = TopFactsAt(scorerNow, list[:3], nil, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 facts, got %d", len(got))
	}
}

func TestScoreFacts_DoesNotMutateInput(t *testing.T) {
	f := factAt(0, SeverityMild, "limping")
	list := []PetFact{f}

	_ = ScoreFactsAt(scorerNow, list, []string{"limping"})

	if list[0].Fact != f.Fact || list[0].Severity != f.Severity {
		t.Fatalf("input list must not be mutated")
	}
}
