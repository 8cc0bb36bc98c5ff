package facts

import "time"

// Category clasifica la observación de salud.
// @Enum symptom, digestive, allergy, health, behavior, diet, medication, vet_visit, weight, condition
type Category string

const (
	CategorySymptom    Category = "symptom"
	CategoryDigestive  Category = "digestive"
	CategoryAllergy    Category = "allergy"
	CategoryHealth     Category = "health"
	CategoryBehavior   Category = "behavior"
	CategoryDiet       Category = "diet"
	CategoryMedication Category = "medication"
	CategoryVetVisit   Category = "vet_visit"
	CategoryWeight     Category = "weight"
	CategoryCondition  Category = "condition"
)

// Severity define la severidad de la observación.
// @Enum mild, moderate, severe
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Status define el estado de seguimiento de la observación.
// @Enum active, monitoring, resolved
type Status string

const (
	StatusActive     Status = "active"
	StatusMonitoring Status = "monitoring"
	StatusResolved   Status = "resolved"
)

// Source indica qué pipeline registró la observación.
type Source string

const (
	SourceManual Source = "manual"
	SourceChat   Source = "chat"
	SourcePhoto  Source = "photo"
)

// PetFact es una observación puntual y fechada sobre la salud del perro.
// Nunca se borra: solo se actualizan status/notes.
// Invariantes (aplicadas en Service.Create):
// - OccurredAt cae a CreatedAt si no viene.
// - Severity cae a "mild" si no viene.
type PetFact struct {
	ID    string
	DogID string

	Fact     string // descripción libre
	Category Category
	Tags     []string
	Severity Severity
	Status   Status

	OccurredAt time.Time
	CreatedAt  time.Time
	ResolvedAt *time.Time

	Notes              string
	PossibleConditions []string
	RecommendedActions []string

	Pinned bool
	Source Source
}

// ScoredFact es un PetFact más su score de relevancia (0-100).
// Solo se usa internamente para rankear y truncar; no se persiste.
type ScoredFact struct {
	PetFact
	RelevanceScore float64
}
