package aicontext

import (
	"pet-ai-context/internal/domain/dogs"
	"pet-ai-context/internal/domain/facts"
)

// PhotoContext resume un análisis de foto recién hecho.
// Vive solo durante un armado de contexto; no se persiste.
type PhotoContext struct {
	Summary            string
	BodyArea           string
	Urgency            string
	PossibleConditions []string
}

// Sections es el desglose del prompt por tier de prioridad.
// P0 es fundacional y nunca se recorta; P1-P3 pueden caerse
// como bloque completo cuando se excede el presupuesto.
type Sections struct {
	P0 []string `json:"p0"`
	P1 []string `json:"p1"`
	P2 []string `json:"p2"`
	P3 []string `json:"p3"`
}

// BuildInput es la entrada del armado. Todos los campos son opcionales:
// el armado nunca falla por datos ausentes, solo degrada.
type BuildInput struct {
	Dog              *dogs.Dog
	Facts            []facts.PetFact
	Premium          bool
	ConversationTags []string
	Photo            *PhotoContext
}

// BuildResult es el prompt final más el desglose de lo que sobrevivió.
type BuildResult struct {
	SystemPrompt string
	Sections     Sections
}
