package diagnostics

import "time"

// Kind clasifica el estudio diagnóstico.
// @Enum xray, blood_work, lab
type Kind string

const (
	KindXRay      Kind = "xray"
	KindBloodWork Kind = "blood_work"
	KindLab       Kind = "lab"
)

// Record es el resultado de un estudio diagnóstico fechado.
// El motor de contexto solo lo lee (últimos 30 días, sección premium).
type Record struct {
	ID    string
	DogID string

	Kind       Kind
	Assessment string   // evaluación corta del estudio
	Findings   []string // hallazgos puntuales

	PerformedAt time.Time
	CreatedAt   time.Time
}
