package dogs

import "time"

// Sex define el sexo del perro.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Medication es un medicamento actual del perro (nombre + dosis).
type Medication struct {
	Name   string
	Dosage string // "16mg daily"; vacío = dosis desconocida
}

// Dog representa el perfil clínico básico de un perro registrado en el sistema.
// Dentro de un armado de contexto es entrada de solo lectura.
type Dog struct {
	ID          string
	OwnerUserID string

	Name  string
	Breed string
	Sex   Sex

	BirthDate  *time.Time
	Weight     float64 // 0 = no registrado
	WeightUnit string  // "kg", "lb"

	Allergies   []string
	Medications []Medication
	Conditions  []string

	CreatedAt time.Time
	UpdatedAt time.Time
}
