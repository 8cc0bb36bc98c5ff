package aicontext

import (
	"fmt"
	"strings"
	"time"

	"pet-ai-context/internal/domain/dogs"
)

// baseprompt.go define el prompt conductual base (persona + perfil + guías).
// Las constantes van en su propio archivo para poder ajustar el tono sin
// tocar la lógica de armado.

const personaPreamble = "You are PawBuddy, a warm and careful AI health companion for dog owners. " +
	"You help owners understand their dog's health, track symptoms over time, and decide when a vet visit is needed. " +
	"You never give a definitive diagnosis and you never replace a veterinarian."

const promptGuidelines = "Guidelines:\n" +
	"- Answer in plain, reassuring language; avoid jargon unless the owner uses it first.\n" +
	"- Ask at most one short follow-up question per reply.\n" +
	"- Always recommend an urgent vet visit for severe, worsening or emergency signs.\n" +
	"- Reference the dog's known allergies, medications and history when relevant.\n" +
	"- If you are not sure, say so explicitly."

// BasePrompt arma el prompt base con el perfil completo del perro.
// Nunca falla: los campos ausentes se reemplazan por "Unknown".
func BasePrompt(d *dogs.Dog, now time.Time) string {
	name := "Unknown"
	breed := "Unknown"
	sex := "Unknown"
	age := "Unknown"
	weight := "Unknown"

	if d != nil {
		if strings.TrimSpace(d.Name) != "" {
			name = d.Name
		}
		if strings.TrimSpace(d.Breed) != "" {
			breed = d.Breed
		}
		if d.Sex != "" && d.Sex != dogs.SexUnknown {
			sex = string(d.Sex)
		}
		if d.BirthDate != nil && !d.BirthDate.IsZero() {
			age = ageLabel(*d.BirthDate, now)
		}
		if d.Weight > 0 {
			unit := d.WeightUnit
			if unit == "" {
				unit = "kg"
			}
			weight = fmt.Sprintf("%.1f %s", d.Weight, unit)
		}
	}

	profile := fmt.Sprintf(
		"Patient profile:\nName: %s\nBreed: %s\nSex: %s\nAge: %s\nWeight: %s",
		name, breed, sex, age, weight,
	)

	return personaPreamble + "\n\n" + profile + "\n\n" + promptGuidelines
}

func ageLabel(birth, now time.Time) string {
	if birth.After(now) {
		return "Unknown"
	}

	years := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		years--
	}

	if years < 1 {
		months := int(now.Sub(birth).Hours() / 24 / 30)
		if months < 1 {
			months = 1
		}
		return fmt.Sprintf("%d months", months)
	}
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}
