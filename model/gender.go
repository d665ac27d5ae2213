package model

import (
	"fmt"
	"strings"
)

const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
)

// Gender selects the life table column used for a subject and the pronouns
// used to describe them. The zero value is treated as unknown.
type Gender string

// ParseGender accepts male, female or unknown and some common abbreviations.
// An empty string is unknown.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "man":
		return GenderMale, nil
	case "f", "female", "woman":
		return GenderFemale, nil
	case "", "u", "unknown", "all":
		return GenderUnknown, nil
	default:
		return GenderUnknown, fmt.Errorf("unknown gender %q", s)
	}
}

func (g Gender) IsMale() bool {
	return g == GenderMale
}

func (g Gender) IsFemale() bool {
	return g == GenderFemale
}

func (g Gender) IsUnknown() bool {
	return !g.IsMale() && !g.IsFemale()
}

// Column is the name of the life table column holding deaths for the gender.
func (g Gender) Column() string {
	switch {
	case g.IsMale():
		return "male"
	case g.IsFemale():
		return "female"
	default:
		return "all"
	}
}

func (g Gender) Noun() string {
	switch {
	case g.IsMale():
		return "man"
	case g.IsFemale():
		return "woman"
	default:
		return "person"
	}
}

// SubjectPronoun returns the pronoun to use when the person is the subject of a sentence.
func (g Gender) SubjectPronoun() string {
	switch {
	case g.IsMale():
		return "he"
	case g.IsFemale():
		return "she"
	default:
		return "they"
	}
}

// PossessivePronounSingular returns the possessive pronoun to use for a single item (his/her/their).
func (g Gender) PossessivePronounSingular() string {
	switch {
	case g.IsMale():
		return "his"
	case g.IsFemale():
		return "her"
	default:
		return "their"
	}
}
