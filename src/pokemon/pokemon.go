package pokemon

import "errors"

// GenderlessRate marks a species without gender.
const GenderlessRate = -1

const genderRateMax = 8

var (
	ErrInvalidID = errors.New("invalid pokemon id")
	ErrNotFound  = errors.New("pokemon not found")
)

type Summary struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	URL      string   `json:"url"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Types    []string `json:"types,omitempty"`
}

type EvolutionStage struct {
	Species  string   `json:"species"`
	ImageURL string   `json:"imageUrl"`
	Types    []string `json:"types"`
	MinLevel *int     `json:"minLevel,omitempty"`
}

// Pokemon is the detail record assembled for a single catalog entry.
// Weight and Height are kept in the units the API reports them in.
type Pokemon struct {
	Summary
	Description    string           `json:"description,omitempty"`
	Weight         int              `json:"weight"`
	Height         int              `json:"height"`
	Abilities      []string         `json:"abilities"`
	Category       string           `json:"species,omitempty"`
	Generation     int              `json:"generation,omitempty"`
	GenderRate     int              `json:"genderRate"`
	Weaknesses     []string         `json:"weaknesses"`
	EvolutionChain []EvolutionStage `json:"evolutionChain"`
}

type Page struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Summary `json:"results"`
}

// SpeciesInfo carries the species fields merged into a detail record.
type SpeciesInfo struct {
	Description string
	Category    string
	GenderRate  int
	Generation  int
}

// GenderSplit returns the male and female percentages. ok is false for
// genderless species.
func (p Pokemon) GenderSplit() (male, female float64, ok bool) {
	if p.GenderRate < 0 || p.GenderRate > genderRateMax {
		return 0, 0, false
	}
	female = float64(p.GenderRate) / genderRateMax * 100
	return 100 - female, female, true
}

// WeightKg converts hectograms to kilograms.
func (p Pokemon) WeightKg() float64 {
	return float64(p.Weight) / 10
}

// HeightCm converts decimetres to centimetres.
func (p Pokemon) HeightCm() float64 {
	return float64(p.Height) * 10
}
