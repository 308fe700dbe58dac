package pokeapi

const englishLanguage = "en"

type NamedAPIResource struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type APIResource struct {
	Url string `json:"url"`
}

type PokemonListResult struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []NamedAPIResource `json:"results"`
}

type PokemonType struct {
	Slot int32            `json:"slot"`
	Type NamedAPIResource `json:"type"`
}

type PokemonAbility struct {
	Slot     int32            `json:"slot"`
	IsHidden bool             `json:"is_hidden"`
	Ability  NamedAPIResource `json:"ability"`
}

type PokemonSprites struct {
	FrontDefault *string `json:"front_default"`
}

type PokemonResponse struct {
	Id        int              `json:"id"`
	Name      string           `json:"name"`
	Weight    int              `json:"weight"`
	Height    int              `json:"height"`
	Sprites   PokemonSprites   `json:"sprites"`
	Types     []PokemonType    `json:"types"`
	Abilities []PokemonAbility `json:"abilities"`
	Species   NamedAPIResource `json:"species"`
}

func (p PokemonResponse) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

func (p PokemonResponse) AbilityNames() []string {
	names := make([]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		names = append(names, a.Ability.Name)
	}
	return names
}

func (p PokemonResponse) ImageUrl() string {
	if p.Sprites.FrontDefault == nil {
		return ""
	}
	return *p.Sprites.FrontDefault
}

type FlavorTextEntry struct {
	FlavorText string           `json:"flavor_text"`
	Language   NamedAPIResource `json:"language"`
}

type Genus struct {
	Genus    string           `json:"genus"`
	Language NamedAPIResource `json:"language"`
}

// PokemonSpecies mirrors /pokemon-species/{id}. Fields the API may omit or
// null out are pointers and resolved through the accessor methods.
type PokemonSpecies struct {
	Id                int               `json:"id"`
	Name              string            `json:"name"`
	GenderRate        *int              `json:"gender_rate"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
	Genera            []Genus           `json:"genera"`
	EvolutionChain    *APIResource      `json:"evolution_chain"`
	Generation        *NamedAPIResource `json:"generation"`
}

// GenderRateOrDefault returns -1 when the API carries no gender rate.
func (s PokemonSpecies) GenderRateOrDefault() int {
	if s.GenderRate == nil {
		return -1
	}
	return *s.GenderRate
}

func (s PokemonSpecies) EnglishFlavorText() (string, bool) {
	for _, entry := range s.FlavorTextEntries {
		if entry.Language.Name == englishLanguage {
			return entry.FlavorText, true
		}
	}
	return "", false
}

func (s PokemonSpecies) EnglishGenus() (string, bool) {
	for _, genus := range s.Genera {
		if genus.Language.Name == englishLanguage {
			return genus.Genus, true
		}
	}
	return "", false
}

func (s PokemonSpecies) EvolutionChainUrl() (string, bool) {
	if s.EvolutionChain == nil || s.EvolutionChain.Url == "" {
		return "", false
	}
	return s.EvolutionChain.Url, true
}

type TypeDamageRelations struct {
	DoubleDamageFrom []NamedAPIResource `json:"double_damage_from"`
	HalfDamageFrom   []NamedAPIResource `json:"half_damage_from"`
	NoDamageFrom     []NamedAPIResource `json:"no_damage_from"`
}

type TypePokemon struct {
	Slot    int32            `json:"slot"`
	Pokemon NamedAPIResource `json:"pokemon"`
}

type TypeResponse struct {
	Id              int                 `json:"id"`
	Name            string              `json:"name"`
	DamageRelations TypeDamageRelations `json:"damage_relations"`
	Pokemon         []TypePokemon       `json:"pokemon"`
}

func (t TypeResponse) DoubleDamageFromNames() []string {
	names := make([]string, 0, len(t.DamageRelations.DoubleDamageFrom))
	for _, r := range t.DamageRelations.DoubleDamageFrom {
		names = append(names, r.Name)
	}
	return names
}

type EvolutionDetail struct {
	MinLevel *int             `json:"min_level"`
	Trigger  NamedAPIResource `json:"trigger"`
}

type ChainLink struct {
	Species          NamedAPIResource  `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

type EvolutionChain struct {
	Id    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}
