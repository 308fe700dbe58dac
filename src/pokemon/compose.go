package pokemon

// Compose merges the enrichment results into the base record. A nil
// species means the species lookup failed, in which case every
// enrichment is dropped and the defaults apply.
func Compose(base Pokemon, species *SpeciesInfo, weaknesses []string, chain []EvolutionStage) Pokemon {
	detail := base
	detail.Description = ""
	detail.Category = ""
	detail.Generation = 0
	detail.GenderRate = GenderlessRate
	detail.Weaknesses = []string{}
	detail.EvolutionChain = []EvolutionStage{}
	if detail.Abilities == nil {
		detail.Abilities = []string{}
	}
	if species == nil {
		return detail
	}
	detail.Description = species.Description
	detail.Category = species.Category
	detail.Generation = species.Generation
	detail.GenderRate = species.GenderRate
	if weaknesses != nil {
		detail.Weaknesses = MergeWeaknesses(weaknesses)
	}
	if chain != nil {
		detail.EvolutionChain = chain
	}
	return detail
}
