package pokemon

// MergeWeaknesses unions the double-damage-from sets of every type of a
// Pokémon. The first occurrence of a tag decides its position.
func MergeWeaknesses(sets ...[]string) []string {
	seen := make(map[string]struct{})
	merged := make([]string, 0)
	for _, set := range sets {
		for _, tag := range set {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			merged = append(merged, tag)
		}
	}
	return merged
}
