package pokeapi

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func speciesLink(name string, id int, minLevel *int, next ...ChainLink) ChainLink {
	link := ChainLink{
		Species:   NamedAPIResource{Name: name, Url: "https://pokeapi.co/api/v2/pokemon-species/" + strconv.Itoa(id) + "/"},
		EvolvesTo: next,
	}
	if minLevel != nil {
		link.EvolutionDetails = []EvolutionDetail{{MinLevel: minLevel}}
	}
	return link
}

func TestLinearize(t *testing.T) {
	t.Run("three stage chain", func(t *testing.T) {
		root := speciesLink("charmander", 4, nil,
			speciesLink("charmeleon", 5, intPtr(16),
				speciesLink("charizard", 6, intPtr(36))))

		steps, err := linearize(root)

		require.NoError(t, err)
		require.Len(t, steps, 3)
		assert.Equal(t, "charmander", steps[0].speciesName)
		assert.Equal(t, 4, steps[0].speciesId)
		assert.Nil(t, steps[0].minLevel)
		assert.Equal(t, 16, *steps[1].minLevel)
		assert.Equal(t, "charizard", steps[2].speciesName)
		assert.Equal(t, 36, *steps[2].minLevel)
	})

	t.Run("follows only the first branch", func(t *testing.T) {
		root := speciesLink("eevee", 133, nil,
			speciesLink("vaporeon", 134, nil),
			speciesLink("jolteon", 135, nil),
			speciesLink("flareon", 136, nil))

		steps, err := linearize(root)

		require.NoError(t, err)
		require.Len(t, steps, 2)
		assert.Equal(t, "vaporeon", steps[1].speciesName)
	})

	t.Run("detail without level", func(t *testing.T) {
		root := speciesLink("pichu", 172, nil, ChainLink{
			Species:          NamedAPIResource{Name: "pikachu", Url: "https://pokeapi.co/api/v2/pokemon-species/25/"},
			EvolutionDetails: []EvolutionDetail{{Trigger: NamedAPIResource{Name: "level-up"}}},
		})

		steps, err := linearize(root)

		require.NoError(t, err)
		require.Len(t, steps, 2)
		assert.Nil(t, steps[1].minLevel)
	})

	t.Run("malformed species url", func(t *testing.T) {
		_, err := linearize(ChainLink{Species: NamedAPIResource{Name: "missingno", Url: "https://pokeapi.co/api/v2/pokemon-species/"}})
		require.Error(t, err)
	})
}
