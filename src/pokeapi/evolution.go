package pokeapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
	"golang.org/x/sync/errgroup"
)

// maxEvolutionStages guards the walk against malformed, cyclic chains.
const maxEvolutionStages = 16

type evolutionStep struct {
	speciesName string
	speciesId   int
	minLevel    *int
}

// linearize walks the chain from its root, following only the first entry
// of evolves_to at every node. Alternate branches are dropped.
func linearize(root ChainLink) ([]evolutionStep, error) {
	var steps []evolutionStep
	link := &root
	for link != nil && len(steps) < maxEvolutionStages {
		id, err := pokemon.ParseID(link.Species.Url)
		if err != nil {
			return nil, fmt.Errorf("evolution species %q: %w", link.Species.Name, err)
		}
		step := evolutionStep{speciesName: link.Species.Name, speciesId: id}
		if len(link.EvolutionDetails) > 0 && link.EvolutionDetails[0].MinLevel != nil {
			level := *link.EvolutionDetails[0].MinLevel
			step.minLevel = &level
		}
		steps = append(steps, step)
		if len(link.EvolvesTo) == 0 {
			break
		}
		link = &link.EvolvesTo[0]
	}
	return steps, nil
}

func (r *Repository) evolutionChain(ctx context.Context, id int, species PokemonSpecies) []pokemon.EvolutionStage {
	url, ok := species.EvolutionChainUrl()
	if !ok {
		return []pokemon.EvolutionStage{}
	}
	stages, err := r.walkEvolutionChain(ctx, url)
	if err != nil {
		r.sugar.Warnf("Evolution chain lookup for Pokemon %d failed: %s", id, err)
		return []pokemon.EvolutionStage{}
	}
	return stages
}

func (r *Repository) walkEvolutionChain(ctx context.Context, url string) ([]pokemon.EvolutionStage, error) {
	chain, err := r.client.GetEvolutionChain(ctx, url)
	if err != nil {
		return nil, err
	}
	steps, err := linearize(chain.Chain)
	if err != nil {
		return nil, err
	}
	stages := make([]pokemon.EvolutionStage, len(steps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, step := range steps {
		g.Go(func() error {
			response, err := r.client.GetPokemon(gctx, strconv.Itoa(step.speciesId))
			if err != nil {
				return fmt.Errorf("evolution stage %s: %w", step.speciesName, err)
			}
			stages[i] = pokemon.EvolutionStage{
				Species:  step.speciesName,
				ImageURL: response.ImageUrl(),
				Types:    response.TypeNames(),
				MinLevel: step.minLevel,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stages, nil
}
