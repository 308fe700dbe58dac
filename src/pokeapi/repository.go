package pokeapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 8
	DefaultSearchLimit = 2000
)

type RepositoryOptions struct {
	// Concurrency caps the number of in-flight per-item lookups of one call.
	Concurrency int
	// SearchLimit is the page size used to bulk-fetch the catalog for search.
	SearchLimit int
}

// Repository adapts PokeAPI responses into catalog records.
type Repository struct {
	client      *Client
	sugar       *zap.SugaredLogger
	concurrency int
	searchLimit int
}

var _ pokemon.Repository = (*Repository)(nil)

func NewRepository(client *Client, sugar *zap.SugaredLogger, opts RepositoryOptions) *Repository {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	searchLimit := opts.SearchLimit
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &Repository{
		client:      client,
		sugar:       sugar,
		concurrency: concurrency,
		searchLimit: searchLimit,
	}
}

func (r *Repository) List(ctx context.Context, offset, limit int) (pokemon.Page, error) {
	result, err := r.client.ListPokemon(ctx, limit, offset)
	if err != nil {
		return pokemon.Page{}, fmt.Errorf("list pokemon offset=%d limit=%d: %w", offset, limit, err)
	}
	summaries, err := toSummaries(result.Results)
	if err != nil {
		return pokemon.Page{}, err
	}
	if err := r.resolveSummaries(ctx, summaries); err != nil {
		return pokemon.Page{}, err
	}
	return pokemon.Page{
		Count:    result.Count,
		Next:     result.Next,
		Previous: result.Previous,
		Results:  summaries,
	}, nil
}

// Search answers a blank query with no results and no upstream calls.
func (r *Repository) Search(ctx context.Context, query string) ([]pokemon.Summary, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []pokemon.Summary{}, nil
	}
	result, err := r.client.ListPokemon(ctx, r.searchLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	all, err := toSummaries(result.Results)
	if err != nil {
		return nil, err
	}
	matches := make([]pokemon.Summary, 0)
	for _, summary := range all {
		if strings.Contains(strings.ToLower(summary.Name), needle) {
			matches = append(matches, summary)
		}
	}
	r.sugar.Debugf("Search %q matched %d of %d", query, len(matches), len(all))
	if err := r.resolveSummaries(ctx, matches); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (pokemon.Pokemon, error) {
	if id <= 0 {
		return pokemon.Pokemon{}, fmt.Errorf("%w: %d", pokemon.ErrInvalidID, id)
	}
	response, err := r.client.GetPokemon(ctx, strconv.Itoa(id))
	if err != nil {
		if IsNotFound(err) {
			return pokemon.Pokemon{}, fmt.Errorf("%w: %d", pokemon.ErrNotFound, id)
		}
		return pokemon.Pokemon{}, fmt.Errorf("get pokemon %d: %w", id, err)
	}
	base := r.toPokemon(response)

	species, err := r.client.GetSpecies(ctx, id)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return pokemon.Pokemon{}, ctxErr
		}
		r.sugar.Warnf("Species lookup for Pokemon %d failed, skipping enrichment: %s", id, err)
		return pokemon.Compose(base, nil, nil, nil), nil
	}
	info := toSpeciesInfo(species)

	var (
		weaknesses []string
		chain      []pokemon.EvolutionStage
	)
	// Both lookups degrade to empty values on failure.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		weaknesses = r.weaknesses(ctx, id, base.Types)
	}()
	go func() {
		defer wg.Done()
		chain = r.evolutionChain(ctx, id, species)
	}()
	wg.Wait()
	return pokemon.Compose(base, &info, weaknesses, chain), nil
}

func (r *Repository) GetByType(ctx context.Context, typeName string) ([]pokemon.Pokemon, error) {
	typeResponse, err := r.client.GetType(ctx, typeName)
	if err != nil {
		return nil, fmt.Errorf("get type %q: %w", typeName, err)
	}
	members := make([]pokemon.Pokemon, len(typeResponse.Pokemon))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, member := range typeResponse.Pokemon {
		g.Go(func() error {
			id, err := pokemon.ParseID(member.Pokemon.Url)
			if err != nil {
				return err
			}
			response, err := r.client.GetPokemon(gctx, strconv.Itoa(id))
			if err != nil {
				return fmt.Errorf("get pokemon %d: %w", id, err)
			}
			detail := r.toPokemon(response)
			detail.GenderRate = r.genderRate(gctx, id)
			members[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return members, nil
}

// resolveSummaries fills in thumbnail and type tags with one detail
// lookup per summary. Any failure fails the whole batch.
func (r *Repository) resolveSummaries(ctx context.Context, summaries []pokemon.Summary) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i := range summaries {
		g.Go(func() error {
			id := summaries[i].ID
			response, err := r.client.GetPokemon(gctx, strconv.Itoa(id))
			if err != nil {
				return fmt.Errorf("resolve pokemon %d: %w", id, err)
			}
			summaries[i].ImageURL = response.ImageUrl()
			summaries[i].Types = response.TypeNames()
			return nil
		})
	}
	return g.Wait()
}

func (r *Repository) weaknesses(ctx context.Context, id int, types []string) []string {
	sets := make([][]string, len(types))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, typeName := range types {
		g.Go(func() error {
			typeResponse, err := r.client.GetType(gctx, typeName)
			if err != nil {
				return fmt.Errorf("type %q: %w", typeName, err)
			}
			sets[i] = typeResponse.DoubleDamageFromNames()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.sugar.Warnf("Weakness lookup for Pokemon %d failed: %s", id, err)
		return []string{}
	}
	return pokemon.MergeWeaknesses(sets...)
}

// genderRate is best effort; type listings still render without it.
func (r *Repository) genderRate(ctx context.Context, id int) int {
	species, err := r.client.GetSpecies(ctx, id)
	if err != nil {
		r.sugar.Warnf("Species lookup for Pokemon %d failed: %s", id, err)
		return pokemon.GenderlessRate
	}
	return species.GenderRateOrDefault()
}

func (r *Repository) toPokemon(response PokemonResponse) pokemon.Pokemon {
	return pokemon.Pokemon{
		Summary: pokemon.Summary{
			ID:       response.Id,
			Name:     response.Name,
			URL:      r.client.resolveUrl("/pokemon/" + strconv.Itoa(response.Id) + "/"),
			ImageURL: response.ImageUrl(),
			Types:    response.TypeNames(),
		},
		Weight:     response.Weight,
		Height:     response.Height,
		Abilities:  response.AbilityNames(),
		GenderRate: pokemon.GenderlessRate,
	}
}

func toSummaries(entries []NamedAPIResource) ([]pokemon.Summary, error) {
	summaries := make([]pokemon.Summary, 0, len(entries))
	for _, entry := range entries {
		id, err := pokemon.ParseID(entry.Url)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, pokemon.Summary{ID: id, Name: entry.Name, URL: entry.Url})
	}
	return summaries, nil
}

func toSpeciesInfo(species PokemonSpecies) pokemon.SpeciesInfo {
	info := pokemon.SpeciesInfo{GenderRate: species.GenderRateOrDefault()}
	if text, ok := species.EnglishFlavorText(); ok {
		info.Description = pokemon.NormalizeFlavorText(text)
	}
	if genus, ok := species.EnglishGenus(); ok {
		info.Category = pokemon.CategoryFromGenus(genus)
	}
	if species.Generation != nil {
		if generation, err := pokemon.ParseID(species.Generation.Url); err == nil {
			info.Generation = generation
		}
	}
	return info
}
