package pokeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// fakeAPI serves a small, self-consistent slice of PokeAPI from memory.
type fakeAPI struct {
	server  *httptest.Server
	pokemon map[int]PokemonResponse
	species map[int]PokemonSpecies
	types   map[string]TypeResponse
	chains  map[int]EvolutionChain

	mu        sync.Mutex
	failures  map[string][]int
	hits      map[string]int
	hooks     map[string]func(*http.Request)
	delay     atomic.Int64
	inFlight  atomic.Int32
	maxFlight atomic.Int32
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		failures: map[string][]int{},
		hits:     map[string]int{},
		hooks:    map[string]func(*http.Request){},
	}
	r := chi.NewRouter()
	r.Use(f.track)
	r.Use(chimw.StripSlashes)
	r.Get("/pokemon", f.listPokemon)
	r.Get("/pokemon/{id}", f.serveByID(func(id int) (any, bool) {
		p, ok := f.pokemon[id]
		return p, ok
	}))
	r.Get("/pokemon-species/{id}", f.serveByID(func(id int) (any, bool) {
		s, ok := f.species[id]
		return s, ok
	}))
	r.Get("/evolution-chain/{id}", f.serveByID(func(id int) (any, bool) {
		c, ok := f.chains[id]
		return c, ok
	}))
	r.Get("/type/{name}", func(w http.ResponseWriter, req *http.Request) {
		typeResponse, ok := f.types[chi.URLParam(req, "name")]
		if !ok {
			http.NotFound(w, req)
			return
		}
		writeJSON(w, typeResponse)
	})
	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	f.seed()
	return f
}

func (f *fakeAPI) url(format string, args ...any) string {
	return f.server.URL + fmt.Sprintf(format, args...)
}

// failWith makes the next len(statuses) requests for path answer with the
// given statuses, in order.
func (f *fakeAPI) failWith(path string, statuses ...int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = append(f.failures[path], statuses...)
}

func (f *fakeAPI) failAlways(path string, status int) {
	statuses := make([]int, 100)
	for i := range statuses {
		statuses[i] = status
	}
	f.failWith(path, statuses...)
}

// onRequest runs hook inside the handler for every request to path,
// before the response is written.
func (f *fakeAPI) onRequest(path string, hook func(*http.Request)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks[path] = hook
}

func (f *fakeAPI) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeAPI) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		current := f.inFlight.Add(1)
		defer f.inFlight.Add(-1)
		for {
			peak := f.maxFlight.Load()
			if current <= peak || f.maxFlight.CompareAndSwap(peak, current) {
				break
			}
		}
		if delay := time.Duration(f.delay.Load()); delay > 0 {
			time.Sleep(delay)
		}

		f.mu.Lock()
		f.hits[req.URL.Path]++
		var status int
		if queued := f.failures[req.URL.Path]; len(queued) > 0 {
			status = queued[0]
			f.failures[req.URL.Path] = queued[1:]
		}
		hook := f.hooks[req.URL.Path]
		f.mu.Unlock()

		if hook != nil {
			hook(req)
		}

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func (f *fakeAPI) listPokemon(w http.ResponseWriter, req *http.Request) {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(req.URL.Query().Get("offset"))
	ids := make([]int, 0, len(f.pokemon))
	for id := range f.pokemon {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := PokemonListResult{Count: len(ids), Results: []NamedAPIResource{}}
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		p := f.pokemon[ids[i]]
		result.Results = append(result.Results, NamedAPIResource{Name: p.Name, Url: f.url("/pokemon/%d/", p.Id)})
	}
	if offset+limit < len(ids) {
		next := f.url("/pokemon?offset=%d&limit=%d", offset+limit, limit)
		result.Next = &next
	}
	if offset > 0 {
		previous := f.url("/pokemon?offset=%d&limit=%d", max(offset-limit, 0), limit)
		result.Previous = &previous
	}
	writeJSON(w, result)
}

func (f *fakeAPI) serveByID(lookup func(id int) (any, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(req, "id"))
		if err != nil {
			http.NotFound(w, req)
			return
		}
		value, ok := lookup(id)
		if !ok {
			http.NotFound(w, req)
			return
		}
		writeJSON(w, value)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func intPtr(v int) *int {
	return &v
}

func (f *fakeAPI) named(kind, name string, id int) NamedAPIResource {
	return NamedAPIResource{Name: name, Url: f.url("/%s/%d/", kind, id)}
}

func (f *fakeAPI) typeRef(name string) NamedAPIResource {
	return NamedAPIResource{Name: name, Url: f.url("/type/%s/", name)}
}

func (f *fakeAPI) newPokemon(id int, name string, weight, height int, types []string, abilities ...string) PokemonResponse {
	sprite := f.url("/sprites/%d.png", id)
	p := PokemonResponse{
		Id:      id,
		Name:    name,
		Weight:  weight,
		Height:  height,
		Sprites: PokemonSprites{FrontDefault: &sprite},
		Species: f.named("pokemon-species", name, id),
	}
	for i, typeName := range types {
		p.Types = append(p.Types, PokemonType{Slot: int32(i + 1), Type: f.typeRef(typeName)})
	}
	for i, ability := range abilities {
		p.Abilities = append(p.Abilities, PokemonAbility{Slot: int32(i + 1), Ability: NamedAPIResource{Name: ability}})
	}
	return p
}

func (f *fakeAPI) seed() {
	f.pokemon = map[int]PokemonResponse{
		1:  f.newPokemon(1, "bulbasaur", 69, 7, []string{"grass", "poison"}, "overgrow", "chlorophyll"),
		2:  f.newPokemon(2, "ivysaur", 130, 10, []string{"grass", "poison"}, "overgrow", "chlorophyll"),
		3:  f.newPokemon(3, "venusaur", 1000, 20, []string{"grass", "poison"}, "overgrow", "chlorophyll"),
		4:  f.newPokemon(4, "charmander", 85, 6, []string{"fire"}, "blaze", "solar-power"),
		25: f.newPokemon(25, "pikachu", 60, 4, []string{"electric"}, "static", "lightning-rod"),
	}

	english := NamedAPIResource{Name: "en"}
	japanese := NamedAPIResource{Name: "ja"}
	chainOne := &APIResource{Url: f.url("/evolution-chain/1/")}
	generationOne := f.named("generation", "generation-i", 1)
	f.species = map[int]PokemonSpecies{
		1: {
			Id:         1,
			Name:       "bulbasaur",
			GenderRate: intPtr(1),
			FlavorTextEntries: []FlavorTextEntry{
				{FlavorText: "ふしぎなタネが", Language: japanese},
				{FlavorText: "A strange seed was\nplanted on its\fback at birth.", Language: english},
				{FlavorText: "Second english entry.", Language: english},
			},
			Genera:         []Genus{{Genus: "たねポケモン", Language: japanese}, {Genus: "Seed Pokémon", Language: english}},
			EvolutionChain: chainOne,
			Generation:     &generationOne,
		},
		2: {Id: 2, Name: "ivysaur", GenderRate: intPtr(1), EvolutionChain: chainOne, Generation: &generationOne},
		3: {Id: 3, Name: "venusaur", GenderRate: intPtr(1), EvolutionChain: chainOne, Generation: &generationOne},
		4: {Id: 4, Name: "charmander", GenderRate: intPtr(1), Generation: &generationOne},
		25: {
			Id:         25,
			Name:       "pikachu",
			GenderRate: nil,
			Genera:     []Genus{{Genus: "Mouse Pokémon", Language: english}},
			Generation: &generationOne,
		},
	}

	f.types = map[string]TypeResponse{
		"grass": {
			Id:   12,
			Name: "grass",
			DamageRelations: TypeDamageRelations{DoubleDamageFrom: []NamedAPIResource{
				f.typeRef("flying"), f.typeRef("poison"), f.typeRef("bug"), f.typeRef("fire"), f.typeRef("ice"),
			}},
			Pokemon: []TypePokemon{
				{Slot: 1, Pokemon: f.named("pokemon", "bulbasaur", 1)},
				{Slot: 1, Pokemon: f.named("pokemon", "ivysaur", 2)},
				{Slot: 1, Pokemon: f.named("pokemon", "venusaur", 3)},
			},
		},
		"poison": {
			Id:   4,
			Name: "poison",
			DamageRelations: TypeDamageRelations{DoubleDamageFrom: []NamedAPIResource{
				f.typeRef("ground"), f.typeRef("psychic"),
			}},
			Pokemon: []TypePokemon{
				{Slot: 2, Pokemon: f.named("pokemon", "bulbasaur", 1)},
			},
		},
		"fire": {
			Id:   10,
			Name: "fire",
			DamageRelations: TypeDamageRelations{DoubleDamageFrom: []NamedAPIResource{
				f.typeRef("ground"), f.typeRef("rock"), f.typeRef("water"),
			}},
			Pokemon: []TypePokemon{{Slot: 1, Pokemon: f.named("pokemon", "charmander", 4)}},
		},
		"electric": {
			Id:              13,
			Name:            "electric",
			DamageRelations: TypeDamageRelations{DoubleDamageFrom: []NamedAPIResource{f.typeRef("ground")}},
			Pokemon:         []TypePokemon{{Slot: 1, Pokemon: f.named("pokemon", "pikachu", 25)}},
		},
	}

	// The last transition deliberately carries no evolution details.
	f.chains = map[int]EvolutionChain{
		1: {
			Id: 1,
			Chain: ChainLink{
				Species:          f.named("pokemon-species", "bulbasaur", 1),
				EvolutionDetails: []EvolutionDetail{},
				EvolvesTo: []ChainLink{{
					Species:          f.named("pokemon-species", "ivysaur", 2),
					EvolutionDetails: []EvolutionDetail{{MinLevel: intPtr(16), Trigger: NamedAPIResource{Name: "level-up"}}},
					EvolvesTo: []ChainLink{{
						Species:          f.named("pokemon-species", "venusaur", 3),
						EvolutionDetails: []EvolutionDetail{},
					}},
				}},
			},
		},
	}
}

func newTestRepository(f *fakeAPI, opts RepositoryOptions) *Repository {
	sugar := zap.NewNop().Sugar()
	client := NewClient(sugar, Options{BaseUrl: f.server.URL, Timeout: 5 * time.Second, RetryAttempts: 1})
	return NewRepository(client, sugar, opts)
}
