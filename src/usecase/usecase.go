package usecase

import (
	"context"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

const (
	DefaultOffset = 0
	DefaultLimit  = 20
)

type GetPokemonList struct {
	repository pokemon.Repository
}

func NewGetPokemonList(repository pokemon.Repository) *GetPokemonList {
	return &GetPokemonList{repository: repository}
}

// Execute falls back to the first page of DefaultLimit entries for
// out-of-range arguments.
func (u *GetPokemonList) Execute(ctx context.Context, offset, limit int) (pokemon.Page, error) {
	if offset < 0 {
		offset = DefaultOffset
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return u.repository.List(ctx, offset, limit)
}

type GetPokemonByID struct {
	repository pokemon.Repository
}

func NewGetPokemonByID(repository pokemon.Repository) *GetPokemonByID {
	return &GetPokemonByID{repository: repository}
}

func (u *GetPokemonByID) Execute(ctx context.Context, id int) (pokemon.Pokemon, error) {
	return u.repository.GetByID(ctx, id)
}

type SearchPokemon struct {
	repository pokemon.Repository
}

func NewSearchPokemon(repository pokemon.Repository) *SearchPokemon {
	return &SearchPokemon{repository: repository}
}

func (u *SearchPokemon) Execute(ctx context.Context, query string) ([]pokemon.Summary, error) {
	return u.repository.Search(ctx, query)
}

type GetPokemonByType struct {
	repository pokemon.Repository
}

func NewGetPokemonByType(repository pokemon.Repository) *GetPokemonByType {
	return &GetPokemonByType{repository: repository}
}

func (u *GetPokemonByType) Execute(ctx context.Context, typeName string) ([]pokemon.Pokemon, error) {
	return u.repository.GetByType(ctx, typeName)
}

// Catalog bundles the use cases consumed by the entry points.
type Catalog struct {
	List   *GetPokemonList
	Detail *GetPokemonByID
	Search *SearchPokemon
	ByType *GetPokemonByType
}

func NewCatalog(repository pokemon.Repository) *Catalog {
	return &Catalog{
		List:   NewGetPokemonList(repository),
		Detail: NewGetPokemonByID(repository),
		Search: NewSearchPokemon(repository),
		ByType: NewGetPokemonByType(repository),
	}
}
