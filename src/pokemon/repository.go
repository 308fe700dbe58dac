package pokemon

import "context"

//go:generate mockgen -source=repository.go -destination=../mocks/pokemon/mock_repository.go -package=mock_pokemon

// Repository is the catalog data source consumed by the use cases.
type Repository interface {
	List(ctx context.Context, offset, limit int) (Page, error)
	GetByID(ctx context.Context, id int) (Pokemon, error)
	Search(ctx context.Context, query string) ([]Summary, error)
	GetByType(ctx context.Context, typeName string) ([]Pokemon, error)
}
