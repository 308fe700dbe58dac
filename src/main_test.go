package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	mock_pokemon "github.com/BielosX/wombat/pokedex/src/mocks/pokemon"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
	"github.com/BielosX/wombat/pokedex/src/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "lambda", "list", "get", "search", "type", "export"})
}

func TestGetRejectsNonNumericId(t *testing.T) {
	_, err := execute(t, "get", "pikachu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid id "pikachu"`)
}

func TestSearchRejectsExtraArgs(t *testing.T) {
	_, err := execute(t, "search", "pika", "chu")
	require.Error(t, err)
}

func TestInteractiveSearch(t *testing.T) {
	t.Run("prints results of a query", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_pokemon.NewMockRepository(ctrl)
		repo.EXPECT().Search(gomock.Any(), "pika").Return([]pokemon.Summary{{ID: 25, Name: "pikachu"}}, nil)
		session := usecase.NewSearchSession(usecase.NewSearchPokemon(repo), zap.NewNop().Sugar())

		var out bytes.Buffer
		err := runInteractiveSearch(context.Background(), session, strings.NewReader("pika\n"), &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), `"pikachu"`)
	})

	t.Run("blank line clears without fetching", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_pokemon.NewMockRepository(ctrl)
		session := usecase.NewSearchSession(usecase.NewSearchPokemon(repo), zap.NewNop().Sugar())

		var out bytes.Buffer
		err := runInteractiveSearch(context.Background(), session, strings.NewReader("  \n"), &out)

		require.NoError(t, err)
		assert.Equal(t, "[]\n", out.String())
	})

	t.Run("later line supersedes a search in flight", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_pokemon.NewMockRepository(ctrl)
		repo.EXPECT().Search(gomock.Any(), "bulba").DoAndReturn(func(ctx context.Context, _ string) ([]pokemon.Summary, error) {
			<-ctx.Done()
			return []pokemon.Summary{{ID: 1, Name: "bulbasaur"}}, nil
		}).MaxTimes(1)
		repo.EXPECT().Search(gomock.Any(), "charm").Return([]pokemon.Summary{{ID: 4, Name: "charmander"}}, nil)
		session := usecase.NewSearchSession(usecase.NewSearchPokemon(repo), zap.NewNop().Sugar())

		var out bytes.Buffer
		err := runInteractiveSearch(context.Background(), session, strings.NewReader("bulba\ncharm\n"), &out)

		require.NoError(t, err)
		assert.Contains(t, out.String(), `"charmander"`)
		assert.NotContains(t, out.String(), `"bulbasaur"`)
		assert.Equal(t, "charm", session.Query())
		assert.Equal(t, []pokemon.Summary{{ID: 4, Name: "charmander"}}, session.Results())
	})

	t.Run("reports failures", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_pokemon.NewMockRepository(ctrl)
		repo.EXPECT().Search(gomock.Any(), "mew").Return(nil, errors.New("boom"))
		session := usecase.NewSearchSession(usecase.NewSearchPokemon(repo), zap.NewNop().Sugar())

		var out bytes.Buffer
		err := runInteractiveSearch(context.Background(), session, strings.NewReader("mew\n"), &out)

		require.NoError(t, err)
		assert.Equal(t, "error loading: boom\n", out.String())
	})
}

func TestLambdaUnknownHandler(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("_HANDLER", "bogus")
	_, err := execute(t, "lambda")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown handler "bogus"`)
}

func TestConfigErrorsSurface(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("POKEAPI_CONCURRENCY", "0")
	_, err := execute(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pokeapi.concurrency")
}
