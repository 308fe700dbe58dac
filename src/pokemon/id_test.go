package pokemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    int
		wantErr bool
	}{
		{name: "trailing slash", url: "https://pokeapi.co/api/v2/pokemon/25/", want: 25},
		{name: "no trailing slash", url: "https://pokeapi.co/api/v2/pokemon/151", want: 151},
		{name: "species url", url: "https://pokeapi.co/api/v2/pokemon-species/1/", want: 1},
		{name: "alternate form", url: "https://pokeapi.co/api/v2/pokemon/10001/", want: 10001},
		{name: "name segment", url: "https://pokeapi.co/api/v2/pokemon/pikachu/", wantErr: true},
		{name: "zero", url: "https://pokeapi.co/api/v2/pokemon/0/", wantErr: true},
		{name: "negative", url: "https://pokeapi.co/api/v2/pokemon/-4/", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
