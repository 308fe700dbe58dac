package csv

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/BielosX/wombat/pokedex/src/columns"
	"github.com/BielosX/wombat/pokedex/src/parquet"
)

// PokemonWriter writes the same rows as the parquet export, with a header
// derived from the parquet column names.
type PokemonWriter struct {
	buffer *bytes.Buffer
	writer *csv.Writer
}

func NewPokemonWriter() *PokemonWriter {
	buffer := &bytes.Buffer{}
	return &PokemonWriter{
		buffer: buffer,
		writer: csv.NewWriter(buffer),
	}
}

func (w *PokemonWriter) WriteHeader() error {
	return w.writer.Write(columns.Names(parquet.Pokemon{}))
}

func (w *PokemonWriter) Write(pokemon parquet.Pokemon) error {
	return w.writer.Write(columns.Values(pokemon))
}

func (w *PokemonWriter) Finish() error {
	w.writer.Flush()
	return w.writer.Error()
}

func (w *PokemonWriter) Size() int {
	return w.buffer.Len()
}

func (w *PokemonWriter) BufferReader() io.Reader {
	return bytes.NewReader(w.buffer.Bytes())
}
