package export

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/BielosX/wombat/pokedex/src/csv"
	"github.com/BielosX/wombat/pokedex/src/parquet"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	parquetContentType = "application/vnd.apache.parquet"
	csvContentType     = "text/csv"
)

var ErrNoBucket = errors.New("export bucket not configured")

type ScheduleRequest struct {
	PageSize    int `json:"pageSize"`
	StartOffset int `json:"startOffset"`
	PageCount   int `json:"pageCount"`
}

type Schedule struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type Result struct {
	RunId           string `json:"runId"`
	Exported        int    `json:"exported"`
	ParquetFileName string `json:"parquetFileName,omitempty"`
	CsvFileName     string `json:"csvFileName,omitempty"`
}

// Uploader is satisfied by *s3.Client.
type Uploader interface {
	PutFile(ctx context.Context, reader io.Reader, bucket, key, contentType string) error
}

// ScheduleTasks splits a range of the catalog into pages of PageSize.
func ScheduleTasks(request ScheduleRequest) []Schedule {
	result := make([]Schedule, 0, max(request.PageCount, 0))
	for i := 0; i < request.PageCount; i++ {
		result = append(result, Schedule{
			Limit:  request.PageSize,
			Offset: request.StartOffset + i*request.PageSize,
		})
	}
	return result
}

type Exporter struct {
	repository  pokemon.Repository
	uploader    Uploader
	bucket      string
	concurrency int
	sugar       *zap.SugaredLogger
	newRunId    func() string
}

func NewExporter(repository pokemon.Repository, uploader Uploader, bucket string, concurrency int, sugar *zap.SugaredLogger) *Exporter {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Exporter{
		repository:  repository,
		uploader:    uploader,
		bucket:      bucket,
		concurrency: concurrency,
		sugar:       sugar,
		newRunId:    uuid.NewString,
	}
}

// Run exports one page of detail records as Parquet and CSV. An empty page
// uploads nothing.
func (e *Exporter) Run(ctx context.Context, schedule Schedule) (*Result, error) {
	if e.bucket == "" {
		return nil, ErrNoBucket
	}
	e.sugar.Infof("Starting export, limit: %d offset: %d", schedule.Limit, schedule.Offset)
	page, err := e.repository.List(ctx, schedule.Offset, schedule.Limit)
	if err != nil {
		return nil, fmt.Errorf("list page: %w", err)
	}
	result := &Result{RunId: e.newRunId(), Exported: len(page.Results)}
	e.sugar.Infof("Got %d Pokemon results", len(page.Results))
	if len(page.Results) == 0 {
		return result, nil
	}

	details, err := e.fetchDetails(ctx, page.Results)
	if err != nil {
		return nil, err
	}

	pokemonWriter, err := parquet.NewPokemonWriter()
	if err != nil {
		e.sugar.Errorf("Failed to create Pokemon Parquet Writer: %s", err)
		return nil, err
	}
	csvWriter := csv.NewPokemonWriter()
	if err := csvWriter.WriteHeader(); err != nil {
		return nil, err
	}
	for _, detail := range details {
		for _, entry := range parquet.ToPokemon(detail) {
			e.sugar.Debugf("Writing Pokemon %s (%s)", entry.Name, entry.Type)
			if err := pokemonWriter.WritePokemon(&entry); err != nil {
				e.sugar.Errorf("Error writing Pokemon to Parquet: %s", err)
				return nil, err
			}
			if err := csvWriter.Write(entry); err != nil {
				e.sugar.Errorf("Error writing Pokemon to CSV: %s", err)
				return nil, err
			}
		}
	}
	if err := pokemonWriter.Finish(); err != nil {
		return nil, err
	}
	if err := csvWriter.Finish(); err != nil {
		return nil, err
	}

	firstId := details[0].ID
	lastId := details[len(details)-1].ID
	result.ParquetFileName = fmt.Sprintf("pokemons/%s/%d_%d.parquet", result.RunId, firstId, lastId)
	result.CsvFileName = fmt.Sprintf("pokemons/%s/%d_%d.csv", result.RunId, firstId, lastId)

	e.sugar.Infof("Sending parquet file of size %d to S3", pokemonWriter.Size())
	if err := e.uploader.PutFile(ctx, pokemonWriter.BufferReader(), e.bucket, result.ParquetFileName, parquetContentType); err != nil {
		return nil, fmt.Errorf("upload %s: %w", result.ParquetFileName, err)
	}
	e.sugar.Infof("Sending CSV file of size %d to S3", csvWriter.Size())
	if err := e.uploader.PutFile(ctx, csvWriter.BufferReader(), e.bucket, result.CsvFileName, csvContentType); err != nil {
		return nil, fmt.Errorf("upload %s: %w", result.CsvFileName, err)
	}
	return result, nil
}

func (e *Exporter) fetchDetails(ctx context.Context, summaries []pokemon.Summary) ([]pokemon.Pokemon, error) {
	details := make([]pokemon.Pokemon, len(summaries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, summary := range summaries {
		g.Go(func() error {
			detail, err := e.repository.GetByID(gctx, summary.ID)
			if err != nil {
				return fmt.Errorf("export pokemon %d: %w", summary.ID, err)
			}
			details[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}
