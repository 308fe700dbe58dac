package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/BielosX/wombat/pokedex/src/export"
	"github.com/BielosX/wombat/pokedex/src/server"
	"github.com/BielosX/wombat/pokedex/src/usecase"
	"github.com/spf13/cobra"
)

type appLoader func() (*app, error)

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newServeCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.syncLogger()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx, a.cfg.Server.Addr, a.catalog, a.sugar)
		},
	}
}

func newListCommand(load appLoader) *cobra.Command {
	var offset, limit int
	command := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.syncLogger()
			page, err := a.catalog.List.Execute(cmd.Context(), offset, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	command.Flags().IntVar(&offset, "offset", 0, "zero-based offset of the page")
	command.Flags().IntVar(&limit, "limit", 20, "page size")
	return command
}

func newGetCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print the detail record of one Pokémon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", args[0], err)
			}
			a, err := load()
			if err != nil {
				return err
			}
			defer a.syncLogger()
			detail, err := a.catalog.Detail.Execute(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), detail)
		},
	}
}

func newSearchCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog by name, or read queries from stdin when none is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.syncLogger()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if len(args) == 0 {
				session := usecase.NewSearchSession(a.catalog.Search, a.sugar)
				return runInteractiveSearch(ctx, session, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			results, err := a.catalog.Search.Execute(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), results)
		},
	}
}

// runInteractiveSearch submits every input line as a new query. A line
// arriving while an earlier search is in flight supersedes it, and only
// the latest results are printed.
func runInteractiveSearch(ctx context.Context, session *usecase.SearchSession, in io.Reader, out io.Writer) error {
	var (
		wg    sync.WaitGroup
		outMu sync.Mutex
	)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		pending := session.Begin(ctx, scanner.Text())
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pending.Wait()
			if errors.Is(err, usecase.ErrSuperseded) || errors.Is(err, context.Canceled) {
				return
			}
			outMu.Lock()
			defer outMu.Unlock()
			if err != nil {
				fmt.Fprintf(out, "error loading: %s\n", err)
				return
			}
			_ = printJSON(out, session.Results())
		}()
	}
	wg.Wait()
	return scanner.Err()
}

func newTypeCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "type <name>",
		Short: "Print every Pokémon of a type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.syncLogger()
			members, err := a.catalog.ByType.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), members)
		},
	}
}

func newExportCommand(load appLoader) *cobra.Command {
	var request export.ScheduleRequest
	command := &cobra.Command{
		Use:   "export",
		Short: "Export pages of detail records to S3 as Parquet and CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.syncLogger()
			ctx := cmd.Context()
			exporter, err := a.newExporter(ctx)
			if err != nil {
				return err
			}
			for _, schedule := range export.ScheduleTasks(request) {
				result, err := exporter.Run(ctx, schedule)
				if err != nil {
					return err
				}
				if err := printJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			}
			return nil
		},
	}
	command.Flags().IntVar(&request.StartOffset, "offset", 0, "offset of the first page")
	command.Flags().IntVar(&request.PageSize, "page-size", 50, "Pokémon per exported file")
	command.Flags().IntVar(&request.PageCount, "pages", 1, "number of pages to export")
	return command
}
