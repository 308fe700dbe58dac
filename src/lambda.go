package main

import (
	"context"
	"fmt"
	"os"

	"github.com/BielosX/wombat/pokedex/src/export"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"
)

type ListRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type DetailRequest struct {
	Id int `json:"id"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type TypeRequest struct {
	Type string `json:"type"`
}

type lambdaHandlers struct {
	app *app
}

func (h *lambdaHandlers) list(ctx context.Context, request ListRequest) (pokemon.Page, error) {
	h.app.sugar.Infof("Starting List Handler, offset: %d, limit: %d", request.Offset, request.Limit)
	return h.app.catalog.List.Execute(ctx, request.Offset, request.Limit)
}

func (h *lambdaHandlers) detail(ctx context.Context, request DetailRequest) (pokemon.Pokemon, error) {
	h.app.sugar.Infof("Starting Detail Handler, id: %d", request.Id)
	return h.app.catalog.Detail.Execute(ctx, request.Id)
}

func (h *lambdaHandlers) search(ctx context.Context, request SearchRequest) ([]pokemon.Summary, error) {
	h.app.sugar.Infof("Starting Search Handler, query: %q", request.Query)
	return h.app.catalog.Search.Execute(ctx, request.Query)
}

func (h *lambdaHandlers) byType(ctx context.Context, request TypeRequest) ([]pokemon.Pokemon, error) {
	h.app.sugar.Infof("Starting Type Handler, type: %s", request.Type)
	return h.app.catalog.ByType.Execute(ctx, request.Type)
}

func (h *lambdaHandlers) scheduler(request export.ScheduleRequest) ([]export.Schedule, error) {
	h.app.sugar.Infof("Starting Schedule Tasks Handler, pageSize: %d, startOffset: %d, pageCount: %d",
		request.PageSize,
		request.StartOffset,
		request.PageCount)
	return export.ScheduleTasks(request), nil
}

func newLambdaCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run as an AWS Lambda handler selected by _HANDLER",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.syncLogger()
			h := &lambdaHandlers{app: a}
			handler := os.Getenv("_HANDLER")
			switch handler {
			case "list":
				lambda.Start(h.list)
			case "detail":
				lambda.Start(h.detail)
			case "search":
				lambda.Start(h.search)
			case "type":
				lambda.Start(h.byType)
			case "scheduler":
				lambda.Start(h.scheduler)
			case "exporter":
				exporter, err := a.newExporter(cmd.Context())
				if err != nil {
					return err
				}
				lambda.Start(exporter.Run)
			default:
				return fmt.Errorf("unknown handler %q", handler)
			}
			return nil
		},
	}
}
