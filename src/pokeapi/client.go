package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultBaseUrl = "https://pokeapi.co/api/v2"
	DefaultTimeout = 10 * time.Second
	retryDelay     = 200 * time.Millisecond
)

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Url        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pokeapi: status=%d url=%s", e.StatusCode, e.Url)
}

type Options struct {
	BaseUrl       string
	Timeout       time.Duration
	RetryAttempts uint
}

type Client struct {
	baseUrl  string
	client   *resty.Client
	sugar    *zap.SugaredLogger
	attempts uint
}

func NewClient(sugar *zap.SugaredLogger, opts Options) *Client {
	baseUrl := strings.TrimRight(strings.TrimSpace(opts.BaseUrl), "/")
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	attempts := opts.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{
		baseUrl:  baseUrl,
		client:   client,
		sugar:    sugar,
		attempts: attempts,
	}
}

func (c *Client) resolveUrl(pathOrUrl string) string {
	if strings.HasPrefix(pathOrUrl, "http://") || strings.HasPrefix(pathOrUrl, "https://") {
		return pathOrUrl
	}
	if !strings.HasPrefix(pathOrUrl, "/") {
		pathOrUrl = "/" + pathOrUrl
	}
	return c.baseUrl + pathOrUrl
}

func (c *Client) getAndDecode(ctx context.Context, pathOrUrl string, target any) error {
	url := c.resolveUrl(pathOrUrl)
	return retry.Do(
		func() error {
			return c.fetch(ctx, url, target)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.sugar.Warnf("Retrying %s after attempt %d: %s", url, n+1, err)
		}),
	)
}

func (c *Client) fetch(ctx context.Context, url string, target any) error {
	c.sugar.Debugf("Fetching %s", url)
	resp, err := c.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	if resp.IsError() {
		return &StatusError{StatusCode: resp.StatusCode(), Url: url}
	}
	if err := json.Unmarshal(resp.Body(), target); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError ||
			statusErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

func (c *Client) ListPokemon(ctx context.Context, limit, offset int) (PokemonListResult, error) {
	var result PokemonListResult
	err := c.getAndDecode(ctx, fmt.Sprintf("/pokemon?limit=%d&offset=%d", limit, offset), &result)
	return result, err
}

// GetPokemon accepts either a numeric id or a name.
func (c *Client) GetPokemon(ctx context.Context, idOrName string) (PokemonResponse, error) {
	var pokemon PokemonResponse
	err := c.getAndDecode(ctx, "/pokemon/"+idOrName, &pokemon)
	return pokemon, err
}

func (c *Client) GetSpecies(ctx context.Context, id int) (PokemonSpecies, error) {
	var species PokemonSpecies
	err := c.getAndDecode(ctx, fmt.Sprintf("/pokemon-species/%d", id), &species)
	return species, err
}

func (c *Client) GetType(ctx context.Context, name string) (TypeResponse, error) {
	var typeResponse TypeResponse
	err := c.getAndDecode(ctx, "/type/"+strings.ToLower(name), &typeResponse)
	return typeResponse, err
}

// GetEvolutionChain follows the absolute URL embedded in a species record.
func (c *Client) GetEvolutionChain(ctx context.Context, url string) (EvolutionChain, error) {
	var chain EvolutionChain
	err := c.getAndDecode(ctx, url, &chain)
	return chain, err
}
