package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/BielosX/wombat/pokedex/src/pokemon"
	"github.com/BielosX/wombat/pokedex/src/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const errorLoading = "error loading"

type handlers struct {
	catalog *usecase.Catalog
	sugar   *zap.SugaredLogger
}

type errorResponse struct {
	Error string `json:"error"`
}

type genderResponse struct {
	Genderless bool    `json:"genderless"`
	Male       float64 `json:"male"`
	Female     float64 `json:"female"`
}

type detailResponse struct {
	pokemon.Pokemon
	WeightKg   float64        `json:"weightKg"`
	HeightCm   float64        `json:"heightCm"`
	Gender     genderResponse `json:"gender"`
	TypeColors []string       `json:"typeColors"`
}

type listResponse[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

func toDetailResponse(p pokemon.Pokemon) detailResponse {
	male, female, ok := p.GenderSplit()
	return detailResponse{
		Pokemon:    p,
		WeightKg:   p.WeightKg(),
		HeightCm:   p.HeightCm(),
		Gender:     genderResponse{Genderless: !ok, Male: male, Female: female},
		TypeColors: pokemon.TypeColors(p.Types),
	}
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", usecase.DefaultOffset)
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset must be an integer")
		return
	}
	limit, err := queryInt(r, "limit", usecase.DefaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	page, err := h.catalog.List.Execute(r.Context(), offset, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handlers) detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}
	p, err := h.catalog.Detail.Execute(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(p))
}

// search answers an empty result set for a blank query, like the search
// box does before anything is typed.
func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusOK, listResponse[pokemon.Summary]{Results: []pokemon.Summary{}})
		return
	}
	results, err := h.catalog.Search.Execute(r.Context(), query)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[pokemon.Summary]{Count: len(results), Results: results})
}

// byType paginates over the full membership list, which the upstream
// returns unpaged.
func (h *handlers) byType(w http.ResponseWriter, r *http.Request) {
	typeName := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "type")))
	offset, err := queryInt(r, "offset", 0)
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	members, err := h.catalog.ByType.Execute(r.Context(), typeName)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[pokemon.Pokemon]{
		Count:   len(members),
		Results: paginate(members, offset, limit),
	})
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pokemon.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, pokemon.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "invalid id")
	case r.Context().Err() != nil:
		h.sugar.Debugf("Request %s cancelled: %s", r.URL.Path, err)
	default:
		h.sugar.Errorf("Request %s failed: %s", r.URL.Path, err)
		writeError(w, http.StatusBadGateway, errorLoading)
	}
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
