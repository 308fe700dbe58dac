package pokemon

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID extracts the trailing numeric path segment of a resource URL,
// e.g. https://pokeapi.co/api/v2/pokemon/25/ yields 25.
func ParseID(url string) (int, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(url), "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return 0, fmt.Errorf("%w: no path segment in %q", ErrInvalidID, url)
	}
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, url)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: non-positive id in %q", ErrInvalidID, url)
	}
	return id, nil
}
