package pokemon

import "strings"

const fallbackColor = "#777777"

var typeColors = map[string]string{
	"normal":   "#A8A878",
	"fire":     "#F08030",
	"water":    "#6890F0",
	"electric": "#F8D030",
	"grass":    "#78C850",
	"ice":      "#98D8D8",
	"fighting": "#C03028",
	"poison":   "#B567CE",
	"ground":   "#D97845",
	"flying":   "#A890F0",
	"psychic":  "#F85888",
	"bug":      "#A8B820",
	"rock":     "#B8A038",
	"ghost":    "#705898",
	"dragon":   "#7038F8",
	"dark":     "#5A5465",
	"steel":    "#B8B8D0",
	"fairy":    "#EE99AC",
}

func TypeColor(tag string) string {
	if color, ok := typeColors[strings.ToLower(tag)]; ok {
		return color
	}
	return fallbackColor
}

func TypeColors(tags []string) []string {
	colors := make([]string, 0, len(tags))
	for _, tag := range tags {
		colors = append(colors, TypeColor(tag))
	}
	return colors
}
