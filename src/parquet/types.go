package parquet

import "github.com/BielosX/wombat/pokedex/src/pokemon"

// Pokemon is one export row. A Pokémon with two types yields two rows.
type Pokemon struct {
	Id         int32  `parquet:"name=id, type=INT32"`
	Name       string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Weight     int32  `parquet:"name=weight, type=INT32"`
	Height     int32  `parquet:"name=height, type=INT32"`
	Type       string `parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8"`
	Generation int32  `parquet:"name=generation, type=INT32"`
	Category   string `parquet:"name=category, type=BYTE_ARRAY, convertedtype=UTF8"`
	GenderRate int32  `parquet:"name=gender_rate, type=INT32"`
}

func ToPokemon(p pokemon.Pokemon) []Pokemon {
	rows := make([]Pokemon, 0, len(p.Types))
	for _, typeName := range p.Types {
		rows = append(rows, Pokemon{
			Id:         int32(p.ID),
			Name:       p.Name,
			Weight:     int32(p.Weight),
			Height:     int32(p.Height),
			Type:       typeName,
			Generation: int32(p.Generation),
			Category:   p.Category,
			GenderRate: int32(p.GenderRate),
		})
	}
	return rows
}
