package columns

import (
	"fmt"
	"reflect"
	"strings"
)

const tagName = "parquet"

// Names lists the parquet column names of a struct type, in field order.
func Names(v any) []string {
	t := reflect.TypeOf(v)
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		properties := ParseTag(t.Field(i).Tag.Get(tagName))
		name, ok := properties["name"]
		if !ok {
			name = strings.ToLower(t.Field(i).Name)
		}
		names = append(names, name)
	}
	return names
}

// Values formats every field of v in the order Names reports them.
func Values(v any) []string {
	value := reflect.ValueOf(v)
	values := make([]string, 0, value.NumField())
	for i := 0; i < value.NumField(); i++ {
		values = append(values, fmt.Sprint(value.Field(i).Interface()))
	}
	return values
}

// ParseTag splits "name=weight, type=INT32" into its key/value pairs.
func ParseTag(tag string) map[string]string {
	result := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok {
			continue
		}
		result[key] = value
	}
	return result
}
