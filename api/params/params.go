package params

import (
	"net/http"
	"strings"
)

// Normalize filters request arguments into a fresh map. String values
// are trimmed, tabs become spaces and spaces become underscores; values
// that end up empty drop their key entirely. Non-string values pass
// through untouched. Invalid entries are dropped, never reported.
func Normalize(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for key, value := range args {
		s, ok := value.(string)
		if !ok {
			out[key] = value
			continue
		}
		s = strings.TrimSpace(s)
		s = strings.ReplaceAll(s, "\t", " ")
		s = strings.ReplaceAll(s, " ", "_")
		if s == "" {
			continue
		}
		out[key] = s
	}
	return out
}

// FromQuery flattens the request's query string into an argument map,
// keeping the first value of each key.
func FromQuery(r *http.Request) map[string]any {
	query := r.URL.Query()
	args := make(map[string]any, len(query))
	for key, values := range query {
		if len(values) > 0 {
			args[key] = values[0]
		}
	}
	return args
}
