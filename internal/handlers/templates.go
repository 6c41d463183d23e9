package handlers

import (
	"strconv"

	"kwbrand/internal/tabular"
)

// TemplateFuncs are the helpers available to the HTML views.
func TemplateFuncs() map[string]any {
	return map[string]any{
		"percent": func(v float64) string {
			return strconv.FormatFloat(v*100, 'f', 2, 64) + "%"
		},
		"number": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"cell": tabular.FormatValue,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}
}
