package cmd

import (
	"strings"

	"spotweb/internal/domain"
	"spotweb/internal/errors"
)

// parseParams turns repeated key=value flags into query params. A key given
// more than once becomes a list, which the serializer joins with commas.
func parseParams(pairs []string) (domain.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	order := make([]string, 0, len(pairs))
	values := make(map[string][]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.NewValidationError("param", pair, "key=value",
				"parameter must be in key=value form")
		}
		if _, seen := values[key]; !seen {
			order = append(order, key)
		}
		values[key] = append(values[key], value)
	}

	params := make(domain.Params, len(order))
	for _, key := range order {
		if list := values[key]; len(list) == 1 {
			params[key] = list[0]
		} else {
			params[key] = list
		}
	}
	return params, nil
}
