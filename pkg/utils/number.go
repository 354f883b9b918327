package utils

import (
	"fmt"

	"github.com/spf13/cast"
)

// ParseID converte o parâmetro de rota num id positivo
func ParseID(raw string) (int64, error) {
	id, err := cast.ToInt64E(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido: %q", raw)
	}
	return id, nil
}

// ParseLimit lê o parâmetro limit da query. Vazio usa o padrão; valores acima
// do máximo são reduzidos ao máximo.
func ParseLimit(raw string, def, max int) (int, error) {
	if raw == "" {
		return def, nil
	}

	limit, err := cast.ToIntE(raw)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("limit inválido: %q", raw)
	}
	if limit > max {
		return max, nil
	}
	return limit, nil
}
