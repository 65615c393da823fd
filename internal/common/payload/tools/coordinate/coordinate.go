// coordinate - пакет для разбора и нормализации географических координат.
package coordinate

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize - удаляет незначащие нули после десятичной точки и висящую точку.
// Работает со строкой в исходном виде, чтобы не вносить артефакты форматирования float.
// Целая часть и экспоненциальная запись не изменяются.
func Normalize(raw string) string {
	if !strings.Contains(raw, ".") || strings.ContainsAny(raw, "eE") {
		return raw
	}
	normalized := strings.TrimRight(raw, "0")
	normalized = strings.TrimSuffix(normalized, ".")
	if normalized == "" || normalized == "+" || normalized == "-" {
		return "0"
	}
	return normalized
}

// Parse - преобразует строку координаты в число.
func Parse(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse coordinate %q error, %w", raw, err)
	}
	return v, nil
}
