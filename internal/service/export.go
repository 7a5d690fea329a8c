package service

import (
	"strconv"
	"strings"

	"go-inventory-api/internal/model"
)

var exportHeader = []string{"name", "unit", "category", "brand", "stock", "status", "image"}

// productsToCSV serializes products with minimal quoting: a field is
// wrapped in double quotes only when it contains a comma, a quote, or a
// newline, with inner quotes doubled. Stock is always emitted bare. The
// output round-trips through a standard CSV reader.
func productsToCSV(products []model.Product) string {
	var b strings.Builder
	b.WriteString(strings.Join(exportHeader, ","))

	for _, p := range products {
		fields := []string{
			escapeCSV(p.Name),
			escapeCSV(p.Unit),
			escapeCSV(p.Category),
			escapeCSV(p.Brand),
			strconv.Itoa(p.Stock),
			escapeCSV(p.Status),
			escapeCSV(p.Image),
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(fields, ","))
	}

	return b.String()
}

func escapeCSV(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
