package normalizing

import (
	"errors"
	"strings"
	"time"
)

var errUnsupportedDateType = errors.New("tipo de data não suportado")

// dayFirstLayouts formatos aceitos, dia antes do mês. O formato ISO é aceito
// porque não é ambíguo.
var dayFirstLayouts = []string{
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	time.DateOnly,
	time.DateTime,
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseSaleDate interpreta a data de venda (dia primeiro) e devolve a data à meia-noite UTC.
// Valores time.Time são convertidos para loc antes do truncamento.
func ParseSaleDate(value any, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch v := value.(type) {
	case time.Time:
		return truncateDate(v.In(loc)), nil
	case *time.Time:
		if v == nil {
			return time.Time{}, errUnsupportedDateType
		}
		return truncateDate(v.In(loc)), nil
	case string:
		return parseDayFirst(v)
	case []byte:
		return parseDayFirst(string(v))
	default:
		return time.Time{}, errUnsupportedDateType
	}
}

func parseDayFirst(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	var firstErr error
	for _, layout := range dayFirstLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return truncateDate(parsed), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, firstErr
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SaleMonth formata o mês da venda como YYYY-MM
func SaleMonth(date time.Time) string {
	return date.Format("2006-01")
}
