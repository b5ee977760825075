package aggregating

import (
	"sort"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Options valores distintos disponíveis para os filtros e o período completo da tabela
func Options(sales []domain.Sale) *domain.FilterOptions {
	minDate, maxDate := DateRange(sales)

	return &domain.FilterOptions{
		States:        distinct(sales, func(s domain.Sale) string { return s.State }),
		CustomerTypes: distinct(sales, func(s domain.Sale) string { return s.CustomerType }),
		Products:      distinct(sales, func(s domain.Sale) string { return s.Product }),
		MinDate:       minDate,
		MaxDate:       maxDate,
	}
}

func distinct(sales []domain.Sale, value func(domain.Sale) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)

	for _, sale := range sales {
		v := value(sale)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}

	sort.Strings(values)
	return values
}
