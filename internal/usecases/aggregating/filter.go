package aggregating

import (
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Filter mantém as vendas que atendem a todos os filtros não vazios.
// As datas são inclusivas; datas nulas não restringem o período.
func Filter(sales []domain.Sale, filters domain.FilterSet) []domain.Sale {
	states := toSet(filters.States)
	customerTypes := toSet(filters.CustomerTypes)
	products := toSet(filters.Products)

	var start, end time.Time
	if filters.StartDate != nil {
		start = dateOnly(*filters.StartDate)
	}
	if filters.EndDate != nil {
		end = dateOnly(*filters.EndDate)
	}

	filtered := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if filters.StartDate != nil && sale.SaleDate.Before(start) {
			continue
		}
		if filters.EndDate != nil && sale.SaleDate.After(end) {
			continue
		}
		if !matches(states, sale.State) || !matches(customerTypes, sale.CustomerType) || !matches(products, sale.Product) {
			continue
		}
		filtered = append(filtered, sale)
	}

	return filtered
}

// DateRange menor e maior data de venda da tabela. Retorna nil para tabela vazia.
func DateRange(sales []domain.Sale) (*time.Time, *time.Time) {
	if len(sales) == 0 {
		return nil, nil
	}

	minDate, maxDate := sales[0].SaleDate, sales[0].SaleDate
	for _, sale := range sales[1:] {
		if sale.SaleDate.Before(minDate) {
			minDate = sale.SaleDate
		}
		if sale.SaleDate.After(maxDate) {
			maxDate = sale.SaleDate
		}
	}

	return &minDate, &maxDate
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func matches(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[value]
	return ok
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
