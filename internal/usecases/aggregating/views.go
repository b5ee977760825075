package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// TopCitiesLimit quantidade de cidades no ranking
const TopCitiesLimit = 10

// BuildViews filtra a tabela canônica e calcula as agregações do dashboard
func BuildViews(sales []domain.Sale, filters domain.FilterSet) *domain.Views {
	return Aggregate(Filter(sales, filters))
}

// Aggregate calcula as cinco agregações sobre vendas já filtradas.
// Uma lista vazia produz agregações vazias.
func Aggregate(filtered []domain.Sale) *domain.Views {
	return &domain.Views{
		Heat:       HeatPoints(filtered),
		TopCities:  TopCities(filtered, TopCitiesLimit),
		TimeSeries: TimeSeries(filtered),
		ByProduct:  sumBy(filtered, func(s domain.Sale) string { return s.Product }),
		ByCustomer: sumBy(filtered, func(s domain.Sale) string { return s.Customer }),
	}
}

// HeatPoints um ponto por venda, com o valor como peso
func HeatPoints(sales []domain.Sale) []domain.HeatPoint {
	points := make([]domain.HeatPoint, 0, len(sales))
	for _, sale := range sales {
		points = append(points, domain.HeatPoint{
			Latitude:  sale.Latitude,
			Longitude: sale.Longitude,
			Weight:    sale.SaleAmount,
		})
	}
	return points
}

// TopCities soma por cidade, ordena do maior para o menor total
// (empate: nome da cidade em ordem alfabética) e mantém as primeiras limit
func TopCities(sales []domain.Sale, limit int) []domain.LabelValue {
	totals := sumBy(sales, func(s domain.Sale) string { return s.City })
	if limit >= 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

// TimeSeries soma por data de venda, em ordem crescente de data
func TimeSeries(sales []domain.Sale) []domain.TimeSeriesPoint {
	totals := make(map[time.Time]int64)
	for _, sale := range sales {
		totals[sale.SaleDate] += sale.SaleAmount
	}

	dates := make([]time.Time, 0, len(totals))
	for date := range totals {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	series := make([]domain.TimeSeriesPoint, 0, len(dates))
	for _, date := range dates {
		series = append(series, domain.TimeSeriesPoint{
			Date:  date.Format(time.DateOnly),
			Value: totals[date],
		})
	}
	return series
}

// sumBy soma os valores por rótulo, do maior para o menor total, empates por rótulo
func sumBy(sales []domain.Sale, label func(domain.Sale) string) []domain.LabelValue {
	totals := make(map[string]int64)
	for _, sale := range sales {
		totals[label(sale)] += sale.SaleAmount
	}

	result := make([]domain.LabelValue, 0, len(totals))
	for key, value := range totals {
		result = append(result, domain.LabelValue{Label: key, Value: value})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Value != result[j].Value {
			return result[i].Value > result[j].Value
		}
		return result[i].Label < result[j].Label
	})

	return result
}
