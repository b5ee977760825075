package aggregating

import (
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func sale(id int64, saleDate time.Time, amount int64, city, state, customerType, product, customer string) domain.Sale {
	return domain.Sale{
		ID:           id,
		SaleDate:     saleDate,
		SaleMonth:    saleDate.Format("2006-01"),
		SaleAmount:   amount,
		City:         city,
		State:        state,
		Customer:     customer,
		CustomerType: customerType,
		Product:      product,
		Latitude:     -29.1,
		Longitude:    -51.1,
	}
}

func sampleSales() []domain.Sale {
	return []domain.Sale{
		sale(1, date(2024, 3, 1), 100, "Caxias do Sul", "RS", "Varejo", "Vinho Tinto", "Mercado A"),
		sale(2, date(2024, 3, 1), 250, "Porto Alegre", "RS", "Atacado", "Suco de Uva", "Distribuidora B"),
		sale(3, date(2024, 3, 2), 300, "Goiânia", "GO", "Varejo", "Vinho Tinto", "Mercado C"),
		sale(4, date(2024, 3, 5), 50, "Caxias do Sul", "RS", "Varejo", "Espumante", "Mercado A"),
		sale(5, date(2024, 4, 10), 700, "Araraquara", "SP", "Atacado", "Suco de Uva", "Distribuidora B"),
		sale(6, date(2024, 4, 11), 20, "Uruaçu", "GO", "Restaurante", "Vinho Tinto", "Cantina D"),
	}
}
