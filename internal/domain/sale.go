package domain

import "time"

// Sale é o registro canônico de uma venda, já limpo, tipado e geocodificado
type Sale struct {
	ID           int64     `json:"id"`
	SaleDate     time.Time `json:"sale_date"`
	SaleMonth    string    `json:"sale_month"` // Formato YYYY-MM (ex: 2024-03)
	SaleAmount   int64     `json:"sale_amount"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Customer     string    `json:"customer"`
	CustomerType string    `json:"customer_type"`
	Product      string    `json:"product"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
}

// SalesTotal soma o valor de todas as vendas informadas
func SalesTotal(sales []Sale) int64 {
	var total int64
	for _, sale := range sales {
		total += sale.SaleAmount
	}
	return total
}
