package domain

import "time"

// FilterSet representa os filtros escolhidos pelo usuário no dashboard.
// Listas vazias não restringem; datas nulas equivalem ao período completo da tabela.
type FilterSet struct {
	States        []string   `json:"states,omitempty"`
	CustomerTypes []string   `json:"customer_types,omitempty"`
	Products      []string   `json:"products,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

// FilterOptions valores disponíveis para os filtros do dashboard
type FilterOptions struct {
	States        []string   `json:"states"`
	CustomerTypes []string   `json:"customer_types"`
	Products      []string   `json:"products"`
	MinDate       *time.Time `json:"min_date"`
	MaxDate       *time.Time `json:"max_date"`
}
