package domain

// HeatPoint ponto do mapa de calor: coordenadas e peso (valor da venda)
type HeatPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Weight    int64   `json:"weight"`
}

// LabelValue representa um total agrupado por rótulo (cidade, produto, cliente)
type LabelValue struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// TimeSeriesPoint total de vendas em uma data (formato YYYY-MM-DD)
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

// Views são as agregações consumidas pelos gráficos e pelo mapa
type Views struct {
	Heat       []HeatPoint       `json:"heat"`
	TopCities  []LabelValue      `json:"top_cities"`
	TimeSeries []TimeSeriesPoint `json:"time_series"`
	ByProduct  []LabelValue      `json:"by_product"`
	ByCustomer []LabelValue      `json:"by_customer"`
}

// DashboardResponse resposta completa do dashboard para um conjunto de filtros
type DashboardResponse struct {
	Filters      FilterSet `json:"filters"`
	SnapshotID   string    `json:"snapshot_id"`
	SalesCount   int       `json:"sales_count"`
	TotalRevenue int64     `json:"total_revenue"`
	Views        *Views    `json:"views"`
}

// SalesResponse tabela de vendas filtrada
type SalesResponse struct {
	Filters    FilterSet `json:"filters"`
	SnapshotID string    `json:"snapshot_id"`
	Sales      []Sale    `json:"sales"`
}
