package domain

import "time"

// NormalizationReport contabiliza o destino de cada registro bruto durante a normalização
type NormalizationReport struct {
	Input         int            `json:"input"`
	Excluded      int            `json:"excluded"`       // IDs excluídos por política (ex: 19)
	MissingAmount int            `json:"missing_amount"` // Sem valor de venda
	InvalidID     int            `json:"invalid_id"`
	DuplicateID   int            `json:"duplicate_id"`
	InvalidDate   int            `json:"invalid_date"`
	InvalidAmount int            `json:"invalid_amount"`
	LookupMisses  map[string]int `json:"lookup_misses"` // Cidade sem coordenadas -> quantidade
	Output        int            `json:"output"`
}

// Dropped total de registros descartados
func (r NormalizationReport) Dropped() int {
	return r.Input - r.Output
}

// LookupMissCount total de registros descartados por cidade desconhecida
func (r NormalizationReport) LookupMissCount() int {
	total := 0
	for _, count := range r.LookupMisses {
		total += count
	}
	return total
}

// Snapshot é a tabela canônica carregada em memória a partir de uma busca na fonte
type Snapshot struct {
	ID       string              `json:"id"`
	Source   string              `json:"source"`
	LoadedAt time.Time           `json:"loaded_at"`
	Sales    []Sale              `json:"-"`
	Report   NormalizationReport `json:"report"`
}

// RefreshStatus situação da última atualização da tabela canônica
type RefreshStatus struct {
	Snapshot      *Snapshot  `json:"snapshot,omitempty"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
}
