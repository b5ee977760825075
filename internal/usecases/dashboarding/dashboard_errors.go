package dashboarding

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var (
	ErrNoData         = errors.New("nenhuma tabela de vendas carregada")
	ErrInvalidFilters = errors.New("filtros inválidos")
)

// Etapas da atualização
const (
	StageFetch     = "fetch"
	StageNormalize = "normalize"
)

// RefreshError falha em uma etapa da atualização da tabela de vendas
type RefreshError struct {
	Source string
	Stage  string
	Err    error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("falha na atualização das vendas (origem %s, etapa %s): %v", e.Source, e.Stage, e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

// ValidateFilters verifica se o período informado é coerente
func ValidateFilters(filters domain.FilterSet) error {
	if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
		return fmt.Errorf("%w: a data de início não pode ser posterior à data de fim", ErrInvalidFilters)
	}
	return nil
}
