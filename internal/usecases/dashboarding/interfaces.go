package dashboarding

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// RecordSource define a origem dos registros brutos de venda (Firestore, Postgres)
type RecordSource interface {
	// FetchRecords busca todos os registros da coleção/tabela de vendas
	FetchRecords(ctx context.Context) ([]domain.RawRecord, error)

	// Name identifica a origem nos logs e no snapshot
	Name() string
}

// Dashboarder é a interface consumida pelos handlers e pelo agendador
type Dashboarder interface {
	// Refresh busca e normaliza os registros, substituindo a tabela em memória
	Refresh(ctx context.Context) (*domain.Snapshot, error)

	// GetDashboard calcula as agregações para os filtros informados
	GetDashboard(ctx context.Context, filters domain.FilterSet) (*domain.DashboardResponse, error)

	// GetSales retorna a tabela de vendas filtrada
	GetSales(ctx context.Context, filters domain.FilterSet) (*domain.SalesResponse, error)

	// GetFilterOptions retorna os valores disponíveis para os filtros
	GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error)

	// GetReport retorna o relatório da última normalização e o estado da última atualização
	GetReport(ctx context.Context) (*domain.RefreshStatus, error)
}
