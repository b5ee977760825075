package dashboarding

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/normalizing"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"golang.org/x/sync/singleflight"
)

const snapshotIDSize = 12

var _ Dashboarder = (*Service)(nil)

// Service mantém a tabela canônica em memória e calcula as agregações sob demanda
type Service struct {
	source     RecordSource
	normalizer *normalizing.Normalizer
	metrics    *metrics.DashboardMetrics
	now        func() time.Time

	// Limite de cada atualização, independente de quem a disparou
	fetchTimeout time.Duration

	refreshGroup singleflight.Group

	mu            sync.RWMutex
	snapshot      *domain.Snapshot
	lastAttemptAt *time.Time
	lastError     error
}

// NewService cria o serviço do dashboard. A tabela é carregada na primeira consulta
// ou por Refresh. fetchTimeout <= 0 desativa o limite de tempo da atualização.
func NewService(source RecordSource, normalizer *normalizing.Normalizer, m *metrics.DashboardMetrics, fetchTimeout time.Duration) *Service {
	return &Service{
		source:       source,
		normalizer:   normalizer,
		metrics:      m,
		now:          time.Now,
		fetchTimeout: fetchTimeout,
	}
}

// Refresh busca os registros na origem e substitui a tabela em memória.
// Em caso de erro a tabela anterior é mantida. Chamadas simultâneas
// compartilham a mesma execução, que não é cancelada quando um dos
// chamadores desiste: só o fetchTimeout a interrompe.
func (s *Service) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	ch := s.refreshGroup.DoChan("refresh", func() (any, error) {
		refreshCtx := context.WithoutCancel(ctx)
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			refreshCtx, cancel = context.WithTimeout(refreshCtx, s.fetchTimeout)
			defer cancel()
		}
		return s.refresh(refreshCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			logrus.Debug("Atualização de vendas compartilhada com execução em andamento")
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.Snapshot), nil
	}
}

func (s *Service) refresh(ctx context.Context) (*domain.Snapshot, error) {
	startTime := s.now()
	sourceName := s.source.Name()

	logrus.WithField("source", sourceName).Info("Iniciando atualização da tabela de vendas")

	records, err := s.source.FetchRecords(ctx)
	if err != nil {
		return nil, s.fail(startTime, &RefreshError{Source: sourceName, Stage: StageFetch, Err: err})
	}

	result, err := s.normalizer.Normalize(records)
	if err != nil {
		return nil, s.fail(startTime, &RefreshError{Source: sourceName, Stage: StageNormalize, Err: err})
	}

	id, err := utils.GenerateID(snapshotIDSize)
	if err != nil {
		return nil, s.fail(startTime, err)
	}

	snapshot := &domain.Snapshot{
		ID:       id,
		Source:   sourceName,
		LoadedAt: s.now(),
		Sales:    result.Sales,
		Report:   result.Report,
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.lastAttemptAt = &startTime
	s.lastError = nil
	s.mu.Unlock()

	s.recordRows(result.Report)
	s.metrics.SetCanonicalRows(len(snapshot.Sales))
	s.metrics.ObserveRefresh("success", time.Since(startTime))

	logrus.WithFields(logrus.Fields{
		"source":      sourceName,
		"snapshot_id": snapshot.ID,
		"sales":       len(snapshot.Sales),
		"dropped":     result.Report.Dropped(),
		"duration":    time.Since(startTime).String(),
	}).Info("Tabela de vendas atualizada")

	return snapshot, nil
}

func (s *Service) fail(startTime time.Time, err error) error {
	s.mu.Lock()
	s.lastAttemptAt = &startTime
	s.lastError = err
	kept := s.snapshot != nil
	s.mu.Unlock()

	s.metrics.ObserveRefresh("error", time.Since(startTime))

	logrus.WithError(err).WithField("previous_snapshot_kept", kept).Error("Erro ao atualizar tabela de vendas")

	return err
}

func (s *Service) recordRows(report domain.NormalizationReport) {
	s.metrics.AddRows("kept", report.Output)
	s.metrics.AddRows("excluded", report.Excluded)
	s.metrics.AddRows("missing_amount", report.MissingAmount)
	s.metrics.AddRows("invalid_id", report.InvalidID)
	s.metrics.AddRows("duplicate_id", report.DuplicateID)
	s.metrics.AddRows("invalid_date", report.InvalidDate)
	s.metrics.AddRows("invalid_amount", report.InvalidAmount)
	s.metrics.AddRows("lookup_miss", report.LookupMissCount())
}

// currentSnapshot retorna a tabela em memória, carregando da origem se ainda não existir
func (s *Service) currentSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	snapshot := s.snapshot
	s.mu.RUnlock()

	if snapshot != nil {
		return snapshot, nil
	}

	return s.Refresh(ctx)
}

// GetDashboard calcula as cinco agregações e os totais das vendas filtradas
func (s *Service) GetDashboard(ctx context.Context, filters domain.FilterSet) (*domain.DashboardResponse, error) {
	if err := ValidateFilters(filters); err != nil {
		return nil, err
	}

	snapshot, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	filtered := aggregating.Filter(snapshot.Sales, filters)

	return &domain.DashboardResponse{
		Filters:      filters,
		SnapshotID:   snapshot.ID,
		SalesCount:   len(filtered),
		TotalRevenue: domain.SalesTotal(filtered),
		Views:        aggregating.Aggregate(filtered),
	}, nil
}

// GetSales retorna a tabela de vendas filtrada
func (s *Service) GetSales(ctx context.Context, filters domain.FilterSet) (*domain.SalesResponse, error) {
	if err := ValidateFilters(filters); err != nil {
		return nil, err
	}

	snapshot, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.SalesResponse{
		Filters:    filters,
		SnapshotID: snapshot.ID,
		Sales:      aggregating.Filter(snapshot.Sales, filters),
	}, nil
}

// GetFilterOptions valores distintos de estado, tipo de cliente e produto, e o período da tabela
func (s *Service) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	snapshot, err := s.currentSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return aggregating.Options(snapshot.Sales), nil
}

// GetReport não dispara carga: reporta apenas o que já aconteceu
func (s *Service) GetReport(_ context.Context) (*domain.RefreshStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil && s.lastAttemptAt == nil {
		return nil, ErrNoData
	}

	status := &domain.RefreshStatus{
		Snapshot:      s.snapshot,
		LastAttemptAt: s.lastAttemptAt,
	}
	if s.lastError != nil {
		status.LastError = s.lastError.Error()
	}

	return status, nil
}
