package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
)

// RefreshSyncConfig representa a configuração do agendador de atualização das vendas
type RefreshSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
	Timeout      time.Duration
}

// RefreshSyncService recarrega periodicamente a tabela de vendas a partir da origem
type RefreshSyncService struct {
	scheduler           *gocron.Scheduler
	config              RefreshSyncConfig
	dashboarder         dashboarding.Dashboarder
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

// NewRefreshSyncService cria uma nova instância do serviço de atualização das vendas
func NewRefreshSyncService(dashboarder dashboarding.Dashboarder, appConfig *config.Config) *RefreshSyncService {
	refreshConfig := RefreshSyncConfig{
		CronSchedule: appConfig.RefreshSync.CronSchedule,
		SyncEnabled:  appConfig.RefreshSync.Enabled,
		Timeout:      appConfig.Source.FetchTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"sync_enabled":  refreshConfig.SyncEnabled,
		"timeout":       refreshConfig.Timeout.String(),
	}).Info("Configuração do agendador de atualização das vendas carregada")

	return &RefreshSyncService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      refreshConfig,
		dashboarder: dashboarder,
	}
}

// Start inicia o agendador
func (s *RefreshSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Atualização agendada das vendas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atualização das vendas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncSales()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização das vendas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização das vendas")
		s.scheduler.Stop()
	}()

	return nil
}

// syncSales executa uma atualização, ignorando se outra já estiver em andamento
func (s *RefreshSyncService) syncSales() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização das vendas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	ctx := context.Background()
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	snapshot, err := s.dashboarder.Refresh(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		logrus.WithError(err).Error("Erro na atualização agendada das vendas")
		return
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id": snapshot.ID,
		"sales":       len(snapshot.Sales),
	}).Info("Atualização agendada das vendas concluída")
}

// TriggerManualSync inicia manualmente uma atualização das vendas
func (s *RefreshSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização das vendas já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual das vendas")
	go s.syncSales()
}

// GetStatus retorna o status atual do agendador
func (s *RefreshSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
