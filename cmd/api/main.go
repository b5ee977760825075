package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/source"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/normalizing"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

func main() {
	// Diretório do fonte, para encontrar o .env local
	_, file, _, _ := runtime.Caller(0)
	chdirErr := os.Chdir(path.Dir(file))

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())
	if chdirErr != nil {
		// Sem o .env local a configuração vem só do ambiente
		logrus.WithError(chdirErr).WithField("dir", path.Dir(file)).Debug("Não foi possível mudar para o diretório do .env")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recordSource, closeSource, err := source.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).WithField("data_source", cfg.Source.Type).Fatal("Erro ao criar a origem dos dados")
	}
	defer closeSource()

	normalizer, err := normalizing.NewFromConfig(cfg.Normalizer)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o normalizador")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	dashboardService := dashboarding.NewService(recordSource, normalizer, metrics.NewDashboardMetrics(reg), cfg.Source.FetchTimeout)

	users, err := authenticating.ParseUsers(cfg.Auth.Users)
	if err != nil {
		logrus.WithError(err).Fatal("AUTH_USERS inválido")
	}
	if len(users) == 0 {
		logrus.Warn("Nenhum usuário configurado em AUTH_USERS, login indisponível")
	}

	authenticator, err := authenticating.NewService(users, cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar a autenticação")
	}

	refreshSyncService := scheduler.NewRefreshSyncService(dashboardService, cfg)
	if err := refreshSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização das vendas")
	} else {
		logrus.Info("Agendador de atualização das vendas iniciado com sucesso")
	}

	// Carga inicial em background, a API sobe mesmo com a origem indisponível
	if cfg.RefreshSync.RefreshOnStartup {
		refreshSyncService.TriggerManualSync()
	}

	server, err := api.New(cfg, dashboardService, authenticator, refreshSyncService, reg)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
