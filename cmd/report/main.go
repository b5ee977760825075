package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/source"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/report"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/normalizing"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Gera no terminal as mesmas agregações do dashboard, lendo direto da origem
func main() {
	states := flag.String("state", "", "Estados separados por vírgula (ex: RS,GO)")
	customerTypes := flag.String("customer-type", "", "Tipos de cliente separados por vírgula")
	products := flag.String("product", "", "Produtos separados por vírgula")
	startDate := flag.String("start", "", "Data inicial (YYYY-MM-DD)")
	endDate := flag.String("end", "", "Data final (YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	// Só avisos, a saída padrão fica com as tabelas
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)

	filters, err := buildFilters(*states, *customerTypes, *products, *startDate, *endDate)
	if err != nil {
		logrus.Fatal(err)
	}

	timeout := cfg.Source.FetchTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	recordSource, closeSource, err := source.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao criar a origem dos dados")
	}
	defer closeSource()

	normalizer, err := normalizing.NewFromConfig(cfg.Normalizer)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar o normalizador")
	}

	service := dashboarding.NewService(recordSource, normalizer, nil, timeout)

	snapshot, err := service.Refresh(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar as vendas")
	}

	dashboard, err := service.GetDashboard(ctx, filters)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao calcular as agregações")
	}

	fmt.Printf("# Vendas (%s, %s)\n\n%s\n\n", snapshot.Source, snapshot.LoadedAt.Format("02/01/2006 15:04"),
		report.Summary(dashboard.SalesCount, dashboard.TotalRevenue))

	if err := report.WriteViews(os.Stdout, dashboard.Views, snapshot.Report); err != nil {
		logrus.Fatal(err)
	}
}

func buildFilters(states, customerTypes, products, start, end string) (domain.FilterSet, error) {
	startDate, err := utils.ParseDate(start)
	if err != nil {
		return domain.FilterSet{}, fmt.Errorf("data inicial inválida: %w", err)
	}

	endDate, err := utils.ParseDate(end)
	if err != nil {
		return domain.FilterSet{}, fmt.Errorf("data final inválida: %w", err)
	}

	filters := domain.FilterSet{
		States:        utils.SplitValues([]string{states}),
		CustomerTypes: utils.SplitValues([]string{customerTypes}),
		Products:      utils.SplitValues([]string{products}),
		StartDate:     startDate,
		EndDate:       endDate,
	}

	return filters, dashboarding.ValidateFilters(filters)
}
