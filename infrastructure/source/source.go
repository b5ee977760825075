package source

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/firestore"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/firestore/firestoreclient"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboarding"
)

// New cria a origem dos registros escolhida em DATA_SOURCE.
// A função de fechamento devolvida libera a conexão usada pela origem.
func New(ctx context.Context, cfg *config.Config) (dashboarding.RecordSource, func() error, error) {
	mapping, err := cfg.Source.Mapping()
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Source.Type {
	case config.SourceFirestore:
		client, err := firestoreclient.NewClient(ctx, cfg.Firestore)
		if err != nil {
			return nil, nil, err
		}

		return firestore.New(client, cfg.Firestore.Collection, mapping), client.Close, nil

	case config.SourcePostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}

		repo, err := repository.NewSaleRecordRepository(conn, cfg.Source.SalesTable, mapping)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}

		logrus.WithField("table", cfg.Source.SalesTable).Info("Conexão com PostgreSQL estabelecida com sucesso")
		return repo, conn.Close, nil
	}

	return nil, nil, fmt.Errorf("origem de dados desconhecida: %q", cfg.Source.Type)
}
