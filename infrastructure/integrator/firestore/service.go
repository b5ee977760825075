package firestore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/firestore/firestoreclient"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const sourceName = "firestore"

// FirestoreIntegrator lê as vendas de uma coleção do Firestore, um registro por documento
type FirestoreIntegrator struct {
	client     firestoreclient.Client
	collection string
	mapping    map[string]string
}

func New(client firestoreclient.Client, collection string, mapping map[string]string) *FirestoreIntegrator {
	return &FirestoreIntegrator{
		client:     client,
		collection: collection,
		mapping:    mapping,
	}
}

func (s *FirestoreIntegrator) Name() string {
	return sourceName
}

func (s *FirestoreIntegrator) FetchRecords(ctx context.Context) ([]domain.RawRecord, error) {
	documents, err := s.client.ListDocuments(ctx, s.collection)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao buscar vendas na coleção %s", s.collection)
	}

	records := make([]domain.RawRecord, 0, len(documents))
	for _, doc := range documents {
		records = append(records, domain.RawRecord(doc).Rename(s.mapping))
	}

	return records, nil
}
