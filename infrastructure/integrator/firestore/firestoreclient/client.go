package firestoreclient

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type Client interface {
	ListDocuments(ctx context.Context, collection string) ([]map[string]any, error)
	Close() error
}

type FirestoreClient struct {
	client *firestore.Client
}

// NewClient cria o cliente do Firestore. Sem credenciais configuradas usa as
// credenciais padrão do ambiente (GOOGLE_APPLICATION_CREDENTIALS).
func NewClient(ctx context.Context, cfg config.Firestore) (*FirestoreClient, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar cliente do firestore")
	}

	logrus.WithField("project_id", cfg.ProjectID).Info("Cliente do Firestore criado")

	return &FirestoreClient{client: client}, nil
}

// ListDocuments lê todos os documentos da coleção
func (c *FirestoreClient) ListDocuments(ctx context.Context, collection string) ([]map[string]any, error) {
	iter := c.client.Collection(collection).Documents(ctx)
	defer iter.Stop()

	documents := make([]map[string]any, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "erro ao ler documento da coleção %s", collection)
		}
		documents = append(documents, doc.Data())
	}

	return documents, nil
}

func (c *FirestoreClient) Close() error {
	return c.client.Close()
}
