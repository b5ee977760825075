package log

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields = logrus.Fields

// contextKey para armazenar o ID de correlação no contexto
type contextKey string

// CorrelationIDKey é a chave para armazenar o ID de correlação no contexto
const CorrelationIDKey contextKey = "correlation_id"

const correlationIDField = "correlation_id"

// IsDevelopment retorna verdadeiro se estamos em ambiente de desenvolvimento
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

// Setup configura o logrus global. Em produção os logs saem em JSON.
func Setup(level string) {
	if IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
			PadLevelText:    true,
		})
	} else {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		logrus.WithField("log_level", level).Warn("Nível de log inválido, usando info")
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// WithCorrelationID adiciona um ID de correlação ao contexto.
// Um ID vazio gera um novo UUID.
func WithCorrelationID(ctx context.Context, correlationID string) (context.Context, string) {
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

// GetCorrelationID obtém o ID de correlação do contexto
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// ForContext cria um logger com o ID de correlação do contexto
func ForContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		return entry.WithField(correlationIDField, correlationID)
	}
	return entry
}
