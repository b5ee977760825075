package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{
			name: "origem desconhecida",
			cfg:  &config.Config{Source: config.Source{Type: "planilha"}},
		},
		{
			name: "mapeamento de campos inválido",
			cfg:  &config.Config{Source: config.Source{Type: config.SourcePostgres, FieldMapping: []string{"Cidade"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, closeFn, err := New(context.Background(), tt.cfg)

			assert.Error(t, err)
			assert.Nil(t, source)
			assert.Nil(t, closeFn)
		})
	}
}
