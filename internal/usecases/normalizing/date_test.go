package normalizing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSaleDate(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{name: "dia primeiro com barras", value: "05/03/2024"},
		{name: "sem zeros à esquerda", value: "5/3/2024"},
		{name: "hífens", value: "05-03-2024"},
		{name: "pontos", value: "05.03.2024"},
		{name: "ano com dois dígitos", value: "05/03/24"},
		{name: "com hora", value: "05/03/2024 14:30:00"},
		{name: "ISO", value: "2024-03-05"},
		{name: "RFC3339", value: "2024-03-05T10:00:00-03:00"},
		{name: "bytes", value: []byte("05/03/2024")},
		{name: "time.Time convertido para o fuso", value: time.Date(2024, 3, 6, 1, 0, 0, 0, time.UTC)},
		{name: "dia inexistente", value: "31/02/2024", wantErr: true},
		{name: "texto", value: "ontem", wantErr: true},
		{name: "nulo", value: nil, wantErr: true},
		{name: "número", value: 20240305, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSaleDate(tt.value, saoPaulo)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, want.Equal(got), "esperado %s, obtido %s", want, got)
		})
	}
}

func TestSaleMonth(t *testing.T) {
	date, err := ParseSaleDate("05/03/2024", nil)
	require.NoError(t, err)

	assert.Equal(t, "2024-03", SaleMonth(date))
}
