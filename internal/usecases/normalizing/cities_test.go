package normalizing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "sao gabriel", FoldKey("São Gabriel"))
	assert.Equal(t, "sao gabriel", FoldKey("  SAO   gabriel "))
	assert.Equal(t, "goiania", FoldKey("Goiânia"))
	assert.Equal(t, "uruacu", FoldKey("Uruaçu"))
	assert.Equal(t, "", FoldKey("   "))
}

func TestCityTable_Lookup(t *testing.T) {
	table := DefaultCityTable()

	tests := []struct {
		city  string
		found bool
	}{
		{city: "São Gabriel", found: true},
		{city: "Sao Gabriel", found: true},
		{city: "sao gabriel ", found: true},
		{city: "ANTONIO PRADO", found: true},
		{city: "Caxias do Sul", found: true},
		{city: "Curitiba", found: false},
		{city: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.city, func(t *testing.T) {
			_, ok := table.Lookup(tt.city)
			assert.Equal(t, tt.found, ok)
		})
	}

	coord, ok := table.Lookup("Sao Gabriel")
	require.True(t, ok)
	assert.Equal(t, -30.3333, coord.Latitude)
	assert.Equal(t, -54.3200, coord.Longitude)
	assert.Equal(t, 19, table.Len())
}

func TestNewCityTable_Validation(t *testing.T) {
	t.Run("grafias diferentes com mesmas coordenadas", func(t *testing.T) {
		table, err := NewCityTable(map[string]Coordinate{
			"São Simão": {-21.4736, -47.5511},
			"Sao Simao": {-21.4736, -47.5511},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("grafias diferentes com coordenadas diferentes", func(t *testing.T) {
		_, err := NewCityTable(map[string]Coordinate{
			"São Simão": {-21.4736, -47.5511},
			"Sao Simao": {-10, -10},
		})
		assert.Error(t, err)
	})

	t.Run("coordenadas fora do intervalo e nome vazio", func(t *testing.T) {
		_, err := NewCityTable(map[string]Coordinate{
			"Lugar Nenhum": {120, 0},
			" ":            {0, 0},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "coordenadas inválidas")
		assert.Contains(t, err.Error(), "cidade sem nome")
	})
}

func TestLoadCityTable(t *testing.T) {
	t.Run("arquivo do repositório", func(t *testing.T) {
		table, err := LoadCityTable(filepath.Join("..", "..", "..", "config", "cities.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultCityTable().Len(), table.Len())

		_, ok := table.Lookup("Gaviao Peixoto")
		assert.True(t, ok)
	})

	t.Run("arquivo customizado", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cities.yaml")
		content := "cities:\n  - name: Bento Gonçalves\n    latitude: -29.1714\n    longitude: -51.5192\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		table, err := LoadCityTable(path)
		require.NoError(t, err)

		coord, ok := table.Lookup("bento goncalves")
		require.True(t, ok)
		assert.Equal(t, -29.1714, coord.Latitude)
	})

	t.Run("arquivo inexistente", func(t *testing.T) {
		_, err := LoadCityTable(filepath.Join(t.TempDir(), "nada.yaml"))
		assert.Error(t, err)
	})
}
