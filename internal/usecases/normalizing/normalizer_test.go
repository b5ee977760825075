package normalizing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// firestoreRecord registro no formato da coleção de documentos
func firestoreRecord(id any, date, amount any, city string) domain.RawRecord {
	return domain.RawRecord{
		"id":             id,
		"Data Venda":     date,
		"Valor de venda": amount,
		"Cidade":         city,
		"Estado":         "RS",
		"Cliente":        "Mercado Bom Preço",
		"Tipo Cliente":   "Varejo",
		"Produto":        "Vinho Tinto",
	}
}

// relationalRecord registro no formato da tabela relacional
func relationalRecord(id any, date, amount any, city string) domain.RawRecord {
	return domain.RawRecord{
		"id":             id,
		"data_venda":     date,
		"valor_de_venda": amount,
		"cidade":         city,
		"estado":         "RS",
		"cliente":        "Mercado Bom Preço",
		"tipo_cliente":   "Varejo",
		"produto":        "Vinho Tinto",
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := New(Options{})

	records := []domain.RawRecord{
		firestoreRecord(float64(1), "05/03/2024", "R$ 1.234,56", "Caxias do Sul"),
		firestoreRecord(float64(19), "06/03/2024", "R$ 500,00", "Caxias do Sul"),
		firestoreRecord(float64(2), "07/03/2024", nil, "Porto Alegre"),
		firestoreRecord(float64(3), "31/02/2024", "R$ 10,00", "Porto Alegre"),
		firestoreRecord(float64(4), "08/03/2024", "R$ dez", "Porto Alegre"),
		firestoreRecord(float64(5), "09/03/2024", "R$ 300,00", "Curitiba"),
		firestoreRecord(float64(6), "10/03/2024", "R$ 0,99", "Sao Gabriel"),
		firestoreRecord(float64(6), "11/03/2024", "R$ 50,00", "Itati"),
		firestoreRecord("abc", "12/03/2024", "R$ 50,00", "Itati"),
		firestoreRecord(float64(7), "13/03/2024", "R$ 70,00", "Curitiba"),
	}

	result, err := normalizer.Normalize(records)
	require.NoError(t, err)

	require.Len(t, result.Sales, 2)

	first := result.Sales[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), first.SaleDate)
	assert.Equal(t, "2024-03", first.SaleMonth)
	assert.Equal(t, int64(1234), first.SaleAmount)
	assert.Equal(t, "Caxias do Sul", first.City)
	assert.Equal(t, "RS", first.State)
	assert.Equal(t, "Mercado Bom Preço", first.Customer)
	assert.Equal(t, "Varejo", first.CustomerType)
	assert.Equal(t, "Vinho Tinto", first.Product)
	assert.Equal(t, -29.1678, first.Latitude)
	assert.Equal(t, -51.1794, first.Longitude)

	// Grafia sem acento encontra a cidade com acento
	second := result.Sales[1]
	assert.Equal(t, int64(6), second.ID)
	assert.Equal(t, "Sao Gabriel", second.City)
	assert.Equal(t, int64(0), second.SaleAmount)
	assert.Equal(t, -30.3333, second.Latitude)

	report := result.Report
	assert.Equal(t, 10, report.Input)
	assert.Equal(t, 2, report.Output)
	assert.Equal(t, 1, report.Excluded)
	assert.Equal(t, 1, report.MissingAmount)
	assert.Equal(t, 1, report.InvalidDate)
	assert.Equal(t, 1, report.InvalidAmount)
	assert.Equal(t, 1, report.InvalidID)
	assert.Equal(t, 1, report.DuplicateID)
	assert.Equal(t, map[string]int{"Curitiba": 2}, report.LookupMisses)
	assert.Equal(t, 8, report.Dropped())

	misses := result.LookupMisses()
	require.Len(t, misses, 1)
	assert.Equal(t, "Curitiba", misses[0].City)
	assert.Equal(t, 2, misses[0].Count)
	assert.True(t, errors.Is(misses[0], ErrLookupMiss))
}

func TestNormalizer_SourceShapesProduceSameTable(t *testing.T) {
	normalizer := New(Options{})

	firestore, err := normalizer.Normalize([]domain.RawRecord{
		firestoreRecord(float64(1), "05/03/2024", "R$ 1.234,56", "São Marcos"),
		firestoreRecord(float64(2), "06/03/2024", "R$ 99,00", "Goiânia"),
	})
	require.NoError(t, err)

	relational, err := normalizer.Normalize([]domain.RawRecord{
		relationalRecord(int64(1), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "R$ 1.234,56", "Sao Marcos"),
		relationalRecord(int64(2), []byte("06/03/2024"), []byte("R$ 99,00"), "Goiania"),
	})
	require.NoError(t, err)

	require.Len(t, relational.Sales, len(firestore.Sales))
	for i := range firestore.Sales {
		assert.Equal(t, firestore.Sales[i].ID, relational.Sales[i].ID)
		assert.Equal(t, firestore.Sales[i].SaleDate, relational.Sales[i].SaleDate)
		assert.Equal(t, firestore.Sales[i].SaleAmount, relational.Sales[i].SaleAmount)
		assert.Equal(t, firestore.Sales[i].Latitude, relational.Sales[i].Latitude)
		assert.Equal(t, firestore.Sales[i].Longitude, relational.Sales[i].Longitude)
	}
}

func TestNormalizer_Invariants(t *testing.T) {
	normalizer := New(Options{})

	records := make([]domain.RawRecord, 0, 40)
	cities := []string{"Caxias do Sul", "Curitiba", "Alvorada", "Lugar Nenhum", "Montenegro"}
	for i := 1; i <= 40; i++ {
		records = append(records, firestoreRecord(float64(i), "01/01/2024", "R$ 100,00", cities[i%len(cities)]))
	}

	result, err := normalizer.Normalize(records)
	require.NoError(t, err)
	require.NotEmpty(t, result.Sales)

	for _, sale := range result.Sales {
		assert.NotEqual(t, int64(19), sale.ID)
		assert.NotZero(t, sale.Latitude)
		assert.NotZero(t, sale.Longitude)
		assert.False(t, sale.SaleDate.IsZero())
	}
}

func TestNormalizer_AbortPolicy(t *testing.T) {
	normalizer := New(Options{Policy: RecoveryPolicyAbort})

	t.Run("data inválida", func(t *testing.T) {
		_, err := normalizer.Normalize([]domain.RawRecord{
			firestoreRecord(float64(1), "05/03/2024", "R$ 10,00", "Itati"),
			firestoreRecord(float64(2), "não é data", "R$ 10,00", "Itati"),
		})

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, 2, parseErr.Row)
		assert.True(t, errors.Is(err, ErrParse))
		assert.True(t, IsDataQualityError(err))
	})

	t.Run("valor inválido", func(t *testing.T) {
		_, err := normalizer.Normalize([]domain.RawRecord{
			firestoreRecord(float64(1), "05/03/2024", "R$ 1O,00", "Itati"),
		})

		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr))
		assert.Equal(t, domain.ColumnSaleAmount, formatErr.Column)
		assert.True(t, errors.Is(err, ErrFormat))
	})

	t.Run("cidade desconhecida não interrompe", func(t *testing.T) {
		result, err := normalizer.Normalize([]domain.RawRecord{
			firestoreRecord(float64(1), "05/03/2024", "R$ 10,00", "Curitiba"),
		})

		require.NoError(t, err)
		assert.Empty(t, result.Sales)
		assert.Equal(t, 1, result.Report.LookupMisses["Curitiba"])
	})
}

func TestNormalizer_MissingColumn(t *testing.T) {
	normalizer := New(Options{})

	record := firestoreRecord(float64(1), "05/03/2024", "R$ 10,00", "Itati")
	delete(record, "Cidade")

	_, err := normalizer.Normalize([]domain.RawRecord{record})

	var missingErr *MissingColumnError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, domain.ColumnCity, missingErr.Column)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.False(t, IsDataQualityError(err))
}

func TestNormalizer_ColumnPresentInSomeRecords(t *testing.T) {
	normalizer := New(Options{})

	withoutAmount := firestoreRecord(float64(2), "05/03/2024", nil, "Itati")
	delete(withoutAmount, "Valor de venda")

	result, err := normalizer.Normalize([]domain.RawRecord{
		firestoreRecord(float64(1), "05/03/2024", "R$ 10,00", "Itati"),
		withoutAmount,
	})

	require.NoError(t, err)
	assert.Len(t, result.Sales, 1)
	assert.Equal(t, 1, result.Report.MissingAmount)
}

func TestNormalizer_EmptyInput(t *testing.T) {
	result, err := New(Options{}).Normalize(nil)

	require.NoError(t, err)
	assert.Empty(t, result.Sales)
	assert.Equal(t, 0, result.Report.Input)
}

func TestNormalizer_CustomOptions(t *testing.T) {
	cities, err := NewCityTable(map[string]Coordinate{"Curitiba": {-25.4284, -49.2733}})
	require.NoError(t, err)

	normalizer := New(Options{
		Cities:      cities,
		ExcludedIDs: []int64{7},
	})

	records := []domain.RawRecord{
		firestoreRecord(float64(7), "05/03/2024", "R$ 10,00", "Curitiba"),
		firestoreRecord(float64(8), "05/03/2024", "R$ 20,00", "curitiba"),
	}

	result, err := normalizer.Normalize(records)
	require.NoError(t, err)
	require.Len(t, result.Sales, 1)
	assert.Equal(t, int64(8), result.Sales[0].ID)
	assert.Equal(t, -25.4284, result.Sales[0].Latitude)
	assert.Equal(t, 1, result.Report.Excluded)
}

func TestNormalizer_AlwaysExcludesID19(t *testing.T) {
	tests := []struct {
		name     string
		excluded []int64
	}{
		{name: "lista nula", excluded: nil},
		{name: "lista vazia", excluded: []int64{}},
		{name: "outros ids", excluded: []int64{42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalizer := New(Options{ExcludedIDs: tt.excluded})

			result, err := normalizer.Normalize([]domain.RawRecord{
				firestoreRecord(float64(19), "05/03/2024", "R$ 10,00", "Porto Alegre"),
				firestoreRecord(float64(20), "05/03/2024", "R$ 10,00", "Porto Alegre"),
			})
			require.NoError(t, err)

			require.Len(t, result.Sales, 1)
			assert.Equal(t, int64(20), result.Sales[0].ID)
			assert.Equal(t, 1, result.Report.Excluded)
		})
	}
}

func TestNormalizer_AmountOutOfRange(t *testing.T) {
	record := firestoreRecord(float64(1), "05/03/2024", "R$ 18.446.744.073.709.551.616,00", "Porto Alegre")

	result, err := New(Options{}).Normalize([]domain.RawRecord{record})
	require.NoError(t, err)
	assert.Empty(t, result.Sales)
	assert.Equal(t, 1, result.Report.InvalidAmount)

	_, err = New(Options{Policy: RecoveryPolicyAbort}).Normalize([]domain.RawRecord{record})
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, domain.ColumnSaleAmount, formatErr.Column)
}

func TestParseRecoveryPolicy(t *testing.T) {
	policy, err := ParseRecoveryPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RecoveryPolicySkip, policy)

	policy, err = ParseRecoveryPolicy(" ABORT ")
	require.NoError(t, err)
	assert.Equal(t, RecoveryPolicyAbort, policy)

	_, err = ParseRecoveryPolicy("ignore")
	assert.True(t, errors.Is(err, ErrInvalidPolicy))
}
