package normalizing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// RecoveryPolicy define o que fazer com linhas com data ou valor inválidos
type RecoveryPolicy string

const (
	// RecoveryPolicySkip descarta a linha e contabiliza no relatório
	RecoveryPolicySkip RecoveryPolicy = "skip"
	// RecoveryPolicyAbort interrompe a normalização no primeiro erro
	RecoveryPolicyAbort RecoveryPolicy = "abort"
)

// AlwaysExcludedIDs registros removidos de todas as tabelas (registro inválido na origem).
// Options.ExcludedIDs só acrescenta IDs a esta lista.
var AlwaysExcludedIDs = []int64{19}

// ParseRecoveryPolicy converte o texto da configuração em RecoveryPolicy
func ParseRecoveryPolicy(s string) (RecoveryPolicy, error) {
	switch RecoveryPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", RecoveryPolicySkip:
		return RecoveryPolicySkip, nil
	case RecoveryPolicyAbort:
		return RecoveryPolicyAbort, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidPolicy, s)
	}
}

type Options struct {
	Cities         *CityTable
	Policy         RecoveryPolicy
	ExcludedIDs    []int64 // Excluídos além de AlwaysExcludedIDs
	CurrencySymbol string
	Location       *time.Location    // Fuso usado para datas que chegam como time.Time
}

// Normalizer transforma registros brutos na tabela canônica de vendas
type Normalizer struct {
	cities         *CityTable
	policy         RecoveryPolicy
	excluded       map[int64]struct{}
	currencySymbol string
	location       *time.Location
	columns        *columnResolver
}

// Result tabela canônica e relatório do que foi descartado
type Result struct {
	Sales  []domain.Sale
	Report domain.NormalizationReport
}

// LookupMisses cidades sem coordenadas, da mais frequente para a menos frequente
func (r *Result) LookupMisses() []*LookupMiss {
	misses := make([]*LookupMiss, 0, len(r.Report.LookupMisses))
	for city, count := range r.Report.LookupMisses {
		misses = append(misses, &LookupMiss{City: city, Count: count})
	}

	sort.Slice(misses, func(i, j int) bool {
		if misses[i].Count != misses[j].Count {
			return misses[i].Count > misses[j].Count
		}
		return misses[i].City < misses[j].City
	})

	return misses
}

func New(opts Options) *Normalizer {
	if opts.Cities == nil {
		opts.Cities = DefaultCityTable()
	}
	if opts.Policy == "" {
		opts.Policy = RecoveryPolicySkip
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = DefaultCurrencySymbol
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	excluded := make(map[int64]struct{}, len(AlwaysExcludedIDs)+len(opts.ExcludedIDs))
	for _, id := range AlwaysExcludedIDs {
		excluded[id] = struct{}{}
	}
	for _, id := range opts.ExcludedIDs {
		excluded[id] = struct{}{}
	}

	return &Normalizer{
		cities:         opts.Cities,
		policy:         opts.Policy,
		excluded:       excluded,
		currencySymbol: opts.CurrencySymbol,
		location:       opts.Location,
		columns:        newColumnResolver(),
	}
}

// Normalize executa a limpeza completa. Não faz I/O e é determinística.
func (n *Normalizer) Normalize(records []domain.RawRecord) (*Result, error) {
	canonical := make([]domain.RawRecord, len(records))
	for i, raw := range records {
		canonical[i] = n.columns.canonicalize(raw)
	}

	if column := missingColumn(canonical); column != "" {
		return nil, &MissingColumnError{Column: column}
	}

	result := &Result{
		Sales: make([]domain.Sale, 0, len(canonical)),
		Report: domain.NormalizationReport{
			Input:        len(canonical),
			LookupMisses: map[string]int{},
		},
	}
	seen := make(map[int64]struct{}, len(canonical))

	for i, record := range canonical {
		row := i + 1

		id, err := parseID(record[domain.ColumnID])
		if err != nil {
			if n.policy == RecoveryPolicyAbort {
				return nil, &FormatError{Row: row, Column: domain.ColumnID, Value: record[domain.ColumnID], Err: err}
			}
			result.Report.InvalidID++
			continue
		}

		if _, ok := n.excluded[id]; ok {
			result.Report.Excluded++
			continue
		}

		rawAmount := record[domain.ColumnSaleAmount]
		if rawAmount == nil {
			result.Report.MissingAmount++
			continue
		}

		saleDate, err := ParseSaleDate(record[domain.ColumnSaleDate], n.location)
		if err != nil {
			if n.policy == RecoveryPolicyAbort {
				return nil, &ParseError{Row: row, Value: record[domain.ColumnSaleDate], Err: err}
			}
			result.Report.InvalidDate++
			continue
		}

		amount, err := ParseAmount(rawAmount, n.currencySymbol)
		if err != nil {
			if n.policy == RecoveryPolicyAbort {
				return nil, &FormatError{Row: row, Column: domain.ColumnSaleAmount, Value: rawAmount, Err: err}
			}
			result.Report.InvalidAmount++
			continue
		}

		city := textValue(record[domain.ColumnCity])
		coord, ok := n.cities.Lookup(city)
		if !ok {
			result.Report.LookupMisses[city]++
			continue
		}

		if _, dup := seen[id]; dup {
			result.Report.DuplicateID++
			continue
		}
		seen[id] = struct{}{}

		result.Sales = append(result.Sales, domain.Sale{
			ID:           id,
			SaleDate:     saleDate,
			SaleMonth:    SaleMonth(saleDate),
			SaleAmount:   amount,
			City:         city,
			State:        textValue(record[domain.ColumnState]),
			Customer:     textValue(record[domain.ColumnCustomer]),
			CustomerType: textValue(record[domain.ColumnCustomerType]),
			Product:      textValue(record[domain.ColumnProduct]),
			Latitude:     coord.Latitude,
			Longitude:    coord.Longitude,
		})
	}

	result.Report.Output = len(result.Sales)

	logNormalization(result)

	return result, nil
}

func textValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case []byte:
		return strings.TrimSpace(string(v))
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func logNormalization(result *Result) {
	report := result.Report

	logrus.WithFields(logrus.Fields{
		"input":          report.Input,
		"output":         report.Output,
		"excluded":       report.Excluded,
		"missing_amount": report.MissingAmount,
		"invalid_id":     report.InvalidID,
		"duplicate_id":   report.DuplicateID,
		"invalid_date":   report.InvalidDate,
		"invalid_amount": report.InvalidAmount,
		"lookup_misses":  report.LookupMissCount(),
	}).Info("normalização concluída")

	for _, miss := range result.LookupMisses() {
		logrus.WithFields(logrus.Fields{
			"city":  miss.City,
			"count": miss.Count,
		}).Warn("cidade sem coordenadas na tabela, vendas descartadas")
	}
}
