package repository

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const saleRecordSourceName = "postgres"

// SaleRecordRepository lê os registros brutos de venda de uma tabela relacional
type SaleRecordRepository struct {
	conn    postgres.Queryer
	table   string
	mapping map[string]string
}

// NewSaleRecordRepository table aceita "tabela" ou "schema.tabela"
func NewSaleRecordRepository(conn postgres.Queryer, table string, mapping map[string]string) (*SaleRecordRepository, error) {
	quoted, err := quoteTable(table)
	if err != nil {
		return nil, err
	}

	return &SaleRecordRepository{
		conn:    conn,
		table:   quoted,
		mapping: mapping,
	}, nil
}

func (r *SaleRecordRepository) Name() string {
	return saleRecordSourceName
}

// FetchRecords lê todas as linhas da tabela, uma RawRecord por linha, indexada pelo nome da coluna
func (r *SaleRecordRepository) FetchRecords(ctx context.Context) ([]domain.RawRecord, error) {
	query, args, err := squirrel.
		Select("*").
		From(r.table).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler as colunas")
	}

	columns := make([]string, len(columnTypes))
	typeNames := make([]string, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = ct.Name()
		typeNames[i] = ct.DatabaseTypeName()
	}

	records := make([]domain.RawRecord, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear registro")
		}

		record, err := toRawRecord(columns, typeNames, values)
		if err != nil {
			return nil, err
		}
		records = append(records, record.Rename(r.mapping))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro ao iterar registros")
	}

	return records, nil
}

// toRawRecord converte os valores lidos do driver: texto como string e NUMERIC como decimal
func toRawRecord(columns, typeNames []string, values []any) (domain.RawRecord, error) {
	record := make(domain.RawRecord, len(columns))

	for i, column := range columns {
		value := values[i]

		if b, ok := value.([]byte); ok {
			switch typeNames[i] {
			case "NUMERIC", "DECIMAL":
				d, err := decimal.NewFromString(string(b))
				if err != nil {
					return nil, errors.Wrapf(err, "valor numérico inválido na coluna %s", column)
				}
				value = d
			default:
				value = string(b)
			}
		}

		record[column] = value
	}

	return record, nil
}

func quoteTable(table string) (string, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return "", errors.New("nome da tabela de vendas não informado")
	}

	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return "", errors.Errorf("nome de tabela inválido: %s", table)
	}

	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			return "", errors.Errorf("nome de tabela inválido: %s", table)
		}
		parts[i] = pq.QuoteIdentifier(strings.TrimSpace(part))
	}

	return strings.Join(parts, "."), nil
}
