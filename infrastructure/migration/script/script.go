package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

// Colunas com os mesmos nomes dos campos da coleção do Firestore
var salesColumns = []string{
	"id",
	"Valor de venda",
	"Data Venda",
	"Cidade",
	"Estado",
	"Cliente",
	"Tipo Cliente",
	"Produto",
}

type seedCity struct {
	Name  string
	State string
}

var (
	seedCities = []seedCity{
		{"Caxias do Sul", "RS"},
		{"Porto Alegre", "RS"},
		{"São Marcos", "RS"},
		{"Antônio Prado", "RS"},
		{"São Gabriel", "RS"},
		{"Goiânia", "GO"},
		{"Senador Canedo", "GO"},
		{"Araraquara", "SP"},
		{"Gavião Peixoto", "SP"},
		{"Cidade Desconhecida", "SC"}, // sem coordenadas
	}
	seedCustomers     = []string{"Mercado Central", "Empório Serrano", "Adega do Vale", "Restaurante Bella", "Distribuidora Sul"}
	seedCustomerTypes = []string{"Varejo", "Atacado", "Restaurante"}
	seedProducts      = []string{"Vinho Tinto", "Vinho Branco", "Espumante", "Suco de Uva"}
)

// SaleRow linha da tabela de vendas no formato da origem (texto)
type SaleRow struct {
	ID           int64
	Amount       string
	Date         string
	City         string
	State        string
	Customer     string
	CustomerType string
	Product      string
}

func main() {
	count := flag.Int("count", 200, "Quantidade de vendas geradas")
	reset := flag.Bool("reset", false, "Remove a tabela antes de criar")
	seed := flag.Uint64("seed", 42, "Semente do gerador")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	table := pq.QuoteIdentifier(cfg.Source.SalesTable)
	rows := buildSeedRows(*count, *seed)

	startTime := time.Now()
	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if *reset {
			logrus.WithField("table", cfg.Source.SalesTable).Warn("Removendo tabela de vendas")
			if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return fmt.Errorf("erro ao remover tabela: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, createTableSQL(table)); err != nil {
			return fmt.Errorf("erro ao criar tabela: %w", err)
		}

		return insertSales(ctx, tx, table, rows)
	})
	if err != nil {
		logrus.WithError(err).Fatal("Migração revertida")
	}

	logrus.WithFields(logrus.Fields{
		"table":    cfg.Source.SalesTable,
		"rows":     len(rows),
		"duration": time.Since(startTime).String(),
	}).Info("Carga inicial concluída")
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGINT PRIMARY KEY,
	%s TEXT,
	%s TEXT,
	%s TEXT,
	%s TEXT,
	%s TEXT,
	%s TEXT,
	%s TEXT
)`, table,
		pq.QuoteIdentifier(salesColumns[1]),
		pq.QuoteIdentifier(salesColumns[2]),
		pq.QuoteIdentifier(salesColumns[3]),
		pq.QuoteIdentifier(salesColumns[4]),
		pq.QuoteIdentifier(salesColumns[5]),
		pq.QuoteIdentifier(salesColumns[6]),
		pq.QuoteIdentifier(salesColumns[7]),
	)
}

// insertSales insere em lotes de até 100 linhas, ignorando IDs já existentes
func insertSales(ctx context.Context, tx *sql.Tx, table string, rows []SaleRow) error {
	quoted := make([]string, len(salesColumns))
	for i, column := range salesColumns {
		quoted[i] = pq.QuoteIdentifier(column)
	}

	const batchSize = 100
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))

		query := squirrel.Insert(table).
			Columns(quoted...).
			Suffix("ON CONFLICT (id) DO NOTHING").
			PlaceholderFormat(squirrel.Dollar)

		for _, row := range rows[start:end] {
			query = query.Values(row.ID, row.Amount, row.Date, row.City, row.State, row.Customer, row.CustomerType, row.Product)
		}

		sqlQuery, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("erro ao montar insert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("erro ao inserir vendas %d-%d: %w", start+1, end, err)
		}

		logrus.Infof("Progresso: %d/%d vendas inseridas", end, len(rows))
	}

	return nil
}

// buildSeedRows gera vendas de exemplo. O ID 19 sempre existe, como na origem real.
func buildSeedRows(count int, seed uint64) []SaleRow {
	rng := rand.New(rand.NewPCG(seed, seed))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := make([]SaleRow, 0, count)
	for i := 1; i <= count; i++ {
		city := seedCities[rng.IntN(len(seedCities))]
		cents := rng.Int64N(500000) + 1000

		rows = append(rows, SaleRow{
			ID:           int64(i),
			Amount:       formatAmount(cents),
			Date:         start.AddDate(0, 0, rng.IntN(366)).Format("02/01/2006"),
			City:         city.Name,
			State:        city.State,
			Customer:     seedCustomers[rng.IntN(len(seedCustomers))],
			CustomerType: seedCustomerTypes[rng.IntN(len(seedCustomerTypes))],
			Product:      seedProducts[rng.IntN(len(seedProducts))],
		})
	}

	return rows
}

// formatAmount formata centavos como "R$ 1.234,56"
func formatAmount(cents int64) string {
	reais := fmt.Sprintf("%d", cents/100)

	var groups []string
	for len(reais) > 3 {
		groups = append([]string{reais[len(reais)-3:]}, groups...)
		reais = reais[:len(reais)-3]
	}
	groups = append([]string{reais}, groups...)

	return fmt.Sprintf("R$ %s,%02d", strings.Join(groups, "."), cents%100)
}
