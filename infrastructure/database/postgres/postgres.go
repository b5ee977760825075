package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

// Conn é o que a origem de vendas e o script de migração usam do banco
type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

// Connection embrulha o pool do database/sql
type Connection struct {
	*sql.DB
}

var _ Conn = (*Connection)(nil)

// NewConnection abre o pool e só devolve depois do primeiro ping.
// Em caso de falha o pool é fechado.
func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	if cfg.DSN == "" {
		return nil, errors.New("dsn do postgres não configurado")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao abrir conexão com o postgres")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "erro ao conectar no postgres")
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction executa fn numa transação: commit se fn retornar nil,
// rollback se retornar erro ou entrar em pânico
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "erro ao iniciar transação")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		return rollback(tx, err)
	}

	return errors.Wrap(tx.Commit(), "erro no commit da transação")
}

// rollback preserva o erro original; a falha do rollback vai junto na mensagem
func rollback(tx *sql.Tx, cause error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return errors.Wrapf(cause, "rollback falhou: %v", rbErr)
	}
	return cause
}
