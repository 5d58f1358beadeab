// Package repo stores users and their calculation history in PostgreSQL or SQLite.
package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"Formulary/internal/formula"
)

var (
	ErrNotFound  = errors.New("repo: not found")
	ErrDuplicate = errors.New("repo: already exists")
)

type Calculation struct {
	ID         int64           `json:"id"`
	UserID     int             `json:"-"`
	Calculator string          `json:"calculator"`
	Request    formula.Request `json:"request"`
	Result     formula.Result  `json:"result"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	// GetByLogin returns the user id and password hash, or ErrNotFound.
	GetByLogin(ctx context.Context, login string) (int, string, error)

	SaveCalculation(ctx context.Context, c *Calculation) error
	ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error)
	GetCalculation(ctx context.Context, userID int, id int64) (Calculation, error)
	DeleteCalculation(ctx context.Context, userID int, id int64) error
}

type dialect struct {
	name   string
	schema []string
	// bind rewrites ? placeholders for the driver.
	bind func(string) string
}

var postgres = dialect{
	name: "postgres",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			login TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS calculations (
			id BIGSERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			calculator TEXT NOT NULL,
			request TEXT NOT NULL,
			result TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS calculations_user_idx ON calculations (user_id, created_at DESC)`,
	},
	bind: func(q string) string {
		var b strings.Builder
		n := 0
		for _, r := range q {
			if r == '?' {
				n++
				b.WriteString("$" + strconv.Itoa(n))
				continue
			}
			b.WriteRune(r)
		}
		return b.String()
	},
}

var sqliteDialect = dialect{
	name: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			login TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS calculations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			calculator TEXT NOT NULL,
			request TEXT NOT NULL,
			result TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS calculations_user_idx ON calculations (user_id, created_at DESC)`,
	},
	bind: func(q string) string { return q },
}

type SQLRepository struct {
	db *sql.DB
	d  dialect
}

func NewPostgres(db *sql.DB) *SQLRepository { return &SQLRepository{db: db, d: postgres} }

func NewSQLite(db *sql.DB) *SQLRepository { return &SQLRepository{db: db, d: sqliteDialect} }

// Migrate creates the schema if it does not exist.
func (r *SQLRepository) Migrate(ctx context.Context) error {
	for _, stmt := range r.d.schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("repo: migrate %s: %w", r.d.name, err)
		}
	}
	return nil
}

func (r *SQLRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := r.d.bind("INSERT INTO users (login, email, password) VALUES (?, ?, ?) RETURNING id")
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	if isUniqueViolation(err) {
		return 0, ErrDuplicate
	}
	return id, err
}

func (r *SQLRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string
	query := r.d.bind("SELECT id, password FROM users WHERE login = ?")
	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrNotFound
	}
	return id, hash, err
}

func (r *SQLRepository) SaveCalculation(ctx context.Context, c *Calculation) error {
	req, err := json.Marshal(c.Request)
	if err != nil {
		return fmt.Errorf("repo: encode request: %w", err)
	}
	res, err := json.Marshal(c.Result)
	if err != nil {
		return fmt.Errorf("repo: encode result: %w", err)
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC().Truncate(time.Millisecond)
	query := r.d.bind("INSERT INTO calculations (user_id, calculator, request, result, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id")
	return r.db.QueryRowContext(ctx, query, c.UserID, c.Calculator, string(req), string(res), c.CreatedAt.UnixMilli()).Scan(&c.ID)
}

const selectCalculation = "SELECT id, user_id, calculator, request, result, created_at FROM calculations"

func (r *SQLRepository) ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error) {
	query := r.d.bind(selectCalculation + " WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?")
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Calculation{}
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLRepository) GetCalculation(ctx context.Context, userID int, id int64) (Calculation, error) {
	query := r.d.bind(selectCalculation + " WHERE user_id = ? AND id = ?")
	c, err := scan(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Calculation{}, ErrNotFound
	}
	return c, err
}

func (r *SQLRepository) DeleteCalculation(ctx context.Context, userID int, id int64) error {
	res, err := r.db.ExecContext(ctx, r.d.bind("DELETE FROM calculations WHERE user_id = ? AND id = ?"), userID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (Calculation, error) {
	var (
		c        Calculation
		req, res string
		created  int64
	)
	if err := s.Scan(&c.ID, &c.UserID, &c.Calculator, &req, &res, &created); err != nil {
		return Calculation{}, err
	}
	if err := json.Unmarshal([]byte(req), &c.Request); err != nil {
		return Calculation{}, fmt.Errorf("repo: decode request %d: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(res), &c.Result); err != nil {
		return Calculation{}, fmt.Errorf("repo: decode result %d: %w", c.ID, err)
	}
	c.CreatedAt = time.UnixMilli(created).UTC()
	return c, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
