package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/bodul/xwplayer/puzzle"
)

const createPuzzles = `CREATE TABLE IF NOT EXISTS puzzles (
	id         BIGINT AUTO_INCREMENT PRIMARY KEY,
	title      VARCHAR(255) NOT NULL,
	difficulty VARCHAR(16)  NOT NULL,
	dimensions INT          NOT NULL,
	words      JSON         NOT NULL,
	created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
	INDEX idx_puzzles_difficulty (difficulty)
) DEFAULT CHARSET = utf8mb4`

// SQLCatalog serves puzzles stored in a MySQL table.
type SQLCatalog struct {
	db *sql.DB
}

// NewSQLCatalog wraps an open database.
func NewSQLCatalog(db *sql.DB) *SQLCatalog {
	return &SQLCatalog{db: db}
}

// OpenSQLCatalog connects to the MySQL database at dsn and creates the
// puzzles table when missing.
func OpenSQLCatalog(ctx context.Context, dsn string) (*SQLCatalog, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Collation = "utf8mb4_unicode_ci"

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	c := NewSQLCatalog(db)
	if err := c.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Migrate creates the puzzles table.
func (c *SQLCatalog) Migrate(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, createPuzzles); err != nil {
		return fmt.Errorf("create puzzles table: %w", err)
	}
	return nil
}

// Generate returns a random stored puzzle of tier d.
func (c *SQLCatalog) Generate(ctx context.Context, d puzzle.Difficulty) (*puzzle.Descriptor, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT title, dimensions, words FROM puzzles WHERE difficulty = ? ORDER BY RAND() LIMIT 1`,
		string(d))

	var (
		desc  puzzle.Descriptor
		words []byte
	)
	if err := row.Scan(&desc.Title, &desc.Dimensions, &words); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no stored %s puzzle", ErrNoPuzzle, d)
		}
		return nil, fmt.Errorf("query puzzle: %w", err)
	}
	if err := json.Unmarshal(words, &desc.Words); err != nil {
		return nil, fmt.Errorf("decode words of %q: %w", desc.Title, err)
	}
	if err := Check(&desc); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Put stores desc under tier d.
func (c *SQLCatalog) Put(ctx context.Context, d puzzle.Difficulty, desc *puzzle.Descriptor) error {
	if err := Check(desc); err != nil {
		return err
	}
	words, err := json.Marshal(desc.Words)
	if err != nil {
		return fmt.Errorf("encode words: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO puzzles (title, difficulty, dimensions, words) VALUES (?, ?, ?, ?)`,
		desc.Title, string(d), desc.Dimensions, words)
	if err != nil {
		return fmt.Errorf("insert puzzle: %w", err)
	}
	return nil
}

// Close closes the database.
func (c *SQLCatalog) Close() error {
	return c.db.Close()
}
