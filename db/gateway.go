package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate key")
)

// Result reports the outcome of an insert, update or delete.
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// Gateway runs parameterized SQL against the store. Every call takes its
// arguments separately from the query text; callers never build SQL from
// user input.
type Gateway struct {
	db *gorm.DB
}

func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// GetOne scans the first matching row into dest. It reports false, not an
// error, when nothing matches.
func (g *Gateway) GetOne(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	tx := g.db.WithContext(ctx).Raw(query, args...).Scan(dest)
	if tx.Error != nil {
		return false, translate(tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// GetAll scans every matching row into dest, which must point to a slice.
// No rows leaves dest as an empty slice.
func (g *Gateway) GetAll(ctx context.Context, dest any, query string, args ...any) error {
	if err := g.db.WithContext(ctx).Raw(query, args...).Scan(dest).Error; err != nil {
		return translate(err)
	}
	return nil
}

// Execute runs a single autocommit statement.
func (g *Gateway) Execute(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := g.db.ConnPool.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, translate(err)
	}

	var out Result
	if out.LastInsertID, err = res.LastInsertId(); err != nil {
		return Result{}, fmt.Errorf("read last insert id: %w", err)
	}
	if out.RowsAffected, err = res.RowsAffected(); err != nil {
		return Result{}, fmt.Errorf("read rows affected: %w", err)
	}
	return out, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
