package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garyjia/speedauth/internal/infrastructure/persistence/sqldb"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Update and Delete when no row matches
var ErrNotFound = errors.New("record not found")

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func requireAffected(result sql.Result, kind string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return nil
}

// lastString returns the greatest value of column under a descending string sort, or "" for an empty table.
// Table and column are compile-time constants supplied by the repositories.
func lastString(ctx context.Context, db *sqldb.DB, logger *zap.Logger, table, column string) (string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s DESC LIMIT 1", column, table, column)

	var last string
	err := db.Executor(ctx).QueryRowContext(ctx, query).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		logger.Error("Failed to read last identifier", zap.String("table", table), zap.Error(err))
		return "", fmt.Errorf("failed to read last %s: %w", column, err)
	}

	return last, nil
}
