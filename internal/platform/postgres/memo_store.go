package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/memos-api/internal/domain"
	"github.com/phrazzld/memos-api/internal/platform/logger"
	"github.com/phrazzld/memos-api/internal/store"
)

const memoColumns = `id, title, description, due_at, completed, created_at, updated_at`

// sortColumns maps each sortable field to its ORDER BY expression. Titles
// use the "C" collation so ordering is bytewise regardless of database locale.
var sortColumns = map[domain.SortField]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByUpdatedAt: "updated_at",
	domain.SortByDueAt:     "due_at",
	domain.SortByTitle:     `title COLLATE "C"`,
}

// PostgresMemoStore implements the store.MemoStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMemoStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresMemoStore creates a new PostgreSQL implementation of the MemoStore interface.
// It accepts a database connection pool that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMemoStore(db *sql.DB, logger *slog.Logger) *PostgresMemoStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMemoStore{
		db:     db,
		logger: logger.With(slog.String("component", "memo_store")),
	}
}

// Ensure PostgresMemoStore implements store.MemoStore interface
var _ store.MemoStore = (*PostgresMemoStore)(nil)

// Insert implements store.MemoStore.Insert
// Returns store.ErrDuplicate if a memo with the same ID already exists.
func (s *PostgresMemoStore) Insert(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO memos (` + memoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		memo.ID,
		memo.Title,
		memo.Description,
		memo.DueAt,
		memo.Completed,
		memo.CreatedAt,
		memo.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert memo",
			slog.String("error", err.Error()),
			slog.String("memo_id", memo.ID.String()),
			slog.Bool("unique_violation", IsUniqueViolation(err)))
		return nil, store.NewStoreError("memo", "insert", "insert failed", MapError(err))
	}

	log.Debug("memo inserted", slog.String("memo_id", memo.ID.String()))
	return memo.Clone(), nil
}

// FindByID implements store.MemoStore.FindByID
// Returns store.ErrMemoNotFound if the memo does not exist.
func (s *PostgresMemoStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	memo, err := selectMemo(ctx, s.db, `SELECT `+memoColumns+` FROM memos WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("memo not found", slog.String("memo_id", id.String()))
			return nil, store.ErrMemoNotFound
		}
		log.Error("failed to get memo by ID",
			slog.String("error", err.Error()),
			slog.String("memo_id", id.String()))
		return nil, store.NewStoreError("memo", "find", "select failed", MapError(err))
	}

	return memo, nil
}

// UpdateIfExists implements store.MemoStore.UpdateIfExists
// The row is locked with SELECT ... FOR UPDATE for the duration of the
// transaction, so concurrent updates of one memo apply one after another.
func (s *PostgresMemoStore) UpdateIfExists(
	ctx context.Context,
	id uuid.UUID,
	fn store.MemoMutator,
) (*domain.Memo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Memo
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		current, err := selectMemo(ctx, tx, `SELECT `+memoColumns+` FROM memos WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrMemoNotFound
			}
			return store.NewStoreError("memo", "update", "select for update failed", MapError(err))
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		next.ID = id

		updateQuery := `
			UPDATE memos
			SET title = $2, description = $3, due_at = $4, completed = $5, updated_at = $6
			WHERE id = $1
		`
		if _, err := tx.ExecContext(
			ctx,
			updateQuery,
			next.ID,
			next.Title,
			next.Description,
			next.DueAt,
			next.Completed,
			next.UpdatedAt,
		); err != nil {
			return store.NewStoreError("memo", "update", "update failed", MapError(err))
		}

		updated = next.Clone()
		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrMemoNotFound) {
			log.Debug("memo update aborted",
				slog.String("error", err.Error()),
				slog.String("memo_id", id.String()))
		}
		return nil, err
	}

	log.Debug("memo updated", slog.String("memo_id", id.String()))
	return updated, nil
}

// DeleteIfExists implements store.MemoStore.DeleteIfExists
func (s *PostgresMemoStore) DeleteIfExists(ctx context.Context, id uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM memos WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete memo",
			slog.String("error", err.Error()),
			slog.String("memo_id", id.String()))
		return false, store.NewStoreError("memo", "delete", "delete failed", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, store.NewStoreError("memo", "delete", "failed to get rows affected", err)
	}

	return rowsAffected > 0, nil
}

// Query implements store.MemoStore.Query
// The count and the page are read in one snapshot so the total always
// agrees with the rows returned.
func (s *PostgresMemoStore) Query(ctx context.Context, opts store.QueryOptions) ([]*domain.Memo, int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	countQuery, pageQuery, args, err := buildListQueries(opts)
	if err != nil {
		return nil, 0, store.NewStoreError("memo", "query", "invalid query options", err)
	}

	var (
		total int64
		memos = make([]*domain.Memo, 0, opts.Limit)
	)
	err = store.RunInTransactionWithOptions(ctx, s.db, store.ReadSnapshot, func(ctx context.Context, tx *sql.Tx) error {
		filterArgs := args[:len(args)-2]
		if err := tx.QueryRowContext(ctx, countQuery, filterArgs...).Scan(&total); err != nil {
			return fmt.Errorf("count memos: %w", err)
		}

		rows, err := tx.QueryContext(ctx, pageQuery, args...)
		if err != nil {
			return fmt.Errorf("select memos: %w", err)
		}
		defer func() {
			if closeErr := rows.Close(); closeErr != nil {
				log.Error("failed to close rows",
					slog.String("error", closeErr.Error()))
			}
		}()

		for rows.Next() {
			memo, err := scanMemo(rows)
			if err != nil {
				return fmt.Errorf("scan memo: %w", err)
			}
			memos = append(memos, memo)
		}
		return rows.Err()
	})
	if err != nil {
		log.Error("failed to query memos",
			slog.String("error", err.Error()),
			slog.String("sort_by", string(opts.SortBy)),
			slog.String("order", string(opts.Order)))
		return nil, 0, store.NewStoreError("memo", "query", "query failed", MapError(err))
	}

	return memos, total, nil
}

// Ping implements store.MemoStore.Ping
func (s *PostgresMemoStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return store.NewStoreError("memo", "ping", "database unreachable", err)
	}
	return nil
}

// buildListQueries renders the count and page statements for opts. The
// page arguments are the filter arguments followed by limit and offset.
func buildListQueries(opts store.QueryOptions) (string, string, []any, error) {
	column, ok := sortColumns[opts.SortBy]
	if !ok {
		return "", "", nil, fmt.Errorf("unsupported sort field %q", opts.SortBy)
	}

	var direction string
	switch opts.Order {
	case domain.OrderAsc:
		direction = "ASC"
	case domain.OrderDesc:
		direction = "DESC"
	default:
		return "", "", nil, fmt.Errorf("unsupported sort order %q", opts.Order)
	}

	var (
		where strings.Builder
		args  []any
	)
	if opts.Completed != nil {
		args = append(args, *opts.Completed)
		fmt.Fprintf(&where, " WHERE completed = $%d", len(args))
	}

	countQuery := `SELECT COUNT(*) FROM memos` + where.String()

	args = append(args, opts.Limit, opts.Offset)
	pageQuery := fmt.Sprintf(
		`SELECT %s FROM memos%s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d`,
		memoColumns,
		where.String(),
		column,
		direction,
		len(args)-1,
		len(args),
	)

	return countQuery, pageQuery, args, nil
}

// selectMemo runs a single-row memo query on q, which may be the pool or a
// transaction.
func selectMemo(ctx context.Context, q store.DBTX, query string, id uuid.UUID) (*domain.Memo, error) {
	return scanMemo(q.QueryRowContext(ctx, query, id))
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemo(row rowScanner) (*domain.Memo, error) {
	var memo domain.Memo
	if err := row.Scan(
		&memo.ID,
		&memo.Title,
		&memo.Description,
		&memo.DueAt,
		&memo.Completed,
		&memo.CreatedAt,
		&memo.UpdatedAt,
	); err != nil {
		return nil, err
	}

	memo.DueAt = memo.DueAt.UTC()
	memo.CreatedAt = memo.CreatedAt.UTC()
	memo.UpdatedAt = memo.UpdatedAt.UTC()
	return &memo, nil
}
