package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/memos-api/internal/domain"
	"github.com/phrazzld/memos-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	base        = time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
	columnNames = []string{"id", "title", "description", "due_at", "completed", "created_at", "updated_at"}
)

func newMockStore(t *testing.T) (*PostgresMemoStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresMemoStore(db, nil), mock
}

func testMemo(t *testing.T) *domain.Memo {
	t.Helper()
	desc := "monthly"
	memo, err := domain.NewMemo(domain.MemoInput{Title: "Pay rent", Description: &desc, DueAt: base}, base)
	require.NoError(t, err)
	return memo
}

func memoRow(m *domain.Memo) *sqlmock.Rows {
	var desc any
	if m.Description != nil {
		desc = *m.Description
	}
	return sqlmock.NewRows(columnNames).
		AddRow(m.ID.String(), m.Title, desc, m.DueAt, m.Completed, m.CreatedAt, m.UpdatedAt)
}

func TestNewPostgresMemoStore_NilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresMemoStore(nil, nil) })
}

func TestPostgresMemoStore_Insert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s, mock := newMockStore(t)
		memo := testMemo(t)

		mock.ExpectExec("INSERT INTO memos").
			WithArgs(memo.ID.String(), "Pay rent", "monthly", sqlmock.AnyArg(), false, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		inserted, err := s.Insert(context.Background(), memo)
		require.NoError(t, err)
		assert.Equal(t, memo, inserted)
		assert.NotSame(t, memo, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate id", func(t *testing.T) {
		s, mock := newMockStore(t)
		memo := testMemo(t)

		mock.ExpectExec("INSERT INTO memos").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "memos_pkey"})

		_, err := s.Insert(context.Background(), memo)
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresMemoStore_FindByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newMockStore(t)
		memo := testMemo(t)

		mock.ExpectQuery(`SELECT (.+) FROM memos WHERE id = \$1`).
			WithArgs(memo.ID.String()).
			WillReturnRows(memoRow(memo))

		found, err := s.FindByID(context.Background(), memo.ID)
		require.NoError(t, err)
		assert.Equal(t, memo.ID, found.ID)
		assert.Equal(t, "Pay rent", found.Title)
		require.NotNil(t, found.Description)
		assert.Equal(t, "monthly", *found.Description)
		assert.Equal(t, time.UTC, found.DueAt.Location())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null description", func(t *testing.T) {
		s, mock := newMockStore(t)
		memo := testMemo(t)
		memo.Description = nil

		mock.ExpectQuery(`SELECT (.+) FROM memos WHERE id = \$1`).WillReturnRows(memoRow(memo))

		found, err := s.FindByID(context.Background(), memo.ID)
		require.NoError(t, err)
		assert.Nil(t, found.Description)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT (.+) FROM memos WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(columnNames))

		_, err := s.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrMemoNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT (.+) FROM memos`).WillReturnError(errors.New("connection reset"))

		_, err := s.FindByID(context.Background(), uuid.New())
		require.Error(t, err)
		assert.False(t, errors.Is(err, store.ErrNotFound))
		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
	})
}

func TestPostgresMemoStore_UpdateIfExists(t *testing.T) {
	selectForUpdate := `SELECT (.+) FROM memos WHERE id = \$1 FOR UPDATE`

	t.Run("applies mutator in a transaction", func(t *testing.T) {
		s, mock := newMockStore(t)
		memo := testMemo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectForUpdate).WithArgs(memo.ID.String()).WillReturnRows(memoRow(memo))
		mock.ExpectExec("UPDATE memos SET").
			WithArgs(memo.ID.String(), "Pay rent", "monthly", sqlmock.AnyArg(), true, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		updated, err := s.UpdateIfExists(context.Background(), memo.ID, func(m *domain.Memo) (*domain.Memo, error) {
			m.Completed = true
			m.Touch(base.Add(time.Minute))
			return m, nil
		})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.True(t, updated.UpdatedAt.Equal(base.Add(time.Minute)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mutator error rolls back", func(t *testing.T) {
		s, mock := newMockStore(t)
		memo := testMemo(t)
		rejected := errors.New("rejected")

		mock.ExpectBegin()
		mock.ExpectQuery(selectForUpdate).WillReturnRows(memoRow(memo))
		mock.ExpectRollback()

		_, err := s.UpdateIfExists(context.Background(), memo.ID, func(*domain.Memo) (*domain.Memo, error) {
			return nil, rejected
		})
		assert.ErrorIs(t, err, rejected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing memo", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(selectForUpdate).WillReturnRows(sqlmock.NewRows(columnNames))
		mock.ExpectRollback()

		called := false
		_, err := s.UpdateIfExists(context.Background(), uuid.New(), func(m *domain.Memo) (*domain.Memo, error) {
			called = true
			return m, nil
		})
		assert.ErrorIs(t, err, store.ErrMemoNotFound)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		_, err := s.UpdateIfExists(context.Background(), uuid.New(), func(m *domain.Memo) (*domain.Memo, error) {
			return m, nil
		})
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
	})
}

func TestPostgresMemoStore_DeleteIfExists(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM memos WHERE id = \$1`).WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM memos WHERE id = \$1`).WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := s.DeleteIfExists(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteIfExists(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMemoStore_Query(t *testing.T) {
	t.Run("filtered page with total", func(t *testing.T) {
		s, mock := newMockStore(t)
		memo := testMemo(t)
		memo.Completed = true
		completed := true

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM memos WHERE completed = $1`)).
			WithArgs(true).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY due_at ASC, id ASC LIMIT $2 OFFSET $3`)).
			WithArgs(true, 1, 3).
			WillReturnRows(memoRow(memo))
		mock.ExpectCommit()

		memos, total, err := s.Query(context.Background(), store.QueryOptions{
			Completed: &completed,
			SortBy:    domain.SortByDueAt,
			Order:     domain.OrderAsc,
			Limit:     1,
			Offset:    3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, memos, 1)
		assert.Equal(t, memo.ID, memos[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty page is not nil", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM memos`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`ORDER BY created_at DESC`).
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(columnNames))
		mock.ExpectCommit()

		memos, total, err := s.Query(context.Background(), store.QueryOptions{
			SortBy: domain.SortByCreatedAt,
			Order:  domain.OrderDesc,
			Limit:  10,
		})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.NotNil(t, memos)
		assert.Empty(t, memos)
	})

	t.Run("count failure", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("statement timeout"))
		mock.ExpectRollback()

		_, _, err := s.Query(context.Background(), store.QueryOptions{
			SortBy: domain.SortByTitle, Order: domain.OrderAsc, Limit: 10,
		})
		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unsupported sort field", func(t *testing.T) {
		s, _ := newMockStore(t)

		_, _, err := s.Query(context.Background(), store.QueryOptions{
			SortBy: "priority", Order: domain.OrderAsc, Limit: 10,
		})
		assert.Error(t, err)
	})
}

func TestBuildListQueries(t *testing.T) {
	completed := false

	countQuery, pageQuery, args, err := buildListQueries(store.QueryOptions{
		Completed: &completed,
		SortBy:    domain.SortByTitle,
		Order:     domain.OrderDesc,
		Limit:     5,
		Offset:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, `SELECT COUNT(*) FROM memos WHERE completed = $1`, countQuery)
	assert.Equal(t,
		`SELECT `+memoColumns+` FROM memos WHERE completed = $1 ORDER BY title COLLATE "C" DESC, id ASC LIMIT $2 OFFSET $3`,
		pageQuery)
	assert.Equal(t, []any{false, 5, 10}, args)

	countQuery, pageQuery, args, err = buildListQueries(store.QueryOptions{
		SortBy: domain.SortByUpdatedAt,
		Order:  domain.OrderAsc,
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, `SELECT COUNT(*) FROM memos`, countQuery)
	assert.Equal(t,
		`SELECT `+memoColumns+` FROM memos ORDER BY updated_at ASC, id ASC LIMIT $1 OFFSET $2`,
		pageQuery)
	assert.Equal(t, []any{1, 0}, args)

	_, _, _, err = buildListQueries(store.QueryOptions{SortBy: domain.SortByTitle, Order: "sideways"})
	assert.Error(t, err)
}

func TestPostgresMemoStore_Ping(t *testing.T) {
	s, _ := newMockStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
