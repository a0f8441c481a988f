package dbmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/pkg/metrics"
)

func TestGetExecutor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := Wrap(db)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, wrapped, GetExecutor(ctx, wrapped))

	mock.ExpectBegin()
	tx, err := wrapped.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, wrapped))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_RecordsQueryMetrics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	wrapped := &DB{db: db, metrics: m}

	mock.ExpectExec("UPDATE rentals").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM payments").WillReturnError(errors.New("boom"))

	_, err = wrapped.ExecContext(context.Background(), "UPDATE rentals SET end_date = $1", "2024-01-13")
	require.NoError(t, err)

	_, err = wrapped.ExecContext(context.Background(), "DELETE FROM payments WHERE id = $1", 1)
	require.Error(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(m.DBQueryErrors))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("delete")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "select", operationName("  SELECT id FROM cameras"))
	assert.Equal(t, "insert", operationName("INSERT INTO payments"))
	assert.Equal(t, "unknown", operationName(""))
}
