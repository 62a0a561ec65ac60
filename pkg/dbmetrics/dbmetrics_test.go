package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_ObservesQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	reg := prometheus.NewRegistry()
	db := New(sqlDB, reg, "test")

	mock.ExpectExec("UPDATE payment_reconciliations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err = db.ExecContext(context.Background(), "UPDATE payment_reconciliations SET status = $1", "resolved")
	require.NoError(t, err)

	var id int64
	require.NoError(t, db.QueryRowContext(context.Background(), "SELECT id FROM payment_reconciliations").Scan(&id))

	assert.Equal(t, 2, testutil.CollectAndCount(db.duration))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT * FROM t"))
	assert.Equal(t, "insert", operation("INSERT INTO t"))
	assert.Equal(t, "unknown", operation(""))
}
