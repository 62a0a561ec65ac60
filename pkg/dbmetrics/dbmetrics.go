package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DBExecutor общий интерфейс *sql.DB, *sql.Tx и *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DB обертка над *sql.DB, которая замеряет длительность запросов
type DB struct {
	*sql.DB
	duration *prometheus.HistogramVec
}

// New оборачивает соединение и регистрирует гистограмму в reg
func New(db *sql.DB, reg prometheus.Registerer, serviceName string) *DB {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "db_query_duration_seconds",
		Help:        "Database query latency by statement type",
		ConstLabels: prometheus.Labels{"service": serviceName},
		Buckets:     prometheus.DefBuckets,
	}, []string{"operation"})
	reg.MustRegister(duration)

	return &DB{DB: db, duration: duration}
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	defer d.observe(query, time.Now())
	return d.DB.ExecContext(ctx, query, args...)
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	defer d.observe(query, time.Now())
	return d.DB.QueryContext(ctx, query, args...)
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	defer d.observe(query, time.Now())
	return d.DB.QueryRowContext(ctx, query, args...)
}

func (d *DB) observe(query string, start time.Time) {
	d.duration.WithLabelValues(operation(query)).Observe(time.Since(start).Seconds())
}

// operation первое слово запроса в нижнем регистре (select, insert, ...)
func operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
