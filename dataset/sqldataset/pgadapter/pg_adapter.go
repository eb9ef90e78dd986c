/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/bonsai/dataset/sqldataset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	return sqldataset.ColumnName(featureName)
}

func (a *adapter) CreateSampleTable(ctx context.Context, discreteColumns, continuousColumns []string) error {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	for _, c := range discreteColumns {
		fmt.Fprintf(&b, `"%s" TEXT NULL, `, c)
	}
	for _, c := range continuousColumns {
		fmt.Fprintf(&b, `"%s" DOUBLE PRECISION NULL, `, c)
	}
	b.WriteString(`"id" SERIAL PRIMARY KEY)`)
	_, err := a.db.ExecContext(ctx, b.String())
	if err != nil {
		return fmt.Errorf("ensuring samples table exists: %w", err)
	}
	return nil
}

func (a *adapter) AddSamples(ctx context.Context, rawSamples []map[string]interface{}, discreteColumns, continuousColumns []string) (int, error) {
	columns := append(append([]string{}, discreteColumns...), continuousColumns...)
	return sqldataset.InsertChunks(rawSamples, columns, func(samples int, values []interface{}) error {
		stmt := sqldataset.InsertStatement(columns, samples, placeholder)
		_, err := a.db.ExecContext(ctx, stmt, values...)
		return err
	})
}

func (a *adapter) IterateOnSamples(ctx context.Context, discreteColumns, continuousColumns []string, lambda func(int, map[string]interface{}) (bool, error)) error {
	columns := append(append([]string{}, discreteColumns...), continuousColumns...)
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf(`SELECT %s FROM samples ORDER BY "id"`, sqldataset.QuotedColumns(columns)))
	if err != nil {
		return err
	}
	return sqldataset.ScanSamples(rows, discreteColumns, continuousColumns, lambda)
}

func (a *adapter) CountSamples(ctx context.Context) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`).Scan(&count)
	return count, err
}

func (a *adapter) Close() error {
	return a.db.Close()
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
