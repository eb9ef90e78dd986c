package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

/*
MaxSampleInsertionsPerStatement is the maximum number of samples that
adapters add with a single insert command. Adding more results in more
insertion commands.
*/
const MaxSampleInsertionsPerStatement = 10

/*
Adapter is an interface providing the methods needed to read and write
samples with a database backend.

Raw samples are maps of column names to values: strings for discrete
columns and float64 for continuous ones.
*/
type Adapter interface {
	ColumnName(string) (string, error)
	CreateSampleTable(ctx context.Context, discreteColumns, continuousColumns []string) error
	AddSamples(ctx context.Context, rawSamples []map[string]interface{}, discreteColumns, continuousColumns []string) (int, error)
	IterateOnSamples(ctx context.Context, discreteColumns, continuousColumns []string, lambda func(int, map[string]interface{}) (bool, error)) error
	CountSamples(ctx context.Context) (int, error)
	Close() error
}

/*
ColumnName takes a feature name and returns it as column name, or an
error if it cannot be used as such: the name id is reserved and double
quotes are not allowed.
*/
func ColumnName(featureName string) (string, error) {
	if featureName == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if featureName == "" || strings.ContainsAny(featureName, `"`) {
		return "", fmt.Errorf(`feature name '%s' is empty or contains invalid character '"'`, featureName)
	}
	return featureName, nil
}

// QuotedColumns returns the given columns double quoted and
// joined by commas.
func QuotedColumns(columns []string) string {
	return `"` + strings.Join(columns, `", "`) + `"`
}

/*
InsertStatement takes the columns of the samples table, a number of
samples and a function returning the placeholder for the nth
parameter, and returns the statement to insert that many samples.
*/
func InsertStatement(columns []string, samples int, placeholder func(int) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO samples (%s) VALUES ", QuotedColumns(columns))
	for i := 0; i < samples; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for j := range columns {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(placeholder(i*len(columns) + j + 1))
		}
		b.WriteString(")")
	}
	return b.String()
}

/*
InsertChunks takes the raw samples to insert and the columns to insert
them in, and calls exec with the values of chunks of at most
MaxSampleInsertionsPerStatement samples. It returns the number of samples
inserted before an error occurred, if any.
*/
func InsertChunks(rawSamples []map[string]interface{}, columns []string, exec func(samples int, values []interface{}) error) (int, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("no features to store")
	}
	for start := 0; start < len(rawSamples); start += MaxSampleInsertionsPerStatement {
		end := min(start+MaxSampleInsertionsPerStatement, len(rawSamples))
		values := make([]interface{}, 0, (end-start)*len(columns))
		for _, rs := range rawSamples[start:end] {
			for _, c := range columns {
				values = append(values, rs[c])
			}
		}
		if err := exec(end-start, values); err != nil {
			return start, fmt.Errorf("inserting samples %d to %d: %w", start+1, end, err)
		}
	}
	return len(rawSamples), nil
}

/*
ScanSamples takes sql.Rows with the discrete columns followed by the
continuous ones, and calls the lambda function with each raw sample and
its index, until it returns false or an error. Null values are left out
of the raw samples. The rows are closed before returning.
*/
func ScanSamples(rows *sql.Rows, discreteColumns, continuousColumns []string, lambda func(int, map[string]interface{}) (bool, error)) error {
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		rawSample := make(map[string]interface{})
		discreteValues := make([]sql.NullString, len(discreteColumns))
		continuousValues := make([]sql.NullFloat64, len(continuousColumns))
		values := make([]interface{}, 0, len(discreteColumns)+len(continuousColumns))
		for i := range discreteValues {
			values = append(values, &discreteValues[i])
		}
		for i := range continuousValues {
			values = append(values, &continuousValues[i])
		}
		if err := rows.Scan(values...); err != nil {
			return err
		}
		for i, c := range discreteColumns {
			if discreteValues[i].Valid {
				rawSample[c] = discreteValues[i].String
			}
		}
		for i, c := range continuousColumns {
			if continuousValues[i].Valid {
				rawSample[c] = continuousValues[i].Float64
			}
		}
		ok, err := lambda(j, rawSample)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return rows.Close()
}
