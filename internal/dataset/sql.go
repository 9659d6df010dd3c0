package dataset

import (
	"context"
	"fmt"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
	"github.com/sirupsen/logrus"

	ferrors "github.com/rohankatakam/fairlens/internal/errors"
)

// Supported database/sql driver names
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// SQLSource describes a query whose result set is the dataset
type SQLSource struct {
	Driver string
	DSN    string
	Query  string
}

// LoadSQL runs the source query and builds a dataset from its rows.
// Column names of the result set play the role of the CSV header.
func LoadSQL(ctx context.Context, src SQLSource, opts LoadOptions, logger *logrus.Logger) (*Dataset, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	switch src.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, ferrors.ConfigErrorf("unsupported dataset driver %q (want %s or %s)", src.Driver, DriverSQLite, DriverPostgres)
	}
	if src.Query == "" {
		return nil, ferrors.ConfigError("dataset query is required for SQL sources")
	}

	db, err := sqlx.ConnectContext(ctx, src.Driver, src.DSN)
	if err != nil {
		return nil, ferrors.DatasetErrorf(err, "connect to %s", src.Driver)
	}
	defer db.Close()

	start := time.Now()
	fr, err := queryFrame(ctx, db, src.Query)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"driver":   src.Driver,
		"rows":     len(fr.records),
		"columns":  len(fr.header),
		"duration": time.Since(start),
	}).Debug("dataset query complete")

	return fr.build(opts)
}

func queryFrame(ctx context.Context, db *sqlx.DB, query string) (*frame, error) {
	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return nil, ferrors.DatasetError(err, "dataset query failed")
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, ferrors.DatasetError(err, "read result columns")
	}

	fr := &frame{header: header}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, ferrors.DatasetError(err, "scan dataset row")
		}
		rec := make([]string, len(values))
		for i, v := range values {
			rec[i] = cellString(v)
		}
		fr.records = append(fr.records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, ferrors.DatasetError(err, "iterate dataset rows")
	}

	return fr, nil
}

func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
