package dataset

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "github.com/rohankatakam/fairlens/internal/errors"
)

// setupSQLite creates a small applicant table in a temporary database
func setupSQLite(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "audit.db")

	db, err := sqlx.Connect(DriverSQLite, path)
	if err != nil {
		if strings.Contains(err.Error(), "cgo") {
			t.Skip("Skipping: go-sqlite3 requires cgo")
		}
		require.NoError(t, err)
	}
	defer db.Close()

	db.MustExec(`CREATE TABLE applicants (age REAL, race TEXT, approved INTEGER, score REAL)`)
	db.MustExec(`INSERT INTO applicants VALUES
		(21, 'a', 0, 0.1),
		(35, 'b', 1, 0.9),
		(44, 'a', 1, 0.7),
		(29, 'c', 0, 0.2)`)

	return path
}

func TestLoadSQLite(t *testing.T) {
	path := setupSQLite(t)

	ds, err := LoadSQL(context.Background(), SQLSource{
		Driver: DriverSQLite,
		DSN:    path,
		Query:  "SELECT age, race, approved FROM applicants ORDER BY rowid",
	}, LoadOptions{LabelColumn: "approved", Encode: []string{"race"}}, logrus.New())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 1, 0}, ds.Labels)
	assert.Equal(t, []string{"age", "race_a", "race_b", "race_c"}, ds.Table.Columns())
	age, _ := ds.Table.Column("age")
	assert.Equal(t, []float64{21, 35, 44, 29}, age)
}

func TestLoadSQLValidation(t *testing.T) {
	_, err := LoadSQL(context.Background(), SQLSource{Driver: "mysql", Query: "SELECT 1"}, LoadOptions{LabelColumn: "y"}, nil)
	require.Error(t, err)
	assert.Equal(t, ferrors.ErrorTypeConfig, ferrors.GetType(err))

	_, err = LoadSQL(context.Background(), SQLSource{Driver: DriverSQLite, DSN: ":memory:"}, LoadOptions{LabelColumn: "y"}, nil)
	require.Error(t, err)
	assert.Equal(t, ferrors.ErrorTypeConfig, ferrors.GetType(err))
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "", cellString(nil))
	assert.Equal(t, "abc", cellString([]byte("abc")))
	assert.Equal(t, "42", cellString(int64(42)))
	assert.Equal(t, "0.25", cellString(0.25))
	assert.Equal(t, "true", cellString(true))
}
