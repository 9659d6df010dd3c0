package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/fairlens/internal/config"
	"github.com/rohankatakam/fairlens/internal/dataset"
	ferrors "github.com/rohankatakam/fairlens/internal/errors"
	"github.com/rohankatakam/fairlens/internal/logging"
	"github.com/rohankatakam/fairlens/internal/metrics"
)

const incomeCSV = `age,sex,income
25,female,0
40,male,1
35,female,1
50,male,1
22,female,0
60,male,0
45,female,1
30,male,0
`

// predicts 1 when age >= 40: 0,1,0,1,0,1,1,0
const ageModel = "link: identity\nthreshold: 40\nweights:\n  age: 1\n"

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "income.csv")
	modelPath := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(csvPath, []byte(incomeCSV), 0644))
	require.NoError(t, os.WriteFile(modelPath, []byte(ageModel), 0644))

	cfgPath := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`dataset:
  path: %s
  label_column: income
  encode: [sex]
columns:
  numeric: [age]
  categorical: [sex]
  protected: [sex, age]
model:
  path: %s
logging:
  level: error
`, csvPath, modelPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0644))
	return cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAuditJSON(t *testing.T) {
	out, err := execute(t, "--config", writeFixture(t), "--format", "json", "audit")
	require.NoError(t, err)

	var doc struct {
		RunID      string  `json:"run_id"`
		Samples    int     `json:"samples"`
		Accuracy   float64 `json:"accuracy"`
		Attributes []struct {
			Name string              `json:"name"`
			FNR  map[string]*float64 `json:"fnr"`
			FPR  map[string]*float64 `json:"fpr"`
		} `json:"attributes"`
		Parity []struct {
			Name string `json:"name"`
		} `json:"parity"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, 8, doc.Samples)
	assert.Equal(t, 0.75, doc.Accuracy)
	require.Len(t, doc.Attributes, 2)
	assert.Equal(t, "sex", doc.Attributes[0].Name)
	assert.Equal(t, 0.5, *doc.Attributes[0].FNR["female"])
	assert.Equal(t, 0.0, *doc.Attributes[0].FPR["female"])
	assert.Equal(t, 0.0, *doc.Attributes[0].FNR["male"])
	assert.Equal(t, 0.5, *doc.Attributes[0].FPR["male"])
	assert.Contains(t, doc.Attributes[1].FNR, metrics.WholePopulationGroup)
	assert.Len(t, doc.Parity, 2)
}

func TestAuditMaxGap(t *testing.T) {
	t.Cleanup(func() { auditMaxGap = 0 })

	_, err := execute(t, "--config", writeFixture(t), "--format", "quiet", "audit", "--max-gap", "0.4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"sex"`)
}

func TestParityQuiet(t *testing.T) {
	out, err := execute(t, "--config", writeFixture(t), "--format", "quiet", "parity")
	require.NoError(t, err)
	assert.Contains(t, out, "sex: parity=")
	assert.Contains(t, out, "age: parity=")
}

func TestCompareSameModel(t *testing.T) {
	cfgPath := writeFixture(t)
	t.Cleanup(func() { compareCandidate = "" })

	out, err := execute(t, "--config", cfgPath, "--format", "json", "compare",
		"--candidate", filepath.Join(filepath.Dir(cfgPath), "model.yaml"))
	require.NoError(t, err)

	var doc struct {
		Deltas []struct {
			Name string              `json:"name"`
			FNR  map[string]*float64 `json:"fnr_delta"`
		} `json:"deltas"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Deltas, 2)
	assert.Equal(t, 0.0, *doc.Deltas[0].FNR["female"])
}

func TestCheckGaps(t *testing.T) {
	report := &metrics.Report{Rows: []metrics.ReportRow{
		{Attribute: "sex", FNR: map[string]float64{"f": 0.1, "m": 0.3}, FPR: map[string]float64{"f": 0.2}},
	}}
	assert.NoError(t, checkGaps(report, 0.25))
	assert.Error(t, checkGaps(report, 0.1))
}

func TestCheckGapsReportsFNRFirst(t *testing.T) {
	report := &metrics.Report{Rows: []metrics.ReportRow{
		{Attribute: "sex", FNR: map[string]float64{"f": 0.1, "m": 0.6}, FPR: map[string]float64{"f": 0.0, "m": 0.9}},
	}}
	for i := 0; i < 20; i++ {
		err := checkGaps(report, 0.2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FNR gap")
	}
}

func TestDeclaredAttributes(t *testing.T) {
	c := config.Default()
	c.Columns.Numeric = []string{"age", "hours"}
	c.Columns.Categorical = []string{"sex", "age"}
	assert.Equal(t, []string{"age", "hours", "sex"}, declaredAttributes(c))
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "postgres://user:xxxxx@db/adult", maskDSN("postgres://user:secret@db/adult"))
	assert.Equal(t, "host=db user=u password=***", maskDSN("host=db user=u password=secret"))
	assert.Equal(t, "file:adult.db", maskDSN("file:adult.db"))
}

func TestLoggingConfig(t *testing.T) {
	t.Run("console only", func(t *testing.T) {
		lc := loggingConfig(config.LoggingConfig{Level: "warn", JSON: true}, false)
		assert.Equal(t, logging.WARN, lc.Level)
		assert.True(t, lc.JSONFormat)
		assert.Empty(t, lc.OutputFile)
		assert.Equal(t, os.Stderr, lc.Writer)
	})

	t.Run("file uses production layout", func(t *testing.T) {
		lc := loggingConfig(config.LoggingConfig{Level: "error", File: "/tmp/fairlens.log"}, false)
		assert.Equal(t, logging.ERROR, lc.Level)
		assert.Equal(t, "/tmp/fairlens.log", lc.OutputFile)
		assert.True(t, lc.JSONFormat)
		assert.Equal(t, int64(50*1024*1024), lc.MaxSize)
		assert.Equal(t, 10, lc.MaxBackups)
	})

	t.Run("rotation overrides", func(t *testing.T) {
		lc := loggingConfig(config.LoggingConfig{File: "/tmp/fairlens.log", MaxSizeMB: 2, MaxBackups: 4, AddSource: true}, false)
		assert.Equal(t, int64(2*1024*1024), lc.MaxSize)
		assert.Equal(t, 4, lc.MaxBackups)
		assert.True(t, lc.AddSource)
	})

	t.Run("verbose", func(t *testing.T) {
		lc := loggingConfig(config.LoggingConfig{Level: "error"}, true)
		assert.Equal(t, logging.DEBUG, lc.Level)
		assert.True(t, lc.AddSource)
	})
}

func TestClassifierForWithoutSource(t *testing.T) {
	_, err := classifierFor("", &dataset.Dataset{})
	require.Error(t, err)
	assert.Equal(t, ferrors.ErrorTypeInternal, ferrors.GetType(err))
}
