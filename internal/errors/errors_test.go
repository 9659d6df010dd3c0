package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorIsFatal(t *testing.T) {
	err := ValidationErrorf("labels have %d rows, table has %d", 3, 4)

	assert.True(t, err.IsFatal())
	assert.True(t, IsFatal(err))
	assert.Equal(t, ErrorTypeValidation, GetType(err))
	assert.Equal(t, "labels have 3 rows, table has 4", err.Error())
	assert.NotEmpty(t, err.StackTrace)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := fmt.Errorf("open data.csv: no such file")
	err := DatasetError(cause, "failed to load dataset")

	require.NotNil(t, err)
	assert.Equal(t, "failed to load dataset: open data.csv: no such file", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsFatal(err))
	assert.Equal(t, SeverityHigh, GetSeverity(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeModel, SeverityHigh, "unused"))
}

func TestIsMatchesType(t *testing.T) {
	err := fmt.Errorf("engine: %w", ConfigError("protected attribute missing"))

	assert.True(t, stderrors.Is(err, &Error{Type: ErrorTypeConfig}))
	assert.False(t, stderrors.Is(err, &Error{Type: ErrorTypeDataset}))
	assert.Equal(t, ErrorTypeConfig, GetType(err))
	assert.True(t, IsFatal(err))
}

func TestPlainErrors(t *testing.T) {
	plain := fmt.Errorf("boom")

	assert.False(t, IsFatal(plain))
	assert.Equal(t, SeverityMedium, GetSeverity(plain))
	assert.Equal(t, ErrorTypeInternal, GetType(plain))
	assert.Equal(t, SeverityLow, GetSeverity(nil))
}

func TestDetailedString(t *testing.T) {
	err := ModelError(fmt.Errorf("weights missing"), "failed to load model").
		WithContext("path", "model.yaml").
		WithContext("columns", 4)

	s := err.DetailedString()
	assert.Contains(t, s, "[HIGH] [MODEL] failed to load model")
	assert.Contains(t, s, "Caused by: weights missing")
	assert.Contains(t, s, "  columns: 4\n  path: model.yaml\n")
}
