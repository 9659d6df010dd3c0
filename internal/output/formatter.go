package output

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/rohankatakam/fairlens/internal/metrics"
)

// Document is everything one fairlens run reports. Sections that were not
// computed are nil.
type Document struct {
	RunID     uuid.UUID
	Generated time.Time
	Dataset   string
	Samples   int
	Accuracy  float64 // NaN when predictions were not audited

	Report *metrics.Report
	Parity []metrics.ParityResult
	Deltas []metrics.AttributeDelta
}

// NewDocument stamps a fresh run id and time
func NewDocument(dataset string, samples int) *Document {
	return &Document{
		RunID:     uuid.New(),
		Generated: time.Now().UTC(),
		Dataset:   dataset,
		Samples:   samples,
		Accuracy:  math.NaN(),
	}
}

// Formatter defines output formatting interface
type Formatter interface {
	Format(doc *Document, w io.Writer) error
}

// Format selects a formatter
type Format string

const (
	FormatQuiet    Format = "quiet"    // one line per attribute
	FormatStandard Format = "standard" // human-readable tables
	FormatJSON     Format = "json"     // machine-readable
)

// ParseFormat validates a format name. The empty string selects the default
// for stdout.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return DefaultFormat(os.Stdout), nil
	case FormatQuiet, FormatStandard, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// NewFormatter creates appropriate formatter based on format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatQuiet:
		return &QuietFormatter{}
	case FormatJSON:
		return &JSONFormatter{Version: SchemaVersion}
	default:
		return &StandardFormatter{}
	}
}

// DefaultFormat returns JSON when f is not a terminal (pipes, CI logs) and
// the standard tables otherwise.
func DefaultFormat(f *os.File) Format {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return FormatJSON
	}
	return FormatStandard
}

func sortedGroups(rates ...map[string]float64) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, m := range rates {
		for g := range m {
			if !seen[g] {
				seen[g] = true
				groups = append(groups, g)
			}
		}
	}
	sort.Strings(groups)
	return groups
}

func formatGap(m map[string]float64) string {
	if gap, ok := metrics.MaxGap(m); ok {
		return metrics.FormatRate(gap)
	}
	return "n/a"
}
