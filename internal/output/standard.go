package output

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rohankatakam/fairlens/internal/metrics"
)

// StandardFormatter outputs per-attribute tables (default)
type StandardFormatter struct{}

func (f *StandardFormatter) Format(doc *Document, w io.Writer) error {
	var sb strings.Builder

	// Header
	sb.WriteString("⚖️  Fairness Audit\n")
	if doc.Dataset != "" {
		fmt.Fprintf(&sb, "Dataset: %s\n", doc.Dataset)
	}
	fmt.Fprintf(&sb, "Samples: %d\n", doc.Samples)
	if !math.IsNaN(doc.Accuracy) {
		fmt.Fprintf(&sb, "Accuracy: %s\n", metrics.FormatRate(doc.Accuracy))
	}
	fmt.Fprintf(&sb, "Run: %s\n\n", doc.RunID)

	if doc.Report != nil {
		for _, row := range doc.Report.Rows {
			fmt.Fprintf(&sb, "%s (%s)\n", row.Attribute, row.Kind)
			fmt.Fprintf(&sb, "  |corr| with label: %s\n", metrics.FormatRate(row.Correlation))
			groups := sortedGroups(row.FNR, row.FPR)
			if len(groups) == 0 {
				sb.WriteString("  no groups\n\n")
				continue
			}
			writeRateTable(&sb, groups, "FNR", row.FNR, "FPR", row.FPR)
			fmt.Fprintf(&sb, "  max gap: FNR %s, FPR %s\n\n", formatGap(row.FNR), formatGap(row.FPR))
		}
	}

	if len(doc.Parity) > 0 {
		sb.WriteString("Statistical parity (spread of label mean across groups):\n")
		width := 0
		for _, p := range doc.Parity {
			width = max(width, len(p.Attribute))
		}
		for i, p := range doc.Parity {
			fmt.Fprintf(&sb, "%2d. %-*s  %s\n", i+1, width, p.Attribute, metrics.FormatRate(p.Parity))
		}
		sb.WriteString("\n")
	}

	if len(doc.Deltas) > 0 {
		sb.WriteString("Candidate − base:\n")
		for _, d := range doc.Deltas {
			fmt.Fprintf(&sb, "%s\n", d.Attribute)
			writeRateTable(&sb, sortedGroups(d.FNR, d.FPR), "ΔFNR", d.FNR, "ΔFPR", d.FPR)
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeRateTable(sb *strings.Builder, groups []string, leftName string, left map[string]float64, rightName string, right map[string]float64) {
	width := len("group")
	for _, g := range groups {
		width = max(width, len(g))
	}
	fmt.Fprintf(sb, "  %-*s  %8s  %8s\n", width, "group", leftName, rightName)
	for _, g := range groups {
		fmt.Fprintf(sb, "  %-*s  %8s  %8s\n", width, g, cell(left, g), cell(right, g))
	}
}

func cell(m map[string]float64, group string) string {
	v, ok := m[group]
	if !ok {
		return "-"
	}
	return metrics.FormatRate(v)
}
