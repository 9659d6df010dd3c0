package output

import (
	"fmt"
	"io"

	"github.com/rohankatakam/fairlens/internal/metrics"
)

// QuietFormatter outputs one line per attribute (for scripts and hooks)
type QuietFormatter struct{}

func (f *QuietFormatter) Format(doc *Document, w io.Writer) error {
	if doc.Report != nil {
		for _, row := range doc.Report.Rows {
			if _, err := fmt.Fprintf(w, "%s: corr=%s fnr_gap=%s fpr_gap=%s\n",
				row.Attribute,
				metrics.FormatRate(row.Correlation),
				formatGap(row.FNR),
				formatGap(row.FPR),
			); err != nil {
				return err
			}
		}
	}

	for _, p := range doc.Parity {
		if _, err := fmt.Fprintf(w, "%s: parity=%s\n", p.Attribute, metrics.FormatRate(p.Parity)); err != nil {
			return err
		}
	}

	for _, d := range doc.Deltas {
		if _, err := fmt.Fprintf(w, "%s: fnr_delta_gap=%s fpr_delta_gap=%s\n",
			d.Attribute, formatGap(d.FNR), formatGap(d.FPR)); err != nil {
			return err
		}
	}

	return nil
}
