package output

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/rohankatakam/fairlens/internal/metrics"
)

// SchemaVersion is bumped whenever the JSON layout changes
const SchemaVersion = "1.0"

// JSONFormatter outputs machine-readable JSON. Undefined values are null.
type JSONFormatter struct {
	Version string
}

type jsonDocument struct {
	Version    string          `json:"version"`
	RunID      string          `json:"run_id"`
	Generated  string          `json:"generated_at"`
	Dataset    string          `json:"dataset,omitempty"`
	Samples    int             `json:"samples"`
	Accuracy   *float64        `json:"accuracy"`
	Attributes []jsonAttribute `json:"attributes,omitempty"`
	Parity     []jsonParity    `json:"parity,omitempty"`
	Deltas     []jsonDelta     `json:"deltas,omitempty"`
}

type jsonAttribute struct {
	Name        string              `json:"name"`
	Kind        string              `json:"kind"`
	Correlation *float64            `json:"correlation"`
	FNR         map[string]*float64 `json:"fnr"`
	FPR         map[string]*float64 `json:"fpr"`
	FNRGap      *float64            `json:"fnr_gap"`
	FPRGap      *float64            `json:"fpr_gap"`
}

type jsonParity struct {
	Name   string   `json:"name"`
	Parity *float64 `json:"parity"`
}

type jsonDelta struct {
	Name string              `json:"name"`
	FNR  map[string]*float64 `json:"fnr_delta"`
	FPR  map[string]*float64 `json:"fpr_delta"`
}

// Format outputs the document as indented JSON
func (f *JSONFormatter) Format(doc *Document, w io.Writer) error {
	version := f.Version
	if version == "" {
		version = SchemaVersion
	}

	out := jsonDocument{
		Version:   version,
		RunID:     doc.RunID.String(),
		Generated: doc.Generated.Format(time.RFC3339),
		Dataset:   doc.Dataset,
		Samples:   doc.Samples,
		Accuracy:  number(doc.Accuracy),
	}

	if doc.Report != nil {
		for _, row := range doc.Report.Rows {
			out.Attributes = append(out.Attributes, jsonAttribute{
				Name:        row.Attribute,
				Kind:        row.Kind.String(),
				Correlation: number(row.Correlation),
				FNR:         numbers(row.FNR),
				FPR:         numbers(row.FPR),
				FNRGap:      gap(row.FNR),
				FPRGap:      gap(row.FPR),
			})
		}
	}
	for _, p := range doc.Parity {
		out.Parity = append(out.Parity, jsonParity{Name: p.Attribute, Parity: number(p.Parity)})
	}
	for _, d := range doc.Deltas {
		out.Deltas = append(out.Deltas, jsonDelta{Name: d.Attribute, FNR: numbers(d.FNR), FPR: numbers(d.FPR)})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// number maps NaN and infinities to null
func number(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func numbers(m map[string]float64) map[string]*float64 {
	out := make(map[string]*float64, len(m))
	for k, v := range m {
		out[k] = number(v)
	}
	return out
}

func gap(m map[string]float64) *float64 {
	if g, ok := metrics.MaxGap(m); ok {
		return &g
	}
	return nil
}
