package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	ferrors "github.com/rohankatakam/fairlens/internal/errors"
)

// LoadCSV reads a comma-separated file whose first row is the header.
func LoadCSV(path string, opts LoadOptions) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ferrors.FileSystemError(err, "failed to open dataset")
	}
	defer f.Close()

	ds, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV is LoadCSV over an arbitrary reader
func ReadCSV(r io.Reader, opts LoadOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ferrors.DatasetError(fmt.Errorf("no header row"), "empty dataset")
	}
	if err != nil {
		return nil, ferrors.DatasetError(err, "failed to read header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, ferrors.DatasetError(err, "failed to read records")
	}

	fr := &frame{header: header, records: records}
	return fr.build(opts)
}
