package dataset

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/genai-bias/biasplot/pkg/errors"
)

// ReadLabelFile reads a key-to-label dictionary from a CSV with a header.
// keyCol and labelCol name the columns (case-insensitive); when empty the
// first two columns are used. Keys are cleaned with CleanKey.
func ReadLabelFile(path, keyCol, labelCol string) (map[string]string, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadLabels(bytes.NewReader(data), keyCol, labelCol)
}

// ReadLabels is ReadLabelFile over a reader.
func ReadLabels(r io.Reader, keyCol, labelCol string) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty label table")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read label header")
	}
	cols := headerIndex(header)

	ki, li := 0, 1
	if keyCol != "" {
		i, ok := cols[strings.ToLower(keyCol)]
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingColumn, "label table must contain a %q column", keyCol)
		}
		ki = i
	}
	if labelCol != "" {
		i, ok := cols[strings.ToLower(labelCol)]
		if !ok {
			return nil, errors.New(errors.ErrCodeMissingColumn, "label table must contain a %q column", labelCol)
		}
		li = i
	}

	labels := make(map[string]string)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "read label row")
		}
		key := CleanKey(cell(rec, ki))
		label := strings.TrimSpace(cell(rec, li))
		if key == "" || label == "" {
			continue
		}
		labels[key] = label
	}
	return labels, nil
}
