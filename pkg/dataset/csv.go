package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/genai-bias/biasplot/pkg/errors"
)

// Default key columns.
const (
	KeyColumn         = "occupation"
	BaselineKeyColumn = "genai_bias_search_term"
	BaselineLabel     = "Occupation"
	SourceColumn      = "model_name"
)

// ReadOptions controls how a CSV is mapped onto a SourceTable.
type ReadOptions struct {
	// Kind selects the column prefix ("" or "diff_").
	Kind Kind
	// Groups lists the required group columns.
	Groups []Group
	// KeyColumn names the occupation column (default "occupation").
	KeyColumn string
	// LabelColumn optionally names a display-label column.
	LabelColumn string
}

func (o *ReadOptions) setDefaults() {
	if o.KeyColumn == "" {
		o.KeyColumn = KeyColumn
	}
	if len(o.Groups) == 0 {
		o.Groups = AllGroups
	}
}

// ReadFile reads a whole file, decoding Windows-1252 when the content is
// not valid UTF-8. A leading UTF-8 byte order mark is dropped.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "missing required file: %s", path)
	}
	if err != nil {
		return nil, err
	}
	return DecodeText(data)
}

// DecodeText returns data as UTF-8, transcoding from Windows-1252 if needed.
func DecodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return data, nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode cp1252")
	}
	return out, nil
}

// ReadSourceFile opens path and reads it with ReadSourceTable.
func ReadSourceFile(path, name string, opts ReadOptions) (*SourceTable, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := ReadSourceTable(bytes.NewReader(data), name, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadSourceTable parses a CSV with a header row into a SourceTable.
//
// Header names match case-insensitively. Every group in opts.Groups must
// have a column, except Men which is derived from Women when absent.
func ReadSourceTable(r io.Reader, name string, opts ReadOptions) (*SourceTable, error) {
	opts.setDefaults()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty table")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read header")
	}
	cols := headerIndex(header)

	keyIdx, ok := cols[strings.ToLower(opts.KeyColumn)]
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingColumn, "must contain a %q column", opts.KeyColumn)
	}
	labelIdx := -1
	if opts.LabelColumn != "" {
		if i, ok := cols[strings.ToLower(opts.LabelColumn)]; ok {
			labelIdx = i
		}
	}

	prefix := opts.Kind.Prefix()
	groupIdx := make(map[Group]int, len(opts.Groups))
	deriveMen := false
	var missing []string
	for _, g := range opts.Groups {
		col := prefix + g.Column()
		if i, ok := cols[col]; ok {
			groupIdx[g] = i
			continue
		}
		if g == Men {
			deriveMen = true
			continue
		}
		missing = append(missing, col)
	}
	if deriveMen {
		if i, ok := cols[prefix+Women.Column()]; ok {
			groupIdx[Women] = i
		} else {
			missing = append(missing, prefix+Men.Column())
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeMissingColumn, "missing columns: %v", missing)
	}

	t := NewSourceTable(name)
	if labelIdx >= 0 {
		t.Labels = make(map[string]string)
	}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "line %d", line)
		}
		key := CleanKey(cell(rec, keyIdx))
		if key == "" {
			continue
		}
		if err := errors.ValidateOccupationKey(key); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		values := make(map[Group]Value, len(opts.Groups))
		for _, g := range opts.Groups {
			if g == Men && deriveMen {
				continue
			}
			v := ParseValue(cell(rec, groupIdx[g]))
			if v.Valid && opts.Kind == Percentages {
				if err := errors.ValidatePercent(v.V); err != nil {
					return nil, fmt.Errorf("line %d, %s: %w", line, g.Column(), err)
				}
			}
			values[g] = v
		}
		if deriveMen {
			women := ParseValue(cell(rec, groupIdx[Women]))
			if opts.Kind == Differences {
				values[Men] = women.Neg()
			} else {
				values[Men] = Some(100).Sub(women)
			}
		}

		if err := t.Add(key, values); err != nil {
			return nil, err
		}
		if labelIdx >= 0 {
			if label := strings.TrimSpace(cell(rec, labelIdx)); label != "" {
				t.Labels[key] = label
			}
		}
	}
	return t, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// WriteOptions controls WriteTables output.
type WriteOptions struct {
	Kind     Kind
	Groups   []Group
	// Decimals rounds values; negative writes full precision.
	Decimals int
	// WithSource adds a model_name column holding the table name.
	WithSource bool
	// TitleKeys writes keys in title case.
	TitleKeys bool
}

// WriteTables writes one or more tables as a single CSV.
func WriteTables(w io.Writer, tables []*SourceTable, opts WriteOptions) error {
	if len(opts.Groups) == 0 {
		opts.Groups = AllGroups
	}
	cw := csv.NewWriter(w)

	header := []string{KeyColumn}
	if opts.WithSource {
		header = append(header, SourceColumn)
	}
	for _, g := range opts.Groups {
		header = append(header, opts.Kind.Prefix()+g.Column())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, t := range tables {
		for _, r := range t.Rows {
			key := r.Key
			if opts.TitleKeys {
				key = TitleCase(key)
			}
			rec := []string{key}
			if opts.WithSource {
				rec = append(rec, t.Name)
			}
			for _, g := range opts.Groups {
				v := r.Get(g)
				if opts.Decimals >= 0 {
					v = v.Round(opts.Decimals)
				}
				rec = append(rec, v.Format(opts.Decimals))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
