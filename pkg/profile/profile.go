package profile

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/genai-bias/biasplot/pkg/errors"
)

// Header is the column layout of a profile CSV.
var Header = []string{"name", "age", "gender", "ethnicity", "salary", "motivations", "biography"}

// Profile is one generated persona.
type Profile struct {
	Name        string
	Age         string
	Gender      string
	Ethnicity   string
	Salary      string
	Motivations string
	Biography   string
}

// Record returns the fields in Header order.
func (p Profile) Record() []string {
	return []string{p.Name, p.Age, p.Gender, p.Ethnicity, p.Salary, p.Motivations, p.Biography}
}

// IsZero reports whether every field is empty.
func (p Profile) IsZero() bool {
	return p == Profile{}
}

// set assigns a field by its Header name.
func (p *Profile) set(field, value string) {
	switch field {
	case "name":
		p.Name = value
	case "age":
		p.Age = value
	case "gender":
		p.Gender = value
	case "ethnicity":
		p.Ethnicity = value
	case "salary":
		p.Salary = value
	case "motivations":
		p.Motivations = value
	case "biography":
		p.Biography = value
	}
}

// ReadProfiles reads a profile CSV. Header names are matched
// case-insensitively; gender and ethnicity columns are required, the rest
// are optional.
func ReadProfiles(r io.Reader) ([]Profile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read profile header")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	var missing []string
	for _, required := range []string{"gender", "ethnicity"} {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeMissingColumn, "profile table missing columns: %v", missing)
	}

	var out []Profile
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "read profile row")
		}
		var p Profile
		for _, field := range Header {
			if i, ok := cols[field]; ok && i < len(rec) {
				p.set(field, rec[i])
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// FileName returns the profile file name for an occupation key and
// provider ("nurse", "openai" -> "nurseprofiles_openai.csv").
func FileName(key, provider string) string {
	return key + "profiles_" + provider + ".csv"
}

// Appender appends profiles to per-occupation CSV files in one directory.
// Files are created on first use; the header is written only to empty files.
type Appender struct {
	dir      string
	provider string
	files    map[string]*appendFile
	paths    []string
}

type appendFile struct {
	f *os.File
	w *csv.Writer
}

// NewAppender creates an appender writing FileName(key, provider) files
// under dir.
func NewAppender(dir, provider string) *Appender {
	return &Appender{dir: dir, provider: provider, files: make(map[string]*appendFile)}
}

// Path returns the file that Append writes for key.
func (a *Appender) Path(key string) string {
	return filepath.Join(a.dir, FileName(key, a.provider))
}

// Append writes p to the file for key and flushes it.
func (a *Appender) Append(key string, p Profile) error {
	af, err := a.open(key)
	if err != nil {
		return err
	}
	if err := af.w.Write(p.Record()); err != nil {
		return err
	}
	af.w.Flush()
	return af.w.Error()
}

// Rewrite empties the file for key and writes a fresh header. Later
// Appends for key go to the new file.
func (a *Appender) Rewrite(key string) error {
	if af, ok := a.files[key]; ok {
		af.f.Close()
		delete(a.files, key)
	}
	_, err := a.openFile(key, os.O_TRUNC)
	return err
}

func (a *Appender) open(key string) (*appendFile, error) {
	if af, ok := a.files[key]; ok {
		return af, nil
	}
	return a.openFile(key, 0)
}

func (a *Appender) openFile(key string, extra int) (*appendFile, error) {
	if err := errors.ValidateOccupationKey(key); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(a.Path(key), os.O_CREATE|os.O_APPEND|os.O_WRONLY|extra, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	af := &appendFile{f: f, w: csv.NewWriter(f)}
	if info.Size() == 0 {
		if err := af.w.Write(Header); err != nil {
			f.Close()
			return nil, err
		}
	}
	a.files[key] = af
	if !slices.Contains(a.paths, f.Name()) {
		a.paths = append(a.paths, f.Name())
	}
	return af, nil
}

// Files returns the paths opened so far, sorted. It stays valid after Close.
func (a *Appender) Files() []string {
	out := slices.Clone(a.paths)
	slices.Sort(out)
	return out
}

// Close flushes and closes every open file. Appending after Close reopens
// the files.
func (a *Appender) Close() error {
	var first error
	for key, af := range a.files {
		af.w.Flush()
		if err := af.w.Error(); err != nil && first == nil {
			first = err
		}
		if err := af.f.Close(); err != nil && first == nil {
			first = err
		}
		delete(a.files, key)
	}
	return first
}
