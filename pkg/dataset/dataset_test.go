package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/genai-bias/biasplot/pkg/errors"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want Value
	}{
		{"40.0", Some(40)},
		{" 40% ", Some(40)},
		{"-12.5", Some(-12.5)},
		{"0", Some(0)},
		{"", Missing},
		{"nan", Missing},
		{"NA", Missing},
		{"forty", Missing},
	}
	for _, tt := range tests {
		if got := ParseValue(tt.in); got != tt.want {
			t.Errorf("ParseValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValueArithmetic(t *testing.T) {
	if got := Some(10).Sub(Some(2.5)); got != Some(7.5) {
		t.Errorf("Sub = %v, want 7.5", got)
	}
	if got := Some(10).Sub(Missing); got.Valid {
		t.Errorf("Sub with missing = %v, want missing", got)
	}
	if got := Missing.Neg(); got.Valid {
		t.Errorf("Neg(missing) = %v, want missing", got)
	}
	if got := Some(1.2345).Round(2); got != Some(1.23) {
		t.Errorf("Round = %v, want 1.23", got)
	}
	if got := Mean([]Value{Some(1), Missing, Some(3)}); got != Some(2) {
		t.Errorf("Mean = %v, want 2", got)
	}
	if got := Mean([]Value{Missing}); got.Valid {
		t.Errorf("Mean(all missing) = %v, want missing", got)
	}
	if Some(0) == Missing {
		t.Error("zero must differ from missing")
	}
}

func TestParseGroup(t *testing.T) {
	tests := []struct {
		in      string
		want    Group
		wantErr bool
	}{
		{"White", White, false},
		{"p_black", Black, false},
		{"diff_p_hispanic", Hispanic, false},
		{"female", Women, false},
		{"Men", Men, false},
		{"martian", "", true},
	}
	for _, tt := range tests {
		got, err := ParseGroup(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseGroup(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseGroup(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCleanKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"  Bus   Driver ", "bus driver"},
		{"NURSE", "nurse"},
		{"ｃｈｅｆ", "chef"},
		{"lab\ttech", "lab tech"},
	}
	for _, tt := range tests {
		if got := CleanKey(tt.in); got != tt.want {
			t.Errorf("CleanKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := SquashKey("Bus Driver"); got != "busdriver" {
		t.Errorf("SquashKey = %q", got)
	}
	if got := TitleCase("chief executive officer"); got != "Chief Executive Officer" {
		t.Errorf("TitleCase = %q", got)
	}
}

func TestReadSourceTable(t *testing.T) {
	in := `occupation,model_name,diff_p_women,diff_p_white,diff_p_black,diff_p_asian,diff_p_hispanic
Nurse,gemini,10.5,-3,2,,1
Bus Driver,gemini,-20,40%,nan,0,-1
`
	tbl, err := ReadSourceTable(strings.NewReader(in), "Gemini", ReadOptions{Kind: Differences})
	if err != nil {
		t.Fatalf("ReadSourceTable() error = %v", err)
	}
	if diff := cmp.Diff([]string{"nurse", "bus driver"}, tbl.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	row, ok := tbl.Row("nurse")
	if !ok {
		t.Fatal("nurse row missing")
	}
	if row.Get(Women) != Some(10.5) {
		t.Errorf("nurse women = %v", row.Get(Women))
	}
	if row.Get(Asian).Valid {
		t.Errorf("empty cell should be missing, got %v", row.Get(Asian))
	}

	row, _ = tbl.Row("bus driver")
	if row.Get(White) != Some(40) {
		t.Errorf("bus driver white = %v, want 40", row.Get(White))
	}
	if row.Get(Black).Valid {
		t.Errorf("nan should be missing")
	}
	if row.Get(Asian) != Some(0) {
		t.Errorf("zero must be kept, got %v", row.Get(Asian))
	}
}

func TestReadSourceTableMissingColumn(t *testing.T) {
	in := "occupation,diff_p_women,diff_p_white\nnurse,1,2\n"
	_, err := ReadSourceTable(strings.NewReader(in), "x", ReadOptions{Kind: Differences, Groups: RaceGroups})
	if !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Fatalf("error = %v, want MISSING_COLUMN", err)
	}
	if !strings.Contains(err.Error(), "diff_p_black") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestReadSourceTableMissingKeyColumn(t *testing.T) {
	in := "job,p_women\nnurse,1\n"
	_, err := ReadSourceTable(strings.NewReader(in), "x", ReadOptions{Groups: GenderGroups})
	if !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Fatalf("error = %v, want MISSING_COLUMN", err)
	}
}

func TestReadSourceTableDuplicate(t *testing.T) {
	in := "occupation,p_women\nNurse,1\nnurse,2\n"
	_, err := ReadSourceTable(strings.NewReader(in), "x", ReadOptions{Groups: GenderGroups})
	if !errors.Is(err, errors.ErrCodeDuplicateKey) {
		t.Fatalf("error = %v, want DUPLICATE_KEY", err)
	}
}

func TestReadSourceTableOutOfRange(t *testing.T) {
	in := "occupation,p_women\nnurse,140\n"
	_, err := ReadSourceTable(strings.NewReader(in), "x", ReadOptions{Groups: GenderGroups})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want INVALID_INPUT", err)
	}
}

func TestReadSourceTableDerivesMen(t *testing.T) {
	in := "occupation,p_women\nnurse,88\n"
	tbl, err := ReadSourceTable(strings.NewReader(in), "x", ReadOptions{Groups: []Group{Women, Men}})
	if err != nil {
		t.Fatal(err)
	}
	row, _ := tbl.Row("nurse")
	if row.Get(Men) != Some(12) {
		t.Errorf("men = %v, want 12", row.Get(Men))
	}

	in = "occupation,diff_p_women\nnurse,-5\n"
	tbl, err = ReadSourceTable(strings.NewReader(in), "x", ReadOptions{Kind: Differences, Groups: []Group{Men}})
	if err != nil {
		t.Fatal(err)
	}
	row, _ = tbl.Row("nurse")
	if row.Get(Men) != Some(5) {
		t.Errorf("men diff = %v, want 5", row.Get(Men))
	}
}

func TestReadBaselineLabels(t *testing.T) {
	in := "Occupation,genai_bias_search_term,p_women,p_white,p_black,p_asian,p_hispanic\n" +
		"Registered nurses,nurse,87.9,71.3,12.8,9.0,8.5\n"
	tbl, err := ReadSourceTable(strings.NewReader(in), "BLS", ReadOptions{
		KeyColumn:   BaselineKeyColumn,
		LabelColumn: BaselineLabel,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := tbl.Labels["nurse"]; got != "Registered nurses" {
		t.Errorf("label = %q", got)
	}
}

func TestDecodeText(t *testing.T) {
	// "café" in Windows-1252
	got, err := DecodeText([]byte{'c', 'a', 'f', 0xe9})
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "café" {
		t.Errorf("DecodeText = %q, want café", got)
	}

	got, _ = DecodeText([]byte("\xef\xbb\xbfok"))
	if string(got) != "ok" {
		t.Errorf("BOM not stripped: %q", got)
	}
}

func TestReadSourceFileNotFound(t *testing.T) {
	_, err := ReadSourceFile(filepath.Join(t.TempDir(), "nope.csv"), "x", ReadOptions{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteTablesRoundTrip(t *testing.T) {
	a := NewSourceTable("openai")
	_ = a.Add("bus driver", map[Group]Value{Women: Some(-12.346), White: Missing})
	b := NewSourceTable("gemini")
	_ = b.Add("nurse", map[Group]Value{Women: Some(3), White: Some(0)})

	var buf bytes.Buffer
	err := WriteTables(&buf, []*SourceTable{a, b}, WriteOptions{
		Kind:       Differences,
		Groups:     []Group{Women, White},
		Decimals:   2,
		WithSource: true,
		TitleKeys:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "occupation,model_name,diff_p_women,diff_p_white\n" +
		"Bus Driver,openai,-12.35,\n" +
		"Nurse,gemini,3.00,0.00\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	back, err := ReadSourceFile(path, "all", ReadOptions{Kind: Differences, Groups: []Group{Women, White}})
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != 2 {
		t.Errorf("Len() = %d, want 2", back.Len())
	}
}

func TestReadLabels(t *testing.T) {
	in := "Occupation,genai_bias_search_term\nBus Drivers ,Bus  Driver\n,empty\nNurses,nurse\n"
	got, err := ReadLabels(strings.NewReader(in), "genai_bias_search_term", "occupation")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"bus driver": "Bus Drivers", "nurse": "Nurses"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadLabels mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadLabels(strings.NewReader("a,b\n"), "key", ""); !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("missing column: error = %v", err)
	}

	got, err = ReadLabels(strings.NewReader("key,label\npilot,Airline Pilot\n"), "", "")
	if err != nil || got["pilot"] != "Airline Pilot" {
		t.Errorf("positional columns: %v, %v", got, err)
	}
}
