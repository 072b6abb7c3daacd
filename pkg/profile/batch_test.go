package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/genai-bias/biasplot/pkg/errors"
)

func TestCareerKey(t *testing.T) {
	tests := map[string]string{
		"computerprogrammer_profile_42": "computerprogrammer",
		"nurseprofile7":                 "nurse",
		"BusDriver-3":                   "busdriver",
		"42":                            "",
	}
	for in, want := range tests {
		if got := CareerKey(in); got != want {
			t.Errorf("CareerKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExtractBatchLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantKey string
		wantTxt string
		wantErr bool
	}{
		{
			name:    "openai",
			line:    `{"custom_id":"nurseprofile3","response":{"body":{"choices":[{"message":{"content":"Gender: Female"}}]}}}`,
			wantKey: "nurse",
			wantTxt: "Gender: Female",
		},
		{
			name:    "gemini response",
			line:    `{"instance_id":"welder_profile_1","response":{"candidates":[{"content":{"parts":[{"text":"{\"gender\":\"Male\"}"}]}}]}}`,
			wantKey: "welder",
			wantTxt: `{"gender":"Male"}`,
		},
		{
			name:    "vertex predictions object",
			line:    `{"instance":{"instance_id":"chef_profile_9"},"predictions":{"text":"Gender: Male"}}`,
			wantKey: "chef",
			wantTxt: "Gender: Male",
		},
		{
			name:    "vertex predictions list",
			line:    `{"instance_id":"baker_profile_2","predictions":[{"candidates":[{"content":{"parts":[{"text":"Age: 30"}]}}]}]}`,
			wantKey: "baker",
			wantTxt: "Age: 30",
		},
		{name: "no id", line: `{"response":{"candidates":[]}}`, wantErr: true},
		{name: "no text", line: `{"custom_id":"x","response":{"body":{"choices":[]}}}`, wantErr: true},
		{name: "invalid", line: `{"custom_id":`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := ExtractBatchLine([]byte(tt.line))
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeParse) {
					t.Fatalf("err = %v, want PARSE", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if e.Key != tt.wantKey || e.Text != tt.wantTxt {
				t.Errorf("got key %q text %q, want %q %q", e.Key, e.Text, tt.wantKey, tt.wantTxt)
			}
		})
	}
}

func TestConvertBatch(t *testing.T) {
	input := strings.Join([]string{
		`{"custom_id":"nurseprofile1","response":{"body":{"choices":[{"message":{"content":"{\"name\":\"A\",\"gender\":\"Female\",\"ethnicity\":[\"White\"]}"}}]}}}`,
		`{"custom_id":"nurseprofile2","response":{"body":{"choices":[{"message":{"content":"Name: B\nGender: Male\nEthnicity: Black"}}]}}}`,
		``,
		`{"custom_id":"welderprofile1","response":{"body":{"choices":[{"message":{"content":"no profile here"}}]}}}`,
		`garbage`,
	}, "\n")

	dir := t.TempDir()
	app := NewAppender(dir, "openai")
	st, err := ConvertBatch(strings.NewReader(input), app)
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Close(); err != nil {
		t.Fatal(err)
	}
	if st.Lines != 4 || st.Parsed != 2 || st.Skipped != 2 || len(st.Errors) != 2 {
		t.Errorf("stats = %+v", st)
	}

	f, err := os.Open(filepath.Join(dir, "nurseprofiles_openai.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	profiles, err := ReadProfiles(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 2 || profiles[0].Ethnicity != "White" || profiles[1].Name != "B" {
		t.Errorf("profiles = %+v", profiles)
	}
	if _, err := os.Stat(filepath.Join(dir, "welderprofiles_openai.csv")); !os.IsNotExist(err) {
		t.Error("welder file should not exist")
	}
}
