package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("no such file")
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeMissingColumn, "missing columns: %s", "p_white"), "MISSING_COLUMN: missing columns: p_white"},
		{Wrap(ErrCodeFileNotFound, cause, "open %s", "bls.csv"), "FILE_NOT_FOUND: open bls.csv: no such file"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("request nurse: %w", Wrap(ErrCodeProvider, cause, "openai"))

	if !errors.Is(err, cause) {
		t.Error("cause not reachable through errors.Is")
	}
	if !Is(err, ErrCodeProvider) {
		t.Error("code lost behind fmt.Errorf wrapping")
	}
	if got := UserMessage(err); got != "openai" {
		t.Errorf("UserMessage() = %q, want %q", got, "openai")
	}
}

func TestCodeLookup(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   Code
		config bool
	}{
		{"missing column", New(ErrCodeMissingColumn, "x"), ErrCodeMissingColumn, true},
		{"missing baseline", New(ErrCodeMissingBaseline, "x"), ErrCodeMissingBaseline, true},
		{"no common occupations", New(ErrCodeNoCommonOccupations, "x"), ErrCodeNoCommonOccupations, true},
		{"label mismatch", New(ErrCodeLabelMismatch, "x"), ErrCodeLabelMismatch, true},
		{"file not found", Wrap(ErrCodeFileNotFound, errors.New("enoent"), "x"), ErrCodeFileNotFound, true},
		{"parse", New(ErrCodeParse, "x"), ErrCodeParse, false},
		{"provider wrapping input", Wrap(ErrCodeProvider, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeProvider, false},
		{"plain", errors.New("plain"), "", false},
		{"nil", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(err, %s) = false", tt.code)
			}
			if Is(tt.err, ErrCodeUnsupported) {
				t.Error("Is matched an unrelated code")
			}
			if got := IsConfig(tt.err); got != tt.config {
				t.Errorf("IsConfig() = %v, want %v", got, tt.config)
			}
		})
	}
}

func TestUserMessagePlainError(t *testing.T) {
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestWarning(t *testing.T) {
	w := Warnf(ErrCodeLabelMismatch, "%d keys vs %d labels", 41, 40)
	if got, want := w.String(), "LABEL_MISMATCH: 41 keys vs 40 labels"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
