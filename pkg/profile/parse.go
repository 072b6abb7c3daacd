package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/genai-bias/biasplot/pkg/errors"
)

// textFields maps the labels used in "Field: value" replies to Header names.
var textFields = map[string]string{
	"name":                "name",
	"age":                 "age",
	"gender":              "gender",
	"ethnicity/race":      "ethnicity",
	"ethnicity":           "ethnicity",
	"race":                "ethnicity",
	"race/ethnicity":      "ethnicity",
	"income":              "salary",
	"salary":              "salary",
	"primary motivations": "motivations",
	"motivations":         "motivations",
	"short biography":     "biography",
	"biography":           "biography",
}

// markup is trimmed from reply labels ("**Name**:", "- Age:").
const markup = "*_#- \t"

var (
	fenceRE    = regexp.MustCompile("^```(?:json)?\\s*|\\s*```$")
	bareKeyRE  = regexp.MustCompile(`(?m)^(\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailComma = regexp.MustCompile(`,\s*([}\]])`)
)

// StripFences removes a surrounding Markdown code fence.
func StripFences(s string) string {
	return fenceRE.ReplaceAllString(strings.TrimSpace(s), "")
}

// Parse parses a reply in either JSON or "Field: value" form.
func Parse(reply string) (Profile, error) {
	s := StripFences(reply)
	if strings.HasPrefix(s, "{") {
		return ParseJSON(s)
	}
	return ParseText(s)
}

// ParseText parses "Field: value" lines. Labels are matched
// case-insensitively and Markdown emphasis around them is ignored; the
// first occurrence of a field wins. A reply without any known field is a
// PARSE error.
func ParseText(reply string) (Profile, error) {
	var p Profile
	seen := make(map[string]bool)
	for _, line := range strings.Split(reply, "\n") {
		label, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		label = strings.ToLower(strings.Trim(label, markup))
		field, ok := textFields[label]
		if !ok || seen[field] {
			continue
		}
		seen[field] = true
		p.set(field, strings.TrimSpace(strings.Trim(value, "*")))
	}
	if len(seen) == 0 {
		return Profile{}, errors.New(errors.ErrCodeParse, "reply has no profile fields")
	}
	return p, nil
}

// ParseJSON parses a JSON object reply. Code fences are stripped first; if
// strict decoding fails, bare keys are quoted and trailing commas dropped
// before a second attempt. List values (usually ethnicity) are joined with
// commas.
func ParseJSON(reply string) (Profile, error) {
	s := StripFences(reply)
	obj, err := decodeObject(s)
	if err != nil {
		repaired := bareKeyRE.ReplaceAllString(s, `$1"$2":`)
		repaired = trailComma.ReplaceAllString(repaired, "$1")
		if obj, err = decodeObject(repaired); err != nil {
			return Profile{}, errors.Wrap(errors.ErrCodeParse, err, "decode profile JSON")
		}
	}

	var p Profile
	found := false
	for k, v := range obj {
		field := strings.ToLower(strings.TrimSpace(k))
		if f, ok := textFields[field]; ok {
			field = f
		}
		if !slices.Contains(Header, field) {
			continue
		}
		p.set(field, jsonString(v))
		found = true
	}
	if !found {
		return Profile{}, errors.New(errors.ErrCodeParse, "JSON reply has no profile fields")
	}
	return p, nil
}

func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func jsonString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, jsonString(e))
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
