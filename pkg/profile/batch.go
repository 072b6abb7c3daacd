package profile

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/tidwall/gjson"

	"github.com/genai-bias/biasplot/pkg/errors"
)

// maxLine bounds a single JSONL line; batch replies can be long.
const maxLine = 16 << 20

// Text paths tried, in order, for each batch line shape.
var (
	openAITextPaths = []string{
		"response.body.choices.0.message.content",
	}
	geminiTextPaths = []string{
		"response.candidates.0.content.parts.0.text",
		"response.candidates.0.content.0.text",
		"predictions.0.candidates.0.content.parts.0.text",
		"predictions.0.candidates.0.content.0.text",
		"predictions.0.output_text",
		"predictions.0.text",
		"predictions.candidates.0.content.parts.0.text",
		"prediction.candidates.0.content.parts.0.text",
		"predictions.output_text",
		"predictions.text",
	}
	idPaths = []string{"custom_id", "instance_id", "instance.instance_id", "key"}
)

// BatchEntry is one reply extracted from a batch output line.
type BatchEntry struct {
	ID   string
	Key  string
	Text string
}

// CareerKey derives an occupation key from a batch request id: letters
// only, lower-cased, with a trailing "profile" removed
// ("computerprogrammer_profile_42" -> "computerprogrammer").
func CareerKey(id string) string {
	var b strings.Builder
	for _, r := range id {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.TrimSuffix(b.String(), "profile")
}

// ExtractBatchLine pulls the request id and reply text out of one line of
// an OpenAI or Gemini/Vertex batch output.
func ExtractBatchLine(line []byte) (BatchEntry, error) {
	if !gjson.ValidBytes(line) {
		return BatchEntry{}, errors.New(errors.ErrCodeParse, "invalid JSON line")
	}
	doc := gjson.ParseBytes(line)

	var e BatchEntry
	for _, p := range idPaths {
		if v := doc.Get(p); v.Type == gjson.String && v.Str != "" {
			e.ID = v.Str
			break
		}
	}
	if e.ID == "" {
		return BatchEntry{}, errors.New(errors.ErrCodeParse, "line has no request id")
	}
	e.Key = CareerKey(e.ID)

	paths := geminiTextPaths
	if doc.Get("response.body").Exists() {
		paths = openAITextPaths
	}
	for _, p := range paths {
		if v := doc.Get(p); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			e.Text = v.Str
			break
		}
	}
	if e.Text == "" {
		return BatchEntry{}, errors.New(errors.ErrCodeParse, "%s: line has no reply text", e.ID)
	}
	return e, nil
}

// ConvertStats summarises a batch conversion.
type ConvertStats struct {
	Lines   int
	Parsed  int
	Skipped int
	// Errors holds one message per skipped line.
	Errors []string
}

// ConvertBatch reads batch output JSONL from r and appends every parsable
// reply to the Appender file of its occupation. Lines that cannot be
// decoded or parsed are counted and skipped.
func ConvertBatch(r io.Reader, app *Appender) (ConvertStats, error) {
	var st ConvertStats
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		st.Lines++

		e, p, err := parseBatchLine([]byte(line))
		if err != nil {
			st.Skipped++
			st.Errors = append(st.Errors, errors.UserMessage(err))
			continue
		}
		if err := app.Append(e.Key, p); err != nil {
			return st, err
		}
		st.Parsed++
	}
	if err := sc.Err(); err != nil {
		return st, errors.Wrap(errors.ErrCodeParse, err, "read batch output")
	}
	return st, nil
}

func parseBatchLine(line []byte) (BatchEntry, Profile, error) {
	e, err := ExtractBatchLine(line)
	if err != nil {
		return e, Profile{}, err
	}
	if e.Key == "" {
		return e, Profile{}, errors.New(errors.ErrCodeInvalidInput, "%s: no occupation key in id", e.ID)
	}
	p, err := Parse(e.Text)
	return e, p, err
}
