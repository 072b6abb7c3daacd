package sink

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/genai-bias/biasplot/pkg/align"
	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/layout"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/styles"
)

func testFigure() layout.Figure {
	r := func(k string, g dataset.Group, s string, v dataset.Value) dataset.Record {
		return dataset.Record{Key: k, Group: g, Source: s, Value: v}
	}
	records := []dataset.Record{
		r("nurse", dataset.White, "GPT 4.0", dataset.Some(-10)),
		r("nurse", dataset.White, "Gemini 2.5", dataset.Some(-9)),
		r("cook", dataset.White, "GPT 4.0", dataset.Some(30)),
		r("cook", dataset.White, "Gemini 2.5", dataset.Missing),
		r("nurse", dataset.Black, "GPT 4.0", dataset.Some(5)),
		r("nurse", dataset.Black, "Gemini 2.5", dataset.Some(50)),
		r("cook", dataset.Black, "GPT 4.0", dataset.Some(0)),
		r("cook", dataset.Black, "Gemini 2.5", dataset.Some(0)),
	}
	labels := align.LabelMap{"nurse": "Nurse", "cook": "Cook & Chef"}
	return layout.Build(records, []string{"nurse", "cook"}, labels,
		[]dataset.Group{dataset.White, dataset.Black}, nil, layout.DefaultOptions())
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testFigure()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		DefaultTitle,
		DefaultXLabel,
		`id="panel-White"`,
		`id="panel-Black"`,
		`font-weight="bold">Average</text>`,
		`Cook &amp; Chef`,
		`stroke-dasharray="5,4"`,
		`#1f77b4`,
		`#ff7f0e`,
		">-100<",
		">100<",
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}

	// 3 rows x 2 sources x 2 panels less one missing point, plus the legend.
	if got := strings.Count(svg, `fill="#1f77b4"`); got != 6+1 {
		t.Errorf("got %d GPT markers, want 7", got)
	}
	if got := strings.Count(svg, `fill="#ff7f0e"`); got != 5+1 {
		t.Errorf("got %d Gemini markers, want 6", got)
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testFigure(),
		WithTitle("Gender"),
		WithXLabel(""),
		WithoutLegend(),
		WithXRange(-50, 50),
		WithStyle(styles.Monochrome{}),
	))
	if !strings.Contains(svg, ">Gender</text>") {
		t.Error("custom title missing")
	}
	if strings.Contains(svg, DefaultXLabel) || strings.Contains(svg, LegendTitle+"</text>") {
		t.Error("x label or legend rendered despite options")
	}
	if !strings.Contains(svg, ">-50<") || strings.Contains(svg, ">-100<") {
		t.Error("x range not applied")
	}
	if strings.Contains(svg, "#1f77b4") {
		t.Error("monochrome style used colours")
	}
}

func TestRenderAverages(t *testing.T) {
	svg := string(RenderAverages(testFigure(), WithTitle("Race")))
	if !strings.Contains(svg, "Race"+AveragesSuffix) {
		t.Error("averages title missing suffix")
	}
	if strings.Contains(svg, ">Nurse<") {
		t.Error("occupation rows drawn in averages figure")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testFigure()); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+12 {
		t.Fatalf("got %d rows, want 13", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(CSVHeader, ",") {
		t.Errorf("header = %v", rows[0])
	}

	var missing, nurse []string
	summaries := 0
	for _, r := range rows[1:] {
		if r[8] == "true" {
			summaries++
			if r[0] != "" {
				t.Errorf("summary row has occupation %q", r[0])
			}
		} else if r[8] != "false" {
			t.Errorf("is_summary = %q", r[8])
		}
		if r[0] == "cook" && r[2] == "White" && r[3] == "Gemini 2.5" {
			missing = r
		}
		if r[0] == "nurse" && r[2] == "White" && r[3] == "GPT 4.0" {
			nurse = r
		}
	}
	if summaries != 4 {
		t.Errorf("summary points = %d, want 4", summaries)
	}
	if missing == nil || missing[4] != "" || missing[6] != "" {
		t.Errorf("missing point row = %v", missing)
	}
	if nurse == nil || nurse[4] != "-10.0000" || nurse[5] != "-0.09" {
		t.Errorf("nurse row = %v", nurse)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testFigure())
	if err != nil {
		t.Fatal(err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Panels) != 2 || len(out.Panels[0].Rows) != 3 {
		t.Fatalf("unexpected shape: %+v", out)
	}
	if !out.Panels[0].Rows[0].Summary || out.Panels[0].Rows[0].Label != "Average" {
		t.Errorf("first row is not the summary: %+v", out.Panels[0].Rows[0])
	}
	cook := out.Panels[0].Rows[2]
	if cook.Points[1].Value != nil {
		t.Errorf("missing value encoded as %v", *cook.Points[1].Value)
	}
	if out.Tolerance != layout.DefaultTolerance {
		t.Errorf("tolerance = %v", out.Tolerance)
	}
}

func TestTicks(t *testing.T) {
	got := ticks(-100, 100)
	want := []float64{-100, -50, 0, 50, 100}
	if len(got) != len(want) {
		t.Fatalf("ticks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ticks = %v, want %v", got, want)
			break
		}
	}
}
