// Package config loads chart configuration from TOML.
//
// Every field has a default listed in [Default]; a file only needs to name
// what differs. Unknown keys are rejected so a typo cannot silently fall back
// to a default.
//
//	title = "Racial Representation Across 41 Occupations"
//	baseline = "data/bls.csv"
//	panels = ["White", "Hispanic", "Black", "Asian"]
//
//	[[sources]]
//	name = "ChatGPT"
//	path = "data/chatgpt_diffs.csv"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/genai-bias/biasplot/pkg/align"
	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/errors"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/layout"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/styles"
)

// Label mismatch handling.
const (
	LabelMismatchError = "error"
	LabelMismatchWarn  = "warn"
)

// Label sources.
const (
	LabelsAuto    = "auto"    // baseline label column, then curated list
	LabelsCurated = "curated" // positional curated list only
	LabelsNice    = "nice"    // derived from keys
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPDF:  true,
	FormatPNG:  true,
	FormatCSV:  true,
	FormatJSON: true,
}

// Source is one model's input table.
type Source struct {
	// Name identifies the source in logs and CSV output.
	Name string `toml:"name"`
	// DisplayName is shown in the legend; defaults to the known display
	// name for Name, or Name itself.
	DisplayName string `toml:"display_name"`
	// Path is the CSV file of percentages or differences.
	Path string `toml:"path"`
}

// Label returns the name used in figures.
func (s Source) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return styles.DisplayName(s.Name)
}

// Config describes one chart run.
type Config struct {
	Title  string `toml:"title"`
	XLabel string `toml:"x_label"`

	// Kind is "differences" when source tables already hold diff_p_* columns,
	// or "percentages" when they must be compared against Baseline.
	Kind     string   `toml:"kind"`
	Baseline string   `toml:"baseline"`
	Sources  []Source `toml:"sources"`
	// KeyColumn overrides the occupation column of the source tables.
	KeyColumn string `toml:"key_column"`

	Panels []string `toml:"panels"`

	Policy         string `toml:"policy"`
	ReferenceGroup string `toml:"reference_group"`
	Direction      string `toml:"direction"`

	Labels        string `toml:"labels"`
	LabelsFile    string `toml:"labels_file"`
	LabelMismatch string `toml:"label_mismatch"`

	Tolerance float64 `toml:"tolerance"`
	BaseUnit  float64 `toml:"base_unit"`

	XMin       float64 `toml:"x_min"`
	XMax       float64 `toml:"x_max"`
	Style      string  `toml:"style"`
	PanelWidth float64 `toml:"panel_width"`
	RowHeight  float64 `toml:"row_height"`
	PNGScale   float64 `toml:"png_scale"`

	OutputDir  string   `toml:"output_dir"`
	OutputName string   `toml:"output_name"`
	Formats    []string `toml:"formats"`
	Averages   bool     `toml:"averages"`

	// dir is the directory of the loaded file; relative paths resolve
	// against it.
	dir string
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Title:          "Racial Representation Across 41 Occupations",
		XLabel:         "Difference from BLS (percentage-point difference)",
		Kind:           dataset.Differences.String(),
		Baseline:       "",
		Sources:        nil,
		KeyColumn:      "",
		Panels:         []string{"White", "Hispanic", "Black", "Asian"},
		Policy:         string(align.PolicyIntersect),
		ReferenceGroup: "White",
		Direction:      string(align.Descending),
		Labels:         LabelsAuto,
		LabelsFile:     "",
		LabelMismatch:  LabelMismatchError,
		Tolerance:      layout.DefaultTolerance,
		BaseUnit:       layout.DefaultBaseUnit,
		XMin:           -100,
		XMax:           100,
		Style:          "simple",
		PanelWidth:     260,
		RowHeight:      22,
		PNGScale:       2.0,
		OutputDir:      ".",
		OutputName:     "dotplot",
		Formats:        []string{FormatSVG},
		Averages:       true,
	}
}

// Load reads a TOML file on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := cfg.Decode(string(data)); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Decode applies TOML text on top of c.
func (c *Config) Decode(text string) error {
	md, err := toml.Decode(text, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Resolve returns path relative to the config file's directory.
func (c Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}

// Validate checks the configuration. All problems are configuration errors.
func (c Config) Validate() error {
	kind, err := dataset.ParseKind(c.Kind)
	if err != nil {
		return err
	}
	if len(c.Sources) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one source is required")
	}
	seen := make(map[string]bool)
	for _, s := range c.Sources {
		if err := errors.ValidateSourceName(s.Name); err != nil {
			return err
		}
		if s.Path == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "source %s has no path", s.Name)
		}
		if seen[s.Label()] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate source %q", s.Label())
		}
		seen[s.Label()] = true
	}
	if kind == dataset.Percentages && c.Baseline == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "kind %q requires a baseline", c.Kind)
	}
	if _, err := c.Groups(); err != nil {
		return err
	}
	if _, err := dataset.ParseGroup(c.ReferenceGroup); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "reference_group")
	}
	if _, err := align.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if _, err := align.ParseDirection(c.Direction); err != nil {
		return err
	}
	switch c.Labels {
	case LabelsAuto, LabelsCurated, LabelsNice:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "labels must be auto, curated or nice, got %q", c.Labels)
	}
	switch c.LabelMismatch {
	case LabelMismatchError, LabelMismatchWarn:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "label_mismatch must be error or warn, got %q", c.LabelMismatch)
	}
	if c.Tolerance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tolerance must not be negative")
	}
	if c.BaseUnit <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "base_unit must be positive")
	}
	if c.XMin >= c.XMax {
		return errors.New(errors.ErrCodeInvalidConfig, "x_min (%v) must be below x_max (%v)", c.XMin, c.XMax)
	}
	if _, ok := styles.ByName(c.Style); !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown style %q", c.Style)
	}
	if len(c.Formats) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no output formats")
	}
	for _, f := range c.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidConfig, "invalid format: %q (must be one of: svg, pdf, png, csv, json)", f)
		}
	}
	if c.OutputName == "" || strings.ContainsAny(c.OutputName, `/\`) {
		return errors.New(errors.ErrCodeInvalidConfig, "output_name must be a plain file stem")
	}
	return nil
}

// Groups returns the parsed panel groups.
func (c Config) Groups() ([]dataset.Group, error) {
	if len(c.Panels) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no panels configured")
	}
	gs, err := dataset.ParseGroups(c.Panels)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "panels")
	}
	return gs, nil
}

// DataKind returns the parsed table kind.
func (c Config) DataKind() dataset.Kind {
	k, _ := dataset.ParseKind(c.Kind)
	return k
}

// Reference returns the parsed reference group.
func (c Config) Reference() dataset.Group {
	g, _ := dataset.ParseGroup(c.ReferenceGroup)
	return g
}

// StrictLabels reports whether a label count mismatch is fatal.
func (c Config) StrictLabels() bool {
	return c.LabelMismatch != LabelMismatchWarn
}

// LayoutOptions returns the overlap parameters.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{Tolerance: c.Tolerance, BaseUnit: c.BaseUnit}
}
