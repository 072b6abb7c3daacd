package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/genai-bias/biasplot/pkg/cache"
	"github.com/genai-bias/biasplot/pkg/config"
	"github.com/genai-bias/biasplot/pkg/dataset"
)

// BaselineName is the table name of the baseline.
const BaselineName = "BLS"

// Inputs holds the raw inputs of a run.
type Inputs struct {
	Tables   []*dataset.SourceTable
	Baseline *dataset.SourceTable
	// LabelFile is the dictionary read from labels_file, if any.
	LabelFile map[string]string
	// Hash covers every input byte and source name.
	Hash string
}

// Load reads every configured table. Tables are named by their display
// label so figures and legends use it throughout.
//
// In differences mode the baseline is optional and only its label column
// is read.
func Load(ctx context.Context, cfg config.Config) (*Inputs, error) {
	groups, err := cfg.Groups()
	if err != nil {
		return nil, err
	}
	kind := cfg.DataKind()
	var raw [][]byte

	in := &Inputs{}
	for _, src := range cfg.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := cfg.Resolve(src.Path)
		data, err := dataset.ReadFile(path)
		if err != nil {
			return nil, err
		}
		t, err := readTable(data, path, src.Label(), dataset.ReadOptions{
			Kind:      kind,
			Groups:    groups,
			KeyColumn: cfg.KeyColumn,
		})
		if err != nil {
			return nil, err
		}
		in.Tables = append(in.Tables, t)
		raw = append(raw, []byte(src.Label()), data)
	}

	if cfg.Baseline != "" {
		path := cfg.Resolve(cfg.Baseline)
		data, err := dataset.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if kind == dataset.Differences {
			labels, err := dataset.ReadLabels(bytes.NewReader(data), dataset.BaselineKeyColumn, dataset.BaselineLabel)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			in.Baseline = dataset.NewSourceTable(BaselineName)
			in.Baseline.Labels = labels
		} else {
			in.Baseline, err = readTable(data, path, BaselineName, dataset.ReadOptions{
				Kind:        dataset.Percentages,
				Groups:      groups,
				KeyColumn:   dataset.BaselineKeyColumn,
				LabelColumn: dataset.BaselineLabel,
			})
			if err != nil {
				return nil, err
			}
		}
		raw = append(raw, data)
	}

	if cfg.LabelsFile != "" {
		path := cfg.Resolve(cfg.LabelsFile)
		data, err := dataset.ReadFile(path)
		if err != nil {
			return nil, err
		}
		in.LabelFile, err = dataset.ReadLabels(bytes.NewReader(data), "", "")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		raw = append(raw, data)
	}

	in.Hash = cache.HashAll(raw...)
	return in, nil
}

func readTable(data []byte, path, name string, opts dataset.ReadOptions) (*dataset.SourceTable, error) {
	t, err := dataset.ReadSourceTable(bytes.NewReader(data), name, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
