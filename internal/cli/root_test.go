package cli

import (
	"io"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"plot", "diff", "averages", "labels", "aggregate", "convert", "generate", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	clear, _, err := root.Find([]string{"cache", "clear"})
	if err != nil || clear.Name() != "clear" {
		t.Error("cache clear not registered")
	}
}

func TestChartFlagsShared(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"plot", "averages", "labels"} {
		cmd, _, _ := root.Find([]string{name})
		for _, flag := range []string{"config", "source", "baseline", "kind", "panels", "labels-file", "no-cache"} {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("%s: missing --%s", name, flag)
			}
		}
	}
}

func TestFlagCompletions(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	plot, _, _ := root.Find([]string{"plot"})

	fn, ok := plot.GetFlagCompletionFunc("kind")
	if !ok {
		t.Fatal("plot --kind has no completion")
	}
	got, _ := fn(plot, nil, "")
	if len(got) != 2 || got[0] != "differences" {
		t.Errorf("--kind completions = %v", got)
	}

	gen, _, _ := root.Find([]string{"generate"})
	if _, ok := gen.GetFlagCompletionFunc("provider"); !ok {
		t.Error("generate --provider has no completion")
	}
}
