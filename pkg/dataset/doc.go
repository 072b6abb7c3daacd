// Package dataset defines the typed records that flow through the chart
// builder and reads them from CSV.
//
// # Model
//
// A [SourceTable] holds one row per occupation for a single data source (an
// LLM, or the BLS baseline). Each row maps a demographic [Group] to an
// optional percentage [Value]. Missing values are kept distinct from zero:
// zero is a valid "no difference" data point.
//
// # Reading tables
//
//	t, err := dataset.ReadSourceFile("openai_differences_vs_bls.csv", "ChatGPT", dataset.ReadOptions{
//	    Kind:   dataset.Differences,
//	    Groups: dataset.RaceGroups,
//	})
//
// Every requested group must have a column; a missing column is a fatal
// configuration error. Occupation keys are cleaned with [CleanKey] so tables
// that spell the same occupation differently ("Bus Driver", " bus  driver")
// line up.
//
// Input files that are not valid UTF-8 are decoded as Windows-1252, which is
// what spreadsheet exports of the profile CSVs commonly use.
package dataset
