// Package profile handles the synthetic occupational profiles that LLMs
// generate: parsing raw replies, converting provider batch outputs, and
// aggregating profile files into per-occupation percentage tables.
//
// # Profiles
//
// A [Profile] is one generated persona with the fields of [Header]. Replies
// come back either as "Field: value" lines or as a JSON object, possibly
// fenced in a Markdown code block; [Parse] accepts both.
//
// # Files
//
// Profiles for one occupation and provider are stored in a CSV named by
// [FileName] ("nurseprofiles_openai.csv"). An [Appender] keeps those files
// open across a run and writes the header once per new file.
//
// # Aggregation
//
// [AggregateDir] reads a directory of profile files into a percentages
// table: p_women is the share of rows whose gender is "female", and each
// race share counts a row once per race named in its ethnicity cell.
package profile
