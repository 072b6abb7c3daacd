package styles

// Palette is the ordered marker set handed out to sources.
var Palette = []Marker{
	{Circle, "#1f77b4"},
	{Diamond, "#2ca02c"},
	{Square, "#ff7f0e"},
	{Triangle, "#d62728"},
	{Circle, "#9467bd"},
	{Diamond, "#8c564b"},
	{Square, "#e377c2"},
	{Triangle, "#7f7f7f"},
	{Circle, "#bcbd22"},
	{Diamond, "#17becf"},
}

// Known fixes the markers of the study models by display name.
var Known = map[string]Marker{
	"GPT 4.0":        Palette[0],
	"DeepSeek V3.1":  Palette[1],
	"Gemini 2.5":     Palette[2],
	"Mistral-medium": Palette[3],
}

// DisplayNames maps the model names used in file names and CSV columns to
// the names shown in figures.
var DisplayNames = map[string]string{
	"ChatGPT":  "GPT 4.0",
	"DeepSeek": "DeepSeek V3.1",
	"Gemini":   "Gemini 2.5",
	"Mistral":  "Mistral-medium",
}

// DisplayName returns the figure name for a model, or name itself.
func DisplayName(name string) string {
	if d, ok := DisplayNames[name]; ok {
		return d
	}
	return name
}

// Assign returns a marker for every source. Known sources keep their fixed
// marker; the rest take unused palette entries in source order, cycling when
// the palette runs out.
func Assign(sources []string) map[string]Marker {
	out := make(map[string]Marker, len(sources))
	taken := make(map[Marker]bool)
	for _, s := range sources {
		if m, ok := Known[s]; ok {
			out[s] = m
			taken[m] = true
		}
	}
	next := 0
	for _, s := range sources {
		if _, ok := out[s]; ok {
			continue
		}
		for tries := 0; tries < len(Palette) && taken[Palette[next%len(Palette)]]; tries++ {
			next++
		}
		m := Palette[next%len(Palette)]
		out[s] = m
		taken[m] = true
		next++
	}
	return out
}
