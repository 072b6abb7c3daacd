package layout_test

import (
	"fmt"

	"github.com/genai-bias/biasplot/pkg/dataset"
	"github.com/genai-bias/biasplot/pkg/render/dotplot/layout"
)

func ExampleOffsets() {
	values := map[string]dataset.Value{
		"GPT 4.0":        dataset.Some(12.0),
		"Gemini 2.5":     dataset.Some(13.5),
		"DeepSeek V3.1":  dataset.Some(-20),
		"Mistral-medium": dataset.Missing,
	}
	offsets := layout.Offsets(values, layout.DefaultOptions())
	for _, name := range []string{"DeepSeek V3.1", "GPT 4.0", "Gemini 2.5", "Mistral-medium"} {
		fmt.Printf("%-15s %+.2f\n", name, offsets[name])
	}
	// Output:
	// DeepSeek V3.1   +0.00
	// GPT 4.0         -0.09
	// Gemini 2.5      +0.09
	// Mistral-medium  +0.00
}
