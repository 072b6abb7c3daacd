// Package styles defines how dot-plot markers and text are drawn.
//
// Every source gets one [Marker]: a shape and a fill colour. The four study
// models keep fixed markers so figures stay comparable across runs:
//
//	GPT 4.0         circle    #1f77b4
//	DeepSeek V3.1   diamond   #2ca02c
//	Gemini 2.5      square    #ff7f0e
//	Mistral-medium  triangle  #d62728
//
// Other sources take the remaining palette entries in order. [Assign]
// computes the mapping for a figure's sources.
package styles
