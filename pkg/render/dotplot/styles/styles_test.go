package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestAssign(t *testing.T) {
	got := Assign([]string{"Llama", "Gemini 2.5", "GPT 4.0", "Claude"})

	if got["GPT 4.0"] != Palette[0] || got["Gemini 2.5"] != Palette[2] {
		t.Errorf("known sources lost their markers: %v", got)
	}
	if got["Llama"] != Palette[1] {
		t.Errorf("Llama = %v, want first free entry %v", got["Llama"], Palette[1])
	}
	if got["Claude"] != Palette[3] {
		t.Errorf("Claude = %v, want %v", got["Claude"], Palette[3])
	}
}

func TestAssignCycles(t *testing.T) {
	var sources []string
	for i := 0; i < len(Palette)+2; i++ {
		sources = append(sources, string(rune('a'+i)))
	}
	got := Assign(sources)
	if len(got) != len(sources) {
		t.Fatalf("got %d markers, want %d", len(got), len(sources))
	}
	for _, s := range sources {
		if got[s].Color == "" {
			t.Errorf("%s has no marker", s)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("ChatGPT"); got != "GPT 4.0" {
		t.Errorf("DisplayName(ChatGPT) = %q", got)
	}
	if got := DisplayName("Llama"); got != "Llama" {
		t.Errorf("DisplayName(Llama) = %q", got)
	}
}

func TestRenderMarker(t *testing.T) {
	tests := []struct {
		shape Shape
		tag   string
	}{
		{Circle, "<circle"},
		{Diamond, "<polygon"},
		{Square, "<rect"},
		{Triangle, "<polygon"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		Simple{}.RenderMarker(&buf, Marker{tt.shape, "#123456"}, 10, 10, 8)
		out := buf.String()
		if !strings.Contains(out, tt.tag) || !strings.Contains(out, `fill="#123456"`) {
			t.Errorf("%s: unexpected output %q", tt.shape, out)
		}
	}

	var buf bytes.Buffer
	Monochrome{}.RenderMarker(&buf, Marker{Circle, "#123456"}, 0, 0, 4)
	if strings.Contains(buf.String(), "#123456") {
		t.Errorf("monochrome kept the colour: %q", buf.String())
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`Cook & "Chef" <x>`); got != "Cook &amp; &#34;Chef&#34; &lt;x&gt;" {
		t.Errorf("EscapeXML = %q", got)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "simple", "mono"} {
		if _, ok := ByName(name); !ok {
			t.Errorf("ByName(%q) not found", name)
		}
	}
	if _, ok := ByName("handdrawn"); ok {
		t.Error("ByName(handdrawn) should fail")
	}
}
