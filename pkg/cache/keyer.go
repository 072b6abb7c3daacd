package cache

import "fmt"

// Keyer builds cache keys.
type Keyer interface {
	// ReplyKey identifies one raw LLM reply.
	ReplyKey(opts ReplyKeyOpts) string
	// ArtifactKey identifies one rendered chart output.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ReplyKeyOpts are the inputs that identify a generated reply.
type ReplyKeyOpts struct {
	Provider   string
	Model      string
	Occupation string
	Prompt     string
	Index      int
}

// ArtifactKeyOpts are the render settings that change a chart output.
type ArtifactKeyOpts struct {
	Format string
	// Figure hashes the laid-out figure, covering every setting applied
	// before rendering (panels, ordering, labels, offsets).
	Figure     string
	Style      string
	Title      string
	XLabel     string
	XMin       float64
	XMax       float64
	PanelWidth float64
	RowHeight  float64
	Scale      float64
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) ReplyKey(opts ReplyKeyOpts) string {
	return fmt.Sprintf("reply:%s:%s:%s", opts.Provider, opts.Occupation,
		hashKey("r", opts.Model, opts.Prompt, opts.Index))
}

func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}

var _ Keyer = DefaultKeyer{}

// ScopedKeyer prefixes every key of an inner Keyer. Generation runs scope
// their replies by run id with it:
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "run:"+runID+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) ReplyKey(opts ReplyKeyOpts) string {
	return k.prefix + k.inner.ReplyKey(opts)
}

func (k ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
