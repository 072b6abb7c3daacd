package generate

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/genai-bias/biasplot/pkg/cache"
	"github.com/genai-bias/biasplot/pkg/errors"
	"github.com/genai-bias/biasplot/pkg/observability"
	"github.com/genai-bias/biasplot/pkg/profile"
)

// replyTTL bounds how long raw replies stay cached for resuming.
const replyTTL = 30 * 24 * time.Hour

// Occupation is one generation target.
type Occupation struct {
	// Key names the output file.
	Key string
	// Label is the occupation as written in the prompt.
	Label string
}

// Options configures a generation run.
type Options struct {
	Occupations []Occupation
	// Count is the number of profiles requested per occupation.
	Count int
	// OutDir receives one profile CSV per occupation.
	OutDir string
	// RunID scopes the reply cache; a new id is generated when empty.
	RunID string
	// Prompt builds the request text; defaults to Prompt.
	Prompt func(label string) string
	// OnProgress is called after every request.
	OnProgress func(done, total int)
}

// Stats summarises a generation run.
type Stats struct {
	RunID      string
	Requested  int
	Written    int
	Cached     int
	Failed     int
	Unparsable int
	Files      []string
}

// Runner drives sequential profile generation against one provider.
type Runner struct {
	Provider Provider
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil cache disables reply caching and a nil
// keyer uses the default keyer.
func NewRunner(p Provider, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Provider: p, Cache: c, Keyer: keyer, Logger: logger}
}

// Run requests opts.Count profiles for every occupation, in order, and
// writes each parsed reply to its occupation file. Each file is emptied when
// its occupation starts, so it holds exactly the profiles of this run.
// Replies are cached per run id: running again with the same id replays the
// cached replies and only requests what is missing.
// Run stops early only when ctx is done; the stats gathered so far are
// returned with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (Stats, error) {
	if r.Provider == nil {
		return Stats{}, errors.New(errors.ErrCodeInvalidConfig, "no provider configured")
	}
	if opts.Count <= 0 {
		return Stats{}, errors.New(errors.ErrCodeInvalidConfig, "count must be positive, got %d", opts.Count)
	}
	if len(opts.Occupations) == 0 {
		return Stats{}, errors.New(errors.ErrCodeInvalidConfig, "no occupations to generate")
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if opts.Prompt == nil {
		opts.Prompt = Prompt
	}

	st := Stats{RunID: opts.RunID}
	keyer := cache.NewScopedKeyer(r.Keyer, "run:"+opts.RunID+":")
	app := profile.NewAppender(opts.OutDir, r.Provider.Name())
	defer app.Close()

	total := opts.Count * len(opts.Occupations)
	r.Logger.Info("starting generation",
		"run", opts.RunID,
		"provider", r.Provider.Name(),
		"model", r.Provider.Model(),
		"occupations", len(opts.Occupations),
		"requests", total)

	for _, occ := range opts.Occupations {
		if err := ctx.Err(); err != nil {
			st.Files = app.Files()
			return st, err
		}
		// The file is rebuilt from cached and fresh replies, so a resumed
		// run never repeats rows written before the interruption.
		if err := app.Rewrite(occ.Key); err != nil {
			st.Files = app.Files()
			return st, err
		}
		prompt := opts.Prompt(occ.Label)
		for i := range opts.Count {
			if err := ctx.Err(); err != nil {
				st.Files = app.Files()
				return st, err
			}
			r.request(ctx, keyer, app, occ, prompt, i, &st)
			if opts.OnProgress != nil {
				opts.OnProgress(st.Requested, total)
			}
		}
	}

	if err := app.Close(); err != nil {
		return st, err
	}
	st.Files = app.Files()
	r.Logger.Info("generation finished",
		"run", opts.RunID,
		"written", st.Written,
		"cached", st.Cached,
		"failed", st.Failed,
		"unparsable", st.Unparsable)
	return st, nil
}

func (r *Runner) request(ctx context.Context, keyer cache.Keyer, app *profile.Appender, occ Occupation, prompt string, i int, st *Stats) {
	st.Requested++
	reply, err := r.reply(ctx, keyer, occ, prompt, i, st)
	if err != nil {
		st.Failed++
		r.Logger.Warn("request failed", "occupation", occ.Key, "index", i, "err", errors.UserMessage(err))
		return
	}
	p, err := profile.Parse(reply)
	if err != nil {
		st.Unparsable++
		r.Logger.Warn("unparsable reply", "occupation", occ.Key, "index", i, "err", errors.UserMessage(err))
		return
	}
	if err := app.Append(occ.Key, p); err != nil {
		st.Failed++
		r.Logger.Error("write profile", "occupation", occ.Key, "err", err)
		return
	}
	st.Written++
}

// reply returns the cached reply for request i, or asks the provider and
// caches the answer.
func (r *Runner) reply(ctx context.Context, keyer cache.Keyer, occ Occupation, prompt string, i int, st *Stats) (string, error) {
	name, model := r.Provider.Name(), r.Provider.Model()
	key := keyer.ReplyKey(cache.ReplyKeyOpts{
		Provider:   name,
		Model:      model,
		Occupation: occ.Key,
		Prompt:     prompt,
		Index:      i,
	})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "reply")
		st.Cached++
		return string(data), nil
	}
	observability.Cache().OnCacheMiss(ctx, "reply")

	hooks := observability.Generation()
	hooks.OnRequest(ctx, name, model, occ.Key)
	start := time.Now()
	reply, err := r.Provider.Complete(ctx, prompt)
	if err != nil {
		hooks.OnError(ctx, name, model, occ.Key, err)
		return "", err
	}
	hooks.OnReply(ctx, name, model, occ.Key, time.Since(start))

	if err := r.Cache.Set(ctx, key, []byte(reply), replyTTL); err != nil {
		r.Logger.Warn("cache write failed", "occupation", occ.Key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "reply", len(reply))
	}
	return reply, nil
}
