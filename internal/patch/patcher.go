// Package patch applies an ordered pipeline of text substitutions to files
// held in a blob store and writes the results back in place.
package patch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"formrestyle/internal/blob"
)

// Status describes what happened to one target.
type Status string

const (
	StatusPatched   Status = "patched"
	StatusUnchanged Status = "unchanged"
	StatusMissing   Status = "missing"
)

// Outcome is the result of patching a single target.
type Outcome struct {
	Key       string
	Status    Status
	Changed   []string // step names that altered the content, in order
	BeforeSHA string
	AfterSHA  string
	Duration  time.Duration
	At        time.Time
}

// Summary collects the outcomes of one run.
type Summary struct {
	RunID    string
	Outcomes []Outcome
}

// Count returns how many outcomes have the given status.
func (s Summary) Count(status Status) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Logger is the structured logging surface the patcher needs; *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Recorder observes each outcome, e.g. for metrics.
type Recorder interface {
	Observe(Outcome)
}

// Journal persists each outcome of a run.
type Journal interface {
	Record(ctx context.Context, runID string, o Outcome) error
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return func(p *Patcher) {
		if w != nil {
			p.out = w
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l Logger) Option {
	return func(p *Patcher) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithRecorder attaches an outcome observer.
func WithRecorder(r Recorder) Option {
	return func(p *Patcher) { p.recorder = r }
}

// WithJournal attaches a journal that Run writes every outcome to.
func WithJournal(j Journal) Option {
	return func(p *Patcher) { p.journal = j }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Patcher) {
		if now != nil {
			p.now = now
		}
	}
}

// WithRunID overrides run identifier generation.
func WithRunID(gen func() string) Option {
	return func(p *Patcher) {
		if gen != nil {
			p.newRunID = gen
		}
	}
}

// Patcher reads targets from a store, runs the pipeline and writes them back.
type Patcher struct {
	store    blob.Store
	pipeline Pipeline
	out      io.Writer
	logger   Logger
	recorder Recorder
	journal  Journal
	now      func() time.Time
	newRunID func() string
}

// New constructs a Patcher over store.
func New(store blob.Store, pipeline Pipeline, opts ...Option) *Patcher {
	p := &Patcher{
		store:    store,
		pipeline: pipeline,
		out:      io.Discard,
		logger:   noopLogger{},
		now:      time.Now,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PatchFile patches one target in place. A missing target is skipped and
// reported with StatusMissing and a nil error.
func (p *Patcher) PatchFile(ctx context.Context, key string) (Outcome, error) {
	start := p.now()
	out := Outcome{Key: key, At: start.UTC()}

	if _, err := p.store.Head(ctx, key); err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			p.printf("File %s not found\n", key)
			p.logger.Warn("patch.target_missing", "key", key)
			out.Status = StatusMissing
			p.observe(out)
			return out, nil
		}
		return out, &OpError{Op: "patch.head", Kind: KindIO, Key: key, Err: err}
	}

	p.printf("Updating %s...\n", key)
	before, info, err := p.read(ctx, key)
	if err != nil {
		return out, err
	}

	after, changed := p.pipeline.Apply(before)
	for _, name := range p.pipeline.Names() {
		p.logger.Debug("patch.step", "key", key, "step", name, "changed", slices.Contains(changed, name))
	}

	if _, err := p.store.Put(ctx, key, strings.NewReader(after), blob.PutOptions{ContentType: info.ContentType, Metadata: info.Metadata}); err != nil {
		return out, &OpError{Op: "patch.write", Kind: KindIO, Key: key, Err: err}
	}
	p.printf("Updated %s\n", key)

	out.Changed = changed
	out.BeforeSHA = digest(before)
	out.AfterSHA = digest(after)
	out.Status = StatusUnchanged
	if after != before {
		out.Status = StatusPatched
	}
	out.Duration = p.now().Sub(start)
	p.logger.Info("patch.file", "key", key, "status", string(out.Status), "steps_changed", len(changed), "duration", out.Duration)
	p.observe(out)
	return out, nil
}

// Run patches keys strictly in order. The first I/O or journal error stops
// the run and is returned along with the outcomes gathered so far.
func (p *Patcher) Run(ctx context.Context, keys []string) (Summary, error) {
	sum := Summary{RunID: p.newRunID()}
	p.logger.Info("patch.run_started", "run_id", sum.RunID, "targets", len(keys), "driver", string(p.store.Driver()))
	for _, key := range keys {
		o, err := p.PatchFile(ctx, key)
		if err != nil {
			p.logger.Error("patch.run_failed", "run_id", sum.RunID, "key", key, "error", err)
			return sum, err
		}
		sum.Outcomes = append(sum.Outcomes, o)
		if p.journal != nil {
			if err := p.journal.Record(ctx, sum.RunID, o); err != nil {
				return sum, &OpError{Op: "patch.journal", Kind: KindJournal, Key: key, Err: err}
			}
		}
	}
	p.logger.Info("patch.run_finished", "run_id", sum.RunID,
		"patched", sum.Count(StatusPatched),
		"unchanged", sum.Count(StatusUnchanged),
		"missing", sum.Count(StatusMissing))
	return sum, nil
}

func (p *Patcher) read(ctx context.Context, key string) (string, blob.Info, error) {
	info, rc, err := p.store.Get(ctx, key)
	if err != nil {
		return "", info, &OpError{Op: "patch.read", Kind: KindIO, Key: key, Err: err}
	}
	defer func() { _ = rc.Close() }()
	b, err := io.ReadAll(rc)
	if err != nil {
		return "", info, &OpError{Op: "patch.read", Kind: KindIO, Key: key, Err: err}
	}
	return string(b), info, nil
}

func (p *Patcher) observe(o Outcome) {
	if p.recorder != nil {
		p.recorder.Observe(o)
	}
}

func (p *Patcher) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func digest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
