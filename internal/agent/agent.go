// Package agent implements the decision loop: one user prompt in, one
// result string out, with tool dispatch in between.
package agent

import (
	"context"

	"github.com/harunnryd/tachi/internal/config"
	"github.com/harunnryd/tachi/internal/decision"
	"github.com/harunnryd/tachi/internal/model/contract"
	"github.com/harunnryd/tachi/internal/transcript"
)

// DefaultMaxSteps bounds the number of model turns per run.
const DefaultMaxSteps = 8

// ToolSession is the boundary to the external tool provider. One
// session is acquired per run and released on every exit path.
type ToolSession interface {
	ListTools(ctx context.Context) ([]contract.ToolDef, error)
	CallText(ctx context.Context, name string, args map[string]any) (string, error)
	Close() error
}

// SessionFactory opens a fresh tool session for one run.
type SessionFactory func(ctx context.Context) (ToolSession, error)

// Config carries the loop knobs. Zero values select the defaults.
type Config struct {
	MaxSteps    int
	Corrective  string
	Stall       decision.StallPredicate
	Transcripts *transcript.Store
}

type Agent struct {
	decider     *Decider
	sessions    SessionFactory
	maxSteps    int
	corrective  string
	stall       decision.StallPredicate
	transcripts *transcript.Store
}

func New(decider *Decider, sessions SessionFactory, cfg Config) *Agent {
	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	corrective := cfg.Corrective
	if corrective == "" {
		corrective = config.DefaultCorrectivePrompt
	}
	stall := cfg.Stall
	if stall == nil {
		stall = decision.LooksDeferred
	}

	return &Agent{
		decider:     decider,
		sessions:    sessions,
		maxSteps:    maxSteps,
		corrective:  corrective,
		stall:       stall,
		transcripts: cfg.Transcripts,
	}
}
