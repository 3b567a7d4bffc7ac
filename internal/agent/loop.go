package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/harunnryd/tachi/internal/decision"
	errs "github.com/harunnryd/tachi/internal/errors"
	"github.com/harunnryd/tachi/internal/logger"
	"github.com/harunnryd/tachi/internal/model/contract"

	"github.com/oklog/ulid/v2"
)

// StoppedResult is the terminal result when the step budget runs out.
// Resource exhaustion is a defined state, not an error.
const StoppedResult = "(stopped: max steps reached)"

// panicTraceLines caps the stack lines echoed into a panic diagnostic.
const panicTraceLines = 12

// Run executes one full decision loop for the prompt with the
// configured step budget. It always returns a string: the model's
// answer, a diagnostic describing what failed, or the step-limit
// notice. No fault escapes to the caller.
func (a *Agent) Run(ctx context.Context, prompt string) string {
	return a.RunSteps(ctx, prompt, a.maxSteps)
}

// RunSteps is Run with an explicit step budget.
func (a *Agent) RunSteps(ctx context.Context, prompt string, maxSteps int) string {
	if maxSteps <= 0 {
		maxSteps = a.maxSteps
	}

	runID := ulid.Make().String()
	ctx = logger.WithRunID(ctx, runID)
	log := slog.With("run_id", runID)
	log.Info("run started", "max_steps", maxSteps)

	result, history := a.run(ctx, log, prompt, maxSteps)

	if a.transcripts != nil {
		if err := a.transcripts.Save(runID, history, result); err != nil {
			log.Warn("transcript save failed", "error", err)
		}
	}
	log.Info("run finished", "history", len(history))
	return result
}

// run is the loop body. Every internal fault, including panics, is
// flattened into the returned diagnostic string at this boundary.
func (a *Agent) run(ctx context.Context, log *slog.Logger, prompt string, maxSteps int) (out string, history []contract.Message) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("run panicked", "panic", r)
			out = panicDiagnostic(r)
		}
	}()

	history = []contract.Message{{Role: contract.RoleUser, Content: prompt}}

	session, err := a.sessions(ctx)
	if err != nil {
		return diagnostic(errs.ToolSession(err)), history
	}
	defer func() { _ = session.Close() }()

	catalog, err := session.ListTools(ctx)
	if err != nil {
		return diagnostic(errs.ToolSession(err)), history
	}
	catalogJSON, err := json.Marshal(catalog)
	if err != nil {
		return diagnostic(errs.Wrap(errs.ErrInternal, "serialize tool catalog")), history
	}

	for step := 0; step < maxSteps; step++ {
		payload, raw, err := a.decider.DecideWithRepair(ctx, string(catalogJSON), history)
		if err != nil {
			return diagnostic(err), history
		}

		d, err := payload.Normalize()
		if err != nil {
			return diagnostic(fmt.Errorf("%w\nRaw:\n%s", err, raw)), history
		}

		if d.Mode == decision.ModeChat {
			// Avoid ending the run on "I'll check..." planning chatter.
			if d.Message != "" && a.stall(d.Message) && step < maxSteps-1 {
				log.Debug("rejected stalling chat reply", "step", step)
				history = append(history,
					contract.Message{Role: contract.RoleAssistant, Content: raw},
					contract.Message{Role: contract.RoleUser, Content: a.corrective},
				)
				continue
			}

			if d.Message != "" {
				return d.Message, history
			}
			return fmt.Sprintf("(empty chat response)\nRaw model output:\n%s", raw), history
		}

		log.Info("dispatching tool", "tool", d.Tool, "calls", len(d.Args), "step", step)
		results := make([]string, 0, len(d.Args))
		for _, args := range d.Args {
			text, err := session.CallText(ctx, d.Tool, args)
			if err != nil {
				return diagnostic(errs.ToolSession(err)), history
			}
			results = append(results, text)
		}

		history = append(history,
			contract.Message{Role: contract.RoleAssistant, Content: raw},
			contract.Message{Role: contract.RoleUser, Content: "Tool result:\n" + labelResults(results)},
		)
	}

	return StoppedResult, history
}

// labelResults concatenates tool outputs with 1-based position labels,
// preserving dispatch order.
func labelResults(results []string) string {
	var sb strings.Builder
	for i, text := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "Result %d:\n%s", i+1, text)
	}
	return sb.String()
}

func diagnostic(err error) string {
	return fmt.Sprintf("Tool loop error.\n%s: %v", errs.Category(err), err)
}

func panicDiagnostic(r any) string {
	stack := strings.Split(string(debug.Stack()), "\n")
	if len(stack) > panicTraceLines {
		stack = stack[:panicTraceLines]
	}
	return fmt.Sprintf("Tool loop error.\npanic: %v\n%s", r, strings.Join(stack, "\n"))
}
