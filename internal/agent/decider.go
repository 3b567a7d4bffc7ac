package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harunnryd/tachi/internal/decision"
	errs "github.com/harunnryd/tachi/internal/errors"
	"github.com/harunnryd/tachi/internal/model"
	"github.com/harunnryd/tachi/internal/model/contract"
)

// Decider is the model gateway. One non-streaming request per call:
// behavioral system prompt, a second system message carrying the tool
// catalog, then the rolling history in order. No retry at this layer.
type Decider struct {
	provider  model.Provider
	modelName string
	system    string
	repair    string
}

func NewDecider(provider model.Provider, modelName, systemPrompt, repairPrompt string) *Decider {
	return &Decider{
		provider:  provider,
		modelName: modelName,
		system:    systemPrompt,
		repair:    repairPrompt,
	}
}

// Decide requests the next decision and returns the raw response text
// verbatim.
func (d *Decider) Decide(ctx context.Context, catalogJSON string, history []contract.Message) (string, error) {
	messages := make([]contract.Message, 0, len(history)+2)
	messages = append(messages,
		contract.Message{Role: contract.RoleSystem, Content: d.system},
		contract.Message{Role: contract.RoleSystem, Content: "Available tools:\n" + catalogJSON},
	)
	messages = append(messages, history...)

	return d.complete(ctx, messages)
}

// RepairJSON asks the model to rewrite malformed output into one valid
// JSON object.
func (d *Decider) RepairJSON(ctx context.Context, raw string) (string, error) {
	messages := []contract.Message{
		{Role: contract.RoleSystem, Content: d.repair},
		{Role: contract.RoleUser, Content: "Repair this into one valid JSON object only:\n" + raw},
	}

	return d.complete(ctx, messages)
}

func (d *Decider) complete(ctx context.Context, messages []contract.Message) (string, error) {
	resp, err := d.provider.Generate(ctx, contract.CompletionRequest{
		Model:    d.modelName,
		Messages: messages,
	})
	if err != nil {
		return "", errs.Backend(err)
	}
	return resp.Content, nil
}

// DecideWithRepair applies the two-strike policy: one primary decision,
// and on parse failure exactly one repair escalation. A second parse
// failure is terminal for the step; the error carries both texts
// verbatim for diagnosis. The returned raw text is whichever response
// actually parsed, so the loop folds back what the model said last.
func (d *Decider) DecideWithRepair(ctx context.Context, catalogJSON string, history []contract.Message) (*decision.Payload, string, error) {
	raw, err := d.Decide(ctx, catalogJSON, history)
	if err != nil {
		return nil, "", err
	}

	payload, parseErr := decision.ParseFirst(raw)
	if parseErr == nil {
		return payload, raw, nil
	}
	slog.Debug("primary decision decode failed, escalating to repair", "error", parseErr)

	repaired, err := d.RepairJSON(ctx, raw)
	if err != nil {
		return nil, "", err
	}

	payload, parseErr = decision.ParseFirst(repaired)
	if parseErr != nil {
		return nil, "", fmt.Errorf(
			"model returned malformed JSON and repair failed.\nOriginal:\n%s\n\nRepaired:\n%s\n%v: %w",
			raw, repaired, parseErr, errs.ErrRepairExhausted,
		)
	}
	return payload, repaired, nil
}
