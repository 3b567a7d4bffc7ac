package main

import (
	"context"
	"fmt"

	"github.com/harunnryd/tachi/internal/agent"
	"github.com/harunnryd/tachi/internal/config"
	"github.com/harunnryd/tachi/internal/mcp"
	"github.com/harunnryd/tachi/internal/model"
	"github.com/harunnryd/tachi/internal/transcript"
)

func buildAgent(cfg *config.Config) (*agent.Agent, error) {
	provider, err := model.NewProvider(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("model provider init: %w", err)
	}

	decider := agent.NewDecider(provider, cfg.Model.Name, cfg.Prompts.System, cfg.Prompts.Repair)

	sessions := func(ctx context.Context) (agent.ToolSession, error) {
		return mcp.Dial(ctx, cfg.Tools.Command)
	}

	var store *transcript.Store
	if cfg.Transcript.Enabled {
		store, err = transcript.NewStore(cfg.Transcript.Dir)
		if err != nil {
			return nil, fmt.Errorf("transcript store init: %w", err)
		}
	}

	return agent.New(decider, sessions, agent.Config{
		MaxSteps:    cfg.Loop.MaxSteps,
		Corrective:  cfg.Prompts.Corrective,
		Transcripts: store,
	}), nil
}
