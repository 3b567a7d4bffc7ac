package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

type Config struct {
	LogLevel   string           `koanf:"log_level"`
	Model      ModelConfig      `koanf:"model"`
	Tools      ToolsConfig      `koanf:"tools"`
	Loop       LoopConfig       `koanf:"loop"`
	Prompts    PromptsConfig    `koanf:"prompts"`
	Transcript TranscriptConfig `koanf:"transcript"`
}

type ModelConfig struct {
	Name           string `koanf:"name"`
	Provider       string `koanf:"provider"`
	BaseURL        string `koanf:"base_url"`
	APIKey         string `koanf:"api_key"`
	RequestTimeout string `koanf:"request_timeout"`
}

type ToolsConfig struct {
	// Command is the tool server command line, launched as a child
	// process speaking MCP over stdio.
	Command string `koanf:"command"`
}

type LoopConfig struct {
	MaxSteps int `koanf:"max_steps"`
}

type PromptsConfig struct {
	System     string `koanf:"system"`
	Repair     string `koanf:"repair"`
	Corrective string `koanf:"corrective"`
}

type TranscriptConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

const (
	DefaultLogLevel            = "info"
	DefaultModelName           = "qwen2.5:7b"
	DefaultModelProvider       = "ollama"
	DefaultOllamaBaseURL       = "http://localhost:11434"
	DefaultOpenAIBaseURL       = "http://localhost:11434/v1"
	DefaultOpenAIAPIKey        = "ollama"
	DefaultModelRequestTimeout = "120s"
	DefaultToolsCommand        = "npx tsx server.ts"
	DefaultLoopMaxSteps        = 8

	DefaultSystemPrompt = `You are an MCP assistant that can either chat or take actions with tools.

Decide the best next step based on the user request and tool results so far.

Return EXACTLY ONE JSON object (no markdown, no prose outside JSON) in one of these forms:

1) Conversational reply:
{"mode":"chat","message":"<your response to the user>"}

2) Tool call:
{"mode":"action","tool":"<tool_name>","args":{...}}

Rules:
- Use "chat" for normal conversation, clarifying questions, and when no tool is needed.
- Use "action" when a tool call is needed to fulfill the request.
- If using "action", call exactly one tool per response.
- If the user asks to list/read/write/edit/move/delete files or directories, prefer "action" with the relevant file tool.
- For "list ... in workspace" style requests, call "list_dir" with {"dir":"."} unless the user specifies a subdirectory.
- Do not return an empty chat message.
- Keep responses concise and helpful.`

	DefaultRepairPrompt = `You fix malformed JSON.

Given model output that should be a single JSON object, return a corrected single JSON object.

Rules:
- Output JSON only.
- Do not wrap in markdown/code fences.
- Preserve original intent and fields.
- Escape newlines and control characters inside strings.`

	DefaultCorrectivePrompt = "Do not narrate intent. Either call one tool now, " +
		"or return a direct final answer based on available context."
)

func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	// Hardcoded Defaults
	defaults := map[string]interface{}{
		"log_level":             DefaultLogLevel,
		"model.name":            DefaultModelName,
		"model.provider":        DefaultModelProvider,
		"model.base_url":        "",
		"model.api_key":         "",
		"model.request_timeout": DefaultModelRequestTimeout,
		"tools.command":         DefaultToolsCommand,
		"loop.max_steps":        DefaultLoopMaxSteps,
		"prompts.system":        DefaultSystemPrompt,
		"prompts.repair":        DefaultRepairPrompt,
		"prompts.corrective":    DefaultCorrectivePrompt,
		"transcript.enabled":    false,
		"transcript.dir":        filepath.Join(os.Getenv("HOME"), ".tachi", "transcripts"),
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	// Config file loading
	configPath := ""
	if cmd != nil {
		if flag := cmd.Flags().Lookup("config"); flag != nil {
			configPath = strings.TrimSpace(flag.Value.String())
		}
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, err
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			globalPath := filepath.Join(home, ".tachi", "config.yaml")
			if err := k.Load(file.Provider(globalPath), yaml.Parser()); err != nil {
				slog.Debug("Global config not found or invalid", "path", globalPath, "error", err)
			}
		}
	}

	// Environment Variables
	k.Load(env.Provider("TACHI_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "TACHI_")), "_", ".", -1)
	}), nil)

	// CLI Flags
	if cmd != nil {
		k.Load(posflag.Provider(cmd.Flags(), ".", k), nil)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if cfg.Model.Provider == "" {
		cfg.Model.Provider = DefaultModelProvider
	}
	if cfg.Model.BaseURL == "" {
		switch cfg.Model.Provider {
		case "openai":
			cfg.Model.BaseURL = DefaultOpenAIBaseURL
		default:
			cfg.Model.BaseURL = DefaultOllamaBaseURL
		}
	}
	if cfg.Model.APIKey == "" && cfg.Model.Provider == "openai" {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			cfg.Model.APIKey = key
		} else {
			// Ollama's OpenAI-compatible surface ignores the key but the
			// client requires a non-empty one.
			cfg.Model.APIKey = DefaultOpenAIAPIKey
		}
	}

	return &cfg, nil
}
