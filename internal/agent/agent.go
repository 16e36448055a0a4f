// Package agent implements the multi-agent research pipeline: three
// specialist analysts (news, fundamental, technical) whose reports a
// strategist synthesizes into a final investment decision.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/advisorly/stockadvisor/internal/llm"
)

// Result holds the output from a single agent run.
type Result struct {
	AgentName string        `json:"agent_name"`
	Role      string        `json:"role"`
	Content   string        `json:"content"`
	Tokens    int           `json:"tokens"`
	Duration  time.Duration `json:"duration"`
}

// Agent is a single LLM-backed analyst with a fixed system prompt.
type Agent struct {
	name         string
	role         string
	systemPrompt string
	provider     llm.Provider
	opts         *llm.ChatOptions
}

// Config holds the settings for creating an Agent.
type Config struct {
	Name         string
	Role         string
	SystemPrompt string
	Provider     llm.Provider
	ChatOptions  *llm.ChatOptions
}

// New creates an agent from the given configuration.
func New(cfg Config) *Agent {
	return &Agent{
		name:         cfg.Name,
		role:         cfg.Role,
		systemPrompt: cfg.SystemPrompt,
		provider:     cfg.Provider,
		opts:         cfg.ChatOptions,
	}
}

// Name returns the agent's identifier.
func (a *Agent) Name() string { return a.name }

// Role returns a human-readable description of the agent's role.
func (a *Agent) Role() string { return a.role }

// Run executes a single task and returns the agent's report.
func (a *Agent) Run(ctx context.Context, task string) (*Result, error) {
	start := time.Now()

	messages := []llm.Message{
		llm.SystemMessage(a.systemPrompt),
		llm.UserMessage(task),
	}
	resp, err := a.provider.Chat(ctx, messages, a.opts)
	if err != nil {
		return nil, fmt.Errorf("agent %s: %w", a.name, err)
	}

	return &Result{
		AgentName: a.name,
		Role:      a.role,
		Content:   resp.Content,
		Tokens:    resp.Usage.TotalTokens,
		Duration:  time.Since(start),
	}, nil
}
