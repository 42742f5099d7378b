// Package prompts implements MCP prompt handlers for causal analysis.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// AnalyzePrompt handles the causal-analyze MCP prompt.
// It guides the AI through a full causal analysis of a described system.
type AnalyzePrompt struct{}

// NewAnalyzePrompt creates an AnalyzePrompt.
func NewAnalyzePrompt() *AnalyzePrompt {
	return &AnalyzePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *AnalyzePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("causal-analyze",
		mcp.WithPromptDescription(
			"Run a full causal analysis of a system: build the graph from a description, "+
				"find its key variables, check confounding, and derive how to estimate the "+
				"effect you care about.",
		),
		mcp.WithArgument("question",
			mcp.ArgumentDescription("The causal question to answer (e.g. 'does the cache layer cause the latency spikes?')"),
		),
		mcp.WithArgument("session_title",
			mcp.ArgumentDescription("Title for the reasoning session recorded in history"),
		),
	)
}

// Handle processes the causal-analyze prompt request.
func (p *AnalyzePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	question := "my causal question"
	if args := req.Params.Arguments; args != nil {
		if q, ok := args["question"]; ok && q != "" {
			question = q
		}
	}

	title := question
	if args := req.Params.Arguments; args != nil {
		if s, ok := args["session_title"]; ok && s != "" {
			title = s
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Causal analysis: %s", title),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want a causal analysis of: %s\n\n"+
						"Please:\n"+
						"1. Ask me about the variables involved and which ones influence which, then express them as a graph JSON (nodes + directed edges; mark unmeasured variables as latent)\n"+
						"2. Run `causal_centrality` to identify the most influential variables\n"+
						"3. Run `causal_structure` to surface colliders and implied independencies I should know about\n"+
						"4. Run `causal_adjustment` with my treatment and outcome to find what to control for\n"+
						"5. Run `causal_intervention` to tell me whether the effect is identifiable at all, and by which method\n"+
						"6. Finish with `causal_export` (mermaid) so I can see the graph, and summarize what the analysis means in plain language\n\n"+
						"Pass the same session_id to every tool so the analysis is recorded as one session.",
					question,
				)),
			},
		},
	}, nil
}
