// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools/prompts/resources that depend on them.
// No business logic lives here — only wiring.
package server

import (
	"log"

	"github.com/danielsimonjr/deepthinking-mcp/internal/prompts"
	"github.com/danielsimonjr/deepthinking-mcp/internal/resources"
	"github.com/danielsimonjr/deepthinking-mcp/internal/session"
	"github.com/danielsimonjr/deepthinking-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the session store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if session init failed.
func New() (*server.MCPServer, func(), error) {
	s := server.NewMCPServer(
		"deepthinking",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Session history ---
	//
	// History is an independent subsystem: if it fails to initialize,
	// the analysis tools continue working without recording. We log a
	// warning and pass a nil store — every tool is nil-safe.

	cleanup := noop
	store, err := session.New(session.DefaultConfig())
	if err != nil {
		log.Printf("WARNING: session history disabled: %v", err)
		store = nil
	} else {
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Printf("WARNING: session store close: %v", err)
			}
		}
	}

	// --- Register analysis tools ---

	centralityTool := tools.NewCentralityTool(store)
	s.AddTool(centralityTool.Definition(), centralityTool.Handle)

	dsepTool := tools.NewDSeparationTool(store)
	s.AddTool(dsepTool.Definition(), dsepTool.Handle)

	structureTool := tools.NewStructureTool(store)
	s.AddTool(structureTool.Definition(), structureTool.Handle)

	adjustmentTool := tools.NewAdjustmentTool(store)
	s.AddTool(adjustmentTool.Definition(), adjustmentTool.Handle)

	interventionTool := tools.NewInterventionTool(store)
	s.AddTool(interventionTool.Definition(), interventionTool.Handle)

	exportTool := tools.NewExportTool(store)
	s.AddTool(exportTool.Definition(), exportTool.Handle)

	sessionTool := tools.NewSessionTool(store)
	s.AddTool(sessionTool.Definition(), sessionTool.Handle)

	// --- Register prompts ---

	analyzePrompt := prompts.NewAnalyzePrompt()
	s.AddPrompt(analyzePrompt.Definition(), analyzePrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store)
	s.AddResource(resourceHandler.RecentSessionsResource(), resourceHandler.HandleRecentSessions)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when the session
// store is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use the causal analysis tools effectively.
func serverInstructions() string {
	return `You have access to deepthinking, a causal graph analysis MCP server.

## WHEN TO USE IT

Proactively reach for these tools when the user:
- Asks why something happens, or whether X causes Y
- Is debugging a system with many interacting components
- Wants to know what to measure or control for in an experiment
- Describes variables that influence each other

## HOW TO USE IT

1. Model the system as a graph: nodes are variables, directed edges are
   cause -> effect claims. Mark unmeasured variables as "latent" and use
   "bidirected" edges for hidden common causes.
2. causal_centrality finds the variables that matter most.
3. causal_structure surfaces colliders — conditioning on them creates
   spurious correlations, a common analysis mistake.
4. causal_d_separation answers "are these independent given that?".
5. causal_adjustment tells you what to control for to estimate an effect.
6. causal_intervention decides whether a causal effect is identifiable
   from observational data at all, and gives the estimation formula.
7. causal_export renders the graph for the user.

Keep one session_id across a line of reasoning so the history resource
shows the analysis as a single session.`
}
