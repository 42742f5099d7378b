// Deepthinking: Causal Graph Analysis MCP Server
//
// A universal MCP server that gives any AI coding tool (Claude Code,
// OpenCode, Gemini CLI, Codex, Cursor, VS Code Copilot) a causal
// reasoning engine: centrality analysis, d-separation, adjustment sets,
// intervention identifiability, and graph export.
//
// Usage:
//
//	deepthinking serve    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"os"

	"github.com/danielsimonjr/deepthinking-mcp/internal/server"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("deepthinking v%s\n", server.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := server.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// ServeStdio blocks until the client disconnects; it handles
	// SIGINT/SIGTERM itself. Diagnostics go to stderr so they don't
	// interfere with the stdio transport on stdout.
	return mcpserver.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Deepthinking v%s — Causal Graph Analysis MCP Server

Usage:
  deepthinking serve      Start the MCP server (stdio transport)
  deepthinking version    Print the version
  deepthinking help       Show this help

Register with your MCP client, e.g. for Claude Code:

  claude mcp add deepthinking -- deepthinking serve
`, server.Version)
}
