// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/huangsam/wellscore/internal/contract"
)

// NewMCPServer initializes and configures the wellscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Wellscore Wellness Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: evaluate_wellness ---
	s.AddTool(mcp.NewTool("evaluate_wellness",
		mcp.WithDescription("Score one employee-day for burnout and readiness, with the factors and recommendations behind the score."),
		mcp.WithString("input_json", mcp.Description("The employee-day as JSON: employee_id, as_of, health, work, and optional baseline, preferences, life_events, recent_work."), mcp.Required()),
		mcp.WithBoolean("record", mcp.Description("Store the scored day in zone history.")),
	), h.handleEvaluateWellness)

	// --- 2. Tool: get_explanation ---
	s.AddTool(mcp.NewTool("get_explanation",
		mcp.WithDescription("Explain an employee's most recently recorded score."),
		mcp.WithString("employee_id", mcp.Description("The employee to explain."), mcp.Required()),
	), h.handleGetExplanation)

	// --- 3. Tool: get_trend ---
	s.AddTool(mcp.NewTool("get_trend",
		mcp.WithDescription("Fit a burnout trend over an employee's recorded history and project it forward."),
		mcp.WithString("employee_id", mcp.Description("The employee to project."), mcp.Required()),
		mcp.WithNumber("horizon", mcp.Description("Days past the latest record to project (defaults to 7).")),
		mcp.WithNumber("days", mcp.Description("Recorded days to fit the trend on (defaults to the result limit).")),
	), h.handleGetTrend)

	// --- 4. Tool: list_factors ---
	s.AddTool(mcp.NewTool("list_factors",
		mcp.WithDescription("List the factors, weights and scaling the engine scores with."),
	), h.handleListFactors)

	return s
}

// StartMCPServer starts the wellscore MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
