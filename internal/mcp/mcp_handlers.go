package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/huangsam/wellscore/core"
	"github.com/huangsam/wellscore/internal/contract"
	"github.com/huangsam/wellscore/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

// evaluation is the tool view of a scored day.
type evaluation struct {
	*schema.ScoreResult
	Wellness *float64 `json:"wellness,omitempty"`
	Label    string   `json:"label,omitempty"`
}

// trend pairs a projection with the history it was fit on.
type trend struct {
	EmployeeID string                     `json:"employee_id"`
	Prediction *schema.Prediction         `json:"prediction,omitempty"`
	Note       string                     `json:"note,omitempty"`
	History    []schema.ZoneHistoryRecord `json:"history"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateWellness(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("input_json", "")
	if raw == "" {
		return mcp.NewToolResultError("input_json is required"), nil
	}
	var in schema.EvaluationInput
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid input_json: %v", err)), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Record = request.GetBool("record", false)
	result, err := core.GetEvaluationResult(core.WithSuppressHeader(ctx), cfg, h.mgr, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	out := evaluation{ScoreResult: result, Wellness: result.Wellness()}
	if !result.InsufficientData() {
		out.Label = schema.GetPlainLabel(result.BurnoutScore)
	}
	return jsonResult(out)
}

func (h *toolHandler) handleGetExplanation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("employee_id", "")
	if id == "" {
		return mcp.NewToolResultError("employee_id is required"), nil
	}

	result, err := core.GetLatestResult(ctx, h.mgr, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("explanation lookup failed: %v", err)), nil
	}
	return jsonResult(evaluation{
		ScoreResult: result,
		Wellness:    result.Wellness(),
		Label:       schema.GetPlainLabel(result.BurnoutScore),
	})
}

func (h *toolHandler) handleGetTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("employee_id", "")
	if id == "" {
		return mcp.NewToolResultError("employee_id is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if hz := request.GetInt("horizon", 0); hz > 0 {
		cfg.Horizon = hz
	}
	if d := request.GetInt("days", 0); d > 0 {
		cfg.ResultLimit = d
	}

	records, prediction, err := core.GetHistoryTrend(ctx, cfg, h.mgr, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend lookup failed: %v", err)), nil
	}
	out := trend{EmployeeID: id, Prediction: prediction, History: records}
	if prediction == nil {
		out.Note = "not enough recorded days to fit a trend"
	}
	return jsonResult(out)
}

func (h *toolHandler) handleListFactors(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	engine, err := core.NewEngineFromConfig(h.baseCfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scoring policy: %v", err)), nil
	}
	return jsonResult(schema.FactorReport{
		Scaling: engine.Scaling(),
		Factors: engine.Table().Definitions(),
	})
}
