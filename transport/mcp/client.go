package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wojons/ptp-core/internal/loop"
	"github.com/wojons/ptp-core/internal/memory"
)

// Client is the AI-integration surface (spec.md §4.7): an MCP tool
// server exposing the running Controller's tactical/strategic context
// to a language-model client, in place of the teacher's
// MCP-proxies-REST-API client shape. Every handler reads straight off
// the Controller and its memory tiers; there is no HTTP hop.
type Client struct {
	controller *loop.Controller
	mcpServer  *server.MCPServer
}

// NewClient builds an MCP tool server bound to a running Controller.
func NewClient(controller *loop.Controller) *Client {
	c := &Client{controller: controller}
	c.initMCPServer()
	return c
}

func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"ptp-core",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`ptp-core - autonomous decision engine MCP interface

This server exposes the live state of the tick-driven GOAP loop
controller: current game state, active goal/plan status, the tactical
and strategic context the three-tier memory accumulates, the recent
event log, and the snapshot index.

AVAILABLE TOOLS:
- game_state: current GameState snapshot
- plan_status: active goal/plan progress from the hierarchical planner
- ai_context: tactical (in-battle) and strategic (session) advice assembled from memory
- recent_events: the controller's structured event log, most recent first
- list_snapshots: the save-state manager's snapshot index
- rollback_to_snapshot: load a snapshot by id, restoring emulator and controller state`),
	)
	c.registerTools()
}

func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current GameState snapshot",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plan_status",
		Description: "Get the hierarchical planner's active goal and plan progress",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}, c.handlePlanStatus)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "ai_context",
		Description: "Get tactical/strategic advice assembled from the three memory tiers",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"enemy_type":     map[string]interface{}{"type": "string", "description": "Current battle opponent's type, if any"},
				"player_pokemon": map[string]interface{}{"type": "string", "description": "Active party member species"},
			},
		},
	}, c.handleAIContext)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "recent_events",
		Description: "Get the controller's recorded tick events, most recent first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{"type": "number", "description": "Max events to return (default 20)"},
			},
		},
	}, c.handleRecentEvents)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_snapshots",
		Description: "List known snapshots in the save-state manager's index",
		InputSchema: mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}},
	}, c.handleListSnapshots)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rollback_to_snapshot",
		Description: "Load a snapshot by id, restoring the collaborator emulator to that state",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{"snapshot_id": map[string]interface{}{"type": "string", "description": "Snapshot id to load"}},
			Required:   []string{"snapshot_id"},
		},
	}, c.handleRollback)
}

// GetMCPServer exposes the underlying server for main.go to serve
// over stdio or an HTTP transport.
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func stringArg(request mcp.CallToolRequest, key string) string {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := args[key].(string)
	return s
}

func intArg(request mcp.CallToolRequest, key string, def int) int {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return def
	}
	n, ok := args[key].(float64)
	if !ok {
		return def
	}
	return int(n)
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := c.controller.State()
	if state == nil {
		return mcp.NewToolResultError("no game state available yet"), nil
	}
	return textResult(state)
}

func (c *Client) handlePlanStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := c.controller.Planner.GetStatus()
	return textResult(status)
}

func (c *Client) handleAIContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	enemyType := stringArg(request, "enemy_type")
	playerPokemon := stringArg(request, "player_pokemon")
	situation := map[string]string{"enemy_type": enemyType, "player_pokemon": playerPokemon}

	aiCtx := memory.BuildAIContext(c.controller.Observer, c.controller.Strategist, c.controller.Tactician, enemyType, playerPokemon, situation)
	return textResult(aiCtx)
}

func (c *Client) handleRecentEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(request, "limit", 20)
	events := c.controller.EventLog().Events()
	start := 0
	if len(events) > limit {
		start = len(events) - limit
	}
	recent := events[start:]
	// Most recent first.
	reversed := make([]loop.Event, len(recent))
	for i, e := range recent {
		reversed[len(recent)-1-i] = e
	}
	return textResult(reversed)
}

func (c *Client) handleListSnapshots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if c.controller.Snapshots == nil {
		return mcp.NewToolResultError("no snapshot manager configured"), nil
	}
	return textResult(c.controller.Snapshots.List())
}

func (c *Client) handleRollback(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringArg(request, "snapshot_id")
	if id == "" {
		return mcp.NewToolResultError("snapshot_id is required"), nil
	}
	if err := c.controller.RollbackTo(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("rolled back to snapshot %s", id)), nil
}
