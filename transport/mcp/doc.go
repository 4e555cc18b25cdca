// Package mcp exposes the decision engine's tactical/strategic context
// as an MCP tool server, the AI-integration surface named in spec.md
// §4.7.
//
// The package implements:
//   - A read-only MCP tool server bound directly to a running
//     loop.Controller (no HTTP proxy hop)
//   - Tools for current game state, planner status, and the three-tier
//     memory's assembled tactical/strategic advice
//   - A snapshot browser and rollback tool over the save-state manager
//
// MCP Tools:
//
// The package exposes the following tools:
//   - game_state: current GameState snapshot
//   - plan_status: active goal/plan progress from the hierarchical planner
//   - ai_context: tactical (in-battle) and strategic (session) advice from memory
//   - recent_events: the controller's structured event log, most recent first
//   - list_snapshots: the save-state manager's snapshot index
//   - rollback_to_snapshot: load a snapshot by id
//
// Usage:
//
//	client := mcp.NewClient(controller)
//	srv := client.GetMCPServer()
//	// serve srv over stdio or an HTTP transport, e.g. server.ServeStdio(srv)
package mcp
