// Package api provides a debug/introspection HTTP server over a
// running loop.Controller.
//
// The api package implements:
//   - Read-only endpoints for game state, planner status, and the
//     three-tier memory's planning context and active objectives
//   - A tick-event log endpoint
//   - A snapshot browser, validator and rollback trigger
//   - WebSocket upgrade handling, delegating to transport/websocket
//
// Endpoints:
//
//	GET  /api/state                      current GameState
//	GET  /api/plan                       active goal/plan status
//	GET  /api/events?limit=N             recent structured events
//	GET  /api/memory/context             flat planning-context facts
//	GET  /api/memory/objectives          active strategist objectives
//	GET  /api/snapshots                  snapshot index
//	GET  /api/snapshots/{id}/validate     snapshot integrity check
//	POST /api/snapshots/{id}/rollback     load a snapshot, broadcast the rollback
//	GET  /api/health
//	GET  /ws?run=<id>                    tick/event WebSocket stream
//
// Usage:
//
//	srv := api.NewServer(controller, hub)
//	http.ListenAndServe(":8080", srv)
package api
