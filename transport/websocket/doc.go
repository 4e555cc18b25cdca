// Package websocket broadcasts tick-by-tick decision events from the
// core loop controller to connected observers.
//
// The package implements:
//   - Real-time, one-way broadcasting of loop.Event records and
//     GameState snapshots
//   - Run-aware WebSocket connections
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages
// all WebSocket connections. Each client connection is handled by a
// dedicated goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded: a GameState snapshot plus the most
// recent structured Event, broadcast after each tick.
//
// Run Integration:
//
// WebSocket connections are run-aware. Clients specify the run id via
// query parameter (?run=<id>) when establishing the connection. Events
// are broadcast only to clients connected to the same run.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	hub.ServeWS(w, r, runID)
//	// from the loop controller, after each tick:
//	hub.BroadcastTick(runID, state, event)
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive broadcasts
// simultaneously without blocking each other.
package websocket
