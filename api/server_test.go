package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/wojons/ptp-core/internal/collab"
	"github.com/wojons/ptp-core/internal/goap"
	"github.com/wojons/ptp-core/internal/loop"
	"github.com/wojons/ptp-core/internal/memory"
	"github.com/wojons/ptp-core/internal/model"
	"github.com/wojons/ptp-core/internal/savestate"
	"github.com/wojons/ptp-core/transport/websocket"
)

func setupTestServer(t *testing.T) (*Server, *loop.Controller) {
	t.Helper()
	emulator := collab.NewInMemoryEmulator()
	vision := &collab.InMemoryVision{}
	dialogue := collab.NewDefaultDialogueAdaptor()
	snapshots, err := savestate.NewManager(t.TempDir(), 5)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	planner := goap.NewHierarchicalPlanner(loop.NewActionDispatcher(context.Background(), emulator, dialogue))
	observer := memory.NewObserverMemory()
	strategist := memory.NewStrategistMemory("session-1")
	tactician := memory.NewTacticianMemory()

	controller := loop.NewController(emulator, vision, dialogue, planner, observer, strategist, tactician, snapshots,
		loop.TickRate{BaseHz: 1000, BattleHz: 1000},
		loop.Limits{MaxTicks: 100, OnLimit: loop.OnLimitAbort})
	controller.State().Party = model.NewTeam("t", "t")

	hub := websocket.NewHub()
	go hub.Run()

	return NewServer(controller, hub), controller
}

func TestHandleGetState(t *testing.T) {
	server, _ := setupTestServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/state", nil)
	server.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var state model.GameState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestHandleGetPlan(t *testing.T) {
	server, _ := setupTestServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/plan", nil)
	server.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var status goap.Status
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.HasActiveGoal {
		t.Error("expected no active goal on a fresh controller")
	}
}

func TestHandleGetEventsRespectsLimit(t *testing.T) {
	server, controller := setupTestServer(t)
	controller.EventLog().Record(loop.Event{Tick: 1, Kind: loop.EventSuccess})
	controller.EventLog().Record(loop.Event{Tick: 2, Kind: loop.EventRetry})
	controller.EventLog().Record(loop.Event{Tick: 3, Kind: loop.EventFailure})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/events?limit=2", nil)
	server.ServeHTTP(w, req)

	var resp struct {
		Count  int          `json:"count"`
		Events []loop.Event `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 || len(resp.Events) != 2 {
		t.Fatalf("expected 2 events, got %+v", resp)
	}
	if resp.Events[0].Tick != 2 || resp.Events[1].Tick != 3 {
		t.Errorf("expected the last two events in order, got %+v", resp.Events)
	}
}

func TestHandleGetContext(t *testing.T) {
	server, _ := setupTestServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/memory/context", nil)
	server.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHandleListSnapshotsEmpty(t *testing.T) {
	server, _ := setupTestServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/snapshots", nil)
	server.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHandleValidateSnapshotNotFound(t *testing.T) {
	server, _ := setupTestServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/snapshots/nonexistent/validate", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "nonexistent"})
	server.handleValidateSnapshot(w, req)

	if w.Code != 404 {
		t.Fatalf("expected 404 for unknown snapshot, got %d", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	server, _ := setupTestServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/health", nil)
	server.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHandleWebSocketDefaultsRunID(t *testing.T) {
	server, _ := setupTestServer(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ws", nil)
	// No Upgrade header: the handshake fails before reaching hub logic,
	// but ServeWS should not panic on a missing ?run= param.
	server.handleWebSocket(w, req)
	if w.Code == 0 {
		t.Fatal("expected a response to be written")
	}
}
