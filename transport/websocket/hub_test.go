package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wojons/ptp-core/internal/loop"
	"github.com/wojons/ptp-core/internal/model"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}
	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}
	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{hub: hub, runID: "test-run", send: make(chan []byte, 256)}
	hub.registerClient(client)

	if _, exists := hub.sessions["test-run"]; !exists {
		t.Error("run was not created")
	}
	if !hub.sessions["test-run"][client] {
		t.Error("client was not registered in run")
	}
	if len(hub.sessions["test-run"]) != 1 {
		t.Errorf("expected 1 client in run, got %d", len(hub.sessions["test-run"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{hub: hub, runID: "test-run", send: make(chan []byte, 256)}
	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-run"]; exists {
		t.Error("run should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleClientsInRun(t *testing.T) {
	hub := NewHub()
	runID := "multi-client-run"

	client1 := &Client{hub: hub, runID: runID, send: make(chan []byte, 256)}
	client2 := &Client{hub: hub, runID: runID, send: make(chan []byte, 256)}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.sessions[runID]) != 2 {
		t.Errorf("expected 2 clients in run, got %d", len(hub.sessions[runID]))
	}

	hub.unregisterClient(client1)

	if len(hub.sessions[runID]) != 1 {
		t.Errorf("expected 1 client remaining in run, got %d", len(hub.sessions[runID]))
	}
	if !hub.sessions[runID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastTick(t *testing.T) {
	hub := NewHub()
	runID := "broadcast-test"

	client := &Client{hub: hub, runID: runID, send: make(chan []byte, 256)}
	hub.registerClient(client)

	state := model.NewGameState()
	state.Tick = 42
	event := loop.Event{Tick: 42, Kind: loop.EventSuccess, Detail: "tick advanced"}

	hub.broadcastMessage(&Message{RunID: runID, GameState: state, Event: &event})

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if message.RunID != runID {
			t.Errorf("expected run id %s, got %s", runID, message.RunID)
		}
		if message.GameState == nil || message.GameState.Tick != 42 {
			t.Error("GameState not correctly transmitted")
		}
		if message.Event == nil || message.Event.Kind != loop.EventSuccess {
			t.Error("Event not correctly transmitted")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("no message received within timeout")
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runID := r.URL.Query().Get("run")
		if runID == "" {
			runID = "default"
		}
		hub.ServeWS(w, r, runID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?run=ws-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	time.Sleep(50 * time.Millisecond)

	if len(hub.sessions["ws-test"]) != 1 {
		t.Errorf("expected 1 client in run, got %d", len(hub.sessions["ws-test"]))
	}

	conn.Close()
	time.Sleep(10 * time.Millisecond)

	if _, exists := hub.sessions["ws-test"]; exists {
		t.Error("run should have been cleaned up after WebSocket close")
	}
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		runID := r.URL.Query().Get("run")
		if runID == "" {
			runID = "default"
		}
		hub.ServeWS(w, r, runID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?run=msg-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	time.Sleep(10 * time.Millisecond)

	state := model.NewGameState()
	state.Badges = 3
	hub.BroadcastTick("msg-test", state, loop.Event{Kind: loop.EventRetry})

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, messageData, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read WebSocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(messageData, &message); err != nil {
		t.Fatalf("failed to unmarshal message: %v", err)
	}

	if message.RunID != "msg-test" {
		t.Errorf("expected run id 'msg-test', got %s", message.RunID)
	}
	if message.GameState == nil || message.GameState.Badges != 3 {
		t.Error("GameState badges not correctly received")
	}
	if message.Event == nil || message.Event.Kind != loop.EventRetry {
		t.Error("Event kind not correctly received")
	}
}
