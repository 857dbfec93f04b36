package socket_services

import (
	"encoding/json"
	"log"
)

// Client-to-server room commands.
const (
	EventJoinBoard  = "join-board"
	EventLeaveBoard = "leave-board"
)

// Mutation-notification events. They carry no payload beyond the board id
// (and task id for comments): receivers must treat them as invalidation
// hints and re-fetch authoritative state, never as deltas.
const (
	EventBoardCreated   = "board-created"
	EventBoardUpdated   = "board-updated"
	EventBoardDeleted   = "board-deleted"
	EventColumnCreated  = "column-created"
	EventColumnUpdated  = "column-updated"
	EventColumnDeleted  = "column-deleted"
	EventColumnClear    = "column-clear"
	EventTaskCreated    = "task-created"
	EventTaskUpdated    = "task-updated"
	EventTaskDeleted    = "task-deleted"
	EventTaskMoved      = "task-moved"
	EventCommentCreated = "comment-created"
	EventCommentUpdated = "comment-updated"
	EventCommentDeleted = "comment-deleted"
)

// broadcastToAll holds the events relayed to every connected client rather
// than a board room: peers need them before they have any room to join.
var broadcastToAll = map[string]bool{
	EventBoardCreated: true,
	EventBoardUpdated: true,
}

var roomEvents = map[string]bool{
	EventBoardDeleted:   true,
	EventColumnCreated:  true,
	EventColumnUpdated:  true,
	EventColumnDeleted:  true,
	EventColumnClear:    true,
	EventTaskCreated:    true,
	EventTaskUpdated:    true,
	EventTaskDeleted:    true,
	EventTaskMoved:      true,
	EventCommentCreated: true,
	EventCommentUpdated: true,
	EventCommentDeleted: true,
}

type Event struct {
	Name  string `json:"event"`
	Board string `json:"board,omitempty"`
	Task  string `json:"task,omitempty"`
}

type inbound struct {
	sender *Client
	event  Event
}

// Hub relays invalidation events between connected clients, grouped into
// per-board rooms. It is fully decoupled from persistence: emission is
// client-initiated and best-effort, with no ordering, delivery confirmation,
// or replay after reconnect.
type Hub struct {
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan inbound
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan inbound),
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Run is the hub's main loop; all room state is owned by this goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("INFO: socket connected: %s", client.UserID)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
				log.Printf("INFO: socket disconnected: %s", client.UserID)
			}

		case in := <-h.events:
			h.dispatch(in.sender, in.event)
		}
	}
}

func (h *Hub) dispatch(sender *Client, event Event) {
	switch {
	case event.Name == EventJoinBoard:
		if event.Board == "" {
			return
		}
		room := h.rooms[event.Board]
		if room == nil {
			room = make(map[*Client]bool)
			h.rooms[event.Board] = room
		}
		room[sender] = true

	case event.Name == EventLeaveBoard:
		h.leaveRoom(sender, event.Board)

	case broadcastToAll[event.Name]:
		h.broadcast(h.clients, sender, event)

	case roomEvents[event.Name]:
		if event.Board == "" {
			return
		}
		h.broadcast(h.rooms[event.Board], sender, event)

	default:
		log.Printf("INFO: ignoring unknown socket event %q from %s", event.Name, sender.UserID)
	}
}

func (h *Hub) broadcast(targets map[*Client]bool, sender *Client, event Event) {
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR: failed to marshal socket event: %v", err)
		return
	}

	for client := range targets {
		if client == sender {
			continue
		}
		select {
		case client.send <- message:
		default:
			// Send buffer full: assume the peer is gone.
			log.Printf("INFO: socket send buffer full, dropping client %s", client.UserID)
			h.drop(client)
		}
	}
}

func (h *Hub) leaveRoom(client *Client, boardID string) {
	if room, ok := h.rooms[boardID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, boardID)
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	for boardID := range h.rooms {
		h.leaveRoom(client, boardID)
	}
	close(client.send)
}
