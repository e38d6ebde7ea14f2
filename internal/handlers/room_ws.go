// internal/handlers/room_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/halfsuit/fish/internal/auth"
	"github.com/halfsuit/fish/internal/game"
	"github.com/halfsuit/fish/internal/models"
)

// ClientMessage is the structure for incoming WebSocket messages. Which fields
// matter depends on Type.
type ClientMessage struct {
	Type string `json:"type"`

	// create_room / join_room
	Name string `json:"name,omitempty"`
	Room string `json:"room,omitempty"`

	// rejoin
	Token string `json:"token,omitempty"`

	// action_ask / action_pass
	Target uuid.UUID `json:"target,omitempty"`
	Card   string    `json:"card,omitempty"`

	// action_claim
	HalfSuit    string                 `json:"halfSuit,omitempty"`
	Assignments []game.ClaimAssignment `json:"assignments,omitempty"`
}

// ServerMessage is the envelope for everything the server sends to a client.
type ServerMessage struct {
	Type     string                `json:"type"`
	RoomCode string                `json:"roomCode,omitempty"`
	PlayerID string                `json:"playerId,omitempty"`
	Token    string                `json:"token,omitempty"`
	Got      *bool                 `json:"got,omitempty"`
	Message  string                `json:"message,omitempty"`
	State    *game.PlayerStateView `json:"state,omitempty"`
}

// session tracks which room and seat a single WebSocket connection is bound
// to. It is only touched from that connection's read loop.
type session struct {
	room     *game.Room
	playerID uuid.UUID
}

// FishWSHandler upgrades the HTTP connection to WebSocket and runs the message
// loop. Room membership is established in-band via create_room, join_room, or
// rejoin messages; when the loop exits the player is detached from their room.
func FishWSHandler(logger *logrus.Logger, srv *RoomServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"fish"},
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("WebSocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "fish" {
			logger.Warnf("Client connected with invalid subprotocol: %s", c.Subprotocol())
			c.Close(websocket.StatusCode(BadSubprotocolError), "Client must use the 'fish' subprotocol.")
			return
		}
		logger.Infof("WebSocket connection established from %s", r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		sess := &session{}
		readRoomMessages(ctx, c, srv, sess, logger)

		// Cleanup after the read loop exits: pre-game the seat is vacated,
		// mid-game the player is only flagged so hands and turn order survive.
		if sess.room != nil {
			srv.detachPlayer(sess.room, sess.playerID)
			logger.Infof("Player %s detached from room %s", sess.playerID, sess.room.Code)
		}
	}
}

// detachPlayer removes a pre-game player (deleting the room if it empties) or
// marks an in-game player disconnected.
func (srv *RoomServer) detachPlayer(room *game.Room, playerID uuid.UUID) {
	empty, err := room.RemovePlayer(playerID)
	if errors.Is(err, game.ErrRemoveAfterStart) {
		room.HandleDisconnect(playerID)
		return
	}
	if err == nil && empty {
		srv.Rooms.DeleteRoom(room.Code)
	}
}

// readRoomMessages continuously reads client messages, routes them onto the
// room core, and writes the per-action responses back. It exits on read error
// or context cancellation.
func readRoomMessages(ctx context.Context, c *websocket.Conn, srv *RoomServer, sess *session, logger *logrus.Logger) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Infof("WebSocket closed normally for player %s.", sess.playerID)
			} else if strings.Contains(err.Error(), "context canceled") {
				logger.Infof("WebSocket context canceled for player %s.", sess.playerID)
			} else {
				logger.Warnf("Error reading from WebSocket: %v (Status: %d)", err, status)
			}
			return
		}

		if msgType != websocket.MessageText {
			logger.Warnf("Received non-text message type %d. Ignoring.", msgType)
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Invalid JSON received: %v. Data: %s", err, string(data))
			sendWsError(ctx, c, "Invalid JSON format.")
			continue
		}

		logger.Debugf("Received message '%s' from player %s.", msg.Type, sess.playerID)

		switch msg.Type {
		case "create_room":
			srv.handleCreateRoom(ctx, c, sess, msg, logger)
		case "join_room":
			srv.handleJoinRoom(ctx, c, sess, msg, logger)
		case "rejoin":
			srv.handleRejoin(ctx, c, sess, msg, logger)
		case "start_game":
			if !requireRoom(ctx, c, sess) {
				continue
			}
			if err := sess.room.Start(); err != nil {
				sendWsError(ctx, c, err.Error())
			}
		case "action_ask":
			if !requireRoom(ctx, c, sess) {
				continue
			}
			got, err := sess.room.Ask(sess.playerID, msg.Target, msg.Card)
			if err != nil {
				sendWsError(ctx, c, err.Error())
				continue
			}
			sendWsMessage(ctx, c, ServerMessage{Type: "ask_result", Got: &got})
		case "action_pass":
			if !requireRoom(ctx, c, sess) {
				continue
			}
			if err := sess.room.Pass(sess.playerID, msg.Target); err != nil {
				sendWsError(ctx, c, err.Error())
			}
		case "action_claim":
			if !requireRoom(ctx, c, sess) {
				continue
			}
			result, err := sess.room.Claim(sess.playerID, msg.HalfSuit, msg.Assignments)
			if err != nil {
				sendWsError(ctx, c, err.Error())
				continue
			}
			sendWsMessage(ctx, c, ServerMessage{Type: "claim_result", Message: result})
		case "ping":
			sendWsMessage(ctx, c, ServerMessage{Type: "pong"})
		default:
			logger.Warnf("Unknown message type '%s' from player %s.", msg.Type, sess.playerID)
			sendWsError(ctx, c, fmt.Sprintf("Unknown message type: %s", msg.Type))
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (srv *RoomServer) handleCreateRoom(ctx context.Context, c *websocket.Conn, sess *session, msg ClientMessage, logger *logrus.Logger) {
	if sess.room != nil {
		sendWsError(ctx, c, "Already in a room.")
		return
	}
	if strings.TrimSpace(msg.Name) == "" {
		sendWsError(ctx, c, "Player name is required.")
		return
	}

	room := srv.Rooms.CreateRoom()
	room.PushStateFn = pushStateFunc(logger)

	p, err := room.AddPlayer(msg.Name, c)
	if err != nil {
		srv.Rooms.DeleteRoom(room.Code)
		sendWsError(ctx, c, err.Error())
		return
	}
	sess.room = room
	sess.playerID = p.ID

	logger.Infof("Player %s (%s) created room %s", p.ID, p.Name, room.Code)
	replyJoined(ctx, c, room.Code, p.ID, logger)
}

func (srv *RoomServer) handleJoinRoom(ctx context.Context, c *websocket.Conn, sess *session, msg ClientMessage, logger *logrus.Logger) {
	if sess.room != nil {
		sendWsError(ctx, c, "Already in a room.")
		return
	}
	if strings.TrimSpace(msg.Name) == "" {
		sendWsError(ctx, c, "Player name is required.")
		return
	}

	room, ok := srv.Rooms.GetRoom(msg.Room)
	if !ok {
		sendWsError(ctx, c, game.ErrRoomNotFound.Error())
		return
	}

	p, err := room.AddPlayer(msg.Name, c)
	if err != nil {
		sendWsError(ctx, c, err.Error())
		return
	}
	sess.room = room
	sess.playerID = p.ID

	logger.Infof("Player %s (%s) joined room %s", p.ID, p.Name, room.Code)
	replyJoined(ctx, c, room.Code, p.ID, logger)
}

func (srv *RoomServer) handleRejoin(ctx context.Context, c *websocket.Conn, sess *session, msg ClientMessage, logger *logrus.Logger) {
	if sess.room != nil {
		sendWsError(ctx, c, "Already in a room.")
		return
	}

	playerIDStr, roomCode, err := auth.AuthenticateRejoinToken(msg.Token)
	if err != nil {
		logger.Warnf("Rejected rejoin token: %v", err)
		sendWsError(ctx, c, "Invalid rejoin token.")
		return
	}
	playerID, err := uuid.Parse(playerIDStr)
	if err != nil {
		sendWsError(ctx, c, "Invalid rejoin token.")
		return
	}

	room, ok := srv.Rooms.GetRoom(roomCode)
	if !ok {
		sendWsError(ctx, c, game.ErrRoomNotFound.Error())
		return
	}
	p, err := room.HandleReconnect(playerID, c)
	if err != nil {
		sendWsError(ctx, c, err.Error())
		return
	}
	sess.room = room
	sess.playerID = p.ID

	logger.Infof("Player %s (%s) rejoined room %s", p.ID, p.Name, room.Code)
	replyJoined(ctx, c, room.Code, p.ID, logger)
}

// replyJoined sends the room_joined acknowledgement with a fresh rejoin token.
func replyJoined(ctx context.Context, c *websocket.Conn, roomCode string, playerID uuid.UUID, logger *logrus.Logger) {
	token, err := auth.CreateRejoinToken(playerID.String(), roomCode)
	if err != nil {
		logger.Errorf("Failed to mint rejoin token for player %s: %v", playerID, err)
	}
	sendWsMessage(ctx, c, ServerMessage{
		Type:     "room_joined",
		RoomCode: roomCode,
		PlayerID: playerID.String(),
		Token:    token,
	})
}

// requireRoom rejects action messages sent before the connection has joined a
// room.
func requireRoom(ctx context.Context, c *websocket.Conn, sess *session) bool {
	if sess.room == nil {
		sendWsError(ctx, c, "Join a room first.")
		return false
	}
	return true
}

// pushStateFunc returns a function suitable for Room.PushStateFn. It is
// invoked with the room lock held, so it must not call back into the room: it
// snapshots the connection, marshals the view, and writes asynchronously.
func pushStateFunc(logger *logrus.Logger) func(p *models.Player, view game.PlayerStateView) {
	return func(p *models.Player, view game.PlayerStateView) {
		conn := p.Conn
		if conn == nil {
			return
		}
		msgBytes, err := json.Marshal(ServerMessage{Type: "game_state", State: &view})
		if err != nil {
			logger.Errorf("Failed to marshal state view for player %s: %v", p.ID, err)
			return
		}
		go func(conn *websocket.Conn, data []byte, playerID uuid.UUID) {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				logger.Warnf("Failed to write state to player %s: %v", playerID, err)
			}
		}(conn, msgBytes, p.ID)
	}
}

// sendWsMessage marshals a message and sends it to the WebSocket client with a
// write timeout.
func sendWsMessage(ctx context.Context, c *websocket.Conn, message ServerMessage) {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		logrus.Errorf("Error marshaling WebSocket message: %v", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Write(writeCtx, websocket.MessageText, msgBytes); err != nil {
		status := websocket.CloseStatus(err)
		if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
			logrus.Warnf("Error writing WebSocket message: %v (Status: %d)", err, status)
		}
	}
}

// sendWsError sends a structured error message to the client.
func sendWsError(ctx context.Context, c *websocket.Conn, errorMsg string) {
	sendWsMessage(ctx, c, ServerMessage{Type: "error", Message: errorMsg})
}
