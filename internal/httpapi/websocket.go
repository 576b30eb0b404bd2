package httpapi

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessrules-go/internal/session"
)

// handleSocket attaches a websocket to a session. The current state is sent
// on connect; afterwards every change to the session is pushed, and the
// client may send move, undo, oracle and state messages.
func (s *Server) handleSocket(conn *websocket.Conn) {
	id := conn.Params("id")
	cl := &client{conn: conn}

	sess, err := s.sessions.Get(id)
	if err != nil {
		_ = cl.send(newMessage(MessageTypeError, newErrorBody(err)))
		_ = conn.Close()
		return
	}

	s.hub.join(id, cl)
	defer s.hub.leave(id, cl)
	s.logger.Printf("%s: watcher connected", sess.Name)

	if err := cl.send(newMessage(MessageTypeState, gameResponse{StateDocument: sess.State()})); err != nil {
		return
	}

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Printf("%s: watcher gone: %v", sess.Name, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = cl.send(newMessage(MessageTypeError, errorBody{Error: err.Error(), Status: 400}))
			continue
		}
		reply, ok := s.handleMessage(context.Background(), sess, msg)
		// Successful changes reach this client through the broadcast.
		if !ok {
			if err := cl.send(reply); err != nil {
				return
			}
		}
	}
}

// handleMessage performs one client request. ok is true when the session
// changed and the new state has already been broadcast; otherwise reply is
// meant for the requesting client alone.
func (s *Server) handleMessage(ctx context.Context, sess *session.Session, msg Message) (reply Message, ok bool) {
	var (
		resp gameResponse
		err  error
	)
	switch msg.Type {
	case MessageTypeMove:
		var p movePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return newMessage(MessageTypeError, errorBody{Error: err.Error(), Status: 400}), false
		}
		resp, err = s.move(ctx, sess, p.Move)
	case MessageTypeUndo:
		resp, err = s.undo(sess)
	case MessageTypeOracle:
		resp, err = s.playOracle(ctx, sess)
	case MessageTypeState:
		return newMessage(MessageTypeState, gameResponse{StateDocument: sess.State()}), false
	default:
		return newMessage(MessageTypeError, errorBody{
			Error:  fmt.Sprintf("unknown message type %q", msg.Type),
			Status: 400,
		}), false
	}

	if err != nil {
		return newMessage(MessageTypeError, newErrorBody(err)), false
	}
	return newMessage(MessageTypeState, resp), true
}
