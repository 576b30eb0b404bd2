package httpapi

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/output"
	"github.com/lgbarn/chessrules-go/internal/session"
)

// gameResponse is a state document plus any failure of the oracle reply
// that followed the request.
type gameResponse struct {
	output.StateDocument
	OracleError string `json:"oracleError,omitempty"`
}

type createRequest struct {
	FEN       string `json:"fen"`
	AutoWhite *bool  `json:"autoWhite"`
	AutoBlack *bool  `json:"autoBlack"`
}

type movesResponse struct {
	From         string   `json:"from,omitempty"`
	Destinations []string `json:"destinations,omitempty"`
	Moves        []string `json:"moves,omitempty"`
}

func splitOrigins(list string) []string {
	parts := strings.Split(list, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (s *Server) lookup(c *fiber.Ctx) (*session.Session, error) {
	return s.sessions.Get(c.Params("id"))
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req createRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	opts := session.Options{
		FEN:          s.cfg.Game.StartFEN,
		HistoryLimit: s.cfg.Game.HistoryLimit,
		AutoWhite:    s.cfg.Game.AutoWhite,
		AutoBlack:    s.cfg.Game.AutoBlack,
		Oracle:       s.oracle,
		Logger:       s.logger,
	}
	if req.FEN != "" {
		opts.FEN = req.FEN
	}
	if req.AutoWhite != nil {
		opts.AutoWhite = *req.AutoWhite
	}
	if req.AutoBlack != nil {
		opts.AutoBlack = *req.AutoBlack
	}

	sess, err := s.sessions.Create(opts)
	if err != nil {
		return err
	}
	resp := gameResponse{OracleError: s.autoPlay(c.UserContext(), sess)}
	resp.StateDocument = sess.State()
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (s *Server) listGames(c *fiber.Ctx) error {
	list := s.sessions.List()
	docs := make([]output.StateDocument, len(list))
	for i, sess := range list {
		docs[i] = sess.State()
	}
	return c.JSON(docs)
}

func (s *Server) getGame(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(gameResponse{StateDocument: sess.State()})
}

func (s *Server) deleteGame(c *fiber.Ctx) error {
	if err := s.sessions.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) postMove(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	var req movePayload
	if err := c.BodyParser(&req); err != nil {
		return errors.Wrap(errors.ErrInvalidMoveText, err.Error())
	}
	resp, err := s.move(c.UserContext(), sess, req.Move)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *Server) getMoves(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	from := c.Query("from")
	if from == "" {
		return c.JSON(movesResponse{Moves: sess.State().LegalMoves})
	}
	sq, err := chess.ParseSquare(from)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidMoveText, err.Error())
	}
	dests := sess.LegalDestinations(sq)
	resp := movesResponse{From: sq.String(), Destinations: make([]string, len(dests))}
	for i, d := range dests {
		resp.Destinations[i] = d.String()
	}
	return c.JSON(resp)
}

func (s *Server) postUndo(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	resp, err := s.undo(sess)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (s *Server) postOracle(c *fiber.Ctx) error {
	sess, err := s.lookup(c)
	if err != nil {
		return err
	}
	resp, err := s.playOracle(c.UserContext(), sess)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// move, undo and playOracle are shared by the REST and websocket
// handlers. Each publishes the new state on success.

func (s *Server) move(ctx context.Context, sess *session.Session, text string) (gameResponse, error) {
	if _, err := sess.Move(text); err != nil {
		return gameResponse{}, err
	}
	resp := gameResponse{OracleError: s.autoPlay(ctx, sess)}
	resp.StateDocument = sess.State()
	s.publish(sess, resp)
	return resp, nil
}

func (s *Server) undo(sess *session.Session) (gameResponse, error) {
	doc, err := sess.Undo()
	if err != nil {
		return gameResponse{}, err
	}
	resp := gameResponse{StateDocument: doc}
	s.publish(sess, resp)
	return resp, nil
}

func (s *Server) playOracle(ctx context.Context, sess *session.Session) (gameResponse, error) {
	if _, err := sess.PlayOracle(ctx); err != nil {
		return gameResponse{}, err
	}
	resp := gameResponse{OracleError: s.autoPlay(ctx, sess)}
	resp.StateDocument = sess.State()
	s.publish(sess, resp)
	return resp, nil
}
