// Package httpapi serves game sessions over REST and websockets.
package httpapi

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/oracle"
	"github.com/lgbarn/chessrules-go/internal/session"
)

// autoPlayLimit bounds the oracle replies made on behalf of one request.
const autoPlayLimit = 1

// Server wires the session manager to a fiber app.
type Server struct {
	app      *fiber.App
	cfg      *config.Config
	sessions *session.Manager
	oracle   oracle.Oracle
	hub      *hub
	logger   *log.Logger
}

// New builds the app and registers its routes. The oracle may be nil, in
// which case automated sides and oracle moves fail with 504.
func New(cfg *config.Config, sessions *session.Manager, o oracle.Oracle) *Server {
	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		oracle:   o,
		hub:      newHub(),
		logger:   cfg.Logger("http: "),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	if cfg.Verbosity >= 2 {
		s.app.Use(func(c *fiber.Ctx) error {
			s.logger.Printf("%s %s", c.Method(), c.Path())
			return c.Next()
		})
	}

	s.app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	s.app.Get("/ws/games/:id", websocket.New(s.handleSocket, websocket.Config{
		Origins: splitOrigins(cfg.Server.AllowOrigins),
	}))

	api := s.app.Group("/api")
	games := api.Group("/games")
	games.Post("/", s.createGame)
	games.Get("/", s.listGames)
	games.Get("/:id", s.getGame)
	games.Delete("/:id", s.deleteGame)
	games.Post("/:id/moves", s.postMove)
	games.Get("/:id/moves", s.getMoves)
	games.Post("/:id/undo", s.postUndo)
	games.Post("/:id/oracle", s.postOracle)

	return s
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured address until Shutdown.
func (s *Server) Listen() error {
	s.logger.Printf("listening on %s", s.cfg.Server.ListenAddr)
	return s.app.Listen(s.cfg.Server.ListenAddr)
}

// Shutdown stops the server, waiting for active requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// autoPlay lets the oracle answer for an automated side. Its failure is
// reported alongside the state rather than undoing the caller's move.
func (s *Server) autoPlay(ctx context.Context, sess *session.Session) string {
	if _, err := sess.AutoPlay(ctx, autoPlayLimit); err != nil {
		s.logger.Printf("%s: auto play: %v", sess.Name, err)
		return err.Error()
	}
	return ""
}

// publish sends the session state to its websocket watchers.
func (s *Server) publish(sess *session.Session, resp gameResponse) {
	if failed := s.hub.broadcast(sess.ID, newMessage(MessageTypeState, resp)); failed > 0 {
		s.logger.Printf("%s: %d watcher(s) unreachable", sess.Name, failed)
	}
}
