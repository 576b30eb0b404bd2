package httpapi

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// statusCodes maps domain errors to HTTP status codes. The first match wins.
var statusCodes = []struct {
	err  error
	code int
}{
	{errors.ErrSessionNotFound, fiber.StatusNotFound},
	{errors.ErrOracleUnresponsive, fiber.StatusGatewayTimeout},
	{errors.ErrOracleProtocol, fiber.StatusBadGateway},
	{errors.ErrGameOver, fiber.StatusConflict},
	{errors.ErrPromotionRequired, fiber.StatusConflict},
	{errors.ErrAutomatedTurn, fiber.StatusConflict},
	{errors.ErrHistoryEmpty, fiber.StatusConflict},
	{errors.ErrIllegalMove, fiber.StatusBadRequest},
	{errors.ErrWrongSide, fiber.StatusBadRequest},
	{errors.ErrNoPiece, fiber.StatusBadRequest},
	{errors.ErrInvalidPromotion, fiber.StatusBadRequest},
	{errors.ErrInvalidMoveText, fiber.StatusBadRequest},
	{errors.ErrInvalidPosition, fiber.StatusBadRequest},
}

// StatusCode returns the HTTP status for err.
func StatusCode(err error) int {
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		return fe.Code
	}
	for _, sc := range statusCodes {
		if stderrors.Is(err, sc.err) {
			return sc.code
		}
	}
	return fiber.StatusInternalServerError
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func newErrorBody(err error) errorBody {
	return errorBody{Error: err.Error(), Status: StatusCode(err)}
}

// errorHandler is installed as the app's fiber.Config.ErrorHandler so
// handlers can simply return domain errors.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	body := newErrorBody(err)
	if body.Status >= fiber.StatusInternalServerError {
		s.logger.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(body.Status).JSON(body)
}
