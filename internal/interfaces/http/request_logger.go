package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger registra cada petición con zerolog y deja un sublogger con el
// request id en el contexto de usuario; los casos de uso lo recuperan con log.Ctx.
// Se monta después del middleware requestid.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.GetRespHeader(fiber.HeaderXRequestID)
		l := log.Logger.With().Str("request_id", reqID).Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			// el ErrorHandler escribe la respuesta; el status queda fijado aquí
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = l.Error()
		case status >= fiber.StatusBadRequest:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición HTTP")
		return nil
	}
}
