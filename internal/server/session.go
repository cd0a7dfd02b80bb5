package server

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	apperrors "github.com/reviewpulse/reviewpulse/internal/errors"
)

const (
	sessionName   = "reviewpulse_session"
	sessionUIDKey = "uid"
)

// requireIdentity resolves a stable identity key for the requester from the
// cookie session, creating one on first contact. Full account authentication
// is handled upstream; the submission pipeline only needs a stable key to
// rate-limit against and attribute reviews to.
func (s *Server) requireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), sessionName)
		if err != nil {
			// Tampered or stale cookie: fall through with a fresh session.
			slog.Debug("Recreating session", "error", err)
		}

		var userID uuid.UUID
		if raw, ok := session.Values[sessionUIDKey].(string); ok {
			userID, err = uuid.Parse(raw)
			if err != nil {
				userID = uuid.Nil
			}
		}

		if userID == uuid.Nil {
			userID = uuid.New()
			session.Values[sessionUIDKey] = userID.String()
			if err := session.Save(c.Request(), c.Response()); err != nil {
				return apperrors.InternalError("failed to save session", err)
			}
		}

		c.Set("userID", userID)
		return next(c)
	}
}
