package middleware

import (
	"strings"

	"flashcards/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const passwordPrompt = "Hi! This deck is private. Please enter the password:"

// AuthMiddleware creates authentication middleware.
// Unauthorized users may only send the password; granted is invoked once it matches.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger, granted tele.HandlerFunc) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			if authService.IsAuthorized(sender.ID) {
				return next(c)
			}

			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: passwordPrompt, ShowAlert: true})
			}

			if authService.CheckPassword(strings.TrimSpace(c.Text())) {
				authService.AuthorizeUser(sender.ID)
				logger.Info("User authorized", zap.Int64("user_id", sender.ID))
				return granted(c)
			}

			if c.Text() != "" && c.Text() != "/start" {
				logger.Warn("Rejected password attempt", zap.Int64("user_id", sender.ID))
				return c.Send("Wrong password")
			}
			return c.Send(passwordPrompt)
		}
	}
}
