package handler

import (
	"errors"
	"fmt"

	"flashcards/internal/domain"
	"flashcards/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	emptyDeckText = "Your deck is empty. Add some words first."
	noSessionText = "No active study session. Start one from the main menu."
)

// handleStudy starts a study session over a fresh snapshot of the deck
func (h *Handler) handleStudy(c tele.Context) error {
	userID := c.Sender().ID

	session, err := service.StartSession(h.store.Snapshot())
	if errors.Is(err, domain.ErrEmptyDeck) {
		return h.alert(c, emptyDeckText)
	}
	if err != nil {
		h.logger.Error("Failed to start study session", zap.Error(err))
		return h.alert(c, "Could not start a study session")
	}

	h.ResetState(userID)
	h.SetSession(userID, session)

	_, total := session.Progress()
	h.logger.Info("Study session started",
		zap.Int64("user_id", userID),
		zap.Int("cards", total),
	)

	return h.showCard(c, session)
}

// handleReveal shows the hidden side of the current card
func (h *Handler) handleReveal(c tele.Context) error {
	session := h.GetSession(c.Sender().ID)
	if session == nil {
		return h.alert(c, noSessionText)
	}

	session.Reveal()
	return h.showCard(c, session)
}

// handleNext moves to the next card or finishes the session
func (h *Handler) handleNext(c tele.Context) error {
	userID := c.Sender().ID

	session := h.GetSession(userID)
	if session == nil {
		return h.alert(c, noSessionText)
	}

	if session.Advance() == service.PhaseEnded {
		h.EndSession(userID)
		h.logger.Info("Study session finished", zap.Int64("user_id", userID))
		return h.show(c, "🎉 Session finished!\n\n"+mainMenuText, mainMenuMarkup())
	}

	return h.showCard(c, session)
}

func (h *Handler) showCard(c tele.Context, session *service.StudySession) error {
	text, err := renderCard(session)
	if err != nil {
		return h.alert(c, noSessionText)
	}
	return h.show(c, text, cardMarkup())
}

// renderCard returns the message text for the current card
func renderCard(session *service.StudySession) (string, error) {
	facing, revealed, err := session.Current()
	if err != nil {
		return "", err
	}

	current, total := session.Progress()
	return fmt.Sprintf("🃏 Card %d of %d\n\n%s", current, total, facing.Text(revealed)), nil
}

// cardMarkup returns the keyboard shown under a card
func cardMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnReveal, btnNext),
		markup.Row(btnMainMenu),
	)
	return markup
}
