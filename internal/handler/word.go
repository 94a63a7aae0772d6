package handler

import (
	"fmt"
	"strings"

	"flashcards/internal/domain"
	"flashcards/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const idleHintText = "🤔 Pick an action first. To add a pair, tap \"Add new words\"."

// handleAddWords starts the add flow
func (h *Handler) handleAddWords(c tele.Context) error {
	userID := c.Sender().ID

	h.EndSession(userID)
	h.SetState(userID, &domain.StateData{State: domain.StateWaitingFront})

	return h.show(c, "✍️ Please enter text for face one:", cancelMarkup())
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	return h.show(c, mainMenuText, mainMenuMarkup())
}

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore unknown commands
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingBack:
		return h.submitPair(c, state.PendingFront, text)

	case domain.StateDeleting:
		return h.deleteByFace(c, text)

	case domain.StateWaitingFront:
		h.SetState(userID, &domain.StateData{
			State:        domain.StateWaitingBack,
			PendingFront: text,
		})

		return c.Send("✍️ Please enter text for face two:", cancelMarkup())

	default:
		// Free text outside a flow is not a pair
		return c.Send(idleHintText+"\n\n"+mainMenuText, mainMenuMarkup())
	}
}

// submitPair saves the pending pair and waits for the next one
func (h *Handler) submitPair(c tele.Context, front, back string) error {
	userID := c.Sender().ID

	result, err := h.editor.SubmitAdd(front, back)
	if err != nil {
		h.logger.Error("Failed to save word pair",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingFront})
		return c.Send("Could not save the pair. Please try again.", cancelMarkup())
	}

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingFront})

	if !result.Accepted {
		return c.Send(rejectionText(result), cancelMarkup())
	}

	h.discardSessions()

	return c.Send(
		fmt.Sprintf("✅ Saved! Your deck has %d pairs.\n\nSend the next face one or go back to /start", h.store.Len()),
		cancelMarkup(),
	)
}

// rejectionText explains a refused edit
func rejectionText(result service.Result) string {
	switch result.Reason {
	case service.ReasonEmptyField:
		return "⚠️ Both faces need some text. Please enter text for face one:"
	case service.ReasonNoSelection:
		return "⚠️ Please pick a pair first."
	default:
		return "⚠️ " + result.Reason
	}
}
