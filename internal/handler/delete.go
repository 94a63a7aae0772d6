package handler

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"flashcards/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	deletePageSize  = 8
	staleChoiceText = "⚠️ That pair no longer exists."
)

// paginate returns the [start, end) window of page, the page itself clamped
// to the valid range, and the page count
func paginate(total, page, size int) (start, end, current, pages int) {
	pages = (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}
	current = page
	if current < 1 {
		current = 1
	}
	if current > pages {
		current = pages
	}

	start = (current - 1) * size
	end = start + size
	if end > total {
		end = total
	}
	return start, end, current, pages
}

// selectionKey fingerprints a pair so a button still names it after the deck shifts
func selectionKey(s domain.Selection) string {
	sum := md5.Sum([]byte(s.Front + "\x00" + s.Back))
	return hex.EncodeToString(sum[:4])
}

// choiceData encodes a delete button payload as "<index>:<key>"
func choiceData(index int, s domain.Selection) string {
	return strconv.Itoa(index) + ":" + selectionKey(s)
}

// parseChoiceData splits a delete button payload
func parseChoiceData(data string) (int, string, error) {
	raw, key, found := strings.Cut(data, ":")
	if !found || key == "" {
		return 0, "", fmt.Errorf("malformed selection %q", data)
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "", fmt.Errorf("malformed selection %q: %w", data, err)
	}
	return index, key, nil
}

// locateChoice finds the tapped pair in the current deck. The recorded index is
// tried first; if the deck changed since the picker was drawn, the first pair
// with the same key is used instead.
func locateChoice(selections []domain.Selection, index int, key string) (int, bool) {
	if index >= 0 && index < len(selections) && selectionKey(selections[index]) == key {
		return index, true
	}
	for i, s := range selections {
		if selectionKey(s) == key {
			return i, true
		}
	}
	return 0, false
}

// handleDeleteWords opens the delete picker on its first page
func (h *Handler) handleDeleteWords(c tele.Context) error {
	h.EndSession(c.Sender().ID)
	return h.showDeletePage(c, 1, "")
}

// handleDeletePage handles page navigation in the delete picker
func (h *Handler) handleDeletePage(c tele.Context) error {
	page, err := strconv.Atoi(cleanCallbackData(c.Data()))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showDeletePage(c, page, "")
}

// handleDeleteChoice deletes the tapped pair
func (h *Handler) handleDeleteChoice(c tele.Context) error {
	index, key, err := parseChoiceData(cleanCallbackData(c.Data()))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid selection"})
	}

	selections := h.editor.ListSelectable()
	position, ok := locateChoice(selections, index, key)
	if !ok {
		h.logger.Info("Delete picker out of date",
			zap.Int64("user_id", c.Sender().ID),
			zap.Int("index", index),
		)
		return h.showDeletePage(c, index/deletePageSize+1, staleChoiceText)
	}

	chosen := selections[position]
	notice, err := h.deletePair(c, chosen.Front, chosen.Back)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Could not delete the pair"})
	}

	return h.showDeletePage(c, position/deletePageSize+1, notice)
}

// deleteByFace resolves a typed face to its pair, trying the front side first
func (h *Handler) deleteByFace(c tele.Context, value string) error {
	front, back := value, ""
	if opposite, ok := h.editor.ResolvePair(domain.SideFront, value); ok {
		back = opposite
	} else if opposite, ok := h.editor.ResolvePair(domain.SideBack, value); ok {
		front, back = opposite, value
	} else {
		return c.Send(fmt.Sprintf("No pair has %q on either face.", value), cancelMarkup())
	}

	notice, err := h.deletePair(c, front, back)
	if err != nil {
		return c.Send("Could not delete the pair. Please try again.", cancelMarkup())
	}
	return h.showDeletePage(c, 1, notice)
}

// deletePair removes every row matching the pair and describes the outcome
func (h *Handler) deletePair(c tele.Context, front, back string) (string, error) {
	userID := c.Sender().ID

	result, err := h.editor.SubmitDelete(front, back)
	if err != nil {
		h.logger.Error("Failed to delete word pair",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return "", err
	}
	if !result.Accepted {
		return rejectionText(result), nil
	}

	h.discardSessions()

	h.logger.Info("Word pair deleted by user",
		zap.Int64("user_id", userID),
		zap.String("front", front),
		zap.String("back", back),
		zap.Int("removed", result.Removed),
	)
	return fmt.Sprintf("🗑 Deleted %q — %q (%d rows).", front, back, result.Removed), nil
}

// showDeletePage lists one page of pairs as buttons
func (h *Handler) showDeletePage(c tele.Context, page int, notice string) error {
	userID := c.Sender().ID

	selections := h.editor.ListSelectable()
	if len(selections) == 0 {
		h.ResetState(userID)
		if notice != "" {
			return h.show(c, notice+"\n\nYour deck is now empty.\n\n"+mainMenuText, mainMenuMarkup())
		}
		return h.alert(c, emptyDeckText)
	}

	h.SetState(userID, &domain.StateData{State: domain.StateDeleting})

	start, end, page, pages := paginate(len(selections), page, deletePageSize)

	text := "🗑 Tap a pair to delete it, or send one of its faces:"
	if notice != "" {
		text = notice + "\n\n" + text
	}

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for i := start; i < end; i++ {
		s := selections[i]
		btn := markup.Data(fmt.Sprintf("%s — %s", s.Front, s.Back), btnDeleteChoice.Unique, choiceData(i, s))
		rows = append(rows, markup.Row(btn))
	}

	// Add pagination buttons
	if pages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", btnDeletePage.Unique, strconv.Itoa(page-1)))
		}
		if page < pages {
			navRow = append(navRow, markup.Data("➡️", btnDeletePage.Unique, strconv.Itoa(page+1)))
		}
		rows = append(rows, navRow)
	}

	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.show(c, text, markup)
}
