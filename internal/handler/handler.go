package handler

import (
	"sync"

	"flashcards/internal/domain"
	"flashcards/internal/middleware"
	"flashcards/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot         *tele.Bot
	authService *service.AuthService
	store       *service.VocabularyStore
	editor      *service.DeckEditor
	logger      *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	sessions map[int64]*service.StudySession
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	store *service.VocabularyStore,
	editor *service.DeckEditor,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:         bot,
		authService: authService,
		store:       store,
		editor:      editor,
		logger:      logger,
		states:      make(map[int64]*domain.StateData),
		sessions:    make(map[int64]*service.StudySession),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.AuthMiddleware(h.authService, h.logger, h.handleStart))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/study", h.handleStudy)
	h.bot.Handle("/add", h.handleAddWords)
	h.bot.Handle("/delete", h.handleDeleteWords)
	h.bot.Handle("/cancel", h.handleCancel)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnStudy, h.handleStudy)
	h.bot.Handle(&btnAddWords, h.handleAddWords)
	h.bot.Handle(&btnDeleteWords, h.handleDeleteWords)
	h.bot.Handle(&btnReveal, h.handleReveal)
	h.bot.Handle(&btnNext, h.handleNext)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnMainMenu, h.handleStart)
	h.bot.Handle(&btnDeleteChoice, h.handleDeleteChoice)
	h.bot.Handle(&btnDeletePage, h.handleDeletePage)

	// Generic callback handler for stale or unknown buttons
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// GetSession returns user's live study session, if any
func (h *Handler) GetSession(userID int64) *service.StudySession {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()
	return h.sessions[userID]
}

// SetSession replaces user's study session
func (h *Handler) SetSession(userID int64, session *service.StudySession) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.sessions[userID] = session
}

// EndSession drops user's study session
func (h *Handler) EndSession(userID int64) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	delete(h.sessions, userID)
}

// discardSessions drops every live session after the deck was edited;
// the next study session is built from a fresh snapshot
func (h *Handler) discardSessions() {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	if len(h.sessions) > 0 {
		h.logger.Info("Discarding study sessions after deck edit", zap.Int("sessions", len(h.sessions)))
	}
	h.sessions = make(map[int64]*service.StudySession)
}

// Inline keyboard buttons
var (
	btnStudy = tele.Btn{
		Unique: "study",
		Text:   "📚 Start study session",
	}
	btnAddWords = tele.Btn{
		Unique: "add_words",
		Text:   "➕ Add new words",
	}
	btnDeleteWords = tele.Btn{
		Unique: "delete_words",
		Text:   "🗑 Delete words",
	}
	btnReveal = tele.Btn{
		Unique: "reveal",
		Text:   "👀 Show answer",
	}
	btnNext = tele.Btn{
		Unique: "next",
		Text:   "➡️ Next card",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}

	// Dynamic buttons, payload carries a pair reference or a page number
	btnDeleteChoice = tele.Btn{Unique: "del"}
	btnDeletePage   = tele.Btn{Unique: "dpage"}
)

const mainMenuText = "🏠 Main menu\n\nChoose what you would like to do:"

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnAddWords, btnStudy),
		menu.Row(btnDeleteWords),
	)
	return menu
}

// cancelMarkup returns a keyboard with a single cancel button
func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
