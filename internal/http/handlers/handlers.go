// Package handlers exposes the study session and the identity adapter as a
// JSON API for a browser front end.
//
// Handlers are transport-thin: they decode input, call the session facade or
// the identity service, and translate results into HTTP responses. Blank or
// dangling input is not an error here: the facade ignores it and the handler
// answers 200 with the unchanged aggregate, while an effective append answers
// 201 with the new entity.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-study-session/internal/domain"
	"github.com/tbourn/go-study-session/internal/search"
	"github.com/tbourn/go-study-session/internal/utils"
)

//
// Service contracts (context-aware)
//

// SessionService is the facade surface the handlers consume.
type SessionService interface {
	NewSession(ctx context.Context) []domain.Message
	SendMessage(ctx context.Context, text string) ([]domain.Message, bool)
	Messages(ctx context.Context, page, pageSize int) ([]domain.Message, int)

	GeneratePlan(ctx context.Context) []domain.PlanTask
	AdvanceTask(ctx context.Context, id string) ([]domain.PlanTask, bool)
	Tasks(ctx context.Context) []domain.PlanTask

	CreateDeck(ctx context.Context, name string) (domain.Deck, bool)
	AddCard(ctx context.Context, deckID, front, back string) (domain.Flashcard, bool)
	ImportNotes(ctx context.Context, deckID, text string) int
	Decks(ctx context.Context) []domain.Deck
	Deck(ctx context.Context, id string) (domain.Deck, error)
	SearchCards(ctx context.Context, query string, k int) []search.Result

	Summary(ctx context.Context) domain.Summary
	Snapshot(ctx context.Context) domain.Snapshot
	Revision() uint64
}

// IdentityService is the identity adapter surface the handlers consume.
// Errors returned by the three operations are category errors whose message
// is safe to show.
type IdentityService interface {
	Current() domain.Identity
	SignIn(ctx context.Context, email, password string) (*domain.User, error)
	SignUp(ctx context.Context, email, password string) (*domain.User, error)
	SignOut(ctx context.Context) error
}

//
// Handler wiring
//

// Handlers groups the session and auth endpoints.
type Handlers struct {
	session  SessionService
	identity IdentityService
}

// New constructs Handlers bound to the given services.
func New(session SessionService, identity IdentityService) *Handlers {
	return &Handlers{session: session, identity: identity}
}

//
// Shared DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// DecksResponse is the deck collection, returned by the deck list and by
// deck mutations that changed nothing.
type DecksResponse struct {
	Decks []DeckView `json:"decks"`
}

// DeckView is a deck with its display label.
type DeckView struct {
	domain.Deck
	CardCountLabel string `json:"card_count_label" example:"3 cards"`
}

// TaskView is a plan task with its display label.
type TaskView struct {
	domain.PlanTask
	StatusLabel string `json:"status_label" example:"Planned"`
}

// PlanResponse is the current plan and the progress summary derived from it.
type PlanResponse struct {
	Tasks   []TaskView     `json:"tasks"`
	Summary domain.Summary `json:"summary"`
}

func deckView(d domain.Deck) DeckView {
	if d.Cards == nil {
		d.Cards = []domain.Flashcard{}
	}
	return DeckView{Deck: d, CardCountLabel: d.CardCountLabel()}
}

func deckViews(decks []domain.Deck) []DeckView {
	out := make([]DeckView, 0, len(decks))
	for _, d := range decks {
		out = append(out, deckView(d))
	}
	return out
}

func taskViews(tasks []domain.PlanTask) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskView{PlanTask: t, StatusLabel: t.Status.Label()})
	}
	return out
}

// clampPagination parses page and page_size with the same bounds the facade
// applies, so the reported metadata matches the returned slice.
func clampPagination(c *gin.Context) (page, pageSize int) {
	return utils.PageParams(c.Query("page"), c.Query("page_size"), 50, 200)
}

func paginate(page, pageSize, total int) Pagination {
	totalPages := (total + pageSize - 1) / pageSize
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}
