// Deck HTTP handlers.
//
//   - GET  /decks            (all decks, creation order)
//   - POST /decks            (create by name)
//   - GET  /decks/search     (rank cards against ?q=, top ?k=)
//   - GET  /decks/:id        (one deck)
//   - POST /decks/:id/cards  (manual card)
//   - POST /decks/:id/notes  (import notes as draft cards)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-study-session/internal/search"
	"github.com/tbourn/go-study-session/internal/services"
	"github.com/tbourn/go-study-session/internal/utils"
)

// CreateDeckRequest is the JSON payload for a new deck.
type CreateDeckRequest struct {
	Name string `json:"name" example:"Biology - Cell structure"`
}

// AddCardRequest is the JSON payload for a manual card.
type AddCardRequest struct {
	Front string `json:"front" example:"What does the mitochondrion do?"`
	Back  string `json:"back" example:"Produces ATP through cellular respiration."`
}

// ImportNotesRequest carries free-text notes to turn into cards.
type ImportNotesRequest struct {
	Notes string `json:"notes" example:"The mitochondrion produces ATP. Ribosomes synthesize proteins."`
}

// ImportNotesResponse reports how many cards were appended and the deck
// afterwards.
type ImportNotesResponse struct {
	Added int      `json:"added" example:"2"`
	Deck  DeckView `json:"deck"`
}

// SearchResponse lists ranked cards.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

func (h *Handlers) decksResponse(c *gin.Context) DecksResponse {
	return DecksResponse{Decks: deckViews(h.session.Decks(c.Request.Context()))}
}

// ListDecks godoc
// @ID          listDecks
// @Summary     List decks
// @Tags        Decks
// @Produce     json
// @Success     200  {object}  handlers.DecksResponse
// @Router      /decks [get]
func (h *Handlers) ListDecks(c *gin.Context) {
	ok(c, http.StatusOK, h.decksResponse(c))
}

// CreateDeck godoc
// @ID          createDeck
// @Summary     Create a deck
// @Description Creates an empty deck (201). A blank name changes nothing and returns the deck list (200). Honours Idempotency-Key.
// @Tags        Decks
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                      false  "Optional idempotency key"
// @Param       body             body    handlers.CreateDeckRequest  true   "Deck name"
//
// @Success     201  {object}  handlers.DeckView
// @Success     200  {object}  handlers.DecksResponse  "Blank name, unchanged"
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /decks [post]
func (h *Handlers) CreateDeck(c *gin.Context) {
	var req CreateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	d, changed := h.session.CreateDeck(c.Request.Context(), req.Name)
	if !changed {
		ok(c, http.StatusOK, h.decksResponse(c))
		return
	}
	ok(c, http.StatusCreated, deckView(d))
}

// SearchCards godoc
// @ID          searchCards
// @Summary     Search cards across decks
// @Description Ranks cards by token overlap with q. The shared back text of imported cards is not searched.
// @Tags        Decks
// @Produce     json
//
// @Param       q  query  string  true   "Query text"
// @Param       k  query  int     false  "Maximum results"  minimum(1) maximum(50) default(5)
//
// @Success     200  {object}  handlers.SearchResponse
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /decks/search [get]
func (h *Handlers) SearchCards(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query parameter q is required")
		return
	}
	k := min(utils.AtoiDefault(c.Query("k"), 0), 50)
	ok(c, http.StatusOK, SearchResponse{
		Query:   q,
		Results: h.session.SearchCards(c.Request.Context(), q, k),
	})
}

// GetDeck godoc
// @ID          getDeck
// @Summary     Get a deck
// @Tags        Decks
// @Produce     json
// @Param       id  path  string  true  "Deck ID"
// @Success     200  {object}  handlers.DeckView
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /decks/{id} [get]
func (h *Handlers) GetDeck(c *gin.Context) {
	d, err := h.session.Deck(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrDeckNotFound) {
			fail(c, http.StatusNotFound, ErrCodeDeckNotFound, "deck not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load deck")
		return
	}
	ok(c, http.StatusOK, deckView(d))
}

// AddCard godoc
// @ID          addCard
// @Summary     Add a card to a deck
// @Description Appends a card (201). Blank front or back, or an unknown deck, changes nothing and returns the deck list (200). Honours Idempotency-Key.
// @Tags        Decks
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                   false  "Optional idempotency key"
// @Param       id               path    string                   true   "Deck ID"
// @Param       body             body    handlers.AddCardRequest  true   "Card"
//
// @Success     201  {object}  domain.Flashcard
// @Success     200  {object}  handlers.DecksResponse  "Nothing appended"
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /decks/{id}/cards [post]
func (h *Handlers) AddCard(c *gin.Context) {
	var req AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	card, changed := h.session.AddCard(c.Request.Context(), c.Param("id"), req.Front, req.Back)
	if !changed {
		ok(c, http.StatusOK, h.decksResponse(c))
		return
	}
	ok(c, http.StatusCreated, card)
}

// ImportNotes godoc
// @ID          importNotes
// @Summary     Turn notes into cards
// @Description Splits notes into sentences, keeps up to 8 longer than 10 characters and appends them as cards (201). When nothing qualifies or the deck is unknown, returns the deck list (200). Honours Idempotency-Key.
// @Tags        Decks
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                       false  "Optional idempotency key"
// @Param       id               path    string                       true   "Deck ID"
// @Param       body             body    handlers.ImportNotesRequest  true   "Notes"
//
// @Success     201  {object}  handlers.ImportNotesResponse
// @Success     200  {object}  handlers.DecksResponse  "Nothing appended"
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /decks/{id}/notes [post]
func (h *Handlers) ImportNotes(c *gin.Context) {
	var req ImportNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	n := h.session.ImportNotes(ctx, id, req.Notes)
	if n == 0 {
		ok(c, http.StatusOK, h.decksResponse(c))
		return
	}
	d, err := h.session.Deck(ctx, id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load deck")
		return
	}
	ok(c, http.StatusCreated, ImportNotesResponse{Added: n, Deck: deckView(d)})
}
