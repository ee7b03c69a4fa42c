// Session HTTP handlers.
//
//   - GET /session          (full snapshot, weak ETag on revision and identity)
//   - GET /session/summary  (derived progress metrics)
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-study-session/internal/domain"
)

// SessionResponse is a consistent view of every aggregate at one revision.
type SessionResponse struct {
	Revision uint64          `json:"revision" example:"12"`
	Messages []domain.Message `json:"messages"`
	Tasks    []TaskView       `json:"tasks"`
	Decks    []DeckView       `json:"decks"`
	Summary  domain.Summary   `json:"summary"`
	Identity domain.Identity  `json:"identity"`
}

// sessionETag validates both the store revision and the identity, since the
// body carries both and identity changes do not bump the revision.
func sessionETag(rev uint64, id domain.Identity) string {
	who := "anon"
	switch {
	case id.Loading:
		who = "loading"
	case id.User != nil:
		who = id.User.ID
	}
	return `W/"session:` + strconv.FormatUint(rev, 10) + ":" + who + `"`
}

// GetSession godoc
// @ID          getSession
// @Summary     Get the whole study session
// @Description Returns conversation, plan, decks, summary and identity. Supports a weak ETag via If-None-Match and may return 304.
// @Tags        Session
// @Produce     json
//
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"  example(W/\"session:12:anon\")
//
// @Success     200  {object}  handlers.SessionResponse
// @Header      200  {string}  ETag  "Weak ETag for the current revision"
// @Success     304  {string}  string  "Not Modified"
// @Router      /session [get]
func (h *Handlers) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	ident := h.identity.Current()
	if inm := c.GetHeader("If-None-Match"); inm != "" {
		etag := sessionETag(h.session.Revision(), ident)
		if inm == etag {
			c.Header("ETag", etag)
			c.Status(http.StatusNotModified)
			return
		}
	}

	snap := h.session.Snapshot(ctx)
	msgs := snap.Messages
	if msgs == nil {
		msgs = []domain.Message{}
	}
	c.Header("ETag", sessionETag(snap.Revision, ident))
	ok(c, http.StatusOK, SessionResponse{
		Revision: snap.Revision,
		Messages: msgs,
		Tasks:    taskViews(snap.Tasks),
		Decks:    deckViews(snap.Decks),
		Summary:  snap.Summary,
		Identity: ident,
	})
}

// GetSummary godoc
// @ID          getSummary
// @Summary     Progress summary
// @Description Completion rate, task, card and message counts, recomputed on every call.
// @Tags        Session
// @Produce     json
// @Success     200  {object}  domain.Summary
// @Router      /session/summary [get]
func (h *Handlers) GetSummary(c *gin.Context) {
	ok(c, http.StatusOK, h.session.Summary(c.Request.Context()))
}
