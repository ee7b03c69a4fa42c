// Conversation HTTP handlers.
//
//   - POST /conversation/reset     (new session: reseed with the greeting)
//   - GET  /conversation/messages  (paginated, chronological)
//   - POST /conversation/messages  (user turn + tutor reply)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-study-session/internal/domain"
)

// SendMessageRequest is the JSON payload for a user turn.
type SendMessageRequest struct {
	// Text is trimmed; blank text is ignored.
	Text string `json:"text" example:"I want to review chapter 3 of organic chemistry"`
}

// ConversationResponse is the whole conversation.
type ConversationResponse struct {
	Messages []domain.Message `json:"messages"`
	Changed  bool             `json:"changed"`
}

// ListMessagesResponse is one page of the conversation.
type ListMessagesResponse struct {
	Messages   []domain.Message `json:"messages"`
	Pagination Pagination       `json:"pagination"`
}

// ResetConversation godoc
// @ID          resetConversation
// @Summary     Start a new session
// @Description Replaces the conversation with a single fresh tutor greeting.
// @Tags        Conversation
// @Produce     json
// @Success     200  {object}  handlers.ConversationResponse
// @Router      /conversation/reset [post]
func (h *Handlers) ResetConversation(c *gin.Context) {
	msgs := h.session.NewSession(c.Request.Context())
	ok(c, http.StatusOK, ConversationResponse{Messages: msgs, Changed: true})
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List conversation messages (paginated)
// @Tags        Conversation
// @Produce     json
//
// @Param       page       query  int  false  "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false  "Items per page"  minimum(1) maximum(200) default(50)
//
// @Success     200  {object}  handlers.ListMessagesResponse
// @Router      /conversation/messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	page, pageSize := clampPagination(c)
	msgs, total := h.session.Messages(c.Request.Context(), page, pageSize)
	if msgs == nil {
		msgs = []domain.Message{}
	}
	ok(c, http.StatusOK, ListMessagesResponse{
		Messages:   msgs,
		Pagination: paginate(page, pageSize, total),
	})
}

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send a message to the tutor
// @Description Appends the user turn and the tutor reply (201). Blank text changes nothing (200). Honours Idempotency-Key.
// @Tags        Conversation
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                       false  "Optional idempotency key"  example(2b2f7f0e-1c1d-4a1a-9d0b-6e8f0b7b8f8a)
// @Param       body             body    handlers.SendMessageRequest  true   "User turn"
//
// @Success     201  {object}  handlers.ConversationResponse  "Turn appended"
// @Success     200  {object}  handlers.ConversationResponse  "Blank text, unchanged"
// @Failure     400  {object}  handlers.ErrorResponse         "Bad request"
// @Router      /conversation/messages [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	msgs, changed := h.session.SendMessage(c.Request.Context(), req.Text)
	ok(c, created(changed), ConversationResponse{Messages: msgs, Changed: changed})
}
