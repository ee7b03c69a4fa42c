// Plan HTTP handlers.
//
//   - GET  /plan/tasks              (current plan + summary)
//   - POST /plan/generate           (replace with today's template)
//   - POST /plan/tasks/:id/advance  (pending -> in_progress -> done -> pending)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) planResponse(c *gin.Context) PlanResponse {
	ctx := c.Request.Context()
	return PlanResponse{
		Tasks:   taskViews(h.session.Tasks(ctx)),
		Summary: h.session.Summary(ctx),
	}
}

// ListTasks godoc
// @ID          listTasks
// @Summary     Current plan
// @Tags        Plan
// @Produce     json
// @Success     200  {object}  handlers.PlanResponse
// @Router      /plan/tasks [get]
func (h *Handlers) ListTasks(c *gin.Context) {
	ok(c, http.StatusOK, h.planResponse(c))
}

// GeneratePlan godoc
// @ID          generatePlan
// @Summary     Generate today's plan
// @Description Replaces the plan with the fixed three-task template, all pending. Prior progress is discarded.
// @Tags        Plan
// @Produce     json
// @Success     200  {object}  handlers.PlanResponse
// @Router      /plan/generate [post]
func (h *Handlers) GeneratePlan(c *gin.Context) {
	h.session.GeneratePlan(c.Request.Context())
	ok(c, http.StatusOK, h.planResponse(c))
}

// AdvanceTask godoc
// @ID          advanceTask
// @Summary     Advance a task's status
// @Description Moves the task one step around the status cycle. Unknown ids change nothing and still answer 200.
// @Tags        Plan
// @Produce     json
// @Param       id  path  string  true  "Task ID"
// @Success     200  {object}  handlers.PlanResponse
// @Router      /plan/tasks/{id}/advance [post]
func (h *Handlers) AdvanceTask(c *gin.Context) {
	h.session.AdvanceTask(c.Request.Context(), c.Param("id"))
	ok(c, http.StatusOK, h.planResponse(c))
}
