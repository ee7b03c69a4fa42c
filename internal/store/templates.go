package store

import "github.com/tbourn/go-study-session/internal/domain"

// Fixed tutor texts. Tests and clients compare these verbatim.
const (
	// WelcomeGreeting seeds the conversation of a freshly created store.
	WelcomeGreeting = "Welcome back. Let’s make this session focused and productive. " +
		"What are you studying today, and what would you like to achieve by the end of this block?"

	// NewSessionGreeting replaces the conversation on ResetConversation.
	NewSessionGreeting = "New session started. Briefly tell me your goal for this study block, " +
		"and I’ll help you structure it."

	// CoachingReply is the default tutor answer to every user turn.
	CoachingReply = "Got it. Here’s a simple next step: focus on one small chunk for the next 25 minutes, then check in with me.\n\n" +
		"To keep this practical, tell me:\n" +
		"• What specific topic are you on?\n" +
		"• When is your next exam or deadline related to it?\n\n" +
		"I’ll help you turn that into concrete flashcards or a short quiz."
)

// planTemplate is today's plan, in display order. Every generated task
// starts pending.
var planTemplate = []struct {
	Title    string
	DueLabel string
}{
	{Title: "25-minute focused study block", DueLabel: "Start now · finish in 25 minutes"},
	{Title: "Create 10 flashcards from today's material", DueLabel: "Within the next 45 minutes"},
	{Title: "Quick 5-question self-quiz", DueLabel: "Before you finish this session"},
}

// PlanTemplate returns a copy of the fixed plan as pending tasks without ids.
func PlanTemplate() []domain.PlanTask {
	out := make([]domain.PlanTask, len(planTemplate))
	for i, p := range planTemplate {
		out[i] = domain.PlanTask{Title: p.Title, DueLabel: p.DueLabel, Status: domain.TaskPending}
	}
	return out
}

// ReplyGenerator produces the tutor message that answers a user turn.
type ReplyGenerator func(userText string) string

// TemplateReply ignores its input and returns CoachingReply.
func TemplateReply(string) string { return CoachingReply }
