// Package domain defines the study-session models: the tutoring conversation,
// the daily plan, the flashcard decks, and the identity state observed from
// the authentication provider. The session aggregates are plain in-memory
// values; only Account and Idempotency (see account.go, idempotency.go) are
// mapped with GORM.
package domain

import (
	"strconv"
	"time"
)

// Author identifies who wrote a conversation message.
type Author string

const (
	AuthorTutor Author = "tutor"
	AuthorUser  Author = "user"
)

// Message is a single immutable turn in the tutoring conversation.
//
// Fields:
//   - ID: opaque unique token assigned at creation.
//   - Author: "tutor" or "user".
//   - Text: message body as displayed.
//   - CreatedAt: creation time; a user turn and the tutor reply it triggers
//     share the same value.
type Message struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskStatus is the progress state of a PlanTask.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// Next returns the successor of s in the cycle
// pending -> in_progress -> done -> pending. Unknown values restart the
// cycle at pending so the function is total.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case TaskPending:
		return TaskInProgress
	case TaskInProgress:
		return TaskDone
	default:
		return TaskPending
	}
}

// Label is the human-readable badge for s.
func (s TaskStatus) Label() string {
	switch s {
	case TaskPending:
		return "Planned"
	case TaskInProgress:
		return "In progress"
	case TaskDone:
		return "Completed"
	default:
		return string(s)
	}
}

// PlanTask is one entry of the generated daily plan.
type PlanTask struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	DueLabel string     `json:"due_label"`
	Status   TaskStatus `json:"status"`
}

// Flashcard is an immutable front/back pair owned by exactly one Deck.
type Flashcard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// CardDraft is a front/back pair that has not been appended to a deck yet.
type CardDraft struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Deck is a named, append-only sequence of flashcards. Card order is
// insertion order.
type Deck struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Cards []Flashcard `json:"cards"`
}

// CardCountLabel renders the card count the way deck lists show it
// ("1 card", "3 cards").
func (d Deck) CardCountLabel() string {
	if len(d.Cards) == 1 {
		return "1 card"
	}
	return strconv.Itoa(len(d.Cards)) + " cards"
}

// User is the signed-in account as reported by the identity provider.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Identity is the process-wide authentication state. Loading stays true
// until the provider reports its first state.
type Identity struct {
	User    *User `json:"user"`
	Loading bool  `json:"loading"`
}

// Summary holds the derived progress metrics.
//
// CompletionRate is round(completed / max(total, 1) * 100), so it is 0 when
// there are no tasks.
type Summary struct {
	CompletedTasks int `json:"completed_tasks"`
	TotalTasks     int `json:"total_tasks"`
	CompletionRate int `json:"completion_rate"`
	TotalCards     int `json:"total_cards"`
	TotalMessages  int `json:"total_messages"`
}

// Snapshot is a consistent copy of every aggregate taken at one revision.
type Snapshot struct {
	Revision uint64     `json:"revision"`
	Messages []Message  `json:"messages"`
	Tasks    []PlanTask `json:"tasks"`
	Decks    []Deck     `json:"decks"`
	Summary  Summary    `json:"summary"`
}
