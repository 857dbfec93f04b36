package board_model

import (
	"time"

	"github.com/lib/pq"

	"github.com/lianjung1/kanban-app/internal/model/auth_model"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Board struct {
	ID          string         `db:"id" json:"_id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Columns     pq.StringArray `db:"columns" json:"columns"`
	Members     pq.StringArray `db:"members" json:"members"`
	OwnerID     string         `db:"owner_id" json:"owner"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
}

type Column struct {
	ID        string         `db:"id" json:"_id"`
	Title     string         `db:"title" json:"title"`
	BoardID   string         `db:"board_id" json:"boardId"`
	Tasks     pq.StringArray `db:"tasks" json:"tasks"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

type Task struct {
	ID          string    `db:"id" json:"_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Priority    Priority  `db:"priority" json:"priority"`
	AssignedTo  *string   `db:"assigned_to" json:"assignedTo,omitempty"`
	ColumnID    string    `db:"column_id" json:"columnId"`
	BoardID     string    `db:"board_id" json:"boardId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type Comment struct {
	ID        string    `db:"id" json:"_id"`
	Content   string    `db:"content" json:"content"`
	TaskID    string    `db:"task_id" json:"taskId"`
	UserID    string    `db:"user_id" json:"user"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Populated aggregates for the read endpoints. The populated document
// replaces its reference field in the JSON shape, so the client receives
// columns as documents rather than ids. Users come from auth_model, whose
// password field never serializes.

type TaskDetail struct {
	ID          string           `json:"_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Priority    Priority         `json:"priority"`
	Assignee    *auth_model.User `json:"assignedTo,omitempty"`
	ColumnID    string           `json:"columnId"`
	BoardID     string           `json:"boardId"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type ColumnDetail struct {
	ID        string        `json:"_id"`
	Title     string        `json:"title"`
	BoardID   string        `json:"boardId"`
	Tasks     []*TaskDetail `json:"tasks"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type BoardDetail struct {
	ID          string             `json:"_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Columns     []*ColumnDetail    `json:"columns"`
	Members     []*auth_model.User `json:"members,omitempty"`
	Owner       *auth_model.User   `json:"owner,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type CommentDetail struct {
	ID        string           `json:"_id"`
	Content   string           `json:"content"`
	TaskID    string           `json:"taskId"`
	Author    *auth_model.User `json:"user,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}
