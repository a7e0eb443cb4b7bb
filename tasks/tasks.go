package tasks

import (
	"time"
)

type Status string

const (
	StatusBacklog    Status = "BACKLOG"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInReview   Status = "IN_REVIEW"
	StatusBlocked    Status = "BLOCKED"
	StatusDone       Status = "DONE"
)

func ValidStatus(status Status) bool {
	switch status {
	case StatusBacklog, StatusInProgress, StatusInReview, StatusBlocked, StatusDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func ValidPriority(priority Priority) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	CreatedByID string     `json:"createdById"`
	AssigneeID  *string    `json:"assigneeId"` // membership id, not user id
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Position    int        `json:"position"` // kanban column ordering
	DueAt       *time.Time `json:"dueAt"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
