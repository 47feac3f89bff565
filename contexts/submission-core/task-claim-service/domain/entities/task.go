package entities

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusActive TaskStatus = "active"
	TaskStatusPaused TaskStatus = "paused"
	TaskStatusClosed TaskStatus = "closed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusActive, TaskStatusPaused, TaskStatusClosed:
		return true
	default:
		return false
	}
}

// Task is a claimable unit of paid work. MaxParticipants of zero means the
// task has no participant cap. CurrentParticipants counts claims that still
// occupy a slot.
type Task struct {
	TaskID              string
	Title               string
	Description         string
	Category            string
	RewardMinor         int64
	MaxParticipants     int
	CurrentParticipants int
	Status              TaskStatus
	FormConfigID        string
	Deadline            *time.Time
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (t Task) Unlimited() bool {
	return t.MaxParticipants <= 0
}

func (t Task) HasCapacity() bool {
	return t.Unlimited() || t.CurrentParticipants < t.MaxParticipants
}

// RemainingSlots is -1 for uncapped tasks.
func (t Task) RemainingSlots() int {
	if t.Unlimited() {
		return -1
	}
	if remaining := t.MaxParticipants - t.CurrentParticipants; remaining > 0 {
		return remaining
	}
	return 0
}

// IsClaimable reports whether the task accepts new claims at all. Capacity is
// checked separately and atomically by the repository.
func (t Task) IsClaimable(now time.Time) bool {
	if t.Status != TaskStatusActive {
		return false
	}
	return t.Deadline == nil || now.Before(*t.Deadline)
}

func (t Task) Validate() bool {
	if strings.TrimSpace(t.TaskID) == "" || strings.TrimSpace(t.Title) == "" {
		return false
	}
	if t.MaxParticipants < 0 || t.RewardMinor < 0 || t.CurrentParticipants < 0 {
		return false
	}
	return t.Status.Valid()
}
