// Package scheduler provides delayed background jobs over asynq.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskReviewReminder asks the client to review a completed project.
const TaskReviewReminder = "reviews.reminder"

// ReviewReminderPayload identifies the project and client to remind.
type ReviewReminderPayload struct {
	ProjectID string `json:"projectId"`
	ClientID  string `json:"clientId"`
}

// NewReviewReminderTask builds the asynq task for a review reminder.
func NewReviewReminderTask(payload ReviewReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReviewReminder, data), nil
}

// ParseReviewReminderPayload decodes a review reminder task payload.
func ParseReviewReminderPayload(task *asynq.Task) (ReviewReminderPayload, error) {
	var payload ReviewReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ReviewReminderPayload{}, err
	}
	return payload, nil
}
