package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeNotificationDispatch = "notification:dispatch"

// NotificationPayload is the wire form of one outbound notification dispatch.
type NotificationPayload struct {
	NotificationID string            `json:"notificationId"`
	Recipient      string            `json:"recipient"`
	Title          string            `json:"title"`
	Body           string            `json:"body"`
	Data           map[string]string `json:"data,omitempty"`
}

func NewNotificationTask(payload NotificationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotificationDispatch, b), nil
}
