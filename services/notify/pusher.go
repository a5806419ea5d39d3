package notify

import (
	"context"
	"fmt"

	"propmart/utils"

	"firebase.google.com/go/v4/messaging"
)

// FCMPusher delivers notifications through Firebase Cloud Messaging.
type FCMPusher struct{}

func (FCMPusher) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return fmt.Errorf("fcm push: empty recipient token")
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm push: failed to send message: %w", err)
	}
	return nil
}
