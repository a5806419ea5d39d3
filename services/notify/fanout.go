package notify

import (
	"context"
	"fmt"

	"propmart/database/repository"
	"propmart/models"
	"propmart/services/tasks"

	"go.uber.org/zap"
)

// DefaultFanoutService is the production fan-out. It persists a Notification
// row per recipient and enqueues a dispatch task the worker delivers later.
type DefaultFanoutService struct {
	Buyers        repository.BuyerRepository
	Notifications repository.NotificationRepository
	Admins        AdminRecipientResolver
	Enqueuer      TaskEnqueuer
	Logger        *zap.Logger
}

func (s *DefaultFanoutService) Notify(ctx context.Context, event string, evctx EventContext) {
	title, body := buyerMessage(event, evctx)
	data := map[string]string{
		"type":    event,
		"offerId": evctx.OfferID,
	}

	// Buyer leg.
	buyer, err := s.Buyers.GetByID(ctx, evctx.BuyerID)
	switch {
	case err != nil:
		s.Logger.Warn("fanout: could not resolve buyer",
			zap.String("buyerId", evctx.BuyerID), zap.Error(err))
	case buyer.FCMToken == "":
		s.Logger.Debug("fanout: buyer has no push token", zap.String("buyerId", buyer.ID))
	default:
		s.dispatch(ctx, models.Notification{
			BuyerID:   buyer.ID,
			Recipient: buyer.FCMToken,
			Audience:  models.AudienceBuyer,
			Type:      event,
			Title:     title,
			Body:      body,
		}, data)
	}

	// Admin leg. Each recipient is independent of the others.
	adminTitle, adminBody := adminMessage(event, evctx)
	for _, token := range s.Admins.ListAdminRecipients(ctx) {
		s.dispatch(ctx, models.Notification{
			Recipient: token,
			Audience:  models.AudienceAdmin,
			Type:      event,
			Title:     adminTitle,
			Body:      adminBody,
		}, data)
	}
}

func (s *DefaultFanoutService) dispatch(ctx context.Context, n models.Notification, data map[string]string) {
	n.Data = map[string]any{}
	for k, v := range data {
		n.Data[k] = v
	}

	if err := s.Notifications.Create(ctx, &n); err != nil {
		s.Logger.Warn("fanout: failed to record notification",
			zap.String("type", n.Type), zap.Error(err))
		// Still attempt delivery; the record is audit, not a gate.
	}

	task, err := tasks.NewNotificationTask(tasks.NotificationPayload{
		NotificationID: n.ID,
		Recipient:      n.Recipient,
		Title:          n.Title,
		Body:           n.Body,
		Data:           data,
	})
	if err != nil {
		s.Logger.Warn("fanout: failed to build dispatch task", zap.Error(err))
		return
	}
	if _, err := s.Enqueuer.Enqueue(task); err != nil {
		s.Logger.Warn("fanout: failed to enqueue dispatch task",
			zap.String("notificationId", n.ID), zap.Error(err))
	}
}

func buyerMessage(event string, evctx EventContext) (string, string) {
	switch event {
	case models.EventOfferSubmitted:
		return "Offer received",
			fmt.Sprintf("We received your offer %s. You will hear from us once it has been reviewed.", evctx.OfferReference)
	case models.EventOfferDecided:
		if evctx.Status == models.OfferStatusApproved {
			return "Offer approved",
				fmt.Sprintf("Your offer %s was approved. An invoice has been issued, please arrange payment.", evctx.OfferReference)
		}
		return "Offer declined",
			fmt.Sprintf("Your offer %s was declined. %s", evctx.OfferReference, evctx.Reason)
	case models.EventPaymentSubmitted:
		return "Payment received",
			fmt.Sprintf("Your %s payment of %s %.2f is being processed.", evctx.Method, evctx.Currency, evctx.Amount)
	case models.EventPaymentVerified:
		return "Payment confirmed",
			fmt.Sprintf("Your payment of %s %.2f for offer %s has been confirmed. Thank you!", evctx.Currency, evctx.Amount, evctx.OfferReference)
	case models.EventPaymentFailed:
		return "Payment not accepted",
			fmt.Sprintf("Your payment for offer %s could not be accepted. %s", evctx.OfferReference, evctx.Reason)
	}
	return "PropMart update", "There is an update on your offer."
}

func adminMessage(event string, evctx EventContext) (string, string) {
	switch event {
	case models.EventOfferSubmitted:
		return "New offer submitted",
			fmt.Sprintf("Offer %s on property %s awaits review.", evctx.OfferReference, evctx.PropertyID)
	case models.EventPaymentSubmitted:
		return "Payment awaiting verification",
			fmt.Sprintf("A %s payment of %s %.2f was submitted for offer %s.", evctx.Method, evctx.Currency, evctx.Amount, evctx.OfferReference)
	case models.EventPaymentVerified:
		return "Payment confirmed",
			fmt.Sprintf("Payment of %s %.2f for offer %s is confirmed.", evctx.Currency, evctx.Amount, evctx.OfferReference)
	case models.EventPaymentFailed:
		return "Payment rejected",
			fmt.Sprintf("Payment for offer %s was rejected.", evctx.OfferReference)
	case models.EventOfferDecided:
		return "Offer decided",
			fmt.Sprintf("Offer %s is now %s.", evctx.OfferReference, evctx.Status)
	}
	return "PropMart update", "Workflow event: " + event
}
