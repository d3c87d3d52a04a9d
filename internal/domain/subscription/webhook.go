package subscription

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// HandleWebhook processes incoming Stripe webhooks and mirrors subscription
// state onto the user document.
func (s *Service) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const MaxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error("webhook: error reading request body", zap.Error(err))
		http.Error(w, "Error reading request body", http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sigHeader, s.config.WebhookSecret)
	if err != nil {
		s.logger.Warn("webhook: signature verification failed", zap.Error(err))
		http.Error(w, fmt.Sprintf("Webhook signature verification failed: %v", err), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	s.logger.Info("webhook: received event",
		zap.String("type", string(event.Type)), zap.String("id", event.ID))

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			http.Error(w, fmt.Sprintf("Error parsing webhook JSON: %v", err), http.StatusBadRequest)
			return
		}
		if err := s.handleCheckoutCompleted(ctx, &session); err != nil {
			// acknowledge anyway to prevent retries
			s.logger.Error("webhook: checkout completed", zap.Error(err))
		}

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			http.Error(w, fmt.Sprintf("Error parsing webhook JSON: %v", err), http.StatusBadRequest)
			return
		}
		if err := s.handleSubscriptionChanged(ctx, &sub); err != nil {
			s.logger.Error("webhook: subscription changed", zap.Error(err))
		}

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			http.Error(w, fmt.Sprintf("Error parsing webhook JSON: %v", err), http.StatusBadRequest)
			return
		}
		if err := s.handleSubscriptionDeleted(ctx, &sub); err != nil {
			s.logger.Error("webhook: subscription deleted", zap.Error(err))
		}

	case "invoice.payment_succeeded", "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			http.Error(w, fmt.Sprintf("Error parsing webhook JSON: %v", err), http.StatusBadRequest)
			return
		}
		paid := event.Type == "invoice.payment_succeeded"
		if err := s.handlePayment(ctx, &invoice, paid); err != nil {
			s.logger.Error("webhook: invoice payment", zap.Bool("paid", paid), zap.Error(err))
		}

	default:
		s.logger.Debug("webhook: unhandled event type", zap.String("type", string(event.Type)))
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"received": true}`))
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	uid := session.Metadata["userUid"]
	if uid == "" {
		return fmt.Errorf("checkout session %s has no userUid metadata", session.ID)
	}
	tier := tierFromMetadata(session.Metadata)

	subID := ""
	if session.Subscription != nil {
		subID = session.Subscription.ID
	}

	return s.applySubscriptionState(ctx, uid, UserSubscription{
		SubscriptionTier:   tier,
		SubscriptionStatus: StatusActive,
		SubscriptionID:     subID,
	}, "checkout.session.completed")
}

func (s *Service) handleSubscriptionChanged(ctx context.Context, sub *stripe.Subscription) error {
	uid := sub.Metadata["userUid"]
	if uid == "" {
		return fmt.Errorf("subscription %s has no userUid metadata", sub.ID)
	}

	state := UserSubscription{
		SubscriptionTier:   tierFromMetadata(sub.Metadata),
		SubscriptionStatus: statusFromStripe(sub.Status),
		SubscriptionID:     sub.ID,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}
	if sub.CurrentPeriodEnd > 0 {
		state.PeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	}
	return s.applySubscriptionState(ctx, uid, state, "customer.subscription.updated")
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, sub *stripe.Subscription) error {
	uid := sub.Metadata["userUid"]
	if uid == "" {
		return fmt.Errorf("subscription %s has no userUid metadata", sub.ID)
	}
	return s.applySubscriptionState(ctx, uid, UserSubscription{
		SubscriptionTier:   TierBasic,
		SubscriptionStatus: StatusInactive,
		SubscriptionID:     sub.ID,
	}, "customer.subscription.deleted")
}

func (s *Service) handlePayment(ctx context.Context, invoice *stripe.Invoice, paid bool) error {
	if invoice.Customer == nil {
		return nil
	}
	uid, err := s.uidForCustomer(ctx, invoice.Customer.ID)
	if err != nil || uid == "" {
		return err
	}

	status := StatusInactive
	eventType := "invoice.payment_failed"
	if paid {
		status = StatusActive
		eventType = "invoice.payment_succeeded"
	}

	now := time.Now().UTC()
	_, err = s.userRef(uid).Set(ctx, map[string]interface{}{
		"subscriptionStatus": status,
		"updatedAt":          now,
	}, firestore.MergeAll)
	if err != nil {
		return err
	}
	return s.appendEvent(ctx, uid, Event{
		Type:      eventType,
		Status:    status,
		CreatedAt: now,
	})
}

func (s *Service) applySubscriptionState(ctx context.Context, uid string, state UserSubscription, eventType string) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"subscriptionTier":   state.SubscriptionTier,
		"subscriptionStatus": state.SubscriptionStatus,
		"cancelAtPeriodEnd":  state.CancelAtPeriodEnd,
		"updatedAt":          now,
	}
	if state.SubscriptionID != "" {
		updates["subscriptionId"] = state.SubscriptionID
	}
	if !state.PeriodEnd.IsZero() {
		updates["subscriptionPeriodEnd"] = state.PeriodEnd
	}

	if _, err := s.userRef(uid).Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update user subscription: %w", err)
	}

	return s.appendEvent(ctx, uid, Event{
		Type:           eventType,
		SubscriptionID: state.SubscriptionID,
		Tier:           state.SubscriptionTier,
		Status:         state.SubscriptionStatus,
		CreatedAt:      now,
	})
}

func (s *Service) appendEvent(ctx context.Context, uid string, e Event) error {
	id := uuid.NewString()
	_, err := s.userRef(uid).Collection("subscriptionEvents").Doc(id).Create(ctx, e)
	return err
}

func (s *Service) uidForCustomer(ctx context.Context, customerID string) (string, error) {
	iter := s.fs.Collection("users").
		Where("stripeCustomerId", "==", customerID).
		Limit(1).
		Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		return "", nil // unknown customer, nothing to do
	}
	return doc.Ref.ID, nil
}

func statusFromStripe(status stripe.SubscriptionStatus) string {
	switch status {
	case stripe.SubscriptionStatusActive:
		return StatusActive
	case stripe.SubscriptionStatusTrialing:
		return StatusTrial
	default:
		return StatusInactive
	}
}
