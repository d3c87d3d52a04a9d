package subscription

import (
	"strings"
	"time"
)

// Tiers. basic is the default and costs nothing; pro and enterprise are
// purchased through Stripe and unlock the premium tools.
const (
	TierBasic      = "basic"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// Subscription statuses mirrored onto the user document.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusTrial    = "trial"
)

// Info is the subscription view returned to the frontend.
type Info struct {
	Tier              string     `json:"tier"`
	Status            string     `json:"status"`
	PeriodEnd         *time.Time `json:"periodEnd,omitempty"`
	CancelAtPeriodEnd bool       `json:"cancelAtPeriodEnd"`
}

// CreateCheckoutInput is the input for creating a checkout session.
type CreateCheckoutInput struct {
	Tier       string `json:"tier"`   // "pro" or "enterprise"
	Period     string `json:"period"` // "monthly" or "yearly"
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
}

func (i *CreateCheckoutInput) Trim() {
	i.Tier = strings.ToLower(strings.TrimSpace(i.Tier))
	i.Period = strings.ToLower(strings.TrimSpace(i.Period))
	i.SuccessURL = strings.TrimSpace(i.SuccessURL)
	i.CancelURL = strings.TrimSpace(i.CancelURL)
}

// CreatePortalInput is the input for creating a billing portal session.
type CreatePortalInput struct {
	ReturnURL string `json:"returnUrl"`
}

func (i *CreatePortalInput) Trim() {
	i.ReturnURL = strings.TrimSpace(i.ReturnURL)
}

// UserSubscription is the subscription state stored on the user document.
type UserSubscription struct {
	SubscriptionTier   string    `firestore:"subscriptionTier" json:"subscriptionTier"`
	SubscriptionStatus string    `firestore:"subscriptionStatus" json:"subscriptionStatus"`
	SubscriptionID     string    `firestore:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
	StripeCustomerID   string    `firestore:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	PeriodEnd          time.Time `firestore:"subscriptionPeriodEnd,omitempty" json:"subscriptionPeriodEnd,omitempty"`
	CancelAtPeriodEnd  bool      `firestore:"cancelAtPeriodEnd,omitempty" json:"cancelAtPeriodEnd,omitempty"`
}

// Event is an audit record of a subscription change.
type Event struct {
	ID             string    `firestore:"-" json:"id"`
	Type           string    `firestore:"type" json:"type"`
	SubscriptionID string    `firestore:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
	Tier           string    `firestore:"tier,omitempty" json:"tier,omitempty"`
	Status         string    `firestore:"status,omitempty" json:"status,omitempty"`
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`
}
