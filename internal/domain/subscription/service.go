package subscription

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	stripesub "github.com/stripe/stripe-go/v76/subscription"
	"go.uber.org/zap"

	"sportfolio/backend/internal/domain/access"
)

type Config struct {
	SecretKey              string
	WebhookSecret          string
	PriceProMonthly        string
	PriceProYearly         string
	PriceEnterpriseMonthly string
	PriceEnterpriseYearly  string
}

func LoadConfig() Config {
	return Config{
		SecretKey:              os.Getenv("STRIPE_SECRET_KEY"),
		WebhookSecret:          os.Getenv("STRIPE_WEBHOOK_SECRET"),
		PriceProMonthly:        os.Getenv("STRIPE_PRICE_PRO_MONTHLY"),
		PriceProYearly:         os.Getenv("STRIPE_PRICE_PRO_YEARLY"),
		PriceEnterpriseMonthly: os.Getenv("STRIPE_PRICE_ENTERPRISE_MONTHLY"),
		PriceEnterpriseYearly:  os.Getenv("STRIPE_PRICE_ENTERPRISE_YEARLY"),
	}
}

type Service struct {
	fs     *firestore.Client
	config Config
	logger *zap.Logger
}

func NewService(fs *firestore.Client, cfg Config, logger *zap.Logger) *Service {
	stripe.Key = cfg.SecretKey
	return &Service{fs: fs, config: cfg, logger: logger}
}

func (s *Service) userRef(uid string) *firestore.DocumentRef {
	return s.fs.Collection("users").Doc(uid)
}

// CreateCheckoutSession starts a Stripe checkout for a paid tier.
func (s *Service) CreateCheckoutSession(ctx context.Context, uid string, input CreateCheckoutInput) (string, error) {
	input.Trim()

	if input.Tier != TierPro && input.Tier != TierEnterprise {
		return "", fmt.Errorf("%w: tier must be 'pro' or 'enterprise'", ErrBadRequest)
	}
	if input.Period != "monthly" && input.Period != "yearly" {
		return "", fmt.Errorf("%w: period must be 'monthly' or 'yearly'", ErrBadRequest)
	}

	userDoc, err := s.userRef(uid).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: user not found", ErrNotFound)
	}
	userData := userDoc.Data()
	email, _ := userData["email"].(string)
	customerID, _ := userData["stripeCustomerId"].(string)

	if customerID == "" {
		c, err := customer.New(&stripe.CustomerParams{
			Email: stripe.String(email),
			Metadata: map[string]string{
				"userUid": uid,
			},
		})
		if err != nil {
			return "", fmt.Errorf("failed to create customer: %w", err)
		}
		customerID = c.ID

		if _, err := s.userRef(uid).Set(ctx, map[string]interface{}{
			"stripeCustomerId": customerID,
		}, firestore.MergeAll); err != nil {
			s.logger.Warn("failed to save customer id", zap.String("uid", uid), zap.Error(err))
		}
	}

	priceID := s.priceFor(input.Tier, input.Period)
	if priceID == "" {
		return "", fmt.Errorf("%w: price not configured for %s %s", ErrBadRequest, input.Tier, input.Period)
	}

	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(input.SuccessURL),
		CancelURL:  stripe.String(input.CancelURL),
		Metadata: map[string]string{
			"userUid": uid,
			"tier":    input.Tier,
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				"userUid": uid,
				"tier":    input.Tier,
			},
		},
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session.URL, nil
}

func (s *Service) priceFor(tier, period string) string {
	switch {
	case tier == TierPro && period == "yearly":
		return s.config.PriceProYearly
	case tier == TierPro:
		return s.config.PriceProMonthly
	case period == "yearly":
		return s.config.PriceEnterpriseYearly
	default:
		return s.config.PriceEnterpriseMonthly
	}
}

// CreatePortalSession opens the Stripe billing portal for the user.
func (s *Service) CreatePortalSession(ctx context.Context, uid string, input CreatePortalInput) (string, error) {
	input.Trim()

	userDoc, err := s.userRef(uid).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: user not found", ErrNotFound)
	}
	customerID, _ := userDoc.Data()["stripeCustomerId"].(string)
	if customerID == "" {
		return "", fmt.Errorf("%w: no billing account found", ErrBadRequest)
	}

	session, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(input.ReturnURL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create portal session: %w", err)
	}
	return session.URL, nil
}

// GetInfo returns the subscription view for a user.
func (s *Service) GetInfo(ctx context.Context, uid string) (*Info, error) {
	userDoc, err := s.userRef(uid).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	data := userDoc.Data()

	info := Info{Tier: TierBasic, Status: StatusInactive}
	if v, ok := data["subscriptionTier"].(string); ok && v != "" {
		info.Tier = v
	}
	if v, ok := data["subscriptionStatus"].(string); ok && v != "" {
		info.Status = v
	}
	if v, ok := data["cancelAtPeriodEnd"].(bool); ok {
		info.CancelAtPeriodEnd = v
	}
	if v, ok := data["subscriptionPeriodEnd"].(time.Time); ok && !v.IsZero() {
		info.PeriodEnd = &v
	}
	return &info, nil
}

// Cancel flags the subscription to end at period end.
func (s *Service) Cancel(ctx context.Context, uid string) error {
	return s.setCancelAtPeriodEnd(ctx, uid, true)
}

// Resume clears a pending cancellation.
func (s *Service) Resume(ctx context.Context, uid string) error {
	return s.setCancelAtPeriodEnd(ctx, uid, false)
}

func (s *Service) setCancelAtPeriodEnd(ctx context.Context, uid string, cancel bool) error {
	userDoc, err := s.userRef(uid).Get(ctx)
	if err != nil {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	subID, _ := userDoc.Data()["subscriptionId"].(string)
	if subID == "" {
		return fmt.Errorf("%w: no active subscription", ErrBadRequest)
	}

	_, err = stripesub.Update(subID, &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(cancel),
	})
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	_, err = s.userRef(uid).Set(ctx, map[string]interface{}{
		"cancelAtPeriodEnd": cancel,
		"updatedAt":         time.Now().UTC(),
	}, firestore.MergeAll)
	return err
}

// RequireTool returns ErrToolLocked unless the user's subscription unlocks
// the named tool.
func (s *Service) RequireTool(ctx context.Context, uid, tool string) error {
	info, err := s.GetInfo(ctx, uid)
	if err != nil {
		return err
	}
	if !access.HasToolAccess(info.Tier, info.Status, tool) {
		return fmt.Errorf("%w: %s requires an active pro or enterprise subscription", ErrToolLocked, tool)
	}
	return nil
}

func tierFromMetadata(md map[string]string) string {
	tier := strings.ToLower(strings.TrimSpace(md["tier"]))
	switch tier {
	case TierPro, TierEnterprise:
		return tier
	}
	return TierBasic
}
