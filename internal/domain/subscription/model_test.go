package subscription

import (
	"testing"

	"github.com/stripe/stripe-go/v76"
	"github.com/stretchr/testify/assert"
)

func TestTierFromMetadata(t *testing.T) {
	assert.Equal(t, TierPro, tierFromMetadata(map[string]string{"tier": "pro"}))
	assert.Equal(t, TierEnterprise, tierFromMetadata(map[string]string{"tier": " Enterprise "}))
	assert.Equal(t, TierBasic, tierFromMetadata(map[string]string{"tier": "platinum"}))
	assert.Equal(t, TierBasic, tierFromMetadata(map[string]string{}))
	assert.Equal(t, TierBasic, tierFromMetadata(nil))
}

func TestStatusFromStripe(t *testing.T) {
	assert.Equal(t, StatusActive, statusFromStripe(stripe.SubscriptionStatusActive))
	assert.Equal(t, StatusTrial, statusFromStripe(stripe.SubscriptionStatusTrialing))
	assert.Equal(t, StatusInactive, statusFromStripe(stripe.SubscriptionStatusCanceled))
	assert.Equal(t, StatusInactive, statusFromStripe(stripe.SubscriptionStatusPastDue))
}

func TestCreateCheckoutInputTrim(t *testing.T) {
	in := CreateCheckoutInput{
		Tier:       " PRO ",
		Period:     " Monthly ",
		SuccessURL: " https://example.com/ok ",
		CancelURL:  " https://example.com/no ",
	}
	in.Trim()
	assert.Equal(t, "pro", in.Tier)
	assert.Equal(t, "monthly", in.Period)
	assert.Equal(t, "https://example.com/ok", in.SuccessURL)
	assert.Equal(t, "https://example.com/no", in.CancelURL)
}
