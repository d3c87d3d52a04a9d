package membership

import (
	"fmt"
	"strings"
	"time"

	"sportfolio/backend/internal/domain/approval"
)

// Tag types
const (
	TagPlayer = "player"
	TagCoach  = "coach"
	TagStaff  = "staff"
)

var ValidTagTypes = []string{TagPlayer, TagCoach, TagStaff}

func IsValidTagType(t string) bool {
	for _, v := range ValidTagTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Tag is an athlete's association request to an organization. Decided tags
// are immutable and never deleted; re-submission is a new tag.
type Tag struct {
	ID             string          `firestore:"-" json:"id"`
	UserUID        string          `firestore:"userUid" json:"userUid"`
	OrganizationID string          `firestore:"organizationId" json:"organizationId"`
	TagType        string          `firestore:"tagType" json:"tagType"`
	Status         approval.Status `firestore:"status" json:"status"`
	MembershipFee  int64           `firestore:"membershipFee,omitempty" json:"membershipFee,omitempty"`
	DecidedBy      string          `firestore:"decidedBy,omitempty" json:"decidedBy,omitempty"`
	DecidedAt      time.Time       `firestore:"decidedAt,omitempty" json:"decidedAt,omitempty"`
	DecisionReason string          `firestore:"decisionReason,omitempty" json:"decisionReason,omitempty"`
	CreatedAt      time.Time       `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time       `firestore:"updatedAt" json:"updatedAt"`
}

// Active reports whether the tag counts against the one-active-tag rule.
func (t Tag) Active() bool {
	return t.Status == approval.StatusPending || t.Status == approval.StatusApproved
}

type TagInput struct {
	OrganizationID string `json:"organizationId"`
	TagType        string `json:"tagType,omitempty"`
}

func (in *TagInput) Trim() {
	in.OrganizationID = strings.TrimSpace(in.OrganizationID)
	in.TagType = strings.ToLower(strings.TrimSpace(in.TagType))
}

// DecisionInput is the organization-side approve/reject of a tag.
type DecisionInput struct {
	Action        string `json:"action"` // approve / reject
	MembershipFee int64  `json:"membershipFee,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

func (in *DecisionInput) Trim() {
	in.Action = strings.ToLower(strings.TrimSpace(in.Action))
	in.Reason = strings.TrimSpace(in.Reason)
}

// ApplyDecision is the pure decision step, sharing the approval transition
// table so tag statuses cannot diverge from the rest of the pipeline.
func ApplyDecision(t Tag, input DecisionInput, reviewerUID string, now time.Time) (Tag, error) {
	input.Trim()
	reviewerUID = strings.TrimSpace(reviewerUID)

	if reviewerUID == "" {
		return t, fmt.Errorf("%w: reviewer is required", ErrBadRequest)
	}

	var target approval.Status
	switch input.Action {
	case "approve":
		target = approval.StatusApproved
	case "reject":
		if input.Reason == "" {
			return t, approval.ErrMissingReason
		}
		target = approval.StatusRejected
	default:
		return t, fmt.Errorf("%w: action must be approve or reject", ErrBadRequest)
	}

	if !approval.CanTransition(t.Status, target) {
		return t, fmt.Errorf("%w: %s -> %s", approval.ErrInvalidStateTransition, t.Status, target)
	}
	if input.MembershipFee < 0 {
		return t, fmt.Errorf("%w: membershipFee cannot be negative", ErrBadRequest)
	}

	t.Status = target
	t.DecidedBy = reviewerUID
	t.DecidedAt = now
	t.DecisionReason = input.Reason
	t.UpdatedAt = now
	if target == approval.StatusApproved && input.MembershipFee > 0 {
		t.MembershipFee = input.MembershipFee
	}
	return t, nil
}
