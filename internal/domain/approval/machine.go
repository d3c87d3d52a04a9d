package approval

import (
	"fmt"
	"strings"
	"time"
)

// transitions is the single authority for status changes. Every path that
// mutates an approval status (the request pipeline and the direct admin
// override) goes through this table.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusSuspended},
	StatusSuspended: {StatusApproved}, // reinstate
}

// CanTransition reports whether from -> to is a legal status change.
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Decide applies an admin action to a request and returns the decided copy.
// The stored request is only written if Decide succeeds.
func Decide(req Request, action Action, reviewerUID, note string, now time.Time) (Request, error) {
	reviewerUID = strings.TrimSpace(reviewerUID)
	if reviewerUID == "" {
		return req, fmt.Errorf("%w: reviewer is required", ErrBadRequest)
	}

	var target Status
	switch action {
	case ActionApprove:
		target = StatusApproved
	case ActionReject:
		if strings.TrimSpace(note) == "" {
			return req, ErrMissingReason
		}
		target = StatusRejected
	default:
		return req, fmt.Errorf("%w: action must be approve or reject", ErrBadRequest)
	}

	if !CanTransition(req.Status, target) {
		return req, fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, req.Status, target)
	}

	req.Status = target
	req.ReviewedBy = reviewerUID
	req.ReviewedAt = now
	req.ReviewComments = strings.TrimSpace(note)
	req.UpdatedAt = now
	return req, nil
}
