package approval

import (
	"strings"
	"time"
)

// Status is the lifecycle state of an approval request, and doubles as the
// approval state of the entity the request governs.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

// Terminal reports whether a request in this status can still be decided.
func (s Status) Terminal() bool {
	return s != StatusPending
}

// Action is an admin decision on a pending request.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Request types
const (
	TypeRegistration = "registration"
	TypeMembership   = "membership"
	TypeRoleChange   = "role_change"
)

var ValidTypes = []string{TypeRegistration, TypeMembership, TypeRoleChange}

func IsValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// User types a registration request may carry.
const (
	UserTypeAthlete         = "athlete"
	UserTypeCoach           = "coach"
	UserTypeOrganization    = "organization"
	UserTypeFacilityManager = "facility_manager"
	UserTypeAdmin           = "admin"
)

var ValidUserTypes = []string{
	UserTypeAthlete, UserTypeCoach, UserTypeOrganization, UserTypeFacilityManager, UserTypeAdmin,
}

func IsValidUserType(t string) bool {
	for _, v := range ValidUserTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Request is a persisted administrative decision. Once the status leaves
// pending the row is immutable; re-submission means a new request.
type Request struct {
	ID             string         `firestore:"-" json:"id"`
	UserUID        string         `firestore:"userUid" json:"userUid"`
	RequestType    string         `firestore:"requestType" json:"requestType"`
	RequestData    map[string]any `firestore:"requestData,omitempty" json:"requestData,omitempty"`
	Status         Status         `firestore:"status" json:"status"`
	ReviewedBy     string         `firestore:"reviewedBy,omitempty" json:"reviewedBy,omitempty"`
	ReviewedAt     time.Time      `firestore:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewComments string         `firestore:"reviewComments,omitempty" json:"reviewComments,omitempty"`
	CreatedAt      time.Time      `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `firestore:"updatedAt" json:"updatedAt"`
}

// SubmitInput is the input for submitting a new approval request.
type SubmitInput struct {
	RequestType string         `json:"requestType"`
	RequestData map[string]any `json:"requestData,omitempty"`
}

func (in *SubmitInput) Trim() {
	in.RequestType = strings.ToLower(strings.TrimSpace(in.RequestType))
}

// requiredFields lists the requestData keys each request type must carry.
var requiredFields = map[string][]string{
	TypeRegistration: {"userType"},
	TypeMembership:   {"organizationId", "tagType"},
	TypeRoleChange:   {"roleId"},
}

// MissingFields returns the required requestData keys that are absent or blank.
func MissingFields(requestType string, data map[string]any) []string {
	var missing []string
	for _, f := range requiredFields[requestType] {
		v, ok := data[f]
		if !ok {
			missing = append(missing, f)
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}
