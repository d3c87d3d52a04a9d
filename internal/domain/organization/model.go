package organization

import (
	"strings"
	"time"
)

// Verification statuses
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// Organization is a sports body: club, academy, federation or school.
type Organization struct {
	ID        string `firestore:"id" json:"id"`
	Name      string `firestore:"name" json:"name"`
	NameLower string `firestore:"nameLower" json:"-"`
	Slug      string `firestore:"slug" json:"slug"`
	OrgType   string `firestore:"orgType,omitempty" json:"orgType,omitempty"`
	City      string `firestore:"city,omitempty" json:"city,omitempty"`
	Country   string `firestore:"country,omitempty" json:"country,omitempty"`

	OwnerUID  string   `firestore:"ownerUid" json:"ownerUid"`
	StaffUids []string `firestore:"staffUids,omitempty" json:"staffUids,omitempty"`

	SportsOffered       []string `firestore:"sportsOffered" json:"sportsOffered"`
	FacilitiesAvailable []string `firestore:"facilitiesAvailable,omitempty" json:"facilitiesAvailable,omitempty"`

	VerificationStatus string `firestore:"verificationStatus" json:"verificationStatus"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type CreateInput struct {
	Name                string   `json:"name"`
	OrgType             string   `json:"orgType,omitempty"`
	City                string   `json:"city,omitempty"`
	Country             string   `json:"country,omitempty"`
	SportsOffered       []string `json:"sportsOffered"`
	FacilitiesAvailable []string `json:"facilitiesAvailable,omitempty"`
}

func (in *CreateInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.OrgType = strings.ToLower(strings.TrimSpace(in.OrgType))
	in.City = strings.TrimSpace(in.City)
	in.Country = strings.TrimSpace(in.Country)
	in.SportsOffered = trimSlice(in.SportsOffered)
	in.FacilitiesAvailable = trimSlice(in.FacilitiesAvailable)
}

type UpdateInput struct {
	City                *string   `json:"city,omitempty"`
	Country             *string   `json:"country,omitempty"`
	SportsOffered       *[]string `json:"sportsOffered,omitempty"`
	FacilitiesAvailable *[]string `json:"facilitiesAvailable,omitempty"`
	StaffUids           *[]string `json:"staffUids,omitempty"`
}

func trimSlice(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
