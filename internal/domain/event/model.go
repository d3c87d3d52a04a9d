package event

import (
	"strings"
	"time"
)

// Event statuses
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Event is a tournament or championship.
type Event struct {
	ID           string `firestore:"id" json:"id"`
	Name         string `firestore:"name" json:"name"`
	Sport        string `firestore:"sport,omitempty" json:"sport,omitempty"`
	OrganizerUID string `firestore:"organizerUid" json:"organizerUid"`

	StartDate            time.Time `firestore:"startDate" json:"startDate"`
	EndDate              time.Time `firestore:"endDate" json:"endDate"`
	RegistrationDeadline time.Time `firestore:"registrationDeadline" json:"registrationDeadline"`
	MaxParticipants      int       `firestore:"maxParticipants" json:"maxParticipants"`

	Status string `firestore:"status" json:"status"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Participant is a confirmed registration, stored under the event.
type Participant struct {
	UID          string    `firestore:"uid" json:"uid"`
	DisplayName  string    `firestore:"displayName,omitempty" json:"displayName,omitempty"`
	RegisteredAt time.Time `firestore:"registeredAt" json:"registeredAt"`
}

type CreateEventInput struct {
	Name                 string `json:"name"`
	Sport                string `json:"sport,omitempty"`
	StartDate            string `json:"startDate"`
	EndDate              string `json:"endDate"`
	RegistrationDeadline string `json:"registrationDeadline,omitempty"`
	MaxParticipants      int    `json:"maxParticipants,omitempty"`
}

func (in *CreateEventInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Sport = strings.ToLower(strings.TrimSpace(in.Sport))
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	in.RegistrationDeadline = strings.TrimSpace(in.RegistrationDeadline)
}

type RegisterInput struct {
	DisplayName string `json:"displayName,omitempty"`
}
