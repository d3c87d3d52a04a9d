package facility

import (
	"strings"
	"time"
)

// Facility is a bookable venue run by a manager on behalf of an organization.
type Facility struct {
	ID             string `firestore:"id" json:"id"`
	Name           string `firestore:"name" json:"name"`
	ManagerUID     string `firestore:"managerUid" json:"managerUid"`
	OrganizationID string `firestore:"organizationId,omitempty" json:"organizationId,omitempty"`
	Sport          string `firestore:"sport,omitempty" json:"sport,omitempty"`
	City           string `firestore:"city,omitempty" json:"city,omitempty"`

	HourlyRate int64 `firestore:"hourlyRate" json:"hourlyRate"`

	// Operating hours in "15:04" local time.
	OpensAt  string `firestore:"opensAt" json:"opensAt"`
	ClosesAt string `firestore:"closesAt" json:"closesAt"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Booking statuses
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID         string    `firestore:"-" json:"id"`
	FacilityID string    `firestore:"facilityId" json:"facilityId"`
	UserUID    string    `firestore:"userUid" json:"userUid"`
	Start      time.Time `firestore:"start" json:"start"`
	End        time.Time `firestore:"end" json:"end"`
	Status     string    `firestore:"status" json:"status"`
	Price      int64     `firestore:"price" json:"price"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type CreateFacilityInput struct {
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId,omitempty"`
	Sport          string `json:"sport,omitempty"`
	City           string `json:"city,omitempty"`
	HourlyRate     int64  `json:"hourlyRate"`
	OpensAt        string `json:"opensAt,omitempty"`
	ClosesAt       string `json:"closesAt,omitempty"`
}

func (in *CreateFacilityInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.OrganizationID = strings.TrimSpace(in.OrganizationID)
	in.Sport = strings.ToLower(strings.TrimSpace(in.Sport))
	in.City = strings.TrimSpace(in.City)
	in.OpensAt = strings.TrimSpace(in.OpensAt)
	in.ClosesAt = strings.TrimSpace(in.ClosesAt)
}

type CreateBookingInput struct {
	Start string `json:"start"` // RFC3339
	End   string `json:"end"`
}

func (in *CreateBookingInput) Trim() {
	in.Start = strings.TrimSpace(in.Start)
	in.End = strings.TrimSpace(in.End)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// WithinOperatingHours reports whether the slot falls inside opensAt..closesAt
// on the booking's day. Blank hours mean always open.
func WithinOperatingHours(f Facility, start, end time.Time) bool {
	if f.OpensAt == "" || f.ClosesAt == "" {
		return true
	}
	opens, err1 := time.Parse("15:04", f.OpensAt)
	closes, err2 := time.Parse("15:04", f.ClosesAt)
	if err1 != nil || err2 != nil {
		return true
	}

	sm := start.Hour()*60 + start.Minute()
	em := end.Hour()*60 + end.Minute()
	om := opens.Hour()*60 + opens.Minute()
	cm := closes.Hour()*60 + closes.Minute()

	// closing at midnight reads as 00:00
	if cm == 0 {
		cm = 24 * 60
	}
	if em == 0 && end.After(start) {
		em = 24 * 60
	}
	return sm >= om && em <= cm && sm < em
}
