package facility

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"sportfolio/backend/internal/utils"
)

type Service struct {
	fs *firestore.Client
}

func NewService(fs *firestore.Client) *Service {
	return &Service{fs: fs}
}

func (s *Service) facilitiesCol() *firestore.CollectionRef {
	return s.fs.Collection("facilities")
}

func (s *Service) bookingsCol(facilityID string) *firestore.CollectionRef {
	return s.facilitiesCol().Doc(facilityID).Collection("bookings")
}

func (s *Service) Create(ctx context.Context, managerUID string, input CreateFacilityInput) (*Facility, error) {
	input.Trim()
	managerUID = strings.TrimSpace(managerUID)

	if managerUID == "" {
		return nil, fmt.Errorf("%w: manager uid is required", ErrBadRequest)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}
	if input.HourlyRate < 0 {
		return nil, fmt.Errorf("%w: hourlyRate cannot be negative", ErrBadRequest)
	}
	for _, hhmm := range []string{input.OpensAt, input.ClosesAt} {
		if hhmm == "" {
			continue
		}
		if _, err := time.Parse("15:04", hhmm); err != nil {
			return nil, fmt.Errorf("%w: operating hours must be HH:MM", ErrBadRequest)
		}
	}

	now := time.Now().UTC()
	f := Facility{
		Name:           input.Name,
		ManagerUID:     managerUID,
		OrganizationID: input.OrganizationID,
		Sport:          input.Sport,
		City:           input.City,
		HourlyRate:     input.HourlyRate,
		OpensAt:        input.OpensAt,
		ClosesAt:       input.ClosesAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	ref := s.facilitiesCol().NewDoc()
	f.ID = ref.ID
	if _, err := ref.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("failed to create facility: %w", err)
	}
	return &f, nil
}

func (s *Service) Get(ctx context.Context, facilityID string) (*Facility, error) {
	facilityID = strings.TrimSpace(facilityID)
	if facilityID == "" {
		return nil, fmt.Errorf("%w: facilityId is required", ErrBadRequest)
	}
	doc, err := s.facilitiesCol().Doc(facilityID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: facility not found", ErrNotFound)
	}
	var f Facility
	if err := doc.DataTo(&f); err != nil {
		return nil, fmt.Errorf("failed to decode facility: %w", err)
	}
	if f.ID == "" {
		f.ID = facilityID
	}
	return &f, nil
}

func (s *Service) List(ctx context.Context, sport string, limit int) ([]Facility, error) {
	sport = strings.ToLower(strings.TrimSpace(sport))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.facilitiesCol().Query
	if sport != "" {
		query = query.Where("sport", "==", sport)
	}
	iter := query.Limit(limit).Documents(ctx)

	out := []Facility{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list facilities: %w", err)
		}
		var f Facility
		if err := doc.DataTo(&f); err != nil {
			continue
		}
		if f.ID == "" {
			f.ID = doc.Ref.ID
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *Service) parseSlot(input CreateBookingInput) (time.Time, time.Time, error) {
	input.Trim()
	start, err := utils.ParseTime(input.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start time", ErrBadRequest)
	}
	end, err := utils.ParseTime(input.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end time", ErrBadRequest)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start must be before end", ErrBadRequest)
	}
	return start.UTC(), end.UTC(), nil
}

// CheckAvailability is the advisory pre-check the UI calls before submitting.
// The authoritative check happens again inside CreateBooking's transaction.
func (s *Service) CheckAvailability(ctx context.Context, facilityID string, input CreateBookingInput) (bool, error) {
	start, end, err := s.parseSlot(input)
	if err != nil {
		return false, err
	}
	if _, err := s.Get(ctx, facilityID); err != nil {
		return false, err
	}

	iter := s.bookingsCol(facilityID).
		Where("status", "==", BookingConfirmed).
		Where("end", ">", start).
		Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return false, fmt.Errorf("failed to check bookings: %w", err)
		}
		var b Booking
		if err := doc.DataTo(&b); err != nil {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			return false, nil
		}
	}
	return true, nil
}

// CreateBooking books a slot. The conflict check and the write run in one
// Firestore transaction so two concurrent bookings for the same slot cannot
// both commit.
func (s *Service) CreateBooking(ctx context.Context, userUID, facilityID string, input CreateBookingInput) (*Booking, error) {
	userUID = strings.TrimSpace(userUID)
	facilityID = strings.TrimSpace(facilityID)
	if userUID == "" || facilityID == "" {
		return nil, fmt.Errorf("%w: uid and facilityId are required", ErrBadRequest)
	}

	start, end, err := s.parseSlot(input)
	if err != nil {
		return nil, err
	}

	f, err := s.Get(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if !WithinOperatingHours(*f, start, end) {
		return nil, fmt.Errorf("%w: slot is outside operating hours %s-%s", ErrBadRequest, f.OpensAt, f.ClosesAt)
	}

	now := time.Now().UTC()
	booking := Booking{
		ID:         uuid.NewString(),
		FacilityID: facilityID,
		UserUID:    userUID,
		Start:      start,
		End:        end,
		Status:     BookingConfirmed,
		Price:      priceFor(f.HourlyRate, start, end),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	ref := s.bookingsCol(facilityID).Doc(booking.ID)

	err = s.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		query := s.bookingsCol(facilityID).
			Where("status", "==", BookingConfirmed).
			Where("end", ">", start)
		iter := tx.Documents(query)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to check bookings: %w", err)
			}
			var b Booking
			if err := doc.DataTo(&b); err != nil {
				continue
			}
			if Overlaps(start, end, b.Start, b.End) {
				return fmt.Errorf("%w: %s to %s", ErrSlotTaken,
					b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
			}
		}
		return tx.Create(ref, booking)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking cancels a booking. Only the booker or the facility manager
// may cancel.
func (s *Service) CancelBooking(ctx context.Context, actorUID, facilityID, bookingID string) (*Booking, error) {
	actorUID = strings.TrimSpace(actorUID)
	f, err := s.Get(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	ref := s.bookingsCol(facilityID).Doc(bookingID)
	doc, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: booking not found", ErrNotFound)
	}
	var b Booking
	if err := doc.DataTo(&b); err != nil {
		return nil, fmt.Errorf("failed to decode booking: %w", err)
	}
	b.ID = doc.Ref.ID

	if actorUID != b.UserUID && actorUID != f.ManagerUID {
		return nil, fmt.Errorf("%w: only the booker or the facility manager can cancel", ErrUnauthorized)
	}

	now := time.Now().UTC()
	if _, err := ref.Set(ctx, map[string]interface{}{
		"status":    BookingCancelled,
		"updatedAt": now,
	}, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	b.Status = BookingCancelled
	b.UpdatedAt = now
	return &b, nil
}

// ListBookings returns confirmed bookings for a facility ending after `from`.
func (s *Service) ListBookings(ctx context.Context, facilityID string, from time.Time, limit int) ([]Booking, error) {
	facilityID = strings.TrimSpace(facilityID)
	if facilityID == "" {
		return nil, fmt.Errorf("%w: facilityId is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	iter := s.bookingsCol(facilityID).
		Where("status", "==", BookingConfirmed).
		Where("end", ">", from).
		OrderBy("end", firestore.Asc).
		Limit(limit).
		Documents(ctx)

	out := []Booking{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list bookings: %w", err)
		}
		var b Booking
		if err := doc.DataTo(&b); err != nil {
			continue
		}
		b.ID = doc.Ref.ID
		out = append(out, b)
	}
	return out, nil
}

// priceFor charges the hourly rate pro-rated to the minute.
func priceFor(hourlyRate int64, start, end time.Time) int64 {
	minutes := int64(end.Sub(start) / time.Minute)
	return hourlyRate * minutes / 60
}
