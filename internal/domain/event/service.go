package event

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"sportfolio/backend/internal/utils"
)

type Service struct {
	fs *firestore.Client
}

func NewService(fs *firestore.Client) *Service {
	return &Service{fs: fs}
}

func (s *Service) eventsCol() *firestore.CollectionRef {
	return s.fs.Collection("events")
}

func (s *Service) participantsCol(eventID string) *firestore.CollectionRef {
	return s.eventsCol().Doc(eventID).Collection("participants")
}

func (s *Service) Create(ctx context.Context, organizerUID string, input CreateEventInput) (*Event, error) {
	input.Trim()
	organizerUID = strings.TrimSpace(organizerUID)

	if organizerUID == "" {
		return nil, fmt.Errorf("%w: organizer uid is required", ErrBadRequest)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrBadRequest)
	}

	start, err := utils.ParseTime(input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startDate", ErrBadRequest)
	}
	end, err := utils.ParseTime(input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endDate", ErrBadRequest)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: startDate must not be after endDate", ErrBadRequest)
	}

	deadline := start
	if input.RegistrationDeadline != "" {
		deadline, err = utils.ParseTime(input.RegistrationDeadline)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid registrationDeadline", ErrBadRequest)
		}
		if deadline.After(start) {
			return nil, fmt.Errorf("%w: registrationDeadline must not be after startDate", ErrBadRequest)
		}
	}
	if input.MaxParticipants < 0 {
		return nil, fmt.Errorf("%w: maxParticipants cannot be negative", ErrBadRequest)
	}

	now := time.Now().UTC()
	e := Event{
		Name:                 input.Name,
		Sport:                input.Sport,
		OrganizerUID:         organizerUID,
		StartDate:            start.UTC(),
		EndDate:              end.UTC(),
		RegistrationDeadline: deadline.UTC(),
		MaxParticipants:      input.MaxParticipants,
		Status:               StatusUpcoming,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	ref := s.eventsCol().NewDoc()
	e.ID = ref.ID
	if _, err := ref.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &e, nil
}

func (s *Service) Get(ctx context.Context, eventID string) (*Event, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: eventId is required", ErrBadRequest)
	}
	doc, err := s.eventsCol().Doc(eventID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: event not found", ErrNotFound)
	}
	var e Event
	if err := doc.DataTo(&e); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if e.ID == "" {
		e.ID = eventID
	}
	return &e, nil
}

func (s *Service) List(ctx context.Context, sport string, limit int) ([]Event, error) {
	sport = strings.ToLower(strings.TrimSpace(sport))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := s.eventsCol().Query
	if sport != "" {
		query = query.Where("sport", "==", sport)
	}
	iter := query.OrderBy("startDate", firestore.Asc).Limit(limit).Documents(ctx)

	out := []Event{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}
		var e Event
		if err := doc.DataTo(&e); err != nil {
			continue
		}
		if e.ID == "" {
			e.ID = doc.Ref.ID
		}
		out = append(out, e)
	}
	return out, nil
}

// Register adds a participant before the deadline, respecting capacity.
// The capacity check and the write share a transaction.
func (s *Service) Register(ctx context.Context, uid, eventID string, input RegisterInput) (*Participant, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}

	e, err := s.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if now.After(e.RegistrationDeadline) {
		return nil, fmt.Errorf("%w: deadline was %s", ErrRegistrationOver, e.RegistrationDeadline.Format(time.RFC3339))
	}

	p := Participant{
		UID:          uid,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		RegisteredAt: now,
	}
	ref := s.participantsCol(eventID).Doc(uid)

	err = s.fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if doc, err := tx.Get(ref); err == nil && doc.Exists() {
			return fmt.Errorf("%w: already registered", ErrBadRequest)
		}

		if e.MaxParticipants > 0 {
			iter := tx.Documents(s.participantsCol(eventID).Query)
			count := 0
			for {
				_, err := iter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					return fmt.Errorf("failed to count participants: %w", err)
				}
				count++
			}
			if count >= e.MaxParticipants {
				return fmt.Errorf("%w: %d participants max", ErrEventFull, e.MaxParticipants)
			}
		}

		return tx.Create(ref, p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) ListParticipants(ctx context.Context, eventID string) ([]Participant, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: eventId is required", ErrBadRequest)
	}

	iter := s.participantsCol(eventID).OrderBy("registeredAt", firestore.Asc).Documents(ctx)
	out := []Participant{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list participants: %w", err)
		}
		var p Participant
		if err := doc.DataTo(&p); err != nil {
			continue
		}
		if p.UID == "" {
			p.UID = doc.Ref.ID
		}
		out = append(out, p)
	}
	return out, nil
}

// Bracket draws a first round from the confirmed participants.
func (s *Service) Bracket(ctx context.Context, eventID string, seed int64) ([]Pairing, error) {
	participants, err := s.ListParticipants(ctx, eventID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(participants))
	for _, p := range participants {
		name := p.DisplayName
		if name == "" {
			name = p.UID
		}
		names = append(names, name)
	}
	return GenerateBracket(names, seed), nil
}
