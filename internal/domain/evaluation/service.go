package evaluation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
)

type Service struct {
	fs *firestore.Client
}

func NewService(fs *firestore.Client) *Service {
	return &Service{fs: fs}
}

func (s *Service) col() *firestore.CollectionRef {
	return s.fs.Collection("evaluations")
}

func (s *Service) Create(ctx context.Context, evaluatorUID string, input CreateInput) (*Evaluation, error) {
	input.Trim()
	evaluatorUID = strings.TrimSpace(evaluatorUID)

	if evaluatorUID == "" || input.PlayerUID == "" {
		return nil, fmt.Errorf("%w: evaluator and playerUid are required", ErrBadRequest)
	}
	if evaluatorUID == input.PlayerUID {
		return nil, fmt.Errorf("%w: players cannot evaluate themselves", ErrBadRequest)
	}
	if len(input.TechnicalSkills) == 0 {
		return nil, fmt.Errorf("%w: at least one technical skill score is required", ErrBadRequest)
	}
	for name, score := range input.TechnicalSkills {
		if score < 1 || score > 10 {
			return nil, fmt.Errorf("%w: score for %q must be between 1 and 10", ErrBadRequest, name)
		}
	}

	now := time.Now().UTC()
	e := Evaluation{
		ID:              uuid.NewString(),
		PlayerUID:       input.PlayerUID,
		EvaluatorUID:    evaluatorUID,
		TechnicalSkills: input.TechnicalSkills,
		Weights:         input.Weights,
		OverallRating:   OverallRating(input.TechnicalSkills, input.Weights),
		Comments:        input.Comments,
		IsApproved:      false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := s.col().Doc(e.ID).Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create evaluation: %w", err)
	}
	return &e, nil
}

func (s *Service) ListForPlayer(ctx context.Context, playerUID string, approvedOnly bool, limit int) ([]Evaluation, error) {
	playerUID = strings.TrimSpace(playerUID)
	if playerUID == "" {
		return nil, fmt.Errorf("%w: playerUid is required", ErrBadRequest)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.col().Where("playerUid", "==", playerUID)
	if approvedOnly {
		query = query.Where("isApproved", "==", true)
	}
	iter := query.OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)

	out := []Evaluation{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list evaluations: %w", err)
		}
		var e Evaluation
		if err := doc.DataTo(&e); err != nil {
			continue
		}
		e.ID = doc.Ref.ID
		out = append(out, e)
	}
	return out, nil
}

// Approve marks an evaluation as admin-approved, making it visible to the
// player's profile.
func (s *Service) Approve(ctx context.Context, adminUID, evaluationID string) (*Evaluation, error) {
	evaluationID = strings.TrimSpace(evaluationID)
	if evaluationID == "" {
		return nil, fmt.Errorf("%w: evaluation id is required", ErrBadRequest)
	}

	ref := s.col().Doc(evaluationID)
	doc, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: evaluation not found", ErrNotFound)
	}

	var e Evaluation
	if err := doc.DataTo(&e); err != nil {
		return nil, fmt.Errorf("failed to decode evaluation: %w", err)
	}
	e.ID = doc.Ref.ID

	now := time.Now().UTC()
	if _, err := ref.Set(ctx, map[string]interface{}{
		"isApproved": true,
		"approvedBy": adminUID,
		"updatedAt":  now,
	}, firestore.MergeAll); err != nil {
		return nil, fmt.Errorf("failed to approve evaluation: %w", err)
	}
	e.IsApproved = true
	e.UpdatedAt = now
	return &e, nil
}
