package evaluation

import (
	"math"
	"strings"
	"time"
)

// Evaluation is a scored assessment of a player by an evaluator.
type Evaluation struct {
	ID           string `firestore:"-" json:"id"`
	PlayerUID    string `firestore:"playerUid" json:"playerUid"`
	EvaluatorUID string `firestore:"evaluatorUid" json:"evaluatorUid"`

	TechnicalSkills map[string]int     `firestore:"technicalSkills" json:"technicalSkills"`
	Weights         map[string]float64 `firestore:"weights,omitempty" json:"weights,omitempty"`
	OverallRating   float64            `firestore:"overallRating" json:"overallRating"`

	Comments   string `firestore:"comments,omitempty" json:"comments,omitempty"`
	IsApproved bool   `firestore:"isApproved" json:"isApproved"`

	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

type CreateInput struct {
	PlayerUID       string             `json:"playerUid"`
	TechnicalSkills map[string]int     `json:"technicalSkills"`
	Weights         map[string]float64 `json:"weights,omitempty"`
	Comments        string             `json:"comments,omitempty"`
}

func (in *CreateInput) Trim() {
	in.PlayerUID = strings.TrimSpace(in.PlayerUID)
	in.Comments = strings.TrimSpace(in.Comments)
}

// OverallRating is the weighted average of the sub-scores, rounded to one
// decimal. Missing weights default to equal weighting.
func OverallRating(skills map[string]int, weights map[string]float64) float64 {
	if len(skills) == 0 {
		return 0
	}

	var sum, totalWeight float64
	for name, score := range skills {
		w := 1.0
		if weights != nil {
			if ww, ok := weights[name]; ok && ww > 0 {
				w = ww
			}
		}
		sum += float64(score) * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0
	}
	return math.Round(sum/totalWeight*10) / 10
}
