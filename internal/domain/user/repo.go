package user

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Get(ctx context.Context, uid string) (*Profile, error) {
	doc, err := r.fs.Collection("users").Doc(uid).Get(ctx)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := doc.DataTo(&p); err != nil {
		return nil, err
	}
	if p.UID == "" {
		p.UID = uid
	}
	return &p, nil
}

// UpsertMinimal keeps uid/email fresh on every login. First contact also
// seeds the approval and subscription defaults; later calls must not touch
// them, the pipeline and the billing webhook own those fields.
func (r *Repo) UpsertMinimal(ctx context.Context, uid, email string) error {
	ref := r.fs.Collection("users").Doc(uid)
	now := time.Now().UTC()

	updates := map[string]any{
		"uid":       uid,
		"email":     email,
		"updatedAt": now,
	}
	if doc, err := ref.Get(ctx); err != nil || !doc.Exists() {
		for k, v := range seedDefaults(now) {
			updates[k] = v
		}
	}

	_, err := ref.Set(ctx, updates, firestore.MergeAll)
	return err
}
