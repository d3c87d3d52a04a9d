package organization

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection("organizations")
}

func (r *Repo) Create(ctx context.Context, org Organization) (*Organization, error) {
	ref := r.col().NewDoc()
	org.ID = ref.ID
	if _, err := ref.Create(ctx, org); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *Repo) Get(ctx context.Context, orgID string) (*Organization, error) {
	doc, err := r.col().Doc(orgID).Get(ctx)
	if err != nil {
		return nil, err
	}
	var org Organization
	if err := doc.DataTo(&org); err != nil {
		return nil, err
	}
	if org.ID == "" {
		org.ID = orgID
	}
	return &org, nil
}

func (r *Repo) Set(ctx context.Context, orgID string, updates map[string]interface{}) error {
	_, err := r.col().Doc(orgID).Set(ctx, updates, firestore.MergeAll)
	return err
}

// prefixRange returns the [lo, hi) bounds for a nameLower prefix scan.
// "\uf8ff" sorts after every assigned code point, so hi caps the prefix.
func prefixRange(q string) (string, string) {
	return q, q + "\uf8ff"
}

// SearchByNamePrefix does a nameLower range scan; empty query returns the
// most recent organizations.
func (r *Repo) SearchByNamePrefix(ctx context.Context, q string, limit int) ([]Organization, error) {
	q = strings.TrimSpace(strings.ToLower(q))

	var it *firestore.DocumentIterator
	if q == "" {
		it = r.col().OrderBy("createdAt", firestore.Desc).Limit(limit).Documents(ctx)
	} else {
		lo, hi := prefixRange(q)
		it = r.col().Where("nameLower", ">=", lo).
			Where("nameLower", "<", hi).
			OrderBy("nameLower", firestore.Asc).
			Limit(limit).
			Documents(ctx)
	}

	out := []Organization{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var org Organization
		if err := doc.DataTo(&org); err != nil {
			return nil, err
		}
		if org.ID == "" {
			org.ID = doc.Ref.ID
		}
		out = append(out, org)
	}
	return out, nil
}

// IsStaff reports whether uid is the owner or listed staff of the organization.
func (r *Repo) IsStaff(ctx context.Context, orgID, uid string) (bool, error) {
	org, err := r.Get(ctx, orgID)
	if err != nil {
		return false, err
	}
	if org.OwnerUID == uid {
		return true, nil
	}
	for _, s := range org.StaffUids {
		if s == uid {
			return true, nil
		}
	}
	return false, nil
}
