// Package store persists named profiles for the solve service.
//
// A stored profile is a request definition, not a computed layout: the
// distributor itself stays pure and stateless. Profiles are kept in their
// canonical JSON form alongside a little bookkeeping (id, timestamps).
//
// Two implementations are provided: [MemoryStore] for tests and single
// process runs, and [MongoStore] for deployments where several service
// replicas share one catalog.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/flexline/pkg/errors"
	"github.com/matzehuels/flexline/pkg/profile"
)

// Record is the stored form of a profile.
type Record struct {
	ID         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Definition string    `bson:"definition" json:"definition"` // canonical profile JSON
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// Profile decodes the record's definition.
func (r Record) Profile() (profile.Profile, error) {
	return profile.UnmarshalProfile([]byte(r.Definition))
}

// Store is a named-profile catalog. Put upserts by profile name.
type Store interface {
	Put(ctx context.Context, p profile.Profile) (Record, error)
	Get(ctx context.Context, name string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, name string) error
	Close(ctx context.Context) error
}

// encode validates the profile and produces its canonical definition.
func encode(p profile.Profile) (string, error) {
	if err := errors.ValidateProfileName(p.Name); err != nil {
		return "", err
	}
	if err := p.Validate(); err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidProfile, err, "profile %q", p.Name)
	}
	data, err := profile.MarshalProfile(p)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode profile %q", p.Name)
	}
	return string(data), nil
}
