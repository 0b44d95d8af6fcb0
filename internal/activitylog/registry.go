package activitylog

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrUnknownKind = errors.New("unknown subject kind")

// Resolver loads one subject instance by id.
type Resolver func(ctx context.Context, db *gorm.DB, id uint) (any, error)

// Registry maps subject kinds to lookup functions so polymorphic
// (subject_type, subject_id) pairs in historical entries can be re-hydrated.
// Unknown kinds are an error; a vanished instance is not, since history must
// stay readable after its subject is gone.
type Registry struct {
	resolvers map[string]Resolver
}

func NewRegistry() *Registry {
	return &Registry{resolvers: make(map[string]Resolver)}
}

func (r *Registry) Register(kind string, fn Resolver) {
	r.resolvers[kind] = fn
}

func (r *Registry) Known(kind string) bool {
	_, ok := r.resolvers[kind]
	return ok
}

// Resolve returns (nil, nil) when the subject no longer exists.
func (r *Registry) Resolve(ctx context.Context, db *gorm.DB, kind string, id uint) (any, error) {
	fn, ok := r.resolvers[kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	subject, err := fn(ctx, db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return subject, nil
}

// ModelResolver builds a Resolver for a plain gorm model.
func ModelResolver[T any]() Resolver {
	return func(ctx context.Context, db *gorm.DB, id uint) (any, error) {
		var m T
		if err := db.WithContext(ctx).First(&m, id).Error; err != nil {
			return nil, err
		}
		return &m, nil
	}
}
