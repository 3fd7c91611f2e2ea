package note

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("note not found")

// Store is the durable note store. It is the single source of truth; the
// registered-region set is derived from it and never the other way around.
// Mutations republish the full note list to Watch subscribers.
type Store struct {
	DB  *gorm.DB
	hub *watchHub
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db, hub: newWatchHub()}
}

// Insert creates the note and assigns its id.
func (s *Store) Insert(ctx context.Context, n *Note) error {
	if err := s.DB.WithContext(ctx).Create(n).Error; err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// Update writes the note identified by its primary key.
func (s *Store) Update(ctx context.Context, n *Note) error {
	// Save writes every column so that false/0 values stick.
	if err := s.DB.WithContext(ctx).Save(n).Error; err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// Delete removes the note identified by its primary key.
func (s *Store) Delete(ctx context.Context, n *Note) error {
	if err := s.DB.WithContext(ctx).Delete(&Note{}, n.ID).Error; err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

// GetByID returns the note or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (*Note, error) {
	var n Note
	if err := s.DB.WithContext(ctx).First(&n, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// All returns every note, newest id first.
func (s *Store) All(ctx context.Context) ([]Note, error) {
	var out []Note
	if err := s.DB.WithContext(ctx).Order("id desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Geofenceable returns the notes satisfying the participation predicate.
// The WHERE clause mirrors Note.Geofenceable.
func (s *Store) Geofenceable(ctx context.Context) ([]Note, error) {
	var out []Note
	err := s.DB.WithContext(ctx).
		Where("is_active = ? AND (latitude != 0 OR longitude != 0)", true).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Watch returns a stream that receives the full note list (newest first)
// after every mutation. The channel is closed when ctx is done. Slow
// consumers observe latest-wins: intermediate lists may be skipped.
func (s *Store) Watch(ctx context.Context) <-chan []Note {
	return s.hub.subscribe(ctx)
}

func (s *Store) publish(ctx context.Context) {
	if !s.hub.hasSubscribers() {
		return
	}
	list, err := s.All(ctx)
	if err != nil {
		return
	}
	s.hub.publish(list)
}
