package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Collection-specific validation errors.
var (
	// ErrCollectionIDEmpty is returned when a collection ID is empty or nil.
	ErrCollectionIDEmpty = errors.New("collection ID cannot be empty")

	// ErrCollectionOwnerEmpty is returned when a collection's owner ID is empty or nil.
	ErrCollectionOwnerEmpty = errors.New("collection owner ID cannot be empty")

	// ErrCollectionNameEmpty is returned when a collection's name is empty.
	ErrCollectionNameEmpty = errors.New("collection name cannot be empty")
)

// Collection is a named set of cards owned by a user. Cards belong to
// exactly one collection; deleting a collection deletes its cards and,
// through them, any learning progress recorded against them.
type Collection struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCollection creates a new private Collection owned by the given user.
func NewCollection(ownerID uuid.UUID, name, description string) (*Collection, error) {
	now := time.Now().UTC()
	collection := &Collection{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		IsPublic:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := collection.Validate(); err != nil {
		return nil, err
	}

	return collection, nil
}

// Validate checks if the Collection has valid data.
func (c *Collection) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCollectionIDEmpty
	}

	if c.OwnerID == uuid.Nil {
		return ErrCollectionOwnerEmpty
	}

	if c.Name == "" {
		return ErrCollectionNameEmpty
	}

	return nil
}

// IsAccessibleBy reports whether the given user may read the collection
// and study its cards: the collection is public or the user owns it.
func (c *Collection) IsAccessibleBy(userID uuid.UUID) bool {
	return c.IsPublic || c.OwnerID == userID
}
