package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors.
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardCollectionIDEmpty is returned when a card's collection ID is empty or nil.
	ErrCardCollectionIDEmpty = errors.New("card collection ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card's front text is empty.
	ErrCardFrontEmpty = errors.New("card front text cannot be empty")

	// ErrCardBackEmpty is returned when a card's back text is empty.
	ErrCardBackEmpty = errors.New("card back text cannot be empty")
)

// Card is a two-sided flashcard belonging to a collection. The order in
// which cards were added to a collection is significant: the to-learn
// queue presents due cards in insertion order.
type Card struct {
	ID           uuid.UUID `json:"id"`
	CollectionID uuid.UUID `json:"collection_id"`
	FrontText    string    `json:"front_text"`
	BackText     string    `json:"back_text"`
	Example      string    `json:"example,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewCard creates a new Card in the given collection.
func NewCard(collectionID uuid.UUID, frontText, backText, example string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:           uuid.New(),
		CollectionID: collectionID,
		FrontText:    frontText,
		BackText:     backText,
		Example:      example,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.CollectionID == uuid.Nil {
		return ErrCardCollectionIDEmpty
	}

	if c.FrontText == "" {
		return ErrCardFrontEmpty
	}

	if c.BackText == "" {
		return ErrCardBackEmpty
	}

	return nil
}
