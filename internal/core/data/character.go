package data

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Character is the persisted state of a player character, keyed by name.
type Character struct {
	ID uint64 `gorm:"primaryKey"`

	Name  string `gorm:"uniqueIndex; not null"`
	State uint8
	// Handle of the held weapon, if any.
	EquippedWeaponID *uint64
	ZoomFactor       float64

	LocationX float64
	LocationY float64
	LocationZ float64

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

// FindCharacter returns the Character with the given name or nil if none exists.
func FindCharacter(db *gorm.DB, name string) (*Character, error) {
	var character Character
	err := db.Where("name = ?", name).First(&character).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &character, nil
}

// UpsertCharacter writes character, replacing any existing row with the same
// name. A soft-deleted row of that name is revived.
func UpsertCharacter(db *gorm.DB, character *Character) error {
	var existing Character
	err := db.Unscoped().Where("name = ?", character.Name).First(&existing).Error
	switch {
	case err == nil:
		character.ID = existing.ID
		character.CreatedAt = existing.CreatedAt
		character.DeletedAt = gorm.DeletedAt{}
		return db.Unscoped().Save(character).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.Create(character).Error
	default:
		return err
	}
}

// DeleteCharacter soft-deletes a character record from the database.
func DeleteCharacter(db *gorm.DB, name string) error {
	character, err := FindCharacter(db, name)
	if err != nil {
		return err
	} else if character != nil {
		return db.Delete(character).Error
	}
	return nil
}

// PermanentlyDeleteCharacter permanently deletes a character record from the database.
func PermanentlyDeleteCharacter(db *gorm.DB, character *Character) error {
	return db.Unscoped().Delete(character).Error
}
