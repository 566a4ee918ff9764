package data

import (
	"errors"

	"gorm.io/gorm"
)

// PlayerOptions holds per-character preferences, currently the input layout.
type PlayerOptions struct {
	ID uint64 `gorm:"primaryKey"`

	Character   *Character
	CharacterID uint64 `gorm:"uniqueIndex"`

	// Action name -> handler name.
	KeyConfig map[string]string `gorm:"serializer:json"`
}

// FindPlayerOptions returns the PlayerOptions associated with a Character.
func FindPlayerOptions(db *gorm.DB, characterID uint64) (*PlayerOptions, error) {
	var playerOptions PlayerOptions
	err := db.Where("character_id = ?", characterID).First(&playerOptions).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &playerOptions, nil
}

func CreatePlayerOptions(db *gorm.DB, po *PlayerOptions) error {
	return db.Create(po).Error
}

func UpdatePlayerOptions(db *gorm.DB, po *PlayerOptions) error {
	return db.Save(po).Error
}
