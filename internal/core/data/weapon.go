package data

import (
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Weapon is a weapon known to the world. ID doubles as the in-game handle.
type Weapon struct {
	ID uint64 `gorm:"primaryKey;autoIncrement:false"`

	Name        string `gorm:"not null"`
	ItemState   uint8
	ActionState uint8
	Skeleton    string
	Socket      string

	LocationX float64
	LocationY float64
	LocationZ float64
	FacingX   float64
	FacingY   float64
	FacingZ   float64

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}

// FindWeapons returns every live weapon ordered by ID.
func FindWeapons(db *gorm.DB) ([]Weapon, error) {
	var weapons []Weapon
	if err := db.Order("id").Find(&weapons).Error; err != nil {
		return nil, err
	}
	return weapons, nil
}

// FindWeapon returns the weapon with the given ID or nil if none exists.
func FindWeapon(db *gorm.DB, id uint64) (*Weapon, error) {
	var weapon Weapon
	err := db.First(&weapon, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &weapon, nil
}

// UpsertWeapon inserts weapon or overwrites the row with the same ID.
func UpsertWeapon(db *gorm.DB, weapon *Weapon) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(weapon).Error
}

// DeleteWeapon soft-deletes a weapon record.
func DeleteWeapon(db *gorm.DB, id uint64) error {
	return db.Delete(&Weapon{}, id).Error
}

// NextWeaponID returns an ID no weapon, live or deleted, has used.
func NextWeaponID(db *gorm.DB) (uint64, error) {
	var max sql.NullInt64
	if err := db.Unscoped().Model(&Weapon{}).Select("MAX(id)").Row().Scan(&max); err != nil {
		return 0, err
	}
	if !max.Valid {
		return 1, nil
	}
	return uint64(max.Int64) + 1, nil
}
