package models

import "time"

// StorageSlotModel is one named slot of one visitor session
type StorageSlotModel struct {
	SessionID string    `gorm:"primaryKey;size:128"`
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StorageSlotModel) TableName() string {
	return "storage_slots"
}
