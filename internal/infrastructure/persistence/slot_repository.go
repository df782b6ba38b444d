package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/persistence/models"
	"github.com/nounthanith/localbrand-frontend/internal/infrastructure/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSlotRepository stores session slots in the storage_slots table
type GormSlotRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormSlotRepository creates a new GormSlotRepository
func NewGormSlotRepository(db *gorm.DB) *GormSlotRepository {
	return &GormSlotRepository{db: db, now: time.Now}
}

// GetSlot implements storage.Backend
func (r *GormSlotRepository) GetSlot(ctx context.Context, sessionID, key string) (string, bool, error) {
	var model models.StorageSlotModel
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND key = ?", sessionID, key).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return model.Value, true, nil
}

// SetSlot implements storage.Backend, inserting or overwriting the slot
func (r *GormSlotRepository) SetSlot(ctx context.Context, sessionID, key, value string) error {
	model := models.StorageSlotModel{
		SessionID: sessionID,
		Key:       key,
		Value:     value,
		UpdatedAt: r.now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model).Error
}

// DeleteSlot implements storage.Backend
func (r *GormSlotRepository) DeleteSlot(ctx context.Context, sessionID, key string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND key = ?", sessionID, key).
		Delete(&models.StorageSlotModel{}).Error
}

// PurgeBefore removes slots not written since cutoff and returns how many
// rows were deleted. Abandoned visitor sessions are reclaimed this way.
func (r *GormSlotRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ?", cutoff.UTC()).
		Delete(&models.StorageSlotModel{})
	return result.RowsAffected, result.Error
}

var _ storage.Backend = (*GormSlotRepository)(nil)
