package repository

import (
	"context"
	"errors"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository reads and upserts app_settings rows by key.
type SettingRepository interface {
	// Get returns nil, nil when the key has never been stored.
	Get(ctx context.Context, key string) (*model.AppSetting, error)
	// Upsert replaces the whole value stored under key.
	Upsert(ctx context.Context, key string, value datatypes.JSON) error
}

type settingRepository struct{ db *gorm.DB }

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*model.AppSetting, error) {
	var s model.AppSetting
	err := r.db.WithContext(ctx).Where(&model.AppSetting{Key: key}).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingRepository) Upsert(ctx context.Context, key string, value datatypes.JSON) error {
	row := &model.AppSetting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(row).Error
}
