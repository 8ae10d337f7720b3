package repository

import (
	"context"
	"testing"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSettingRepo_GetMissingKey(t *testing.T) {
	repo := NewSettingRepository(newMigratedDB(t))
	s, err := repo.Get(context.Background(), model.SettingFormConfig)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSettingRepo_UpsertReplacesWholeValue(t *testing.T) {
	ctx := context.Background()
	db := newMigratedDB(t)
	repo := NewSettingRepository(db)

	require.NoError(t, repo.Upsert(ctx, model.SettingFormConfig, datatypes.JSON(`{"phone":{"visible":false},"notes":{"visible":false}}`)))
	require.NoError(t, repo.Upsert(ctx, model.SettingFormConfig, datatypes.JSON(`{"phone":{"visible":true}}`)))

	s, err := repo.Get(ctx, model.SettingFormConfig)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.JSONEq(t, `{"phone":{"visible":true}}`, string(s.Value))

	var rows int64
	require.NoError(t, db.Model(&model.AppSetting{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}
