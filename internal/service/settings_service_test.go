package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestFormConfig_DefaultsWhenNothingStored(t *testing.T) {
	svc := NewSettingsService(newStubSettingRepo(), newStubOptionRepo())
	cfg, err := svc.GetFormConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dto.DefaultFormConfig(), cfg)
}

func TestFormConfig_SaveHidesFieldAndKeepsDefaults(t *testing.T) {
	settings := newStubSettingRepo()
	svc := NewSettingsService(settings, newStubOptionRepo())
	ctx := context.Background()

	merged, err := svc.SaveFormConfig(ctx, dto.FormConfig{"phone": {Visible: boolPtr(false)}})
	require.NoError(t, err)
	require.NotNil(t, merged["phone"].Visible)
	assert.False(t, *merged["phone"].Visible)
	assert.True(t, *merged["notes"].Visible)

	got, err := svc.GetFormConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, merged, got)

	// Stored blob holds only what was sent.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(settings.values[model.SettingFormConfig], &raw))
	assert.Len(t, raw, 1)
}

func TestFormConfig_RejectsEmptyKey(t *testing.T) {
	svc := NewSettingsService(newStubSettingRepo(), newStubOptionRepo())
	_, err := svc.SaveFormConfig(context.Background(), dto.FormConfig{" ": {Visible: boolPtr(true)}})
	assert.ErrorIs(t, err, ErrInvalidSetting)
}

func TestProductColors_DefaultsPlusActiveTypes(t *testing.T) {
	options := newStubOptionRepo(
		model.ProductOption{Category: model.CategoryProductType, Label: "Ortopédica", Value: "Ortopedica", IsActive: true},
		model.ProductOption{Category: model.CategoryProductType, Label: "Vieja", Value: "Vieja", IsActive: false},
	)
	svc := NewSettingsService(newStubSettingRepo(), options)

	colors, err := svc.GetProductColors(context.Background())
	require.NoError(t, err)
	for _, pt := range dto.DefaultProductTypes {
		assert.Equal(t, dto.DefaultColors, colors[pt])
	}
	assert.Equal(t, dto.DefaultColors, colors["Ortopedica"])
	assert.NotContains(t, colors, "Vieja")
}

func TestProductColors_SaveTrimsAndRoundTrips(t *testing.T) {
	svc := NewSettingsService(newStubSettingRepo(), newStubOptionRepo())
	ctx := context.Background()

	saved, err := svc.SaveProductColors(ctx, dto.ProductColors{" Kids ": {" Rosa", "", "Celeste "}})
	require.NoError(t, err)
	assert.Equal(t, dto.ProductColors{"Kids": {"Rosa", "Celeste"}}, saved)

	got, err := svc.GetProductColors(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.ProductColors{"Kids": {"Rosa", "Celeste"}}, got)
}

func TestProductColors_RejectsEmptyList(t *testing.T) {
	svc := NewSettingsService(newStubSettingRepo(), newStubOptionRepo())
	_, err := svc.SaveProductColors(context.Background(), dto.ProductColors{"Kids": {" "}})
	assert.ErrorIs(t, err, ErrInvalidSetting)
}
