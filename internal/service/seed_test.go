package service

import (
	"context"
	"testing"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaults_Idempotent(t *testing.T) {
	options := newStubOptionRepo()
	settings := newStubSettingRepo()
	ctx := context.Background()

	res, err := SeedDefaults(ctx, options, settings)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultOptions()), res.Options)
	assert.ElementsMatch(t, []string{model.SettingFormConfig, model.SettingProductsColors}, res.Settings)

	res, err = SeedDefaults(ctx, options, settings)
	require.NoError(t, err)
	assert.Zero(t, res.Options)
	assert.Empty(t, res.Settings)

	n, _ := options.Count(ctx)
	assert.Equal(t, int64(len(DefaultOptions())), n)
}

func TestDefaultOptions_ContainUnlockingValues(t *testing.T) {
	var rearfoot, posterior []string
	for _, o := range DefaultOptions() {
		switch o.Category {
		case model.CategoryRearfoot:
			rearfoot = append(rearfoot, o.Value)
		case model.CategoryPosteriorWedge:
			posterior = append(posterior, o.Value)
		}
	}
	assert.Contains(t, rearfoot, model.HeelRaiseOption)
	assert.Equal(t, model.NoOption, posterior[0])
}
