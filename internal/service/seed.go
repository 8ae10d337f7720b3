package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

// SeedResult reports what SeedDefaults wrote.
type SeedResult struct {
	Options  int
	Settings []string
}

// DefaultOptions is the option catalogue of a fresh install.
func DefaultOptions() []model.ProductOption {
	var out []model.ProductOption
	add := func(category string, values ...string) {
		for i, v := range values {
			out = append(out, model.ProductOption{Category: category, Label: v, Value: v, OrderIndex: i, IsActive: true})
		}
	}
	add(model.CategoryProductType, dto.DefaultProductTypes...)
	add(model.CategoryForefoot, model.NoneOption, "Barra metatarsal", "Oliva metatarsal", "Descarga de hallux")
	add(model.CategoryAnteriorWedge, model.NoneOption, "Cuña pronadora", "Cuña supinadora")
	add(model.CategoryMidfootArch, model.NoneOption, "Arco bajo", "Arco medio", "Arco alto")
	add(model.CategoryMidfootExternalWedge, model.NoneOption, "Cuña externa")
	add(model.CategoryRearfoot, model.NoneOption, "Taloneta", "Descarga de espolón", model.HeelRaiseOption)
	add(model.CategoryPosteriorWedge, model.NoOption, "Cuña varizante", "Cuña valguizante")
	sizes := make([]string, 0, 13)
	for s := 34; s <= 46; s++ {
		sizes = append(sizes, strconv.Itoa(s))
	}
	add(model.CategoryTemplateSize, sizes...)
	return out
}

// SeedDefaults writes the default options when the options table is empty
// and the default settings that were never stored. Running it twice writes
// nothing the second time.
func SeedDefaults(ctx context.Context, options repository.ProductOptionRepository, settings repository.SettingRepository) (*SeedResult, error) {
	res := &SeedResult{}

	n, err := options.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		for _, o := range DefaultOptions() {
			o := o
			if err := options.Create(ctx, &o); err != nil {
				return nil, fmt.Errorf("seed option %s/%s: %w", o.Category, o.Value, err)
			}
			res.Options++
		}
	}

	svc := &settingsService{settings: settings, options: options}
	defaults := map[string]any{
		model.SettingFormConfig:     dto.DefaultFormConfig(),
		model.SettingProductsColors: dto.DefaultProductColors(),
	}
	for _, key := range []string{model.SettingFormConfig, model.SettingProductsColors} {
		row, err := settings.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if row != nil {
			continue
		}
		if err := svc.save(ctx, key, defaults[key]); err != nil {
			return nil, fmt.Errorf("seed setting %s: %w", key, err)
		}
		res.Settings = append(res.Settings, key)
	}

	log.Info().Int("options", res.Options).Strs("settings", res.Settings).Msg("seed complete")
	return res, nil
}
