package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/repository"

	"gorm.io/datatypes"
)

// SettingsService reads and writes the form configuration and the colour
// mapping. Nothing is cached: every call reads the settings table.
type SettingsService interface {
	GetFormConfig(ctx context.Context) (dto.FormConfig, error)
	// SaveFormConfig replaces the stored blob and returns the merged view.
	SaveFormConfig(ctx context.Context, cfg dto.FormConfig) (dto.FormConfig, error)
	GetProductColors(ctx context.Context) (dto.ProductColors, error)
	SaveProductColors(ctx context.Context, colors dto.ProductColors) (dto.ProductColors, error)
}

type settingsService struct {
	settings repository.SettingRepository
	options  repository.ProductOptionRepository
}

func NewSettingsService(settings repository.SettingRepository, options repository.ProductOptionRepository) SettingsService {
	return &settingsService{settings: settings, options: options}
}

// load decodes the stored value of key into dst; found is false when the key
// was never written.
func (s *settingsService) load(ctx context.Context, key string, dst any) (found bool, err error) {
	row, err := s.settings.Get(ctx, key)
	if err != nil || row == nil {
		return false, err
	}
	if err := json.Unmarshal(row.Value, dst); err != nil {
		return false, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return true, nil
}

func (s *settingsService) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.settings.Upsert(ctx, key, datatypes.JSON(raw))
}

func (s *settingsService) GetFormConfig(ctx context.Context) (dto.FormConfig, error) {
	var stored dto.FormConfig
	if _, err := s.load(ctx, model.SettingFormConfig, &stored); err != nil {
		return nil, err
	}
	return dto.DefaultFormConfig().Merge(stored), nil
}

func (s *settingsService) SaveFormConfig(ctx context.Context, cfg dto.FormConfig) (dto.FormConfig, error) {
	for k := range cfg {
		if strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("%w: clave de campo vacia", ErrInvalidSetting)
		}
	}
	if err := s.save(ctx, model.SettingFormConfig, cfg); err != nil {
		return nil, err
	}
	return dto.DefaultFormConfig().Merge(cfg), nil
}

// GetProductColors returns the stored mapping, or the defaults when nothing
// is stored. Active product types missing from the mapping get the default
// colours.
func (s *settingsService) GetProductColors(ctx context.Context) (dto.ProductColors, error) {
	colors := dto.ProductColors{}
	found, err := s.load(ctx, model.SettingProductsColors, &colors)
	if err != nil {
		return nil, err
	}
	if !found {
		colors = dto.DefaultProductColors()
	}

	types, err := s.options.ListByCategory(ctx, model.CategoryProductType, true)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		if _, ok := colors[t.Value]; !ok {
			colors[t.Value] = append([]string(nil), dto.DefaultColors...)
		}
	}
	return colors, nil
}

func (s *settingsService) SaveProductColors(ctx context.Context, colors dto.ProductColors) (dto.ProductColors, error) {
	clean := make(dto.ProductColors, len(colors))
	for productType, list := range colors {
		productType = strings.TrimSpace(productType)
		if productType == "" {
			return nil, fmt.Errorf("%w: tipo de producto vacio", ErrInvalidSetting)
		}
		var out []string
		for _, c := range list {
			if c = strings.TrimSpace(c); c != "" {
				out = append(out, c)
			}
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("%w: %s no tiene colores", ErrInvalidSetting, productType)
		}
		clean[productType] = out
	}
	if err := s.save(ctx, model.SettingProductsColors, clean); err != nil {
		return nil, err
	}
	return clean, nil
}
