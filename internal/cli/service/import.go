package service

import (
	"context"
	"fmt"

	"WishlistX/internal/cli/api"
	"WishlistX/internal/cli/extract"

	"go.uber.org/zap"
)

// ItemAdder сохраняет товар (реализуется api.Client).
type ItemAdder interface {
	AddItem(ctx context.Context, it api.NewItem) error
}

// ImportService добавляет товар по ссылке: извлечение полей, затем AddItem.
type ImportService struct {
	ex  extract.Extractor
	api ItemAdder
	log *zap.SugaredLogger
}

func NewImportService(ex extract.Extractor, adder ItemAdder, log *zap.SugaredLogger) *ImportService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ImportService{ex: ex, api: adder, log: log}
}

type importInput struct {
	URL string `form:"url" validate:"required,http_url"`
}

// Import извлекает данные товара и сохраняет его; цена становится target_amount.
func (s *ImportService) Import(ctx context.Context, productURL string) (api.NewItem, error) {
	if err := api.Validate(importInput{URL: productURL}); err != nil {
		return api.NewItem{}, err
	}
	info, err := s.ex.Extract(ctx, productURL)
	if err != nil {
		return api.NewItem{}, fmt.Errorf("extract product: %w", err)
	}
	it := api.NewItem{
		Name:        info.Name,
		URL:         productURL,
		Description: info.Description,
		ImageURL:    info.ImageURL,
	}
	if info.Price != nil {
		it.TargetAmount = info.Price.StringFixed(2)
	}
	s.log.Debugw("product extracted", "url", productURL, "name", it.Name, "has_image", it.ImageURL != "")
	if err := s.api.AddItem(ctx, it); err != nil {
		return it, err
	}
	return it, nil
}
