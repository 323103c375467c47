package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/cache"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const (
	itemCacheTTL  = 5 * time.Minute
	itemsCacheKey = "items:all"
)

// ItemInput carries the fields for a new item.
type ItemInput struct {
	Title       string
	Description string
	Image       string
	LargeImage  string
	Price       int64
}

// ItemUpdate carries a partial update; nil fields are left untouched.
type ItemUpdate struct {
	Title       *string
	Description *string
	Price       *int64
}

// ItemService handles store item operations.
type ItemService interface {
	CreateItem(ctx context.Context, userID uuid.UUID, input ItemInput) (*model.Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error)
	ListItems(ctx context.Context) ([]model.Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, update ItemUpdate) (*model.Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) (*model.Item, error)
}

type itemService struct {
	repo  repository.ItemRepository
	cache *cache.Client
}

// NewItemService creates a new item service.
func NewItemService(repo repository.ItemRepository, cache *cache.Client) ItemService {
	return &itemService{
		repo:  repo,
		cache: cache,
	}
}

func (s *itemService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("item:%s", id.String())
}

func (s *itemService) CreateItem(ctx context.Context, userID uuid.UUID, input ItemInput) (*model.Item, error) {
	item := &model.Item{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		LargeImage:  input.LargeImage,
		Price:       input.Price,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	_ = s.cache.Delete(ctx, itemsCacheKey)
	return item, nil
}

// GetItem retrieves an item by ID with caching.
func (s *itemService) GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Item
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(item); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, itemCacheTTL)
	}
	return item, nil
}

// ListItems retrieves all items with caching.
func (s *itemService) ListItems(ctx context.Context) ([]model.Item, error) {
	if data, _ := s.cache.Get(ctx, itemsCacheKey); data != nil {
		var cached []model.Item
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	if payload, err := json.Marshal(items); err == nil {
		_ = s.cache.Set(ctx, itemsCacheKey, payload, itemCacheTTL)
	}
	return items, nil
}

func (s *itemService) UpdateItem(ctx context.Context, id uuid.UUID, update ItemUpdate) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		item.Title = *update.Title
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Price != nil {
		item.Price = *update.Price
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	_ = s.cache.Delete(ctx, itemsCacheKey)
	return item, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete item: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	_ = s.cache.Delete(ctx, itemsCacheKey)
	return item, nil
}
