package food

import (
	"context"
	"errors"
	"pantrypal/domain"
	"pantrypal/entities"

	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		DeleteFoodItem(ctx context.Context, id string) error
		// ListItems returns the whole inventory ordered by expiration date.
		ListItems(ctx context.Context) ([]entities.FoodItem, error)
		ListItemsByLocation(ctx context.Context, location entities.StorageLocation) ([]entities.FoodItem, error)
		GetFoodItemsByIDs(ctx context.Context, ids []string) ([]entities.FoodItem, error)
		RecentItems(ctx context.Context, limit int) ([]entities.FoodItem, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	if err := r.db.WithContext(ctx).Create(foodItem).Error; err != nil {
		return domain.NewStorageError("add food item", err)
	}
	return nil
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodItem).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, domain.NewStorageError("get food item", err)
	}
	return &foodItem, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	if err := r.db.WithContext(ctx).Save(foodItem).Error; err != nil {
		return domain.NewStorageError("update food item", err)
	}
	return nil
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodItem{})
	if res.Error != nil {
		return domain.NewStorageError("delete food item", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrFoodItemNotFound
	}
	return nil
}

func (r *foodRepository) ListItems(ctx context.Context) ([]entities.FoodItem, error) {
	var items []entities.FoodItem
	if err := r.db.WithContext(ctx).
		Order("expiration_date ASC").
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, domain.NewStorageError("list food items", err)
	}
	return items, nil
}

func (r *foodRepository) ListItemsByLocation(ctx context.Context, location entities.StorageLocation) ([]entities.FoodItem, error) {
	var items []entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("storage_location = ?", location).
		Order("expiration_date ASC").
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, domain.NewStorageError("list food items by location", err)
	}
	return items, nil
}

func (r *foodRepository) GetFoodItemsByIDs(ctx context.Context, ids []string) ([]entities.FoodItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("expiration_date ASC").
		Find(&items).Error; err != nil {
		return nil, domain.NewStorageError("get food items", err)
	}
	return items, nil
}

func (r *foodRepository) RecentItems(ctx context.Context, limit int) ([]entities.FoodItem, error) {
	var items []entities.FoodItem
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, domain.NewStorageError("list recent food items", err)
	}
	return items, nil
}
