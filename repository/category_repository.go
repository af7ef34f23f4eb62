package repository

import (
	"context"

	"restaurant-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRepository defines data access for menu categories.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
}

// GormCategoryRepository implements CategoryRepository using GORM.
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository.
func NewGormCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindAll retrieves all categories ordered by title.
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByID retrieves a category by id.
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category.
func (r *GormCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}
