package repository

import (
	"context"

	"restaurant-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines data access for users and their group memberships.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByGroup(ctx context.Context, group string) ([]models.User, error)
	AddToGroup(ctx context.Context, userID uuid.UUID, group string) error
	RemoveFromGroup(ctx context.Context, userID uuid.UUID, group string) error
}

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user and their group memberships.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Groups").Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername retrieves a user by username with group memberships.
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Groups").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByGroup retrieves all members of the named group.
func (r *GormUserRepository) FindByGroup(ctx context.Context, group string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_groups ON user_groups.user_id = users.id").
		Joins("JOIN groups ON groups.id = user_groups.group_id").
		Where("groups.name = ?", group).
		Order("users.username ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AddToGroup adds the user to the named group. Adding an existing member is
// a no-op.
func (r *GormUserRepository) AddToGroup(ctx context.Context, userID uuid.UUID, group string) error {
	var g models.Group
	if err := r.db.WithContext(ctx).Where("name = ?", group).First(&g).Error; err != nil {
		return err
	}
	user := models.User{ID: userID}
	return r.db.WithContext(ctx).Model(&user).Association("Groups").Append(&g)
}

// RemoveFromGroup removes the user from the named group. Removing the last
// member of a group is allowed.
func (r *GormUserRepository) RemoveFromGroup(ctx context.Context, userID uuid.UUID, group string) error {
	var g models.Group
	if err := r.db.WithContext(ctx).Where("name = ?", group).First(&g).Error; err != nil {
		return err
	}
	user := models.User{ID: userID}
	return r.db.WithContext(ctx).Model(&user).Association("Groups").Delete(&g)
}
