package services_test

import (
	"context"
	"net/http"
	"testing"

	"restaurant-service/models"
	"restaurant-service/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newMenuFixture() (*memCategoryRepo, *memMenuRepo, services.MenuService) {
	categories := newMemCategoryRepo()
	items := newMemMenuRepo()
	return categories, items, services.NewMenuService(categories, items, zap.NewNop())
}

func seedCategory(categories *memCategoryRepo, slug string) *models.Category {
	category := &models.Category{ID: uuid.New(), Slug: slug, Title: slug}
	_ = categories.Create(context.Background(), category)
	return category
}

func TestMenu_CreateMenuItem_ManagerSucceeds(t *testing.T) {
	categories, _, svc := newMenuFixture()
	category := seedCategory(categories, "mains")

	item, svcErr := svc.CreateMenuItem(context.Background(), managerIdentity(), &models.CreateMenuItemRequest{
		Title:      "Greek Salad",
		Price:      7.50,
		CategoryID: category.ID,
		Featured:   true,
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, "Greek Salad", item.Title)
	assert.Equal(t, 7.50, item.Price)
	assert.True(t, item.Featured)

	got, svcErr := svc.GetMenuItem(context.Background(), item.ID)
	assert.Nil(t, svcErr)
	assert.Equal(t, item.ID, got.ID)
}

func TestMenu_Writes_RequireManager(t *testing.T) {
	categories, _, svc := newMenuFixture()
	category := seedCategory(categories, "mains")
	req := &models.CreateMenuItemRequest{Title: "Pasta", Price: 9.00, CategoryID: category.ID}

	_, svcErr := svc.CreateMenuItem(context.Background(), customerIdentity(), req)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.Code)

	_, svcErr = svc.CreateMenuItem(context.Background(), crewIdentity(), req)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.Code)

	_, svcErr = svc.CreateMenuItem(context.Background(), nil, req)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusUnauthorized, svcErr.Code)
}

func TestMenu_Reads_OpenToEveryone(t *testing.T) {
	categories, items, svc := newMenuFixture()
	category := seedCategory(categories, "mains")
	seeded := seedMenuItem(items, "Bruschetta", 5.00)
	seeded.CategoryID = category.ID
	_ = items.Update(context.Background(), seeded)

	listed, svcErr := svc.ListMenuItems(context.Background(), models.MenuItemFilter{})
	assert.Nil(t, svcErr)
	assert.Len(t, listed, 1)

	cats, svcErr := svc.ListCategories(context.Background())
	assert.Nil(t, svcErr)
	assert.Len(t, cats, 1)
}

func TestMenu_CreateMenuItem_NonPositivePriceRejected(t *testing.T) {
	categories, _, svc := newMenuFixture()
	category := seedCategory(categories, "mains")

	for _, price := range []float64{0, -3.50} {
		_, svcErr := svc.CreateMenuItem(context.Background(), managerIdentity(), &models.CreateMenuItemRequest{
			Title:      "Free Lunch",
			Price:      price,
			CategoryID: category.ID,
		})
		assert.NotNil(t, svcErr)
		assert.Equal(t, http.StatusBadRequest, svcErr.Code)
	}
}

func TestMenu_CreateMenuItem_UnknownCategoryNotFound(t *testing.T) {
	_, _, svc := newMenuFixture()

	_, svcErr := svc.CreateMenuItem(context.Background(), managerIdentity(), &models.CreateMenuItemRequest{
		Title:      "Orphan",
		Price:      4.00,
		CategoryID: uuid.New(),
	})
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.Code)
}

func TestMenu_UpdateMenuItem_PartialUpdate(t *testing.T) {
	_, items, svc := newMenuFixture()
	item := seedMenuItem(items, "Soup", 4.00)

	price := 6.00
	updated, svcErr := svc.UpdateMenuItem(context.Background(), managerIdentity(), item.ID, &models.UpdateMenuItemRequest{Price: &price})
	assert.Nil(t, svcErr)
	assert.Equal(t, 6.00, updated.Price)
	assert.Equal(t, "Soup", updated.Title)

	bad := -1.00
	_, svcErr = svc.UpdateMenuItem(context.Background(), managerIdentity(), item.ID, &models.UpdateMenuItemRequest{Price: &bad})
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.Code)
}

func TestMenu_UpdateMenuItem_NotFound(t *testing.T) {
	_, _, svc := newMenuFixture()

	title := "Ghost"
	_, svcErr := svc.UpdateMenuItem(context.Background(), managerIdentity(), uuid.New(), &models.UpdateMenuItemRequest{Title: &title})
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.Code)
}

func TestMenu_DeleteMenuItem(t *testing.T) {
	_, items, svc := newMenuFixture()
	item := seedMenuItem(items, "Soup", 4.00)

	svcErr := svc.DeleteMenuItem(context.Background(), customerIdentity(), item.ID)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusForbidden, svcErr.Code)

	svcErr = svc.DeleteMenuItem(context.Background(), managerIdentity(), item.ID)
	assert.Nil(t, svcErr)

	svcErr = svc.DeleteMenuItem(context.Background(), managerIdentity(), item.ID)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.Code)
}

func TestMenu_CreateCategory_LowercasesSlug(t *testing.T) {
	_, _, svc := newMenuFixture()

	category, svcErr := svc.CreateCategory(context.Background(), managerIdentity(), &models.CreateCategoryRequest{
		Slug:  "Desserts",
		Title: "Desserts",
	})
	assert.Nil(t, svcErr)
	assert.Equal(t, "desserts", category.Slug)
}
