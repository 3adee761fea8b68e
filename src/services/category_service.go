// backend/src/services/category_service.go
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/model"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/security/validation"
)

type categoryServiceImpl struct {
	db          *sql.DB
	reportCache *cache.Cache
}

func NewCategoryService(db *sql.DB, reportCache *cache.Cache) CategoryService {
	return &categoryServiceImpl{db: db, reportCache: reportCache}
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context, typ models.TransactionType) ([]models.Category, error) {
	if typ != "" && !typ.Valid() {
		return nil, fmt.Errorf("%w: type must be INCOME or EXPENSE, got '%s'", validation.ErrValidationFailed, typ)
	}
	return model.ListCategories(ctx, s.db, typ)
}

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, input models.CategoryInput) (*models.Category, error) {
	name := validation.SanitizeText(input.Name)
	icon := validation.SanitizeText(input.Icon)
	if err := validation.ValidateRequiredText(name, validation.MaxNameLength, "name"); err != nil {
		return nil, err
	}
	if err := validation.ValidateStringMaxLength(icon, validation.MaxIconLength, "icon"); err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: type must be INCOME or EXPENSE, got '%s'", validation.ErrValidationFailed, input.Type)
	}

	category := models.Category{Name: name, Type: input.Type, Icon: icon}
	if err := model.InsertCategory(ctx, s.db, &category); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
			return nil, fmt.Errorf("%w: category '%s' already exists for %s", validation.ErrValidationFailed, name, input.Type)
		}
		return nil, err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Category created", "id", category.ID, "name", category.Name, "type", category.Type)
	return &category, nil
}

// DeleteCategory removes the category only; transactions keep their category text.
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, id int64) error {
	ok, err := model.DeleteCategory(ctx, s.db, id)
	if err != nil {
		return err
	}
	if err := missingUnless(ok, "category", id); err != nil {
		return err
	}
	invalidateSummary(s.reportCache)
	logger.FromContext(ctx).Info("Category deleted", "id", id)
	return nil
}
