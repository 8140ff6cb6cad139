package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tushank1/PowerSports-backend/internal/domain"
	"github.com/Tushank1/PowerSports-backend/internal/models"
	"github.com/Tushank1/PowerSports-backend/internal/transport"
)

// CreateProductTree persists a product and every dependent row as one
// transaction. Reference resolution happens inside the same transaction, so
// a brand created for this submission rolls back with a failed insert later
// in the sequence. Insert order is fixed: each step needs the previous
// step's generated id.
func (r *GormRepo) CreateProductTree(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	var product models.Product

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := resolveCategory(tx, req.CategoryID, req.NewCategory, req.CategoryDescription)
		if err != nil {
			return err
		}

		brand, err := resolveBrand(tx, category.ID, req.BrandID, req.NewBrand, req.BrandDescription)
		if err != nil {
			return err
		}

		mdl, err := resolveModel(tx, brand.ID, req.ModelID, req.NewModel)
		if err != nil {
			return err
		}

		product = models.Product{
			Name:    req.Name,
			Price:   req.Price,
			BrandID: brand.ID,
			ModelID: mdl.ID,
		}
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("insert product: %w", err)
		}

		for _, label := range req.Sizes {
			size := models.Size{Label: label, ProductID: product.ID}
			if err := tx.Create(&size).Error; err != nil {
				return fmt.Errorf("insert size %q: %w", label, err)
			}
		}

		for _, url := range req.Images {
			img := models.Image{URL: url, ProductID: product.ID}
			if err := tx.Create(&img).Error; err != nil {
				return fmt.Errorf("insert image %q: %w", url, err)
			}
		}

		item := models.ProductItem{ProductID: product.ID, Quantity: req.StockQty}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("insert product item: %w", err)
		}

		for _, label := range req.Colors {
			color := models.Color{Label: label, ProductItemID: item.ID}
			if err := tx.Create(&color).Error; err != nil {
				return fmt.Errorf("insert color %q: %w", label, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// CreateCategory inserts a category, rejecting duplicate names.
func (r *GormRepo) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	cat := models.Category{Name: name, Description: description}
	if err := r.DB.WithContext(ctx).Create(&cat).Error; err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: category %q", domain.ErrConflict, name)
		}
		return nil, err
	}
	return &cat, nil
}

// CreateBrand inserts a brand under an existing category.
func (r *GormRepo) CreateBrand(ctx context.Context, categoryID uint, name, description string) (*models.Brand, error) {
	var brand models.Brand
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCategory(tx, categoryID); err != nil {
			return err
		}
		brand = models.Brand{Name: name, Description: description, CategoryID: categoryID}
		if err := tx.Create(&brand).Error; err != nil {
			if isDuplicate(err) {
				return fmt.Errorf("%w: brand %q in category %d", domain.ErrConflict, name, categoryID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// CreateModel inserts a model under an existing brand.
func (r *GormRepo) CreateModel(ctx context.Context, brandID uint, name string) (*models.Model, error) {
	var mdl models.Model
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireBrand(tx, brandID); err != nil {
			return err
		}
		mdl = models.Model{Name: name, BrandID: brandID}
		if err := tx.Create(&mdl).Error; err != nil {
			if isDuplicate(err) {
				return fmt.Errorf("%w: model %q under brand %d", domain.ErrConflict, name, brandID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &mdl, nil
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
