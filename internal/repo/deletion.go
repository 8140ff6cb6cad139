package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tushank1/PowerSports-backend/internal/domain"
	"github.com/Tushank1/PowerSports-backend/internal/models"
)

// DeleteProductTree removes a product with everything that exists solely to
// describe it, then garbage-collects reference rows no other product uses.
//
// Cascade eligibility for Brand/Model/Category is decided against the
// pre-deletion state with the current product excluded from every count.
// Counting after partial deletion, or counting the row being deleted, both
// produce wrong cascade decisions on shared reference rows.
//
// Physical delete order is children before parents: variant rows, then the
// product, then the orphaned Model/Brand/Category so no foreign key ever
// dangles inside the transaction.
func (r *GormRepo) DeleteProductTree(ctx context.Context, categoryID, productID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: category %d", domain.ErrNotFound, categoryID)
			}
			return err
		}

		// The product must belong to the given category via its brand. A
		// product living under another category is a not-found, not a hit.
		var product models.Product
		err := tx.
			Joins("JOIN brand ON brand.id = products.brand_id").
			Where("products.id = ? AND brand.category_id = ?", productID, categoryID).
			First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d in category %d", domain.ErrNotFound, productID, categoryID)
			}
			return err
		}

		brandInUse, modelInUse, categoryInUse, err := referenceCounts(tx, &product, categoryID)
		if err != nil {
			return err
		}

		var items []models.ProductItem
		if err := tx.Where("product_id = ?", product.ID).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if err := tx.Where("product_item_id = ?", item.ID).Delete(&models.Color{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Size{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Image{}).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.Product{}, product.ID).Error; err != nil {
			return err
		}

		if modelInUse == 0 {
			if err := tx.Delete(&models.Model{}, product.ModelID).Error; err != nil {
				return err
			}
		}
		if brandInUse == 0 {
			if err := tx.Delete(&models.Brand{}, product.BrandID).Error; err != nil {
				return err
			}
		}
		if categoryInUse == 0 {
			if err := tx.Delete(&models.Category{}, categoryID).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// referenceCounts returns how many *other* products reference the product's
// brand, model, and category, evaluated before any row is removed.
func referenceCounts(tx *gorm.DB, product *models.Product, categoryID uint) (brand, model, category int64, err error) {
	if err = tx.Model(&models.Product{}).
		Where("brand_id = ? AND id <> ?", product.BrandID, product.ID).
		Count(&brand).Error; err != nil {
		return
	}

	if err = tx.Model(&models.Product{}).
		Where("model_id = ? AND id <> ?", product.ModelID, product.ID).
		Count(&model).Error; err != nil {
		return
	}

	err = tx.Model(&models.Product{}).
		Joins("JOIN brand ON brand.id = products.brand_id").
		Where("brand.category_id = ? AND products.id <> ?", categoryID, product.ID).
		Count(&category).Error
	return
}
