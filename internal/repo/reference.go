package repo

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Tushank1/PowerSports-backend/internal/domain"
	"github.com/Tushank1/PowerSports-backend/internal/models"
)

// Reference resolution runs inside the caller's transaction so that rows
// created here roll back together with a failed product insert. Resolution
// order is fixed Category -> Brand -> Model: each level needs the previous
// level's generated id.
//
// Get-or-create leans on the unique name indexes: a lost race surfaces as a
// duplicate-key error and is resolved by refetching the winner's row. Each
// insert runs under a savepoint (nested Transaction): on Postgres a failed
// statement aborts the enclosing transaction, so without the savepoint the
// refetch could never run.

func resolveCategory(tx *gorm.DB, id uint, name, description string) (*models.Category, error) {
	if id != 0 {
		var cat models.Category
		if err := tx.First(&cat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, id)
			}
			return nil, err
		}
		return &cat, nil
	}

	var cat models.Category
	err := tx.Where("name = ?", name).First(&cat).Error
	if err == nil {
		// Existing row wins, the supplied description is ignored.
		return &cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cat = models.Category{Name: name, Description: description}
	err = tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&cat).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return refetchCategory(tx, name)
		}
		return nil, err
	}
	return &cat, nil
}

func refetchCategory(tx *gorm.DB, name string) (*models.Category, error) {
	var cat models.Category
	if err := tx.Where("name = ?", name).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func resolveBrand(tx *gorm.DB, categoryID, id uint, name, description string) (*models.Brand, error) {
	if id != 0 {
		var brand models.Brand
		if err := tx.First(&brand, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: brand %d", domain.ErrNotFound, id)
			}
			return nil, err
		}
		if brand.CategoryID != categoryID {
			return nil, fmt.Errorf("%w: brand %d does not belong to category %d", domain.ErrValidation, id, categoryID)
		}
		return &brand, nil
	}

	var brand models.Brand
	err := tx.Where("name = ? AND category_id = ?", name, categoryID).First(&brand).Error
	if err == nil {
		return &brand, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	brand = models.Brand{Name: name, Description: description, CategoryID: categoryID}
	err = tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&brand).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return refetchBrand(tx, categoryID, name)
		}
		return nil, err
	}
	return &brand, nil
}

func refetchBrand(tx *gorm.DB, categoryID uint, name string) (*models.Brand, error) {
	var brand models.Brand
	if err := tx.Where("name = ? AND category_id = ?", name, categoryID).First(&brand).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func resolveModel(tx *gorm.DB, brandID, id uint, name string) (*models.Model, error) {
	if id != 0 {
		var mdl models.Model
		if err := tx.First(&mdl, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: model %d", domain.ErrNotFound, id)
			}
			return nil, err
		}
		if mdl.BrandID != brandID {
			return nil, fmt.Errorf("%w: model %d does not belong to brand %d", domain.ErrValidation, id, brandID)
		}
		return &mdl, nil
	}

	var mdl models.Model
	err := tx.Where("name = ? AND brand_id = ?", name, brandID).First(&mdl).Error
	if err == nil {
		return &mdl, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	mdl = models.Model{Name: name, BrandID: brandID}
	err = tx.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&mdl).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return refetchModel(tx, brandID, name)
		}
		return nil, err
	}
	return &mdl, nil
}

func refetchModel(tx *gorm.DB, brandID uint, name string) (*models.Model, error) {
	var mdl models.Model
	if err := tx.Where("name = ? AND brand_id = ?", name, brandID).First(&mdl).Error; err != nil {
		return nil, err
	}
	return &mdl, nil
}
