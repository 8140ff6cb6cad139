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

// CategorySubtree joins the whole category -> brand -> model -> product ->
// variant tree into one denormalized response. Empty levels yield empty
// slices, only a bad category id is an error.
func (r *GormRepo) CategorySubtree(ctx context.Context, categoryID uint) (*transport.CollectionResponse, error) {
	db := r.DB.WithContext(ctx)

	resp := &transport.CollectionResponse{
		Brands:       []models.Brand{},
		Models:       []models.Model{},
		Products:     []models.Product{},
		Sizes:        []models.Size{},
		Images:       []models.Image{},
		ProductItems: []models.ProductItem{},
		Colors:       []models.Color{},
	}

	if err := db.First(&resp.Category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, categoryID)
		}
		return nil, err
	}

	if err := db.Where("category_id = ?", categoryID).Find(&resp.Brands).Error; err != nil {
		return nil, err
	}
	if len(resp.Brands) == 0 {
		return resp, nil
	}

	brandIDs := make([]uint, len(resp.Brands))
	for i, b := range resp.Brands {
		brandIDs[i] = b.ID
	}

	if err := db.Where("brand_id IN ?", brandIDs).Find(&resp.Models).Error; err != nil {
		return nil, err
	}

	if err := db.Where("brand_id IN ?", brandIDs).Find(&resp.Products).Error; err != nil {
		return nil, err
	}
	if len(resp.Products) == 0 {
		return resp, nil
	}

	productIDs := make([]uint, len(resp.Products))
	for i, p := range resp.Products {
		productIDs[i] = p.ID
	}

	if err := db.Where("product_id IN ?", productIDs).Find(&resp.Sizes).Error; err != nil {
		return nil, err
	}
	if err := db.Where("product_id IN ?", productIDs).Find(&resp.Images).Error; err != nil {
		return nil, err
	}
	if err := db.Where("product_id IN ?", productIDs).Find(&resp.ProductItems).Error; err != nil {
		return nil, err
	}
	if len(resp.ProductItems) == 0 {
		return resp, nil
	}

	itemIDs := make([]uint, len(resp.ProductItems))
	for i, it := range resp.ProductItems {
		itemIDs[i] = it.ID
	}
	if err := db.Where("product_item_id IN ?", itemIDs).Find(&resp.Colors).Error; err != nil {
		return nil, err
	}

	return resp, nil
}

// ProductDetail returns one product with its variant rows.
func (r *GormRepo) ProductDetail(ctx context.Context, productID uint) (*transport.ProductDetailResponse, error) {
	db := r.DB.WithContext(ctx)

	resp := &transport.ProductDetailResponse{
		Sizes:  []models.Size{},
		Images: []models.Image{},
		Colors: []models.Color{},
	}

	if err := db.First(&resp.Product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", domain.ErrNotFound, productID)
		}
		return nil, err
	}

	if err := db.Where("product_id = ?", productID).Find(&resp.Sizes).Error; err != nil {
		return nil, err
	}
	if err := db.Where("product_id = ?", productID).Find(&resp.Images).Error; err != nil {
		return nil, err
	}
	if err := db.Where("product_id = ?", productID).First(&resp.ProductItem).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return resp, nil
	}
	if err := db.Where("product_item_id = ?", resp.ProductItem.ID).Find(&resp.Colors).Error; err != nil {
		return nil, err
	}

	return resp, nil
}

func (r *GormRepo) Categories(ctx context.Context) ([]models.Category, error) {
	cats := []models.Category{}
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %q", domain.ErrNotFound, name)
		}
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) BrandsByCategory(ctx context.Context, categoryID uint) ([]models.Brand, error) {
	if err := requireCategory(r.DB.WithContext(ctx), categoryID); err != nil {
		return nil, err
	}
	brands := []models.Brand{}
	if err := r.DB.WithContext(ctx).Where("category_id = ?", categoryID).Order("id ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *GormRepo) ModelsByBrand(ctx context.Context, brandID uint) ([]models.Model, error) {
	if err := requireBrand(r.DB.WithContext(ctx), brandID); err != nil {
		return nil, err
	}
	mdls := []models.Model{}
	if err := r.DB.WithContext(ctx).Where("brand_id = ?", brandID).Order("id ASC").Find(&mdls).Error; err != nil {
		return nil, err
	}
	return mdls, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := []models.Product{}
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func requireCategory(tx *gorm.DB, categoryID uint) error {
	var cat models.Category
	if err := tx.First(&cat, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category %d", domain.ErrNotFound, categoryID)
		}
		return err
	}
	return nil
}

func requireBrand(tx *gorm.DB, brandID uint) error {
	var brand models.Brand
	if err := tx.First(&brand, brandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: brand %d", domain.ErrNotFound, brandID)
		}
		return err
	}
	return nil
}
