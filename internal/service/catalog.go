package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tushank1/PowerSports-backend/internal/domain"
	"github.com/Tushank1/PowerSports-backend/internal/models"
	"github.com/Tushank1/PowerSports-backend/internal/repo"
	"github.com/Tushank1/PowerSports-backend/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

// CreateProduct validates the dashboard submission fail-fast, then hands the
// whole assembly to one repo transaction. Validation rejects on the first
// violated field before any row is written.
func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}
	return s.Repo.CreateProductTree(ctx, req)
}

func validateSubmission(req transport.CreateProductRequest) error {
	if req.CategoryID == 0 && strings.TrimSpace(req.NewCategory) == "" {
		return fmt.Errorf("%w: category is mandatory", domain.ErrValidation)
	}
	if req.BrandID == 0 && strings.TrimSpace(req.NewBrand) == "" {
		return fmt.Errorf("%w: brand is mandatory", domain.ErrValidation)
	}
	if req.ModelID == 0 && strings.TrimSpace(req.NewModel) == "" {
		return fmt.Errorf("%w: model is mandatory", domain.ErrValidation)
	}
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: product name is mandatory", domain.ErrValidation)
	}
	if req.Price <= 0 {
		return fmt.Errorf("%w: price must be greater than 0", domain.ErrValidation)
	}
	if len(req.Images) == 0 {
		return fmt.Errorf("%w: at least one image is required", domain.ErrValidation)
	}
	for _, url := range req.Images {
		if strings.TrimSpace(url) == "" {
			return fmt.Errorf("%w: image url cannot be empty", domain.ErrValidation)
		}
	}
	if len(req.Sizes) == 0 {
		return fmt.Errorf("%w: at least one size is required", domain.ErrValidation)
	}
	for _, label := range req.Sizes {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: size label cannot be empty", domain.ErrValidation)
		}
	}
	if len(req.Colors) == 0 {
		return fmt.Errorf("%w: at least one color is required", domain.ErrValidation)
	}
	for _, label := range req.Colors {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("%w: color label cannot be empty", domain.ErrValidation)
		}
	}
	if req.StockQty < 1 {
		return fmt.Errorf("%w: stock quantity must be greater than 0", domain.ErrValidation)
	}
	return nil
}

// DeleteProduct runs the cascading deletion for a (category, product) pair.
func (s *CatalogService) DeleteProduct(ctx context.Context, categoryID, productID uint) error {
	return s.Repo.DeleteProductTree(ctx, categoryID, productID)
}

func (s *CatalogService) CategorySubtree(ctx context.Context, categoryID uint) (*transport.CollectionResponse, error) {
	return s.Repo.CategorySubtree(ctx, categoryID)
}

func (s *CatalogService) ProductDetail(ctx context.Context, productID uint) (*transport.ProductDetailResponse, error) {
	return s.Repo.ProductDetail(ctx, productID)
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.Categories(ctx)
}

func (s *CatalogService) CategoryByName(ctx context.Context, name string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: category name is mandatory", domain.ErrValidation)
	}
	return s.Repo.CategoryByName(ctx, name)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if strings.TrimSpace(req.NewCategory) == "" {
		return nil, fmt.Errorf("%w: category name is mandatory", domain.ErrValidation)
	}
	return s.Repo.CreateCategory(ctx, req.NewCategory, req.CategoryDescription)
}

func (s *CatalogService) BrandsByCategory(ctx context.Context, categoryID uint) ([]models.Brand, error) {
	return s.Repo.BrandsByCategory(ctx, categoryID)
}

func (s *CatalogService) CreateBrand(ctx context.Context, req transport.CreateBrandRequest) (*models.Brand, error) {
	if req.CategoryID == 0 {
		return nil, fmt.Errorf("%w: category_id is mandatory", domain.ErrValidation)
	}
	if strings.TrimSpace(req.NewBrand) == "" {
		return nil, fmt.Errorf("%w: brand name is mandatory", domain.ErrValidation)
	}
	return s.Repo.CreateBrand(ctx, req.CategoryID, req.NewBrand, req.BrandDescription)
}

func (s *CatalogService) ModelsByBrand(ctx context.Context, brandID uint) ([]models.Model, error) {
	return s.Repo.ModelsByBrand(ctx, brandID)
}

func (s *CatalogService) CreateModel(ctx context.Context, req transport.CreateModelRequest) (*models.Model, error) {
	if req.BrandID == 0 {
		return nil, fmt.Errorf("%w: brand_id is mandatory", domain.ErrValidation)
	}
	if strings.TrimSpace(req.NewModel) == "" {
		return nil, fmt.Errorf("%w: model name is mandatory", domain.ErrValidation)
	}
	return s.Repo.CreateModel(ctx, req.BrandID, req.NewModel)
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}
