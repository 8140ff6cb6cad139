package transport

import "github.com/Tushank1/PowerSports-backend/internal/models"

// CreateProductRequest is the full dashboard submission. Each reference level
// is addressed either by id or by a new-name request; absent means zero/empty,
// placeholder literals get no special handling.
type CreateProductRequest struct {
	CategoryID          uint    `json:"category_id"`
	NewCategory         string  `json:"new_category"`
	CategoryDescription string  `json:"category_description"`
	BrandID             uint    `json:"brand_id"`
	NewBrand            string  `json:"new_brand"`
	BrandDescription    string  `json:"brand_description"`
	ModelID             uint    `json:"model_id"`
	NewModel            string  `json:"new_model"`

	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Images   []string `json:"images"`
	Sizes    []string `json:"sizes"`
	Colors   []string `json:"colors"`
	StockQty int      `json:"stock_qty"`
}

type CreateProductResponse struct {
	Message   string `json:"message"`
	ProductID uint   `json:"product_id"`
}

type CreateCategoryRequest struct {
	NewCategory         string `json:"new_category"`
	CategoryDescription string `json:"category_description"`
}

type CreateBrandRequest struct {
	CategoryID       uint   `json:"category_id"`
	NewBrand         string `json:"new_brand"`
	BrandDescription string `json:"brand_description"`
}

type CreateModelRequest struct {
	BrandID  uint   `json:"brand_id"`
	NewModel string `json:"new_model"`
}

// CollectionResponse is the denormalized category subtree for client-side
// rendering. Every level below the category may be empty.
type CollectionResponse struct {
	Category     models.Category      `json:"category"`
	Brands       []models.Brand       `json:"brands"`
	Models       []models.Model       `json:"models"`
	Products     []models.Product     `json:"products"`
	Sizes        []models.Size        `json:"sizes"`
	Images       []models.Image       `json:"img"`
	ProductItems []models.ProductItem `json:"product_items"`
	Colors       []models.Color       `json:"colors"`
}

type ProductDetailResponse struct {
	Product     models.Product     `json:"product"`
	Sizes       []models.Size      `json:"sizes"`
	Images      []models.Image     `json:"images"`
	ProductItem models.ProductItem `json:"product_item"`
	Colors      []models.Color     `json:"colors"`
}
