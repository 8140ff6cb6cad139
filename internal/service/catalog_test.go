package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Tushank1/PowerSports-backend/internal/domain"
	"github.com/Tushank1/PowerSports-backend/internal/models"
	"github.com/Tushank1/PowerSports-backend/internal/repo"
	"github.com/Tushank1/PowerSports-backend/internal/transport"
)

func newTestService(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// one connection so every query sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))

	return &CatalogService{Repo: &repo.GormRepo{DB: db}}, db
}

func validSubmission() transport.CreateProductRequest {
	return transport.CreateProductRequest{
		NewCategory:         "Moto",
		CategoryDescription: "motorcycles and gear",
		NewBrand:            "Apex",
		BrandDescription:    "Apex Racing",
		NewModel:            "ModelA",
		Name:                "X100",
		Price:               1499.99,
		Images:              []string{"https://img.example.com/x100.jpg"},
		Sizes:               []string{"M", "L"},
		Colors:              []string{"red", "black"},
		StockQty:            10,
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateProductAssemblesFullTree(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, validSubmission())
	require.NoError(t, err)
	require.NotZero(t, product.ID)

	require.EqualValues(t, 1, countRows(t, db, &models.Category{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Brand{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Model{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Product{}))
	require.EqualValues(t, 2, countRows(t, db, &models.Size{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Image{}))
	require.EqualValues(t, 1, countRows(t, db, &models.ProductItem{}))
	require.EqualValues(t, 2, countRows(t, db, &models.Color{}))

	var item models.ProductItem
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&item).Error)
	require.Equal(t, 10, item.Quantity)
}

func TestCreateProductRejectsIncompleteSubmission(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*transport.CreateProductRequest)
	}{
		{"no category", func(r *transport.CreateProductRequest) { r.NewCategory = "" }},
		{"no brand", func(r *transport.CreateProductRequest) { r.NewBrand = "" }},
		{"no model", func(r *transport.CreateProductRequest) { r.NewModel = "" }},
		{"no name", func(r *transport.CreateProductRequest) { r.Name = "" }},
		{"zero price", func(r *transport.CreateProductRequest) { r.Price = 0 }},
		{"negative price", func(r *transport.CreateProductRequest) { r.Price = -5 }},
		{"no images", func(r *transport.CreateProductRequest) { r.Images = nil }},
		{"no sizes", func(r *transport.CreateProductRequest) { r.Sizes = []string{} }},
		{"no colors", func(r *transport.CreateProductRequest) { r.Colors = nil }},
		{"zero stock", func(r *transport.CreateProductRequest) { r.StockQty = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, db := newTestService(t)

			req := validSubmission()
			tc.mutate(&req)

			_, err := svc.CreateProduct(context.Background(), req)
			require.ErrorIs(t, err, domain.ErrValidation)

			// nothing persisted, reference rows included
			require.EqualValues(t, 0, countRows(t, db, &models.Category{}))
			require.EqualValues(t, 0, countRows(t, db, &models.Brand{}))
			require.EqualValues(t, 0, countRows(t, db, &models.Model{}))
			require.EqualValues(t, 0, countRows(t, db, &models.Product{}))
			require.EqualValues(t, 0, countRows(t, db, &models.Size{}))
		})
	}
}

func TestCreateProductRollsBackNewReferencesOnMidTransactionFailure(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	// fail the color insert inside the transaction, after the product,
	// sizes, images and stock rows were written
	err := db.Callback().Create().Before("gorm:create").Register("fail_marker_color", func(tx *gorm.DB) {
		if color, ok := tx.Statement.Dest.(*models.Color); ok && color.Label == "boom" {
			tx.AddError(errors.New("injected storage failure"))
		}
	})
	require.NoError(t, err)

	req := validSubmission()
	req.Colors = []string{"boom"}

	_, err = svc.CreateProduct(ctx, req)
	require.Error(t, err)

	require.EqualValues(t, 0, countRows(t, db, &models.Product{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Size{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Image{}))
	require.EqualValues(t, 0, countRows(t, db, &models.ProductItem{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Color{}))

	// the brand, model and category created for this submission rolled
	// back with it
	require.EqualValues(t, 0, countRows(t, db, &models.Category{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Brand{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Model{}))
}

func TestCreateProductRejectsModelOfDifferentBrand(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{NewCategory: "Moto", CategoryDescription: "bikes"})
	require.NoError(t, err)
	brand, err := svc.CreateBrand(ctx, transport.CreateBrandRequest{CategoryID: cat.ID, NewBrand: "Apex", BrandDescription: "racing"})
	require.NoError(t, err)
	mdl, err := svc.CreateModel(ctx, transport.CreateModelRequest{BrandID: brand.ID, NewModel: "ModelA"})
	require.NoError(t, err)

	// a brand-new brand paired with an existing model of another brand
	req := validSubmission()
	req.CategoryID = cat.ID
	req.NewCategory = ""
	req.NewBrand = "Volt"
	req.ModelID = mdl.ID
	req.NewModel = ""

	_, err = svc.CreateProduct(ctx, req)
	require.ErrorIs(t, err, domain.ErrValidation)

	// the Volt brand created during resolution did not survive the rollback
	var volts int64
	require.NoError(t, db.Model(&models.Brand{}).Where("name = ?", "Volt").Count(&volts).Error)
	require.EqualValues(t, 0, volts)
	require.EqualValues(t, 0, countRows(t, db, &models.Product{}))
}

func TestCreateProductSharesReferenceRows(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateProduct(ctx, validSubmission())
	require.NoError(t, err)

	second := validSubmission()
	second.Name = "X200"
	secondProduct, err := svc.CreateProduct(ctx, second)
	require.NoError(t, err)

	require.EqualValues(t, 1, countRows(t, db, &models.Brand{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Model{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Category{}))
	require.Equal(t, first.BrandID, secondProduct.BrandID)
	require.Equal(t, first.ModelID, secondProduct.ModelID)
}

func TestCreateProductRefetchesBrandAfterLostCreateRace(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{NewCategory: "Moto", CategoryDescription: "bikes"})
	require.NoError(t, err)

	// slip a competing "Apex" row in right after the name lookup misses,
	// so the resolver's own insert loses on the unique index and has to
	// fall back to the winner's row
	raced := false
	err = db.Callback().Query().After("gorm:query").Register("race_brand_insert", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.Brand); !ok || raced || !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return
		}
		raced = true
		if _, execErr := tx.Statement.ConnPool.ExecContext(tx.Statement.Context,
			"INSERT INTO brand (name, description, category_id) VALUES (?, ?, ?)",
			"Apex", "raced in first", cat.ID); execErr != nil {
			tx.AddError(execErr)
		}
	})
	require.NoError(t, err)

	req := validSubmission()
	req.CategoryID = cat.ID
	req.NewCategory = ""

	product, err := svc.CreateProduct(ctx, req)
	require.NoError(t, err)
	require.True(t, raced)

	// the losing insert rolled back to its savepoint, the assembly kept
	// going on the existing row
	require.EqualValues(t, 1, countRows(t, db, &models.Brand{}))
	var brand models.Brand
	require.NoError(t, db.Where("name = ?", "Apex").First(&brand).Error)
	require.Equal(t, "raced in first", brand.Description)
	require.Equal(t, brand.ID, product.BrandID)
	require.EqualValues(t, 1, countRows(t, db, &models.Product{}))
}

func TestCreateProductUnknownCategoryID(t *testing.T) {
	svc, _ := newTestService(t)

	req := validSubmission()
	req.CategoryID = 999
	req.NewCategory = ""

	_, err := svc.CreateProduct(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteProductKeepsSharedReferences(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	p1, err := svc.CreateProduct(ctx, validSubmission())
	require.NoError(t, err)

	second := validSubmission()
	second.Name = "X200"
	p2, err := svc.CreateProduct(ctx, second)
	require.NoError(t, err)

	var cat models.Category
	require.NoError(t, db.Where("name = ?", "Moto").First(&cat).Error)

	// deleting X100 must not touch Apex, ModelA, Moto or X200
	require.NoError(t, svc.DeleteProduct(ctx, cat.ID, p1.ID))

	require.EqualValues(t, 1, countRows(t, db, &models.Brand{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Model{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Category{}))
	require.EqualValues(t, 1, countRows(t, db, &models.Product{}))

	var gone int64
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p1.ID).Count(&gone).Error)
	require.EqualValues(t, 0, gone)

	// X100's dependent rows are gone, X200's remain
	require.EqualValues(t, 0, countForProduct(t, db, &models.Size{}, p1.ID))
	require.EqualValues(t, 2, countForProduct(t, db, &models.Size{}, p2.ID))
	require.EqualValues(t, 0, countForProduct(t, db, &models.Image{}, p1.ID))
	require.EqualValues(t, 1, countForProduct(t, db, &models.Image{}, p2.ID))
	require.EqualValues(t, 0, countForProduct(t, db, &models.ProductItem{}, p1.ID))

	// deleting X200 removes the now-unreferenced Apex, ModelA and Moto
	require.NoError(t, svc.DeleteProduct(ctx, cat.ID, p2.ID))

	require.EqualValues(t, 0, countRows(t, db, &models.Product{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Brand{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Model{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Category{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Size{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Image{}))
	require.EqualValues(t, 0, countRows(t, db, &models.ProductItem{}))
	require.EqualValues(t, 0, countRows(t, db, &models.Color{}))
}

func countForProduct(t *testing.T, db *gorm.DB, model any, productID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where("product_id = ?", productID).Count(&n).Error)
	return n
}

func TestDeleteProductWrongCategoryIsNotFound(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, validSubmission())
	require.NoError(t, err)

	other := validSubmission()
	other.NewCategory = "Snow"
	other.NewBrand = "Glacier"
	other.NewModel = "ModelS"
	other.Name = "S100"
	_, err = svc.CreateProduct(ctx, other)
	require.NoError(t, err)

	var snow models.Category
	require.NoError(t, db.Where("name = ?", "Snow").First(&snow).Error)

	// the product exists, but under Moto, not Snow
	err = svc.DeleteProduct(ctx, snow.ID, product.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// nothing was deleted
	require.EqualValues(t, 2, countRows(t, db, &models.Product{}))
	require.EqualValues(t, 2, countRows(t, db, &models.Brand{}))
	require.EqualValues(t, 2, countRows(t, db, &models.Category{}))
}

func TestDeleteProductUnknownCategory(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteProduct(context.Background(), 42, 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategorySubtreeIdempotentReads(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, validSubmission())
	require.NoError(t, err)

	var cat models.Category
	require.NoError(t, db.Where("name = ?", "Moto").First(&cat).Error)

	first, err := svc.CategorySubtree(ctx, cat.ID)
	require.NoError(t, err)
	second, err := svc.CategorySubtree(ctx, cat.ID)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Len(t, first.Brands, 1)
	require.Len(t, first.Models, 1)
	require.Len(t, first.Products, 1)
	require.Len(t, first.Sizes, 2)
	require.Len(t, first.Images, 1)
	require.Len(t, first.ProductItems, 1)
	require.Len(t, first.Colors, 2)
}

func TestCategorySubtreeToleratesEmptyLevels(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{NewCategory: "Empty", CategoryDescription: "nothing here"})
	require.NoError(t, err)

	resp, err := svc.CategorySubtree(ctx, cat.ID)
	require.NoError(t, err)
	require.Empty(t, resp.Brands)
	require.Empty(t, resp.Models)
	require.Empty(t, resp.Products)
	require.Empty(t, resp.Sizes)
	require.Empty(t, resp.Images)
	require.Empty(t, resp.ProductItems)
	require.Empty(t, resp.Colors)

	_, err = svc.CategorySubtree(ctx, cat.ID+1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDetail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, validSubmission())
	require.NoError(t, err)

	detail, err := svc.ProductDetail(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, product.ID, detail.Product.ID)
	require.Len(t, detail.Sizes, 2)
	require.Len(t, detail.Images, 1)
	require.Equal(t, 10, detail.ProductItem.Quantity)
	require.Len(t, detail.Colors, 2)

	_, err = svc.ProductDetail(ctx, product.ID+100)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateCategoryDuplicateIsConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{NewCategory: "Moto", CategoryDescription: "bikes"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, transport.CreateCategoryRequest{NewCategory: "Moto", CategoryDescription: "again"})
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateBrandRequiresCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBrand(ctx, transport.CreateBrandRequest{CategoryID: 7, NewBrand: "Apex"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBrandsByCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cat, err := svc.CreateCategory(ctx, transport.CreateCategoryRequest{NewCategory: "Moto", CategoryDescription: "bikes"})
	require.NoError(t, err)

	brands, err := svc.BrandsByCategory(ctx, cat.ID)
	require.NoError(t, err)
	require.Empty(t, brands)

	_, err = svc.CreateBrand(ctx, transport.CreateBrandRequest{CategoryID: cat.ID, NewBrand: "Apex", BrandDescription: "racing"})
	require.NoError(t, err)

	brands, err = svc.BrandsByCategory(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, brands, 1)

	_, err = svc.BrandsByCategory(ctx, cat.ID+1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
