package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Tushank1/PowerSports-backend/internal/domain"
	"github.com/Tushank1/PowerSports-backend/internal/logging"
	"github.com/Tushank1/PowerSports-backend/internal/mykafka"
	"github.com/Tushank1/PowerSports-backend/internal/service"
	"github.com/Tushank1/PowerSports-backend/internal/transport"
	"github.com/Tushank1/PowerSports-backend/internal/util"
)

type DashboardHandler struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
}

func (h *DashboardHandler) publish(c echo.Context, key string, event map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}

// CreateProduct handles the full dashboard submission: resolve references,
// assemble the product tree, all-or-nothing. Domain errors keep the legacy
// 404 coding with a first-violated-field message.
func (h *DashboardHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrNotFound) {
			l.Warn("product_create_failed", "status", 404, "reason", err.Error())
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("product_create_failed", "status", 500, "reason", "cannot store product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot store product")
	}

	h.publish(c, fmt.Sprint(product.ID), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	l.Info("product_create_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, transport.CreateProductResponse{
		Message:   "Product and associated data stored successfully",
		ProductID: product.ID,
	})
}

// DeleteProduct runs the cascading deletion for a (category, product) pair.
func (h *DashboardHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.delete_product")

	categoryID := util.ParseIntDefault(c.Param("category_id"), 0)
	productID := util.ParseIntDefault(c.QueryParam("product_id"), 0)
	if categoryID <= 0 || productID <= 0 {
		l.Warn("product_delete_failed", "status", 400, "reason", "ids must be positive integers")
		return echo.NewHTTPError(http.StatusBadRequest, "category_id and product_id must be positive integers")
	}

	if err := h.Svc.DeleteProduct(ctx, uint(categoryID), uint(productID)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Warn("product_delete_failed", "status", 404, "reason", err.Error())
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("product_delete_failed", "status", 500, "reason", "cannot delete product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error deleting product details")
	}

	h.publish(c, fmt.Sprint(productID), map[string]any{
		"type":      "product_deleted",
		"productID": productID,
	})

	l.Info("product_delete_success", "product_id", productID)
	return c.JSON(http.StatusOK, echo.Map{"message": "Product and its details deleted successfully"})
}

func (h *DashboardHandler) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.get_categories")

	cats, err := h.Svc.Categories(ctx)
	if err != nil {
		l.Error("get_categories_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list categories")
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *DashboardHandler) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			l.Warn("category_create_failed", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrConflict):
			l.Warn("category_create_failed", "status", 409, "reason", err.Error())
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			l.Error("category_create_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create category")
		}
	}

	l.Info("category_create_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *DashboardHandler) GetCategoryByName(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.category_by_name")

	cat, err := h.Svc.CategoryByName(ctx, c.Param("category"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
			l.Warn("category_by_name_failed", "status", 404, "reason", err.Error())
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("category_by_name_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot resolve category")
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *DashboardHandler) GetBrands(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.get_brands")

	categoryID := util.ParseIntDefault(c.QueryParam("category_id"), 0)
	if categoryID <= 0 {
		l.Warn("get_brands_failed", "status", 400, "reason", "category_id must be a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "category_id must be a positive integer")
	}

	brands, err := h.Svc.BrandsByCategory(ctx, uint(categoryID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Warn("get_brands_failed", "status", 404, "reason", err.Error())
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("get_brands_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list brands")
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *DashboardHandler) CreateBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.create_brand")

	var req transport.CreateBrandRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("brand_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	brand, err := h.Svc.CreateBrand(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			l.Warn("brand_create_failed", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			l.Warn("brand_create_failed", "status", 404, "reason", err.Error())
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrConflict):
			l.Warn("brand_create_failed", "status", 409, "reason", err.Error())
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			l.Error("brand_create_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create brand")
		}
	}

	l.Info("brand_create_success", "brand_id", brand.ID)
	return c.JSON(http.StatusCreated, brand)
}

func (h *DashboardHandler) GetModels(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.get_models")

	brandID := util.ParseIntDefault(c.QueryParam("brand_id"), 0)
	if brandID <= 0 {
		l.Warn("get_models_failed", "status", 400, "reason", "brand_id must be a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "brand_id must be a positive integer")
	}

	mdls, err := h.Svc.ModelsByBrand(ctx, uint(brandID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Warn("get_models_failed", "status", 404, "reason", err.Error())
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("get_models_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot list models")
	}
	return c.JSON(http.StatusOK, mdls)
}

func (h *DashboardHandler) CreateModel(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.create_model")

	var req transport.CreateModelRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("model_create_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	mdl, err := h.Svc.CreateModel(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			l.Warn("model_create_failed", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			l.Warn("model_create_failed", "status", 404, "reason", err.Error())
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrConflict):
			l.Warn("model_create_failed", "status", 409, "reason", err.Error())
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			l.Error("model_create_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot create model")
		}
	}

	l.Info("model_create_success", "model_id", mdl.ID)
	return c.JSON(http.StatusCreated, mdl)
}
