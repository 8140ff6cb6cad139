package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tushank1/PowerSports-backend/internal/domain"
	"github.com/Tushank1/PowerSports-backend/internal/logging"
	"github.com/Tushank1/PowerSports-backend/internal/service"
	"github.com/Tushank1/PowerSports-backend/internal/util"
)

type CollectionHandler struct {
	Svc *service.CatalogService
}

// GetSubtree returns the full denormalized tree under a category. Empty
// levels come back as empty arrays, only a bad category id is a 404.
func (h *CollectionHandler) GetSubtree(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "collection.subtree")

	categoryID := util.ParseIntDefault(c.Param("categoryID"), 0)
	if categoryID <= 0 {
		l.Warn("subtree_failed", "status", 400, "reason", "categoryID must be a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "categoryID must be a positive integer")
	}

	resp, err := h.Svc.CategorySubtree(ctx, uint(categoryID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Warn("subtree_failed", "status", 404, "reason", err.Error())
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("subtree_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read collection")
	}

	return c.JSON(http.StatusOK, resp)
}

// GetProductDetail returns one product with its sizes, images, stock record
// and colors.
func (h *CollectionHandler) GetProductDetail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "collection.product_detail")

	productID := util.ParseIntDefault(c.Param("productItemID"), 0)
	if productID <= 0 {
		l.Warn("product_detail_failed", "status", 400, "reason", "productItemID must be a positive integer")
		return echo.NewHTTPError(http.StatusBadRequest, "productItemID must be a positive integer")
	}

	resp, err := h.Svc.ProductDetail(ctx, uint(productID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.Warn("product_detail_failed", "status", 404, "reason", err.Error())
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("product_detail_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read product")
	}

	return c.JSON(http.StatusOK, resp)
}
