package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Tushank1/PowerSports-backend/internal/middleware/auth"
)

type Deps struct {
	Dashboard  *DashboardHandler
	Collection *CollectionHandler
	Search     *SearchHandler
	JWTSecret  []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	admin := authmw.RequireAdmin(d.JWTSecret)

	dashboard := e.Group("/dashboard")
	dashboard.POST("", d.Dashboard.CreateProduct, admin)
	dashboard.GET("/categories", d.Dashboard.GetCategories)
	dashboard.POST("/categories", d.Dashboard.CreateCategory, admin)
	dashboard.POST("/category/:category", d.Dashboard.GetCategoryByName)
	dashboard.GET("/brands", d.Dashboard.GetBrands)
	dashboard.POST("/brands", d.Dashboard.CreateBrand, admin)
	dashboard.GET("/models", d.Dashboard.GetModels)
	dashboard.POST("/models", d.Dashboard.CreateModel, admin)

	e.DELETE("/delete_product_from_category/:category_id", d.Dashboard.DeleteProduct, admin)

	collection := e.Group("/collection")
	collection.POST("/productItem/:productItemID", d.Collection.GetProductDetail)
	collection.POST("/:categoryID", d.Collection.GetSubtree)

	catalog := e.Group("/catalog")
	catalog.GET("/products", d.Collection.GetProducts)
	if d.Search != nil {
		catalog.GET("/search", d.Search.Search)
	}
}
