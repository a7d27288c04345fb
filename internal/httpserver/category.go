package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velmart/storefront/internal/logging"
	"github.com/velmart/storefront/internal/service"
	"github.com/velmart/storefront/internal/transport"
)

type CategoryHandler struct {
	Svc *service.CatalogService
}

func (h *CategoryHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.Svc.Categories(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_categories_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.Svc.Category(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		l.Warn("create_category_failed", "error", err)
		return httpError(err)
	}

	l.Info("create_category_success", "categoryID", category.ID)
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.UpdateCategory(ctx, id, req)
	if err != nil {
		l.Warn("update_category_failed", "categoryID", id, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		l.Warn("delete_category_failed", "categoryID", id, "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted"})
}
