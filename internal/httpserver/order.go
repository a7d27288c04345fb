package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velmart/storefront/internal/logging"
	"github.com/velmart/storefront/internal/policy"
	"github.com/velmart/storefront/internal/service"
	"github.com/velmart/storefront/internal/transport"
)

type OrderHandler struct {
	Svc *service.OrderService
}

func (h *OrderHandler) Place(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	userID, ok := policy.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, userID, req)
	if err != nil {
		l.Warn("place_order_failed", "userID", userID, "error", err)
		return httpError(err)
	}

	l.Info("place_order_success", "orderID", order.ID, "userID", userID, "total", order.TotalPrice)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) My(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := policy.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}
	requestedID, err := parseID(c, "userId")
	if err != nil {
		return err
	}

	orders, err := h.Svc.MyOrders(ctx, userID, requestedID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.Svc.Orders(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("list_orders_failed", "error", err)
		return httpError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.Svc.Order(ctx, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Count(c echo.Context) error {
	ctx := c.Request().Context()

	total, err := h.Svc.CountOrders(ctx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"orderCount": total})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		l.Warn("update_order_failed", "orderID", id, "error", err)
		return httpError(err)
	}

	l.Info("update_order_success", "orderID", id, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteOrder(ctx, id); err != nil {
		l.Warn("delete_order_failed", "orderID", id, "error", err)
		return httpError(err)
	}

	l.Info("delete_order_success", "orderID", id)
	return c.JSON(http.StatusOK, echo.Map{"message": "order deleted"})
}
