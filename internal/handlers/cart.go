package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rafidhia/storefront/internal/mykafka"
	"github.com/rafidhia/storefront/internal/service"
)

type CartHandler struct {
	Cart     *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHandler) GetCart(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	items, err := h.Cart.List(c.Request().Context(), uid)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID      uint `json:"productId"`
		PriceVariantID uint `json:"priceVariantId"`
		Quantity       uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Cart.Add(c.Request().Context(), uid, req.ProductID, req.PriceVariantID, req.Quantity)
	if err != nil {
		return httpError(c, err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(uid), map[string]any{
		"type":      "cart_item_added",
		"userID":    uid,
		"productID": req.ProductID,
		"variantID": req.PriceVariantID,
		"quantity":  item.Quantity,
	})

	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req struct {
		Quantity uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Cart.UpdateQuantity(c.Request().Context(), uid, id, req.Quantity)
	if err != nil {
		return httpError(c, err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(uid), map[string]any{
		"type":     "cart_item_updated",
		"userID":   uid,
		"id":       item.ID,
		"quantity": item.Quantity,
	})

	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) DeleteCartItem(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Cart.Remove(c.Request().Context(), uid, id); err != nil {
		return httpError(c, err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(uid), map[string]any{
		"type":         "cart_item_deleted",
		"userID":       uid,
		"deleted_item": id,
	})

	return c.NoContent(http.StatusNoContent)
}
