package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rafidhia/storefront/internal/models"
	"github.com/rafidhia/storefront/internal/service"
)

func newCartHandler(t *testing.T) (*CartHandler, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return &CartHandler{Cart: &service.CartService{DB: db}}, db
}

func seedCartProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()
	product := models.Product{Name: "Kaos Polos", Slug: "kaos-polos"}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestAddToCartRequiresAuth(t *testing.T) {
	h, _ := newCartHandler(t)
	e := echo.New()

	c, _ := newJSONContext(e, http.MethodPost, "/api/cart", `{"productId":1,"quantity":1}`)
	requireHTTPStatus(t, h.AddToCart(c), http.StatusUnauthorized)
}

func TestAddToCartMergesLines(t *testing.T) {
	h, db := newCartHandler(t)
	product := seedCartProduct(t, db)
	e := echo.New()
	body := fmt.Sprintf(`{"productId":%d,"quantity":2}`, product.ID)

	c, rec := newJSONContext(e, http.MethodPost, "/api/cart", body)
	c.Set("userID", uint(1))
	require.NoError(t, h.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body = fmt.Sprintf(`{"productId":%d,"quantity":3}`, product.ID)
	c, rec = newJSONContext(e, http.MethodPost, "/api/cart", body)
	c.Set("userID", uint(1))
	require.NoError(t, h.AddToCart(c))

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	require.Equal(t, uint(5), item.Quantity)

	c, rec = newJSONContext(e, http.MethodGet, "/api/cart", "")
	c.Set("userID", uint(1))
	require.NoError(t, h.GetCart(c))

	var items []models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
}

func TestAddToCartRejectsZeroQuantity(t *testing.T) {
	h, db := newCartHandler(t)
	product := seedCartProduct(t, db)
	e := echo.New()

	body := fmt.Sprintf(`{"productId":%d,"quantity":0}`, product.ID)
	c, _ := newJSONContext(e, http.MethodPost, "/api/cart", body)
	c.Set("userID", uint(1))
	requireHTTPStatus(t, h.AddToCart(c), http.StatusBadRequest)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	h, _ := newCartHandler(t)
	e := echo.New()

	c, _ := newJSONContext(e, http.MethodPost, "/api/cart", `{"productId":9999,"quantity":1}`)
	c.Set("userID", uint(1))
	requireHTTPStatus(t, h.AddToCart(c), http.StatusNotFound)
}

func TestUpdateCartItemReplacesQuantity(t *testing.T) {
	h, db := newCartHandler(t)
	product := seedCartProduct(t, db)
	e := echo.New()

	line, err := h.Cart.Add(context.Background(), 1, product.ID, 0, 7)
	require.NoError(t, err)

	c, rec := newJSONContext(e, http.MethodPatch, "/api/cart/1", `{"quantity":4}`,
		"id", fmt.Sprint(line.ID))
	c.Set("userID", uint(1))
	require.NoError(t, h.UpdateCartItem(c))

	var item models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	require.Equal(t, uint(4), item.Quantity)
}

func TestUpdateCartItemErrors(t *testing.T) {
	h, db := newCartHandler(t)
	product := seedCartProduct(t, db)
	e := echo.New()

	line, err := h.Cart.Add(context.Background(), 1, product.ID, 0, 1)
	require.NoError(t, err)

	c, _ := newJSONContext(e, http.MethodPatch, "/api/cart/abc", `{"quantity":2}`, "id", "abc")
	c.Set("userID", uint(1))
	requireHTTPStatus(t, h.UpdateCartItem(c), http.StatusBadRequest)

	c, _ = newJSONContext(e, http.MethodPatch, "/api/cart/9999", `{"quantity":2}`, "id", "9999")
	c.Set("userID", uint(1))
	requireHTTPStatus(t, h.UpdateCartItem(c), http.StatusNotFound)

	// Another user's line is a 404, not a 403, so line ids stay unguessable.
	c, _ = newJSONContext(e, http.MethodPatch, "/api/cart/1", `{"quantity":2}`,
		"id", fmt.Sprint(line.ID))
	c.Set("userID", uint(2))
	requireHTTPStatus(t, h.UpdateCartItem(c), http.StatusNotFound)
}

func TestDeleteCartItemIsIdempotent(t *testing.T) {
	h, db := newCartHandler(t)
	product := seedCartProduct(t, db)
	e := echo.New()

	line, err := h.Cart.Add(context.Background(), 1, product.ID, 0, 1)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		c, rec := newJSONContext(e, http.MethodDelete, "/api/cart/1", "", "id", fmt.Sprint(line.ID))
		c.Set("userID", uint(1))
		require.NoError(t, h.DeleteCartItem(c))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
}
