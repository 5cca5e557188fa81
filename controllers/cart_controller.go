package controllers

import (
	"errors"
	"log"
	"net/http"

	"storefront-api/middleware"
	"storefront-api/models"
	"storefront-api/repositories"
	"storefront-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const cartIDHeader = "X-Cart-ID"

type CartController struct {
	Cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

// cartID resolves the caller's cart identity, minting a fresh one for new
// visitors. The id is always echoed back so the client can persist it.
func (ctrl *CartController) cartID(c *gin.Context) string {
	cartID := c.GetHeader(cartIDHeader)
	if cartID == "" {
		cartID = uuid.NewString()
	}
	c.Header(cartIDHeader, cartID)
	return cartID
}

func (ctrl *CartController) respond(c *gin.Context, cartID string, items []models.CartItem) {
	if items == nil {
		items = []models.CartItem{}
	}
	c.JSON(http.StatusOK, models.CartResponse{
		Success: true,
		CartID:  cartID,
		Items:   items,
		Summary: models.Summarize(items),
	})
}

func (ctrl *CartController) renderCartError(c *gin.Context, err error) {
	if validation, ok := services.AsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   validation.Message,
		})
		return
	}
	var notFound *repositories.ErrItemNotFound
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   notFound.Error(),
		})
		return
	}
	log.Printf("cart operation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "Internal server error",
	})
}

// @Summary Get cart
// @Description Return the cart identified by the X-Cart-ID header
// @Tags Cart
// @Produce json
// @Param X-Cart-ID header string false "Cart id"
// @Success 200 {object} models.CartResponse
// @Router /cart [get]
func (ctrl *CartController) Get(c *gin.Context) {
	cartID := ctrl.cartID(c)

	items, err := ctrl.Cart.Get(c.Request.Context(), cartID)
	if err != nil {
		ctrl.renderCartError(c, err)
		return
	}
	ctrl.respond(c, cartID, items)
}

// @Summary Add cart item
// @Description Add a product variant to the cart, snapshotting the viewer's price tier
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-ID header string false "Cart id"
// @Param request body models.AddCartItemRequest true "Product and quantity"
// @Success 200 {object} models.CartResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	cartID := ctrl.cartID(c)

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON in request body",
		})
		return
	}

	items, err := ctrl.Cart.Add(c.Request.Context(), cartID, req, middleware.Viewer(c))
	if err != nil {
		ctrl.renderCartError(c, err)
		return
	}
	ctrl.respond(c, cartID, items)
}

// @Summary Update cart item quantity
// @Description Set a variant's quantity; zero or negative removes the line
// @Tags Cart
// @Accept json
// @Produce json
// @Param X-Cart-ID header string false "Cart id"
// @Param variant_id path string true "Variant id"
// @Param request body models.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} models.CartResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{variant_id} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	cartID := ctrl.cartID(c)
	variantID := c.Param("variant_id")

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid JSON in request body",
		})
		return
	}

	items, err := ctrl.Cart.UpdateQuantity(c.Request.Context(), cartID, variantID, req.Quantity)
	if err != nil {
		ctrl.renderCartError(c, err)
		return
	}
	ctrl.respond(c, cartID, items)
}

// @Summary Remove cart item
// @Description Remove one variant line from the cart
// @Tags Cart
// @Produce json
// @Param X-Cart-ID header string false "Cart id"
// @Param variant_id path string true "Variant id"
// @Success 200 {object} models.CartResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{variant_id} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	cartID := ctrl.cartID(c)

	items, err := ctrl.Cart.Remove(c.Request.Context(), cartID, c.Param("variant_id"))
	if err != nil {
		ctrl.renderCartError(c, err)
		return
	}
	ctrl.respond(c, cartID, items)
}

// @Summary Clear cart
// @Description Remove every line from the cart
// @Tags Cart
// @Produce json
// @Param X-Cart-ID header string false "Cart id"
// @Success 200 {object} models.CartResponse
// @Router /cart [delete]
func (ctrl *CartController) Clear(c *gin.Context) {
	cartID := ctrl.cartID(c)

	if err := ctrl.Cart.Clear(c.Request.Context(), cartID); err != nil {
		ctrl.renderCartError(c, err)
		return
	}
	ctrl.respond(c, cartID, nil)
}
