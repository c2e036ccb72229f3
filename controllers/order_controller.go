package controllers

import (
	"strconv"

	"wakeup-cafe/models"
	"wakeup-cafe/services"

	"github.com/gin-gonic/gin"
)

// OrderController serves the cart screen: pending lines, quantity
// mutations and running totals.
type OrderController struct {
	Carts   *services.CartManager
	Fetcher services.PendingOrderFetcher
}

func NewOrderController(carts *services.CartManager, fetcher services.PendingOrderFetcher) *OrderController {
	return &OrderController{Carts: carts, Fetcher: fetcher}
}

func (ctrl *OrderController) cartView(cart *services.CartStore) gin.H {
	lines := cart.Lines()
	items := make([]gin.H, 0, len(lines))
	for _, line := range lines {
		quantity, _ := cart.Quantity(line.ID)
		items = append(items, gin.H{
			"id":           line.ID,
			"productId":    line.ProductID,
			"productName":  line.ProductName,
			"productPrice": line.ProductPrice,
			"image_url":    line.ImageURL,
			"quantity":     quantity,
			"lineTotal":    cart.LineTotal(line.ID),
		})
	}
	return gin.H{
		"items":      items,
		"cartTotal":  cart.CartTotal(),
		"checkedOut": cart.HasCheckedOut(),
	}
}

// @Summary Get pending orders
// @Description Fetch the user's pending cart lines and load them into the cart
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 500 {object} models.ErrorResponse
// @Router /api/orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	userID := c.GetInt("user_id")
	cart := ctrl.Carts.Cart(userID)

	gen := cart.Generation()
	lines, err := ctrl.Fetcher.FetchPendingOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch orders"})
		return
	}

	// discarded when the user checked out while the fetch was in flight
	cart.Load(gen, lines)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Orders retrieved",
		"data":    ctrl.cartView(cart),
	})
}

// @Summary Increment quantity
// @Description Add one to a cart line's quantity
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart line ID"
// @Success 200 {object} models.Response
// @Router /api/orders/{id}/increment [patch]
func (ctrl *OrderController) IncrementOrder(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	cart := ctrl.Carts.Cart(userID)
	cart.Increment(id)

	c.JSON(200, gin.H{"success": true, "message": "Quantity updated", "data": ctrl.cartView(cart)})
}

// @Summary Decrement quantity
// @Description Subtract one from a cart line's quantity, floored at 1
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart line ID"
// @Success 200 {object} models.Response
// @Router /api/orders/{id}/decrement [patch]
func (ctrl *OrderController) DecrementOrder(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	cart := ctrl.Carts.Cart(userID)
	cart.Decrement(id)

	c.JSON(200, gin.H{"success": true, "message": "Quantity updated", "data": ctrl.cartView(cart)})
}

// @Summary Remove cart line
// @Description Delete a line and its quantity from the cart
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Cart line ID"
// @Success 200 {object} models.Response
// @Router /api/orders/{id} [delete]
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid order ID"})
		return
	}

	cart := ctrl.Carts.Cart(userID)
	cart.Remove(id)

	c.JSON(200, gin.H{"success": true, "message": "Order removed", "data": ctrl.cartView(cart)})
}

// @Summary Get cart total
// @Description Current cart total rounded to 2 decimal places
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/orders/total [get]
func (ctrl *OrderController) GetCartTotal(c *gin.Context) {
	userID := c.GetInt("user_id")
	cart := ctrl.Carts.Cart(userID)

	c.JSON(200, gin.H{
		"success": true,
		"message": "Cart total",
		"data":    gin.H{"cartTotal": cart.CartTotal()},
	})
}

// @Summary Reset cart
// @Description Clear the checkout flag so the cart can be loaded again
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/orders/reset [post]
func (ctrl *OrderController) ResetCart(c *gin.Context) {
	userID := c.GetInt("user_id")
	ctrl.Carts.Cart(userID).Reset()

	c.JSON(200, models.Response{Success: true, Message: "Cart reset"})
}
