package controllers

import (
	"context"
	"errors"
	"log"

	"wakeup-cafe/models"
	"wakeup-cafe/services"

	"github.com/gin-gonic/gin"
)

type checkoutRepository interface {
	SubmitCheckout(ctx context.Context, userID int, payload []models.CheckoutLine) (string, error)
	FetchOrderHistory(ctx context.Context, userID int) ([]models.RawOrderLine, error)
}

// CheckoutController submits the cart as an order and serves the
// aggregated order history.
type CheckoutController struct {
	Carts  *services.CartManager
	Orders checkoutRepository
	Mailer *models.EmailService
}

func NewCheckoutController(carts *services.CartManager, orders checkoutRepository, mailer *models.EmailService) *CheckoutController {
	return &CheckoutController{Carts: carts, Orders: orders, Mailer: mailer}
}

// @Summary Checkout
// @Description Submit the current cart as an order
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/checkout [post]
func (ctrl *CheckoutController) Checkout(c *gin.Context) {
	userID := c.GetInt("user_id")
	cart := ctrl.Carts.Cart(userID)

	payload := cart.BuildCheckoutPayload()
	total := cart.CartTotal()

	submitter := services.OrderSubmitterFunc(func(ctx context.Context, payload []models.CheckoutLine) (string, error) {
		return ctrl.Orders.SubmitCheckout(ctx, userID, payload)
	})

	message, err := cart.SubmitCheckout(c.Request.Context(), submitter)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(400, gin.H{"success": false, "message": "Cart is empty"})
			return
		}
		c.JSON(500, gin.H{"success": false, "message": "Failed to place the order"})
		return
	}

	ctrl.sendReceipt(c.GetString("user_email"), payload, total)

	c.JSON(201, gin.H{
		"success": true,
		"message": message,
	})
}

// sendReceipt is best-effort: a mail failure never fails the checkout.
func (ctrl *CheckoutController) sendReceipt(email string, payload []models.CheckoutLine, total float64) {
	if ctrl.Mailer == nil || email == "" {
		return
	}
	go func() {
		if err := ctrl.Mailer.SendOrderReceipt(email, 0, payload, total); err != nil {
			log.Println("Failed to send order receipt:", err)
		}
	}()
}

// @Summary Get order history
// @Description Past orders grouped by order id with merged totals
// @Tags Checkout
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 500 {object} models.ErrorResponse
// @Router /api/checkout [get]
func (ctrl *CheckoutController) GetHistory(c *gin.Context) {
	userID := c.GetInt("user_id")

	lines, err := ctrl.Orders.FetchOrderHistory(c.Request.Context(), userID)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch order history"})
		return
	}

	orders, anomalies := services.AggregateOrderLines(lines)
	for _, a := range anomalies {
		log.Println("Order history anomaly:", a.String())
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Order history retrieved",
		"data":    orders,
		"meta": gin.H{
			"totalOrders":    len(orders),
			"malformedLines": len(anomalies),
		},
	})
}
