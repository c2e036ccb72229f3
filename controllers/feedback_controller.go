package controllers

import (
	"wakeup-cafe/models"
	"wakeup-cafe/repositories"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	Feedback *repositories.FeedbackRepository
	Products *repositories.ProductRepository
}

func NewFeedbackController(feedback *repositories.FeedbackRepository, products *repositories.ProductRepository) *FeedbackController {
	return &FeedbackController{Feedback: feedback, Products: products}
}

// @Summary Submit feedback
// @Description Rate a product with an optional comment
// @Tags Feedback
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.FeedbackRequest true "Feedback"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/feedback [post]
func (ctrl *FeedbackController) SubmitFeedback(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Please select a rating between 1 and 5"})
		return
	}

	if _, err := ctrl.Products.GetProductByID(c.Request.Context(), req.ProductID); err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	fb := &models.Feedback{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Feedback,
	}

	if err := ctrl.Feedback.CreateFeedback(c.Request.Context(), fb); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to submit feedback"})
		return
	}

	c.JSON(201, gin.H{"success": true, "message": "Feedback submitted", "data": fb})
}

// @Summary Get blog posts
// @Description List cafe blog posts, newest first
// @Tags Blog
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/blogs [get]
func (ctrl *FeedbackController) GetAllBlogs(c *gin.Context) {
	blogs, err := ctrl.Feedback.GetAllBlogs(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch blog data"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Blogs retrieved", "data": blogs})
}
