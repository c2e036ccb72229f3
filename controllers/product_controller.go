package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"wakeup-cafe/libs"
	"wakeup-cafe/models"
	"wakeup-cafe/repositories"
	"wakeup-cafe/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Products *repositories.ProductRepository
}

func NewProductController(products *repositories.ProductRepository) *ProductController {
	return &ProductController{Products: products}
}

func productCacheKey(page, limit int) string {
	return fmt.Sprintf("products_list_p%d_l%d", page, limit)
}

func invalidateProductCache() {
	if models.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := models.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		models.RedisClient.Del(ctx, iter.Val())
	}
}

// @Summary Get all products
// @Description Get paginated list of products
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} models.PaginationResponse
// @Router /api/products [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	cacheKey := productCacheKey(page, limit)
	ctx := context.Background()

	if models.RedisClient != nil {
		cached, err := models.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Data(200, "application/json", []byte(cached))
			return
		}
	}

	products, total, err := ctrl.Products.GetAllProducts(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to fetch products"})
		return
	}

	response := models.PaginationResponse{
		Success: true,
		Message: "Products retrieved",
		Data:    products,
		Meta: models.MetaData{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}

	if models.RedisClient != nil {
		jsonData, _ := json.Marshal(response)
		models.RedisClient.Set(ctx, cacheKey, string(jsonData), 5*time.Minute)
	}

	c.JSON(200, response)
}

// @Summary Get product by ID
// @Description Get a single product
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"success": false, "message": "Invalid product ID"})
		return
	}

	product, err := ctrl.Products.GetProductByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(404, gin.H{"success": false, "message": "Product not found"})
		return
	}

	c.JSON(200, gin.H{"success": true, "message": "Product retrieved", "data": product})
}

// @Summary Create product
// @Description Create a new product with optional image (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string false "Description"
// @Param price formData number true "Price"
// @Param stock formData int false "Stock"
// @Param image formData file false "Product image"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request", "error": err.Error()})
		return
	}

	imageURL := req.ImageURL
	if file, err := c.FormFile("image"); err == nil {
		localPath, err := utils.SaveUploadedImage(c, file, "products")
		if err != nil {
			c.JSON(400, gin.H{"success": false, "message": err.Error()})
			return
		}
		defer utils.DeleteFile(localPath)

		hostedURL, err := libs.UploadToCloudinary(localPath)
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Image upload failed"})
			return
		}
		imageURL = hostedURL
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    imageURL,
	}

	if err := ctrl.Products.CreateProduct(c.Request.Context(), product); err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create product"})
		return
	}

	invalidateProductCache()

	c.JSON(201, gin.H{"success": true, "message": "Product created", "data": product})
}
