package controllers

import (
	"context"
	"time"

	"wakeup-cafe/models"
	"wakeup-cafe/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct{}

// Register godoc
// @Summary Register new user
// @Description Register a new customer account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Register Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	var exists int
	models.DB.QueryRow(context.Background(), "SELECT COUNT(*) FROM users WHERE email=$1", req.Email).Scan(&exists)
	if exists > 0 {
		c.JSON(400, gin.H{"success": false, "message": "Email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create account"})
		return
	}

	role := req.Role
	if role == "" {
		role = "customer"
	}
	now := time.Now()

	var user models.User
	err = models.DB.QueryRow(context.Background(),
		"INSERT INTO users (email, password, role, full_name, created_at, updated_at) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, email, role, full_name, created_at, updated_at",
		req.Email, hash, role, req.FullName, now, now,
	).Scan(&user.ID, &user.Email, &user.Role, &user.FullName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to create account"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Account created",
		"data":    models.LoginResponse{Token: token, User: user},
	})
}

// Login godoc
// @Summary Login
// @Description Authenticate and receive a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	var user models.User
	err := models.DB.QueryRow(context.Background(),
		"SELECT id, email, password, role, full_name, created_at, updated_at FROM users WHERE email=$1",
		req.Email,
	).Scan(&user.ID, &user.Email, &user.Password, &user.Role, &user.FullName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		c.JSON(401, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		c.JSON(401, gin.H{"success": false, "message": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(500, gin.H{"success": false, "message": "Failed to generate token"})
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Login successful",
		"data":    models.LoginResponse{Token: token, User: user},
	})
}
