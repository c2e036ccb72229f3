package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Role     string `json:"role" form:"role" binding:"omitempty,oneof=customer admin"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type FeedbackRequest struct {
	ProductID int    `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback  string `json:"feedback"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" form:"name" binding:"required"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price" binding:"required,gte=0"`
	Stock       int     `json:"stock" form:"stock"`
	ImageURL    string  `json:"image_url" form:"image_url"`
}

type CheckoutResponse struct {
	Message string `json:"message"`
	OrderID int    `json:"orderId"`
}
