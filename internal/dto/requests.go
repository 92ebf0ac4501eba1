package dto

// RegisterRequest содержит данные регистрации.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest содержит данные входа.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest содержит refresh токен.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateGigRequest содержит данные нового гига.
type CreateGigRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Budget      float64 `json:"budget" binding:"required"`
}

// UpdateGigRequest содержит данные для обновления гига.
type UpdateGigRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Budget      float64 `json:"budget" binding:"required"`
}

// CreateBidRequest содержит данные нового отклика.
type CreateBidRequest struct {
	GigID   string  `json:"gig_id" binding:"required"`
	Message string  `json:"message" binding:"required"`
	Price   float64 `json:"price" binding:"required"`
}
