package admin

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type TaxiRequest struct {
	Model    string `json:"model" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
	Status   string `json:"status"`
}

type DriverRequest struct {
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone" binding:"required"`
	TaxiID int64  `json:"taxi_id" binding:"required,gt=0"`
}
