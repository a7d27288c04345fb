package transport

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	City     string `json:"city"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Price       float64  `json:"price"`
	Stock       uint     `json:"stock"`
	CategoryID  uint     `json:"categoryId"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Images      []string `json:"images"`
	Price       *float64 `json:"price"`
	Stock       *uint    `json:"stock"`
	CategoryID  *uint    `json:"categoryId"`
}

type CategoryRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type OrderItemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

type PlaceOrderRequest struct {
	Items   []OrderItemRequest `json:"items"`
	Address string             `json:"address"`
	City    string             `json:"city"`
	Phone   string             `json:"phone"`
	Status  string             `json:"status"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
