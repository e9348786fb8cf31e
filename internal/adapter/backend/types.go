package backend

import "github.com/shopspring/decimal"

type (
	Product struct {
		ID       string          `json:"_id"`
		Name     string          `json:"name"`
		Category string          `json:"category"`
		Cost     decimal.Decimal `json:"cost"`
		Rating   int             `json:"rating"`
		Image    string          `json:"image"`
	}

	CartRecord struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}

	Credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	LoginResponse struct {
		Success  bool            `json:"success"`
		Token    string          `json:"token"`
		Username string          `json:"username"`
		Balance  decimal.Decimal `json:"balance"`
		Message  string          `json:"message"`
	}

	RegisterResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	errorResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
)
