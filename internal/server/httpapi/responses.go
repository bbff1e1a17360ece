package httpapi

import "github.com/dmitrijs2005/gophtodo/internal/server/services"

type messageResponse struct {
	Message string `json:"message"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type validationResponse struct {
	Errors services.ValidationErrors `json:"errors"`
}

type healthResponse struct {
	Status string `json:"status"`
}
