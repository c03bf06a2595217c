package validator

import (
	"net/mail"
	"strings"

	"outings-api/core/validation"
	"outings-api/modules/auth/dto"
)

func ValidateLoginRequest(req *dto.LoginRequest) *validation.Result {
	result := validation.NewResult()
	validateEmail(result, req.Email)
	return result
}

func ValidateSignupRequest(req *dto.SignupRequest) *validation.Result {
	result := validation.NewResult()
	result.Required("name", req.Name)
	validateEmail(result, req.Email)
	return result
}

func validateEmail(result *validation.Result, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		result.Add("email", "email is required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		result.Add("email", "email is not valid")
	}
}
