package controller

import (
	"outings-api/core/controller"
	"outings-api/core/errors"
	"outings-api/modules/auth/dto"
	"outings-api/modules/auth/service"
	"outings-api/modules/auth/validator"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(authService service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    authService,
	}
}

// Login looks a seeded user up by email
// @Summary Connexion
// @Description Connexion par email (démo, sans mot de passe)
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Email"
// @Success 200 {object} dto.LoginResponse
// @Failure 404 {object} errors.AppError
// @Router /auth/login [post]
func (controller *AuthController) Login(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.LoginRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateLoginRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	loginResponse, err := controller.AuthService.Login(ctx, requestData)
	if err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, loginResponse, "Login success")
}

// Signup is not implemented in the demo
// @Summary Inscription
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Nom et email"
// @Failure 501 {object} errors.AppError
// @Router /auth/signup [post]
func (controller *AuthController) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.SignupRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", nil)
	}

	validationResult := validator.ValidateSignupRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	if err := controller.AuthService.Signup(ctx, requestData); err != nil {
		return controller.ErrorResponse(c, err)
	}

	return controller.SuccessResponse(c, nil, "Register success")
}
