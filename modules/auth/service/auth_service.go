package service

import (
	"context"
	"strings"

	"outings-api/core/constants"
	"outings-api/core/errors"
	"outings-api/core/logger"
	"outings-api/modules/activity/entity"
	activityMapper "outings-api/modules/activity/mapper"
	"outings-api/modules/activity/repository"
	"outings-api/modules/auth/dto"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	Signup(ctx context.Context, req *dto.SignupRequest) *errors.AppError
	ResolveUser(ctx context.Context, userID string) (*entity.User, *errors.AppError)
}

// AuthService is the stand-in for real authentication: a login is a lookup of a seeded
// user by email. No credential is checked and no session is kept server side.
type AuthService struct {
	store repository.StoreInterface
}

func NewAuthService(store repository.StoreInterface) *AuthService {
	return &AuthService{store: store}
}

func (service *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	user, err := service.store.FindUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		logger.Error("AuthService:Login:FindUserByEmail:Error", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to look up user", err)
	}
	if user == nil {
		logger.Info("AuthService:Login:UnknownEmail")
		return nil, errors.NewAppError(errors.ErrNotFound, constants.MsgUserNotFound, nil)
	}

	logger.Info("AuthService:Login:Success", "user_id", user.ID)
	return &dto.LoginResponse{
		User:   activityMapper.ToUserResponse(*user),
		Header: constants.HeaderUserID,
	}, nil
}

// Signup is not available in the demo; users are seeded at boot.
func (service *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) *errors.AppError {
	logger.Info("AuthService:Signup:NotAvailable")
	return errors.NewAppError(errors.ErrNotImplemented, constants.MsgSignupNotAvailable, nil)
}

func (service *AuthService) ResolveUser(ctx context.Context, userID string) (*entity.User, *errors.AppError) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "request cancelled", err)
	}
	user, ok := service.store.Snapshot().User(userID)
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, constants.MsgUserNotFound, nil)
	}
	return &user, nil
}
