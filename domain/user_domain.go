package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister        = "user registered successfully"
	MessageSuccessLogin           = "login successful"
	MessageSuccessGetMe           = "user profile retrieved successfully"
	MessageSuccessUpdateUser      = "user updated successfully"
	MessageSuccessSendVerifyEmail = "verification email sent"
	MessageSuccessVerifyEmail     = "email verified successfully"

	MessageFailedRegister        = "failed to register user"
	MessageFailedLogin           = "failed to login"
	MessageFailedGetMe           = "failed to retrieve user profile"
	MessageFailedUpdateUser      = "failed to update user"
	MessageFailedSendVerifyEmail = "failed to send verification email"
	MessageFailedVerifyEmail     = "failed to verify email"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

type (
	RegisterRequest struct {
		Email         string  `json:"email" validate:"required,email"`
		Password      string  `json:"password" validate:"required,min=6,max=18"`
		Height        float64 `json:"height" validate:"omitempty,gt=0"`
		Weight        float64 `json:"weight" validate:"omitempty,gt=0"`
		Age           int     `json:"age" validate:"omitempty,gt=0"`
		Sex           string  `json:"sex" validate:"omitempty,oneof=male female other"`
		ActivityLevel string  `json:"activity_level" validate:"omitempty,oneof=sedentary light moderate active very_active"`
		FitnessGoal   string  `json:"fitness_goal" validate:"omitempty,oneof=lose maintain gain"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	UpdateUserRequest struct {
		Height        float64 `json:"height" validate:"omitempty,gt=0"`
		Weight        float64 `json:"weight" validate:"omitempty,gt=0"`
		Age           int     `json:"age" validate:"omitempty,gt=0"`
		Sex           string  `json:"sex" validate:"omitempty,oneof=male female other"`
		ActivityLevel string  `json:"activity_level" validate:"omitempty,oneof=sedentary light moderate active very_active"`
		FitnessGoal   string  `json:"fitness_goal" validate:"omitempty,oneof=lose maintain gain"`
	}

	SendVerifyEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	UserResponse struct {
		ID            string    `json:"id"`
		Email         string    `json:"email"`
		Height        float64   `json:"height,omitempty"`
		Weight        float64   `json:"weight,omitempty"`
		Age           int       `json:"age,omitempty"`
		Sex           string    `json:"sex,omitempty"`
		ActivityLevel string    `json:"activity_level,omitempty"`
		FitnessGoal   string    `json:"fitness_goal,omitempty"`
		IsVerified    bool      `json:"is_verified"`
		CreatedAt     time.Time `json:"created_at"`
	}
)
