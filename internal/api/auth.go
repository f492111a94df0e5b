package api

import (
	"context"
	"fmt"
	"log/slog"

	"docvault/internal/dto"
	"docvault/internal/models"
)

// AuthClient covers the two unauthenticated calls of the login flow.
type AuthClient struct {
	log  *slog.Logger
	base *Client
}

func NewAuthClient(log *slog.Logger, base *Client) *AuthClient {
	return &AuthClient{
		log:  log,
		base: base,
	}
}

// GenerateOTP asks the backend to send a one-time code to the phone number.
// The returned string is the server's delivery notice, when it sent one.
func (a *AuthClient) GenerateOTP(ctx context.Context, phone string) (string, error) {
	op := pkg + "GenerateOTP"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to request one-time code")

	if err := models.ValidatePhone(phone); err != nil {
		log.Warn("invalid mobile number", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
	}

	var res dto.StatusResponse

	err := a.base.postJSON(ctx, pathGenerateOTP, "", dto.GenerateOTPRequest{MobileNumber: phone}, &res)
	if err != nil {
		log.Error("request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !res.Success {
		log.Warn("server refused to send code", slog.String("message", res.Message))
		return "", fmt.Errorf("%s: %w", op, &models.APIError{Message: res.Message})
	}

	log.Debug("one-time code requested")

	return res.Message, nil
}

// ValidateOTP redeems a one-time code for a bearer token. Persisting the
// token is the caller's concern.
func (a *AuthClient) ValidateOTP(ctx context.Context, phone string, code string) (string, error) {
	op := pkg + "ValidateOTP"

	log := a.log.With(slog.String("op", op))

	log.Debug("attempting to redeem one-time code")

	if err := models.ValidatePhone(phone); err != nil {
		log.Warn("invalid mobile number", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
	}

	if err := models.ValidateOTPCode(code); err != nil {
		log.Warn("invalid one-time code format", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
	}

	var res dto.ValidateOTPResponse

	err := a.base.postJSON(ctx, pathValidateOTP, "", dto.ValidateOTPRequest{MobileNumber: phone, OTP: code}, &res)
	if err != nil {
		log.Error("request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !res.Success || res.Token == "" {
		log.Warn("code rejected", slog.String("message", res.Message))
		return "", fmt.Errorf("%s: %w", op, &models.APIError{Message: res.Message})
	}

	log.Debug("one-time code redeemed")

	return res.Token, nil
}
