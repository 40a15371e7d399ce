package backend

import (
	"context"
	"net/http"

	"github.com/and161185/gas2door/internal/errs"
	"github.com/and161185/gas2door/internal/model"
)

const (
	loginPath         = "/auth/login"
	guestPath         = "/auth/guest"
	guestUpgradePath  = "/auth/guest/upgrade"
	registerPath      = "/auth/register/customer"
	verifyOTPPath     = "/auth/verify-otp"
	passwordResetPath = "/auth/request-password-reset"
)

func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.Session, error) {
	res, err := c.do(ctx, http.MethodPost, loginPath, "", creds)
	if err != nil {
		return nil, err
	}

	token := extractToken(res)
	if token == "" {
		return nil, &errs.ContractError{Op: "POST " + loginPath, Field: "accessToken", Message: "Login failed. Please try again."}
	}
	return &model.Session{AccessToken: token, User: parseUser(res)}, nil
}

// GuestCreate returns the session exactly as the backend issued it; tagging the
// user as a guest is left to the caller.
func (c *Client) GuestCreate(ctx context.Context, req model.GuestRequest) (*model.Session, error) {
	res, err := c.do(ctx, http.MethodPost, guestPath, "", req)
	if err != nil {
		return nil, err
	}

	token := extractToken(res)
	if token == "" {
		return nil, &errs.ContractError{Op: "POST " + guestPath, Field: "accessToken", Message: "Unable to start a guest session. Please try again."}
	}
	return &model.Session{AccessToken: token, User: parseUser(res)}, nil
}

func (c *Client) Register(ctx context.Context, req model.RegisterRequest) error {
	_, err := c.do(ctx, http.MethodPost, registerPath, "", req)
	return err
}

// GuestUpgrade only starts OTP verification; no new token is issued.
func (c *Client) GuestUpgrade(ctx context.Context, token string, req model.UpgradeRequest) (string, error) {
	res, err := c.do(ctx, http.MethodPost, guestUpgradePath, token, req)
	if err != nil {
		return "", err
	}
	msg := firstString(res, "message", "data.message")
	if msg == "" {
		msg = "Verification code sent."
	}
	return msg, nil
}

// VerifyOTP returns a session only when the backend chose to issue a token.
func (c *Client) VerifyOTP(ctx context.Context, req model.OTPRequest) (*model.Session, error) {
	res, err := c.do(ctx, http.MethodPost, verifyOTPPath, "", req)
	if err != nil {
		return nil, err
	}
	token := extractToken(res)
	if token == "" {
		return nil, nil
	}
	return &model.Session{AccessToken: token, User: parseUser(res)}, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, passwordResetPath, "", map[string]string{"email": email})
	return err
}
