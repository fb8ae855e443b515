package services

import (
	"context"
	"net/url"

	"github.com/shashiranjanraj/swaad/app/models"
	"github.com/shashiranjanraj/swaad/pkg/http"
)

// LoginInput is the login form payload.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterInput is the registration form payload.
type RegisterInput struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName"  validate:"required,max=50"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
}

// loginReply is the backend's login/register response.
type loginReply struct {
	Status string       `json:"status"`
	Token  string       `json:"token"`
	User   *models.User `json:"user"`
}

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	resp, err := send("auth.login",
		http.Post(c.url("/api/login")).
			Body(in).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return "", nil, err
	}

	var reply loginReply
	if err := parse(resp, &reply); err != nil {
		return "", nil, err
	}
	return reply.Token, reply.User, nil
}

// Register creates an account. The backend logs the new user in immediately,
// so the reply carries a token just like Login.
func (c *Client) Register(ctx context.Context, in RegisterInput) (string, *models.User, error) {
	resp, err := send("auth.register",
		http.Post(c.url("/api/register")).
			Body(in).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return "", nil, err
	}

	var reply loginReply
	if err := parse(resp, &reply); err != nil {
		return "", nil, err
	}
	return reply.Token, reply.User, nil
}

// ForgotPassword asks the backend to send a reset email. The backend answers
// 200 whether or not the address exists, so no enumeration is possible here.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	resp, err := send("auth.forgot_password",
		http.Post(c.url("/api/user/forgot-password")).
			Body(map[string]string{"email": email}).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return err
	}
	return parse(resp, nil)
}

// ResetPasswordInput carries the new password chosen from a reset link.
type ResetPasswordInput struct {
	Password             string `json:"password"              validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,confirmed"`
}

// ResetPassword completes a forgot-password flow. The reset token comes from
// the emailed link and is consumed by the backend on success.
func (c *Client) ResetPassword(ctx context.Context, resetToken string, in ResetPasswordInput) error {
	resp, err := send("auth.reset_password",
		http.Post(c.url("/api/user/reset-password/"+url.PathEscape(resetToken))).
			Body(map[string]string{"password": in.Password}).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return err
	}
	return parse(resp, nil)
}

// UpdatePasswordInput carries a password change for the signed-in user.
type UpdatePasswordInput struct {
	CurrentPassword      string `json:"currentPassword"       validate:"required"`
	Password             string `json:"password"              validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,confirmed"`
}

// UpdatePassword changes the signed-in user's password.
func (c *Client) UpdatePassword(ctx context.Context, token string, in UpdatePasswordInput) error {
	resp, err := send("auth.update_password",
		http.Post(c.url("/api/user/update-password")).
			Bearer(token).
			Body(map[string]string{
				"currentPassword": in.CurrentPassword,
				"newPassword":     in.Password,
			}).
			WithContext(ctxOrBackground(ctx)))
	if err != nil {
		return err
	}
	return parse(resp, nil)
}
