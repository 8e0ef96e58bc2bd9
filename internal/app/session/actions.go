package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ganeshlonare/lms-client/internal/api"
	"github.com/ganeshlonare/lms-client/internal/app/models"
	"github.com/ganeshlonare/lms-client/internal/app/models/dto"
	"github.com/ganeshlonare/lms-client/internal/pkg/apperrors"
	"github.com/ganeshlonare/lms-client/internal/pkg/validation"
)

// Actions groups the asynchronous session operations. Session truth is
// narrow-cast: only Login and FetchProfile fulfillments set it, only
// Logout clears it, and nothing else touches it.
type Actions struct {
	client *api.Client
	store  *Store
}

// NewActions wires the action set to its HTTP client and store
func NewActions(client *api.Client, store *Store) *Actions {
	return &Actions{client: client, store: store}
}

// Signup registers a new account. A successful signup does not log the
// user in; they sign in separately afterwards.
func (a *Actions) Signup(ctx context.Context, req dto.SignupRequest) (string, error) {
	if err := validation.FullName(req.FullName); err != nil {
		return "", err
	}
	if err := validation.Email(req.Email); err != nil {
		return "", err
	}
	if err := validation.Password(req.Password); err != nil {
		return "", err
	}

	a.store.notify(Event{Action: "signup", Phase: PhasePending, Message: "Wait! Creating your account"})

	fields := map[string]string{
		"fullName": req.FullName,
		"email":    req.Email,
		"password": req.Password,
	}

	var resp dto.MessageResponse
	if err := a.client.SendMultipart(ctx, "/user/signup", fields, "avatar", req.AvatarPath, &resp); err != nil {
		a.store.notify(Event{Action: "signup", Phase: PhaseRejected, Message: apperrors.UserMessage(err, "Failed to create account")})
		return "", err
	}

	a.store.notify(Event{Action: "signup", Phase: PhaseFulfilled, Message: resp.Message})
	return resp.Message, nil
}

// Login authenticates and, on a successful response carrying a user
// payload, commits the logged-in session and persists the snapshot. On
// any failure the session is left exactly as it was.
func (a *Actions) Login(ctx context.Context, req dto.LoginRequest) (models.UserProfile, error) {
	if err := validation.Email(req.Email); err != nil {
		return models.UserProfile{}, err
	}
	if err := validation.Required("password", req.Password); err != nil {
		return models.UserProfile{}, err
	}

	seq := a.store.beginDispatch()
	a.store.notify(Event{Action: "login", Phase: PhasePending, Message: "Logging in..."})

	var resp dto.AuthResponse
	if err := a.client.Send(ctx, http.MethodPost, "/user/signin", req, &resp); err != nil {
		a.store.notify(Event{Action: "login", Phase: PhaseRejected, Message: apperrors.UserMessage(err, "Failed to log in")})
		return models.UserProfile{}, err
	}

	if !resp.Success || resp.User == nil {
		err := fmt.Errorf("%w: signin response carried no user", apperrors.ErrMalformedResponse)
		a.store.notify(Event{Action: "login", Phase: PhaseRejected, Message: "Failed to log in"})
		return models.UserProfile{}, err
	}

	user := resp.User.ToProfile()
	a.store.applyLogin(seq, user)

	a.store.notify(Event{Action: "login", Phase: PhaseFulfilled, Message: resp.Message})
	return user, nil
}

// Logout ends the server session and, on fulfillment, clears every
// piece of client-local state regardless of what it held before.
func (a *Actions) Logout(ctx context.Context) error {
	seq := a.store.beginDispatch()
	a.store.notify(Event{Action: "logout", Phase: PhasePending, Message: "Logging out..."})

	var resp dto.MessageResponse
	if err := a.client.Send(ctx, http.MethodGet, "/user/signout", nil, &resp); err != nil {
		a.store.notify(Event{Action: "logout", Phase: PhaseRejected, Message: apperrors.UserMessage(err, "Failed to log out")})
		return err
	}

	a.store.applyLogout(seq)

	a.store.notify(Event{Action: "logout", Phase: PhaseFulfilled, Message: resp.Message})
	return nil
}

// FetchProfile refreshes the session from the current-user endpoint.
// Used to rehydrate after a reload and to pick up profile edits.
func (a *Actions) FetchProfile(ctx context.Context) (models.UserProfile, error) {
	seq := a.store.beginDispatch()
	a.store.notify(Event{Action: "fetch-profile", Phase: PhasePending, Message: "Loading profile..."})

	var resp dto.AuthResponse
	if err := a.client.Send(ctx, http.MethodPost, "/user/getuser", nil, &resp); err != nil {
		a.store.notify(Event{Action: "fetch-profile", Phase: PhaseRejected, Message: apperrors.UserMessage(err, "Failed to load profile")})
		return models.UserProfile{}, err
	}

	if !resp.Success || resp.User == nil {
		err := fmt.Errorf("%w: getuser response carried no user", apperrors.ErrMalformedResponse)
		a.store.notify(Event{Action: "fetch-profile", Phase: PhaseRejected, Message: "Failed to load profile"})
		return models.UserProfile{}, err
	}

	user := resp.User.ToProfile()
	a.store.applyLogin(seq, user)

	a.store.notify(Event{Action: "fetch-profile", Phase: PhaseFulfilled, Message: resp.Message})
	return user, nil
}

// ChangePassword swaps the password for the logged-in user. The
// session itself is untouched either way.
func (a *Actions) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (string, error) {
	if err := validation.Required("old password", req.OldPassword); err != nil {
		return "", err
	}
	if err := validation.Password(req.NewPassword); err != nil {
		return "", err
	}

	return a.messageAction(ctx, "change-password", http.MethodPost, "/user/change-password", req,
		"Changing password...", "Failed to change password")
}

// ForgotPassword asks the server to mail a reset link
func (a *Actions) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := validation.Email(email); err != nil {
		return "", err
	}

	return a.messageAction(ctx, "forgot-password", http.MethodPost, "/user/forgot-password",
		dto.ForgotPasswordRequest{Email: email},
		"Sending verification email...", "Failed to send verification email")
}

// ResetPassword sets a new password using an emailed reset token
func (a *Actions) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	if err := validation.Required("reset token", resetToken); err != nil {
		return "", err
	}
	if err := validation.Password(password); err != nil {
		return "", err
	}

	return a.messageAction(ctx, "reset-password", http.MethodPost, "/user/reset/"+resetToken,
		dto.ResetPasswordRequest{Password: password},
		"Resetting password...", "Failed to reset password")
}

// UpdateProfile edits profile fields. It deliberately does not touch
// the session; callers follow a success with FetchProfile so the
// session picks up the edit through the one sanctioned path.
func (a *Actions) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (string, error) {
	if err := validation.FullName(req.FullName); err != nil {
		return "", err
	}

	return a.messageAction(ctx, "update-profile", http.MethodPut, "/user/update", req,
		"Updating profile...", "Failed to update profile")
}

// messageAction runs an action whose fulfillment carries only a
// message and never mutates the session.
func (a *Actions) messageAction(ctx context.Context, action, method, path string, body interface{}, pendingMsg, failureMsg string) (string, error) {
	a.store.notify(Event{Action: action, Phase: PhasePending, Message: pendingMsg})

	var resp dto.MessageResponse
	if err := a.client.Send(ctx, method, path, body, &resp); err != nil {
		a.store.notify(Event{Action: action, Phase: PhaseRejected, Message: apperrors.UserMessage(err, failureMsg)})
		return "", err
	}

	a.store.notify(Event{Action: action, Phase: PhaseFulfilled, Message: resp.Message})
	return resp.Message, nil
}
