package authController

import (
	"context"
	"strings"

	"linkfolio/internal/logger"
	"linkfolio/internal/models"
	"linkfolio/internal/repositories"
	"linkfolio/internal/services"
)

// AuthController handles account lifecycle business logic: registration,
// password sign-in, sign-out, and the step-up account deletion flow.
type AuthController struct {
	userRepo       repositories.UserRepository
	profileRepo    repositories.ProfileRepository
	sessionService *services.SessionService
	passwords      *services.PasswordService
	log            logger.Logger
}

type AuthControllerInterface interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error)
	Logout(ctx context.Context, sessionToken string) error
	DeleteAccount(ctx context.Context, user *models.User, sessionToken, password string) error
}

type AuthError struct {
	Code    int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func New(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	sessionService *services.SessionService,
	passwords *services.PasswordService,
) AuthControllerInterface {
	return &AuthController{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		sessionService: sessionService,
		passwords:      passwords,
		log:            logger.New("authController"),
	}
}

func (c *AuthController) Register(
	ctx context.Context,
	req models.RegisterRequest,
) (*models.User, string, error) {
	log := c.log.Function("Register")

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if req.Email == "" || req.Username == "" || len(req.Password) < 8 {
		return nil, "", &AuthError{Code: 400, Message: "email, username and a password of at least 8 characters are required"}
	}

	hash, err := c.passwords.Hash(req.Password)
	if err != nil {
		return nil, "", log.Err("failed to hash password", err)
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := c.userRepo.Create(ctx, user); err != nil {
		return nil, "", &AuthError{Code: 400, Message: "email or username already in use"}
	}

	profile := &models.Profile{UserID: user.ID, Role: models.RoleUser}
	if err := c.profileRepo.Create(ctx, profile); err != nil {
		return nil, "", log.Err("failed to create profile", err, "userID", user.ID)
	}
	user.Profile = profile

	token, err := c.sessionService.Create(ctx, user.ID, user.Email)
	if err != nil {
		return nil, "", log.Err("failed to create session", err, "userID", user.ID)
	}

	log.Info("user registered", "userID", user.ID)
	return user, token, nil
}

func (c *AuthController) Login(
	ctx context.Context,
	req models.LoginRequest,
) (*models.User, string, error) {
	log := c.log.Function("Login")

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, "", &AuthError{Code: 400, Message: "email and password are required"}
	}

	user, err := c.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", &AuthError{Code: 401, Message: "Invalid credentials"}
	}

	if err := c.passwords.Verify(req.Password, user.PasswordHash); err != nil {
		return nil, "", &AuthError{Code: 401, Message: "Invalid credentials"}
	}

	token, err := c.sessionService.Create(ctx, user.ID, user.Email)
	if err != nil {
		return nil, "", log.Err("failed to create session", err, "userID", user.ID)
	}

	log.Info("user logged in", "userID", user.ID)
	return user, token, nil
}

func (c *AuthController) Logout(ctx context.Context, sessionToken string) error {
	return c.sessionService.Delete(ctx, sessionToken)
}

// DeleteAccount runs the single-pass deletion flow. The supplied password is
// re-verified as a step-up confirmation before anything is deleted; a
// deletion error aborts before sign-out, leaving the session intact.
func (c *AuthController) DeleteAccount(
	ctx context.Context,
	user *models.User,
	sessionToken, password string,
) error {
	log := c.log.Function("DeleteAccount")

	if password == "" {
		return &AuthError{Code: 400, Message: "Password is required"}
	}

	if err := c.passwords.Verify(password, user.PasswordHash); err != nil {
		return &AuthError{Code: 401, Message: "Invalid password"}
	}

	if err := c.userRepo.Delete(ctx, user.ID); err != nil {
		return log.Err("failed to delete account", err, "userID", user.ID)
	}

	if err := c.sessionService.Delete(ctx, sessionToken); err != nil {
		// The row is already gone; the session will expire on its own.
		log.Warn("failed to clear session after deletion", "userID", user.ID, "error", err)
	}

	log.Info("account deleted", "userID", user.ID)
	return nil
}
