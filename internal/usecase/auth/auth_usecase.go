package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chaosdating/chaos-dating/internal/domain"
	"github.com/chaosdating/chaos-dating/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	wishRepo    repository.WishRepository
	genderRepo  repository.LookupRepository
	pronounRepo repository.LookupRepository
	sessionRepo repository.SessionRepository
	tx          repository.Transactor
	jwtSecret   []byte
	sessionTTL  time.Duration
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	wishRepo repository.WishRepository,
	genderRepo repository.LookupRepository,
	pronounRepo repository.LookupRepository,
	sessionRepo repository.SessionRepository,
	tx repository.Transactor,
	jwtSecret string,
	sessionTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		wishRepo:    wishRepo,
		genderRepo:  genderRepo,
		pronounRepo: pronounRepo,
		sessionRepo: sessionRepo,
		tx:          tx,
		jwtSecret:   []byte(jwtSecret),
		sessionTTL:  sessionTTL,
	}
}

// RegisterRequest carries the combined account and profile form. Gender
// and Pronoun are the selects' submitted values: an existing row's ID or
// empty.
type RegisterRequest struct {
	Username  string `form:"username" binding:"required,min=3,max=150,alphanum"`
	Password1 string `form:"password1" binding:"required,min=8,max=128"`
	Password2 string `form:"password2" binding:"required,eqfield=Password1"`
	Age       int    `form:"age" binding:"required,min=1,max=100"`
	Gender    string `form:"gender"`
	Pronoun   string `form:"pronoun"`
	WishIDs   []int  `form:"wishes" binding:"omitempty"`
}

// LoginRequest carries the login form.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// PasswordChangeRequest carries the password change form.
type PasswordChangeRequest struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	NewPassword1    string `form:"new_password1" binding:"required,min=8,max=128"`
	NewPassword2    string `form:"new_password2" binding:"required,eqfield=NewPassword1"`
}

// AuthResult is a signed session: the token goes into the cookie.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Claims are the JWT claims of a session token. SessionID must still
// resolve in the session store for the token to be accepted.
type Claims struct {
	UserID    int    `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Register creates the user account and its profile as one transaction and
// establishes a session for the new user. A failure at any point leaves no
// user, profile or wish rows behind.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest, picturePath *string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	genderID, err := parseLookupID(ctx, uc.genderRepo, "gender", req.Gender)
	if err != nil {
		return nil, err
	}
	pronounID, err := parseLookupID(ctx, uc.pronounRepo, "pronoun", req.Pronoun)
	if err != nil {
		return nil, err
	}
	if len(req.WishIDs) > 0 {
		if _, err := uc.wishRepo.GetByIDs(ctx, req.WishIDs); err != nil {
			return nil, &domain.FieldError{Field: "wishes", Err: err}
		}
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}
		profile := &domain.Profile{
			UserID:      user.ID,
			Age:         req.Age,
			GenderID:    genderID,
			PronounID:   pronounID,
			PicturePath: picturePath,
		}
		if err := uc.profileRepo.Create(ctx, profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		if len(req.WishIDs) > 0 {
			if err := uc.profileRepo.SetWishes(ctx, profile.ID, req.WishIDs); err != nil {
				return fmt.Errorf("attach wishes: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.createSession(ctx, user)
}

// Login verifies the credentials and establishes a session.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.createSession(ctx, user)
}

// Authenticate resolves a session token to the logged-in user. The token
// must be validly signed, unexpired and backed by a live session.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := uc.parseToken(token)
	if err != nil {
		return nil, err
	}
	if _, err := uc.sessionRepo.Get(ctx, claims.SessionID); err != nil {
		return nil, err
	}
	return uc.userRepo.GetByID(ctx, claims.UserID)
}

// Logout invalidates the session behind the token. An unparseable token is
// already as logged out as it gets.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := uc.parseToken(token)
	if err != nil {
		return nil
	}
	return uc.sessionRepo.Delete(ctx, claims.SessionID)
}

// ChangePassword replaces the password after verifying the current one.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID int, current, next string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return uc.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// parseLookupID resolves a select's submitted value to an existing lookup
// row. Registration offers existing rows only; free text is left to the
// profile edit flow.
func parseLookupID(ctx context.Context, repo repository.LookupRepository, field, value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return nil, &domain.FieldError{Field: field, Err: domain.ErrLookupNotFound}
	}
	row, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, &domain.FieldError{Field: field, Err: err}
	}
	return &row.ID, nil
}

func (uc *AuthUseCase) createSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(uc.sessionTTL),
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	claims := Claims{
		UserID:    user.ID,
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "chaos-dating",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthResult{User: user, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

func (uc *AuthUseCase) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return uc.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
