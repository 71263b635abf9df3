package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/qams/config"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenIssuer = "qams"

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID uint       `json:"user_id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// Authenticate validates a bearer token and returns the actor it names.
	// Tokens of users that no longer exist or are inactive are rejected.
	Authenticate(ctx context.Context, token string) (Actor, error)
	Me(ctx context.Context, actor Actor) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, actor Actor) ([]dto.UserResponse, error)
	// SetUserStatus activates or deactivates an account. Inactive users can
	// neither log in nor use tokens issued earlier.
	SetUserStatus(ctx context.Context, actor Actor, userID uint, status model.UserStatus) (*dto.UserResponse, error)
	// SeedAdmin creates the configured admin account if it does not exist yet.
	SeedAdmin(ctx context.Context) error
}

type authService struct {
	userRepo repository.UserRepository
	gate     AccessGate
	auditLog AuditLogService
	db       *gorm.DB
	secret   []byte
	ttl      time.Duration
	admin    config.Admin
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, gate AccessGate, auditLog AuditLogService, db *gorm.DB, cfg *config.Config) AuthService {
	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		userRepo: userRepo,
		gate:     gate,
		auditLog: auditLog,
		db:       db,
		secret:   []byte(cfg.Auth.JWTSecret),
		ttl:      ttl,
		admin:    cfg.Admin,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	role := model.Role(req.Role)
	if role != model.RoleInstructor && role != model.RoleModerator {
		return nil, fmt.Errorf("role %q cannot self-register: %w", req.Role, ErrValidation)
	}
	user, err := s.createUser(ctx, req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}
	log.Info().Uint("userID", user.ID).Str("role", string(role)).Msg("User registered")
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) createUser(ctx context.Context, name, email, password string, role model.Role) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s: %w", email, ErrAlreadyExists)
	} else if !isRecordNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	user := model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       model.UserActive,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("email %s: %w", email, ErrAlreadyExists)
		}
		return nil, err
	}
	return &user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != model.UserActive {
		return nil, fmt.Errorf("account is %s: %w", user.Status, ErrUnauthorized)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	log.Info().Uint("userID", user.ID).Msg("User logged in")
	return &dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      toUserResponse(user),
	}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (Actor, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Actor{}, fmt.Errorf("invalid token: %w", ErrUnauthorized)
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if isRecordNotFound(err) {
			return Actor{}, fmt.Errorf("user %d no longer exists: %w", claims.UserID, ErrUnauthorized)
		}
		return Actor{}, err
	}
	if user.Status != model.UserActive {
		return Actor{}, fmt.Errorf("user %d is %s: %w", user.ID, user.Status, ErrUnauthorized)
	}
	// The stored role wins over the one in the token.
	return Actor{UserID: user.ID, Role: user.Role}, nil
}

func (s *authService) Me(ctx context.Context, actor Actor) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, notFound("user", actor.UserID)
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) ListUsers(ctx context.Context, actor Actor) ([]dto.UserResponse, error) {
	if err := s.gate.Authorize(actor, ActionUserManage, Resource{}); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlice(users, toUserResponse), nil
}

func (s *authService) SetUserStatus(ctx context.Context, actor Actor, userID uint, status model.UserStatus) (*dto.UserResponse, error) {
	if err := s.gate.Authorize(actor, ActionUserManage, Resource{}); err != nil {
		return nil, err
	}
	if status != model.UserActive && status != model.UserInactive {
		return nil, fmt.Errorf("user status %q: %w", status, ErrValidation)
	}
	if userID == actor.UserID && status == model.UserInactive {
		return nil, fmt.Errorf("cannot deactivate your own account: %w", ErrValidation)
	}

	action := model.ActionActivateUser
	if status == model.UserInactive {
		action = model.ActionDeactivateUser
	}

	var user *model.User
	err := runInTx(ctx, s.db, "set user status", func(tx *gorm.DB) error {
		var err error
		if user, err = s.userRepo.WithTx(tx).UpdateStatus(ctx, userID, status); err != nil {
			if isRecordNotFound(err) {
				return notFound("user", userID)
			}
			return err
		}
		return s.auditLog.Append(ctx, tx, actor.UserID, action, map[string]interface{}{
			"user_id": userID,
			"status":  string(status),
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("userID", userID).Uint("adminID", actor.UserID).Str("status", string(status)).Msg("User status changed")
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) SeedAdmin(ctx context.Context) error {
	if s.admin.Email == "" {
		log.Info().Msg("ADMIN_EMAIL not set, skipping admin seeding")
		return nil
	}
	if s.admin.Password == "" {
		return errors.New("ADMIN_PASSWORD must be set when ADMIN_EMAIL is")
	}
	user, err := s.createUser(ctx, s.admin.Name, s.admin.Email, s.admin.Password, model.RoleAdmin)
	if errors.Is(err, ErrAlreadyExists) {
		log.Debug().Str("email", s.admin.Email).Msg("Admin account already present")
		return nil
	}
	if err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	log.Info().Uint("userID", user.ID).Str("email", user.Email).Msg("Admin account seeded")
	return nil
}
