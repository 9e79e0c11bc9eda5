package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/XAVIERCLOUD-code/adcrentledger1/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var authTracer = otel.Tracer("service/auth")

// AuthService issues and validates session tokens for the fixed
// admin/viewer pair. The token TTL is also the idle timeout: Refresh
// hands out a fresh token, so a tab left alone simply expires.
type AuthService struct {
	secret     []byte
	sessionTTL time.Duration
	users      map[string]authUser
	logger     *zap.Logger
}

type authUser struct {
	password string // bcrypt hash or plain, per deployment
	role     domain.UserRole
	name     string
}

// sessionClaims are the JWT claims carried by a session token.
type sessionClaims struct {
	Role domain.UserRole `json:"role"`
	Name string          `json:"name"`
	jwt.RegisteredClaims
}

// NewAuthService creates an auth service. Users whose password is
// empty are disabled.
func NewAuthService(secret string, sessionTTL time.Duration, adminPassword, viewerPassword string, logger *zap.Logger) *AuthService {
	return &AuthService{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		users: map[string]authUser{
			"admin":  {password: adminPassword, role: domain.RoleAdmin, name: "Administrator"},
			"viewer": {password: viewerPassword, role: domain.RoleViewer, name: "Viewer"},
		},
		logger: logger,
	}
}

// checkPassword accepts either a bcrypt hash or a plain value in the
// configured password, so production can ship hashes while local dev
// uses plaintext.
func checkPassword(configured, supplied string) bool {
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(supplied)) == 1
}

// Login validates credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	_, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	u, ok := s.users[req.Username]
	if !ok || !checkPassword(u.password, req.Password) {
		s.logger.Warn("login rejected", zap.String("username", req.Username))
		return nil, &domain.ErrUnauthorized{Message: "invalid username or password"}
	}

	user := domain.User{Username: req.Username, Role: u.role, Name: u.name}
	token, err := s.signToken(&user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded",
		zap.String("username", req.Username),
		zap.String("role", string(u.role)),
	)

	return &domain.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.sessionTTL.Seconds()),
		User:        user,
	}, nil
}

// Refresh issues a fresh token for an already-authenticated user,
// resetting the idle window.
func (s *AuthService) Refresh(ctx context.Context, user *domain.User) (*domain.LoginResponse, error) {
	_, span := authTracer.Start(ctx, "AuthService.Refresh")
	defer span.End()

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	return &domain.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.sessionTTL.Seconds()),
		User:        *user,
	}, nil
}

func (s *AuthService) signToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: user.Role,
		Name: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token, returning the
// principal it carries.
func (s *AuthService) ValidateToken(tokenString string) (*domain.User, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &domain.ErrUnauthorized{Message: "unexpected signing method"}
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "invalid or expired token"}
	}

	return &domain.User{
		Username: claims.Subject,
		Role:     claims.Role,
		Name:     claims.Name,
	}, nil
}
