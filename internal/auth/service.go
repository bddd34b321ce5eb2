package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ScottHCollier/inntrac-app/internal"
)

// Credentials is the stored credential record for one user.
type Credentials struct {
	UserID       string
	Email        string
	PasswordHash string
	IsAdmin      bool
}

type UserRepository interface {
	GetCredentialsByEmail(email string) (*Credentials, error)
	GetCredentialsByID(userID string) (*Credentials, error)
	EmailExists(email string) (bool, error)
	CreateUser(id, email, passwordHash string) error
	SetPasswordHash(userID, passwordHash string) error
}

// Service is the main auth service with dependencies
type Service struct {
	userRepo   UserRepository
	tokens     TokenService
	bcryptCost int
	logger     *slog.Logger
}

func NewService(userRepo UserRepository, tokens TokenService, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func NewJWTTokenService(secret string, accessTTL, inviteTTL time.Duration) *JWTTokenService {
	return &JWTTokenService{
		Secret:         []byte(secret),
		AccessTokenTTL: accessTTL,
		InviteTokenTTL: inviteTTL,
	}
}

// Authenticate validates credentials and returns a signed token. Unknown
// emails and wrong passwords collapse into the same response.
func (s *Service) Authenticate(dto LoginDTO) (AuthInfo, error) {
	if err := dto.Validate(); err != nil {
		return AuthInfo{}, err
	}

	creds, err := s.userRepo.GetCredentialsByEmail(dto.Email)
	if err != nil {
		return AuthInfo{}, internal.ErrInvalidCredentials
	}

	if creds.PasswordHash == "" {
		return AuthInfo{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthInfo{}, internal.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(creds.UserID, creds.Email)
	if err != nil {
		return AuthInfo{}, internal.NewInternalError("failed to issue token", err)
	}

	return AuthInfo{
		UserID:    creds.UserID,
		Email:     creds.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Register creates a self-service account and logs it straight in.
func (s *Service) Register(dto RegisterDTO) (AuthInfo, error) {
	if err := dto.Validate(); err != nil {
		return AuthInfo{}, err
	}

	taken, err := s.userRepo.EmailExists(dto.Email)
	if err != nil {
		return AuthInfo{}, internal.NewInternalError("failed to register", err)
	}
	if taken {
		return AuthInfo{}, internal.NewValidationFieldError("email", "email is already in use", internal.ErrCodeEmailTaken)
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return AuthInfo{}, internal.NewInternalError("failed to register", err)
	}

	id := uuid.NewString()
	if err := s.userRepo.CreateUser(id, dto.Email, hash); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return AuthInfo{}, internal.NewInternalError("failed to register", err)
	}

	s.logger.Info("user registered", "user_id", id)

	return s.Authenticate(LoginDTO{Email: dto.Email, Password: dto.Password})
}

// SetPassword completes an invited account. The invite token's email claim
// names the account; the password is set and the user logged in with it.
func (s *Service) SetPassword(dto SetPasswordDTO) (AuthInfo, error) {
	if err := dto.Validate(); err != nil {
		return AuthInfo{}, err
	}

	claims, err := s.tokens.ValidateToken(dto.Token)
	if err != nil {
		return AuthInfo{}, err
	}

	creds, err := s.userRepo.GetCredentialsByEmail(claims.Email)
	if err != nil {
		return AuthInfo{}, internal.NewValidationFieldError("token", "no account matches this invite", internal.ErrCodeInvalidToken)
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return AuthInfo{}, internal.NewInternalError("failed to set password", err)
	}

	if err := s.userRepo.SetPasswordHash(creds.UserID, hash); err != nil {
		s.logger.Error("failed to set password", "error", err, "user_id", creds.UserID)
		return AuthInfo{}, internal.NewInternalError("failed to set password", err)
	}

	s.logger.Info("password set", "user_id", creds.UserID)

	return s.Authenticate(LoginDTO{Email: creds.Email, Password: dto.Password})
}

// ValidateAccessToken validates a token and loads the principal it names.
func (s *Service) ValidateAccessToken(tokenString string) (*User, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	creds, err := s.userRepo.GetCredentialsByID(claims.UserID)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	return &User{
		ID:      creds.UserID,
		Email:   creds.Email,
		IsAdmin: creds.IsAdmin,
	}, nil
}

// InviteToken issues the single-purpose token embedded in welcome emails.
func (s *Service) InviteToken(email string) (string, error) {
	return s.tokens.GenerateInviteToken(email)
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (j *JWTTokenService) GenerateAccessToken(userID, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(j.AccessTokenTTL)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// GenerateInviteToken carries only the email claim; it cannot be used as an
// access token because it names no user id.
func (j *JWTTokenService) GenerateInviteToken(email string) (string, error) {
	expiresAt := time.Now().Add(j.InviteTokenTTL)

	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
