package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	userDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/user"
)

// User is the authenticated identity carried through request context.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func (u *User) IsManager() bool {
	return u.Role == userDatamodel.RoleManager || u.Role == userDatamodel.RoleAdmin
}

func (u *User) IsAdmin() bool {
	return u.Role == userDatamodel.RoleAdmin
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ChangePassword(userID string, dto ChangePasswordDTO) error
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUser(userID string) (*User, error)
}

type RepositoryAPI interface {
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByID(id string) (*userDatamodel.User, error)
	UpdatePassword(userID, passwordHash string) error
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID, email, role string) (string, error)
	GenerateRefreshToken(userID, email, role string) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func (g *JWTTokenGenerator) GenerateAccessToken(userID, email, role string) (string, error) {
	return g.sign(userID, email, role, g.AccessTokenSecret, g.AccessTokenTTL)
}

func (g *JWTTokenGenerator) GenerateRefreshToken(userID, email, role string) (string, error) {
	return g.sign(userID, email, role, g.RefreshTokenSecret, g.RefreshTokenTTL)
}

func (g *JWTTokenGenerator) sign(userID, email, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   userID,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (g *JWTTokenGenerator) ValidateAccessToken(tokenString string) (*Claims, error) {
	return g.parse(tokenString, g.AccessTokenSecret)
}

func (g *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return g.parse(tokenString, g.RefreshTokenSecret)
}

func (g *JWTTokenGenerator) parse(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
