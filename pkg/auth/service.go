package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/libooktrac/libooktrac/pkg/database"
	"github.com/libooktrac/libooktrac/pkg/errcodes"
	"github.com/libooktrac/libooktrac/pkg/models"
	"github.com/libooktrac/libooktrac/pkg/normalize"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing.
	BcryptCost = 12
	// TokenExpiry is how long JWT tokens are valid.
	TokenExpiry = 7 * 24 * time.Hour // 7 days
)

// JWTClaims represents the claims in a JWT token.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Category string `json:"user_category"`
	jwt.RegisteredClaims
}

// Service handles authentication operations.
type Service struct {
	store      database.Store
	collection string
	jwtSecret  []byte
}

// NewService creates a new auth service. collection is the user collection
// name from config.
func NewService(store database.Store, collection, jwtSecret string) *Service {
	return &Service{
		store:      store,
		collection: collection,
		jwtSecret:  []byte(jwtSecret),
	}
}

// Authenticate validates credentials and returns the member if valid.
// Usernames are stored lowercased, so lookups normalize first.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	canonical, err := normalize.Username(username)
	if err != nil {
		return nil, errcodes.Unauthorized("Invalid username or password")
	}

	user := &models.User{}
	found, err := s.store.FindOne(ctx, s.collection, database.Query{
		Exact: map[string]any{"username": canonical},
	}, user)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !found || !user.AccountActive {
		return nil, errcodes.Unauthorized("Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errcodes.Unauthorized("Invalid username or password")
	}

	return user, nil
}

// GenerateToken creates a new JWT token for the member.
func (s *Service) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Category: string(user.Category),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// GetUserByID retrieves an active member by ID.
func (s *Service) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	found, err := s.store.FindOne(ctx, s.collection, database.Query{
		Exact: map[string]any{"_id": id},
	}, user)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !found || !user.AccountActive {
		return nil, errcodes.NotFound("User")
	}
	return user, nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a password with a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
