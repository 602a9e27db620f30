package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rudra-dhamecha/groww-financial-tracker/internal/database"
	"github.com/rudra-dhamecha/groww-financial-tracker/internal/models"
)

const userContextKey = "currentUser"

// Service issues and validates the HS256 bearer tokens that scope every
// holdings operation to an owner.
type Service struct {
	secret []byte
	expiry time.Duration
	log    *logrus.Logger
}

func NewService(secret string, expiry time.Duration, log *logrus.Logger) *Service {
	return &Service{secret: []byte(secret), expiry: expiry, log: log}
}

func (s *Service) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Service) CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

func (s *Service) SignToken(userID int) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.expiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a token string and returns the user id it carries.
func (s *Service) ParseToken(tokenString string) (int, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token: %w", err)
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid token: missing subject")
	}
	return int(sub), nil
}

// Middleware rejects requests without a valid bearer token and loads the
// active user into the request context for handlers downstream.
func (s *Service) Middleware(repo *database.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		userID, err := s.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.log.Warnf("token rejected: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		user, err := repo.GetUserByID(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown or inactive user"})
			return
		}
		SetCurrentUser(c, user)
		c.Next()
	}
}

// SetCurrentUser attaches the resolved caller to the request context.
func SetCurrentUser(c *gin.Context, u *models.User) {
	c.Set(userContextKey, u)
}

// CurrentUser returns the user loaded by Middleware, or nil outside an
// authenticated request.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userContextKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
