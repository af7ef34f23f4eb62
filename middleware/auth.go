package middleware

import (
	"net/http"
	"strings"

	"restaurant-service/auth"
	"restaurant-service/models"
	"restaurant-service/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// IdentityContextKey is the gin context key holding the resolved identity.
const IdentityContextKey = "identity"

// Authenticate verifies the bearer token, loads the user's group memberships
// and stores a resolved auth.Identity on the context. Requests without a
// valid token are rejected with 401.
func Authenticate(users repository.UserRepository, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolveIdentity(c, users, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}
		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// OptionalAuthenticate resolves an identity when a token is present but lets
// anonymous requests through. Used on the public menu endpoints where reads
// are open to everyone.
func OptionalAuthenticate(users repository.UserRepository, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolveIdentity(c, users, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		if identity != nil {
			c.Set(IdentityContextKey, identity)
		}
		c.Next()
	}
}

// GetIdentity returns the identity resolved by the middleware, or nil for an
// anonymous request.
func GetIdentity(c *gin.Context) *auth.Identity {
	if val, ok := c.Get(IdentityContextKey); ok {
		if id, ok := val.(*auth.Identity); ok {
			return id
		}
	}
	return nil
}

type authError string

func (e authError) Error() string { return string(e) }

// resolveIdentity parses the Authorization header and resolves the caller's
// role from their group memberships. Returns (nil, nil) when no token is
// present.
func resolveIdentity(c *gin.Context, users repository.UserRepository, secret []byte) (*auth.Identity, error) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		return nil, nil
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, authError("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, authError("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, authError("Invalid token")
	}
	sub, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, authError("Invalid token")
	}

	user, err := users.FindByID(c.Request.Context(), userID)
	if err != nil {
		return nil, authError("Unknown user")
	}

	return &auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     resolveRole(user),
	}, nil
}

// resolveRole maps group memberships onto the closed Role enum. Manager
// takes precedence when a user is in both groups.
func resolveRole(user *models.User) auth.Role {
	switch {
	case user.InGroup(models.GroupManager):
		return auth.RoleManager
	case user.InGroup(models.GroupDeliveryCrew):
		return auth.RoleDeliveryCrew
	default:
		return auth.RoleCustomer
	}
}
