package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"boutique-backend/models"
)

// TokenFooter binds issued tokens to this application.
const TokenFooter = "boutique-admin"

// RequireAdmin rejects requests without a valid admin bearer token before
// any handler logic runs. The authenticated admin is stored on the context
// under "admin".
func RequireAdmin(db *mongo.Database, secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Login first to access this resource"})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		var payload paseto.JSONToken
		var footer string
		if err := paseto.NewV2().Decrypt(token, secretKey, &payload, &footer); err != nil || footer != TokenFooter {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
			return
		}
		if time.Now().After(payload.Expiration) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
			return
		}

		adminID, err := primitive.ObjectIDFromHex(payload.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err = db.Collection("admins").FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Login first to access this resource"})
			return
		}

		if admin.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Role " + admin.Role + " is not allowed to access this resource"})
			return
		}

		admin.Password = ""
		c.Set("admin", admin)
		c.Next()
	}
}
