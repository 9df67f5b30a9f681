package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/andrelobo/zoe-backend/internal/logger"
  "github.com/andrelobo/zoe-backend/internal/requestdata"
  "github.com/andrelobo/zoe-backend/internal/services"
)

type AuthMiddleware struct {
  log         *logger.Logger
  authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
  middlewareLog := log.With("middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLog, authService: authService}
}

// RequireAuth gates every protected route. An absent credential and an
// invalid one are distinct rejections: 401 when no token was sent at all,
// 403 when a token was sent but failed verification.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
        "error": gin.H{"message": "missing token", "code": "unauthorized"},
      })
      return
    }
    ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
    if err != nil {
      am.log.Debug("token verification failed", "error", err)
      c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
        "error": gin.H{"message": "invalid or expired token", "code": "forbidden"},
      })
      return
    }
    c.Request = c.Request.WithContext(ctx)
    rd := requestdata.GetRequestData(ctx)
    if rd == nil || rd.UserID == uuid.Nil {
      c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
        "error": gin.H{"message": "forbidden", "code": "forbidden"},
      })
      return
    }
    c.Next()
  }
}

func extractToken(c *gin.Context) string {
  if qToken := c.Query("token"); qToken != "" {
    return qToken
  }
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return ""
}
