package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// UserHeader carries the authenticated requester id to handlers.
const UserHeader = "X-User-ID"

// JWTAuth accepts HS256 bearer tokens and forwards the requester taken from
// the user_id claim, falling back to sub. A non-empty issuer must match iss.
func JWTAuth(secret, issuer string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			// never trust a caller-supplied identity
			ctx.Request.Header.Del(UserHeader)

			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			if issuer != "" && !verifyIssuer(token, issuer) {
				logger.Warn("jwt token from unexpected issuer")
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			userID := subject(token)
			if userID == "" {
				logger.Warn("jwt token without subject")
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}
			ctx.Request.Header.Set(UserHeader, userID)

			next(ctx)
		}
	}
}

func subject(token *jwt.Token) string {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if userID, ok := claims["user_id"].(string); ok && userID != "" {
		return userID
	}
	sub, _ := claims["sub"].(string)
	return sub
}

func verifyIssuer(token *jwt.Token, issuer string) bool {
	claims, ok := token.Claims.(jwt.MapClaims)
	return ok && claims.VerifyIssuer(issuer, true)
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
