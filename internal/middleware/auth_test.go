package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func run(authorization string, spoofed string) (*fasthttp.RequestCtx, string, bool) {
	return runWithIssuer(authorization, spoofed, "")
}

func runWithIssuer(authorization, spoofed, issuer string) (*fasthttp.RequestCtx, string, bool) {
	ctx := &fasthttp.RequestCtx{}
	if authorization != "" {
		ctx.Request.Header.Set("Authorization", authorization)
	}
	if spoofed != "" {
		ctx.Request.Header.Set(UserHeader, spoofed)
	}

	var seen string
	called := false
	JWTAuth(secret, issuer, nil)(func(ctx *fasthttp.RequestCtx) {
		called = true
		seen = string(ctx.Request.Header.Peek(UserHeader))
	})(ctx)
	return ctx, seen, called
}

func TestJWTAuth(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name     string
		header   string
		wantUser string
		wantCall bool
	}{
		{
			name:     "user_id claim",
			header:   "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"user_id": "alice", "sub": "ignored", "exp": exp}),
			wantUser: "alice",
			wantCall: true,
		},
		{
			name:     "sub claim",
			header:   "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "bob", "exp": exp}),
			wantUser: "bob",
			wantCall: true,
		},
		{
			name:     "raw token",
			header:   sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "carol"}),
			wantUser: "carol",
			wantCall: true,
		},
		{
			name:   "no subject",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"exp": exp}),
		},
		{
			name:   "wrong secret",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "mallory"}),
		},
		{
			name:   "expired",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "dave", "exp": time.Now().Add(-time.Minute).Unix()}),
		},
		{
			name:   "unsigned",
			header: "Bearer " + sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": "eve"}),
		},
		{
			name: "missing header",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, user, called := run(tt.header, "")
			assert.Equal(t, tt.wantCall, called)
			if tt.wantCall {
				assert.Equal(t, tt.wantUser, user)
				return
			}
			assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
		})
	}
}

func TestJWTAuth_ReplacesSpoofedHeader(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(secret), jwt.MapClaims{"sub": "alice"})

	_, user, called := run("Bearer "+token, "root")
	require.True(t, called)
	assert.Equal(t, "alice", user)

	ctx, _, called := run("", "root")
	assert.False(t, called)
	assert.Empty(t, ctx.Request.Header.Peek(UserHeader))
}

func TestJWTAuth_Issuer(t *testing.T) {
	tests := []struct {
		name     string
		claims   jwt.MapClaims
		wantCall bool
	}{
		{name: "matching issuer", claims: jwt.MapClaims{"sub": "alice", "iss": "taskboard"}, wantCall: true},
		{name: "foreign issuer", claims: jwt.MapClaims{"sub": "alice", "iss": "elsewhere"}},
		{name: "missing issuer", claims: jwt.MapClaims{"sub": "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := sign(t, jwt.SigningMethodHS256, []byte(secret), tt.claims)
			ctx, user, called := runWithIssuer("Bearer "+token, "", "taskboard")
			assert.Equal(t, tt.wantCall, called)
			if tt.wantCall {
				assert.Equal(t, "alice", user)
				return
			}
			assert.Equal(t, fasthttp.StatusUnauthorized, ctx.Response.StatusCode())
		})
	}
}
