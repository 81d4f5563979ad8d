package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"planwise-api/core/constants"
	"planwise-api/core/controller"
	apperrors "planwise-api/core/errors"
	"planwise-api/core/logger"
	"planwise-api/core/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type Middleware struct {
	tokens *utils.TokenManager
}

func NewMiddleware(tokens *utils.TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// AuthMiddleware requires a group bearer token and stores its claims under
// constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(constants.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, controller.NewErrorResponse(
					apperrors.ErrMissingAuthorizationHeader, "Missing authorization header"))
			}
			if !strings.HasPrefix(header, constants.BearerPrefix) {
				return c.JSON(http.StatusUnauthorized, controller.NewErrorResponse(
					apperrors.ErrInvalidTokenFormat, "Invalid token format"))
			}

			claims, err := m.tokens.ValidateAndParseToken(strings.TrimPrefix(header, constants.BearerPrefix))
			if errors.Is(err, utils.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, controller.NewErrorResponse(
					apperrors.ErrTokenExpired, "Token expired"))
			}
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:InvalidToken", "error", err)
				return c.JSON(http.StatusUnauthorized, controller.NewErrorResponse(
					apperrors.ErrUnauthorized, "Invalid token"))
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// GroupClaims returns the claims stored by AuthMiddleware.
func GroupClaims(c echo.Context) (*utils.TokenClaims, bool) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	return claims, ok && claims != nil
}

// IPExtractor decides which address identifies the client. With no trusted
// proxies the peer address is used and X-Forwarded-For is ignored; otherwise
// the header is honoured only across the listed ranges.
func IPExtractor(trustedProxies []string) (echo.IPExtractor, error) {
	if len(trustedProxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trustedProxies {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", cidr, err)
		}
		options = append(options, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(options...), nil
}

// RateLimiter limits requests per client IP, as resolved by the echo
// instance's IPExtractor. Used on the routes that accept a group password.
func RateLimiter(rps float64, burst int) echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, controller.NewErrorResponse(
				apperrors.ErrInvalidRequestData, "Unable to identify client"))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("Middleware:RateLimiter:Denied", "ip", identifier)
			return c.JSON(http.StatusTooManyRequests, controller.NewErrorResponse(
				apperrors.ErrTooManyRequests, "Too many requests"))
		},
	})
}

func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: utils.GenerateRequestID,
	})
}

func RequestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			keyvals := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Error("HTTP:Request", append(keyvals, "error", v.Error)...)
				return nil
			}
			logger.Info("HTTP:Request", keyvals...)
			return nil
		},
	})
}
