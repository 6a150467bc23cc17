package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/busbee/busbee-auth/internal/pkg/logger"
	"github.com/busbee/busbee-auth/internal/utils"
	"github.com/labstack/echo/v4"
)

// PanicRecoveryMiddleware recovers from handler panics, logs the stack
// server-side and converts the failure into the generic 500 response.
// Nothing from the panic value reaches the client.
func PanicRecoveryMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					userID := "anonymous"
					if uid := c.Get(ContextUserID); uid != nil {
						userID = fmt.Sprintf("%v", uid)
					}

					zapLogger.Error("Panic recovered",
						logger.Any("panic_value", r),
						logger.String("panic_type", fmt.Sprintf("%T", r)),
						logger.String("stack_trace", string(debug.Stack())),
						logger.String("method", c.Request().Method),
						logger.String("path", c.Request().URL.Path),
						logger.String("client_ip", c.RealIP()),
						logger.String("user_id", userID),
						logger.String("request_id", c.Response().Header().Get("X-Request-ID")),
					)

					err = utils.InternalServerErrorResponse(c, "")
				}
			}()

			return next(c)
		}
	}
}
