package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trip-roster-api/internal/response"
)

// Recovery turns a handler panic into a 500 INTERNAL_ERROR response. When the
// client already hung up nothing is written back.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			fields := []zap.Field{
				zap.Any("error", rec),
				zap.String("error_type", fmt.Sprintf("%T", rec)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
			}
			if userID, ok := c.Get(ContextKeyUserID); ok {
				fields = append(fields, zap.Any("user_id", userID))
			}

			if err, ok := rec.(error); ok && isBrokenPipe(err) {
				logger.Warn("Client connection closed during response", fields...)
				c.Abort()
				return
			}

			logger.Error("Panic recovered", append(fields, zap.Stack("stacktrace"))...)
			response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
			c.Abort()
		}()

		c.Next()
	}
}

func isBrokenPipe(err error) bool {
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var sysErr *os.SyscallError
	if !errors.As(opErr, &sysErr) {
		return false
	}
	return errors.Is(sysErr.Err, syscall.EPIPE) || errors.Is(sysErr.Err, syscall.ECONNRESET)
}
