package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecovery_LogsCaller(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))

	userID := uuid.New()
	router.GET("/api/trips/:tripId/roster", func(c *gin.Context) {
		c.Set(ContextKeyUserID, userID)
		panic("nil snapshot")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trips/abc/roster", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entries := logs.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, userID.String(), entries[0].ContextMap()["user_id"])
	assert.Equal(t, "/api/trips/abc/roster", entries[0].ContextMap()["path"])
}

func TestRecovery_BrokenPipe(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/api/trips", func(c *gin.Context) {
		panic(&net.OpError{Op: "write", Net: "tcp", Err: &os.SyscallError{Syscall: "write", Err: syscall.EPIPE}})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trips", nil))

	assert.Empty(t, w.Body.String(), "nothing is written to a closed connection")
	assert.Equal(t, 1, logs.FilterMessage("Client connection closed during response").Len())
	assert.Equal(t, 0, logs.FilterMessage("Panic recovered").Len())
}

func TestIsBrokenPipe(t *testing.T) {
	reset := &net.OpError{Op: "read", Err: &os.SyscallError{Syscall: "read", Err: syscall.ECONNRESET}}
	refused := &net.OpError{Op: "dial", Err: &os.SyscallError{Syscall: "connect", Err: syscall.ECONNREFUSED}}

	assert.True(t, isBrokenPipe(reset))
	assert.False(t, isBrokenPipe(refused))
	assert.False(t, isBrokenPipe(os.ErrClosed))
}
