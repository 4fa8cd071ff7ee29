package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/ctxutil"
	"github.com/wonwomen07/prompt-engineering/internal/schema"
)

func serve(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, schema.ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		ctx := ctxutil.WithTraceData(c.Request.Context(), &ctxutil.TraceData{RequestID: "req-7"})
		c.Request = c.Request.WithContext(ctx)
		h(c)
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	var env schema.ErrorEnvelope
	if rec.Code >= 400 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestRespondAppError_Classifies(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", apperr.Validation("text", "is required"), 400, apperr.CodeValidation, "text: is required"},
		{"backend", apperr.Backend("openai", errors.New("quota exceeded")), 502, apperr.CodeBackend, "openai: quota exceeded"},
		{"internal", errors.New("disk on fire"), 500, apperr.CodeInternal, "internal error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := serve(t, func(c *gin.Context) { RespondAppError(c, tc.err) })
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, env.Error.Code)
			assert.Contains(t, env.Error.Message, tc.message)
			assert.Equal(t, "req-7", env.Error.RequestID)
		})
	}
}

func TestRespondError_NilError(t *testing.T) {
	rec, env := serve(t, func(c *gin.Context) {
		RespondError(c, http.StatusTooManyRequests, CodeRateLimited, nil)
	})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "unknown error", env.Error.Message)
}

func TestRespondOK(t *testing.T) {
	rec, _ := serve(t, func(c *gin.Context) { RespondOK(c, gin.H{"status": "ok"}) })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
