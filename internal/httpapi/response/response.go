package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
	"github.com/wonwomen07/prompt-engineering/internal/ctxutil"
	"github.com/wonwomen07/prompt-engineering/internal/schema"
)

// CodeRateLimited is the envelope code of a throttled request.
const CodeRateLimited = "rate_limited"

// RespondError writes the error envelope for status and code.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, schema.ErrorEnvelope{
		Error: schema.ErrorBody{
			Message:   msg,
			Code:      code,
			RequestID: ctxutil.RequestID(c.Request.Context()),
		},
	})
}

// RespondAppError classifies err with apperr and writes the envelope.
// Internal errors are attached to the gin context for the request logger and
// reported to the caller without detail.
func RespondAppError(c *gin.Context, err error) {
	code := apperr.Code(err)
	if code == apperr.CodeInternal {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), schema.ErrorEnvelope{
		Error: schema.ErrorBody{
			Message:   apperr.Message(err),
			Code:      code,
			RequestID: ctxutil.RequestID(c.Request.Context()),
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
