package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/wonwomen07/prompt-engineering/internal/apperr"
)

// bindRequest fills dst from the query string and then from the body, so
// body fields override query parameters. An empty body is allowed.
func bindRequest(c *gin.Context, dst any) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return apperr.Validation("query", "%s", err.Error())
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	var err error
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		err = c.ShouldBindWith(dst, binding.Form)
	default:
		err = c.ShouldBindJSON(dst)
	}
	if err != nil {
		return apperr.Validation("body", "%s", err.Error())
	}
	return nil
}
