package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"authgate/internal/logger"

	"github.com/gin-gonic/gin"
)

// maxRequestBodyBytes caps inbound request bodies (64 MiB).
const maxRequestBodyBytes = 64 << 20

func limitRequestBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}

// errorBoundary renders any error recorded by the chain, or any panic raised
// by it, as the login page with the error text, status 400. Cancellation is
// passed through untouched.
func (h *Handler) errorBoundary(c *gin.Context) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		// connection aborts belong to net/http
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		c.Abort()
		h.renderError(c, fmt.Errorf("%v", rec))
	}()

	c.Next()

	last := c.Errors.Last()
	if last == nil {
		return
	}
	h.renderError(c, last.Err)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	if errors.Is(err, context.Canceled) {
		if h.log != nil {
			h.log.Debugw("request_canceled", "request_id", logger.RequestID(c), "path", c.Request.URL.Path, "err", err)
		}
		c.Abort()
		return
	}

	if h.log != nil {
		h.log.Warnw("request_failed", "request_id", logger.RequestID(c), "path", c.Request.URL.Path, "err", err)
	}
	if c.Writer.Written() {
		return
	}
	h.html(c, http.StatusBadRequest, loginTemplate, gin.H{"error_text": err.Error()})
}

// loginGate redirects to the login page when the matched route is marked as
// requiring login and the session lacks a username or a password.
func (h *Handler) loginGate(c *gin.Context) {
	rt, ok := h.routes[routeKey(c.Request.Method, c.FullPath())]
	if !ok || !rt.RequiresLogin {
		c.Next()
		return
	}

	username, password := sessionCredentials(c)
	if username == "" || password == "" {
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
		return
	}
	c.Next()
}
