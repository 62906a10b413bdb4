package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// loginForm is the POST /login form body. No validation is applied.
type loginForm struct {
	Username string `form:"login_user"`
	Password string `form:"login_pass"`
}

func (h *Handler) showLogin(c *gin.Context) error {
	h.html(c, http.StatusOK, loginTemplate, nil)
	return nil
}

func (h *Handler) showIndex(c *gin.Context) error {
	if sessionUsername(c) == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return nil
	}
	h.html(c, http.StatusOK, indexTemplate, nil)
	return nil
}

func (h *Handler) login(c *gin.Context) error {
	var input loginForm
	if err := c.ShouldBindWith(&input, binding.Form); err != nil {
		return fmt.Errorf("read login form: %w", err)
	}

	if _, err := h.services.Authenticate(c.Request.Context(), input.Username, input.Password); err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "username", input.Username, "err", err)
		}
		return err
	}

	if err := setLoginUser(c, input.Username, input.Password); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if h.log != nil {
		h.log.Infow("auth_login", "username", input.Username)
	}
	c.Redirect(http.StatusSeeOther, "/index")
	return nil
}

func (h *Handler) logout(c *gin.Context) error {
	if err := clearLoginUser(c); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
	return nil
}
