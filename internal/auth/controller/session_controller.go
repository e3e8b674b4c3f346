package controller

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"dashboard/internal/apiclient"
	apperrors "dashboard/internal/errors"
	"dashboard/internal/web"
)

// HomePath is where a successful sign-in lands.
const HomePath = "/dashboard"

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (string, error)
}

type SessionController struct {
	auth         Authenticator
	renderer     *web.Renderer
	ttl          time.Duration
	secureCookie bool
	logger       *zap.Logger
}

func NewSessionController(auth Authenticator, renderer *web.Renderer, ttl time.Duration, secureCookie bool, logger *zap.Logger) *SessionController {
	return &SessionController{
		auth:         auth,
		renderer:     renderer,
		ttl:          ttl,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

func (c *SessionController) LoginForm(w http.ResponseWriter, r *http.Request) {
	c.renderer.Page(w, http.StatusOK, "login", web.LoginView{})
}

func (c *SessionController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		c.renderer.Page(w, http.StatusBadRequest, "login", web.LoginView{ErrorMessage: "Something went wrong."})
		return
	}

	email := r.PostForm.Get("email")
	token, err := c.auth.Authenticate(r.Context(), email, r.PostForm.Get("password"))
	if err != nil {
		status := http.StatusInternalServerError
		message := "Something went wrong."
		if ae, ok := apperrors.IsAuthenticationError(err); ok {
			message = ae.UserMessage()
			if ae.Type == apperrors.AuthCredentialsSignin {
				status = http.StatusUnauthorized
			}
		}
		c.renderer.Page(w, status, "login", web.LoginView{Email: email, ErrorMessage: message})
		return
	}

	http.SetCookie(w, c.cookie(token, int(c.ttl.Seconds())))
	http.Redirect(w, r, HomePath, http.StatusSeeOther)
}

func (c *SessionController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, c.cookie("", -1))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (c *SessionController) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     apiclient.TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
