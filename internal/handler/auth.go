package handler

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/msomdec/auction-house/internal/domain"
	"github.com/msomdec/auction-house/internal/service"
	"github.com/msomdec/auction-house/internal/view"
)

const authCookieName = "auth_token"

// AuthHandler handles login, logout, registration and account deletion.
type AuthHandler struct {
	auth         *service.AuthService
	limiter      *service.TokenBucket
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler. limiter may be nil to disable
// throttling of credential forms.
func NewAuthHandler(auth *service.AuthService, limiter *service.TokenBucket, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter, cookieSecure: cookieSecure}
}

// HandleLoginPage renders the login form.
// GET /login
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.LoginPage("", r.URL.Query().Get("next")))
}

// HandleLogin authenticates the form credentials and sets the auth cookie.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	next := r.FormValue("next")
	if !h.allow(r) {
		render(w, r, http.StatusTooManyRequests, view.LoginPage("Too many attempts. Please wait and try again.", next))
		return
	}

	token, err := h.auth.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			render(w, r, http.StatusUnauthorized, view.LoginPage("Invalid username and/or password.", next))
			return
		}
		slog.Error("login user", "error", err)
		renderError(w, r, http.StatusInternalServerError)
		return
	}

	h.setAuthCookie(w, token)
	http.Redirect(w, r, safeRedirect(next), http.StatusSeeOther)
}

// HandleLogout clears the auth cookie.
// GET /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.clearAuthCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleRegisterPage renders the registration form.
// GET /register
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, view.RegisterPage("", "", ""))
}

// HandleRegister creates the account and logs the new user in.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	email := r.FormValue("email")
	if !h.allow(r) {
		render(w, r, http.StatusTooManyRequests, view.RegisterPage("Too many attempts. Please wait and try again.", username, email))
		return
	}

	user, err := h.auth.Register(r.Context(), username, email, r.FormValue("password"), r.FormValue("confirmation"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			render(w, r, http.StatusUnprocessableEntity, view.RegisterPage(formMessage(err), username, email))
			return
		}
		slog.Error("register user", "error", err)
		renderError(w, r, http.StatusInternalServerError)
		return
	}

	token, err := h.auth.IssueToken(user)
	if err != nil {
		slog.Error("issue token", "error", err)
		renderError(w, r, http.StatusInternalServerError)
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	h.setAuthCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDeleteAccount removes the current user together with everything
// they own, then logs them out.
// POST /account/delete
func (h *AuthHandler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if err := h.auth.DeleteAccount(r.Context(), user.ID); err != nil {
		handleServiceError(w, r, "delete account", err)
		return
	}

	slog.Info("account deleted", "user_id", user.ID)
	h.clearAuthCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) allow(r *http.Request) bool {
	if h.limiter == nil {
		return true
	}
	return h.limiter.Allow(clientAddr(r))
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(service.TokenTTL.Seconds()),
	})
}

func (h *AuthHandler) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// safeRedirect returns next when it is a local path and "/" otherwise.
func safeRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
