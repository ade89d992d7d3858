package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
)

// Handler adapts the service layer to HTTP.
type Handler struct {
	svc    *services.Service
	tokens *auth.TokenIssuer
	logger zerolog.Logger
	cookie config.CookieConfig
}

func New(svc *services.Service, tokens *auth.TokenIssuer, logger zerolog.Logger, cookie config.CookieConfig) *Handler {
	return &Handler{
		svc:    svc,
		tokens: tokens,
		logger: logger,
		cookie: cookie,
	}
}

// sameSite relaxes to Lax on insecure cookies, since browsers drop
// SameSite=None cookies that are not Secure.
func (h *Handler) sameSite() http.SameSite {
	if h.cookie.Secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (h *Handler) setTokenCookie(ctx *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookieName,
		Value:    token,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: h.sameSite(),
	})
}

func (h *Handler) clearTokenCookie(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookieName,
		Value:    "",
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   -1,
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: h.sameSite(),
	})
}
