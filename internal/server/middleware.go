package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	authdomain "github.com/vetcita/vetcita/internal/auth/domain"
	entitlementdomain "github.com/vetcita/vetcita/internal/entitlement/domain"
	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	"github.com/vetcita/vetcita/internal/tenantctx"
)

const (
	sessionCookieName = "vetcita_session"
	contextSessionKey = "session"

	settingsPagePath = "/app/settings"
)

func serveIndex(c *gin.Context) {
	c.File("./public/index.html")
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, maxAge, "/", "", s.cfg.AuthCookieSecure, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
}

func readSessionToken(c *gin.Context) (string, bool) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func (s *Server) authenticate(c *gin.Context) (*authdomain.Session, error) {
	token, ok := readSessionToken(c)
	if !ok {
		return nil, ErrUnauthorized
	}
	session, err := s.authSvc.Authenticate(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}

	ctx := tenantctx.WithUserID(c.Request.Context(), session.UserID)
	c.Request = c.Request.WithContext(ctx)
	c.Set(contextSessionKey, session)
	return session, nil
}

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := s.authenticate(c); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches session context when a valid cookie is present and
// stays silent otherwise.
func (s *Server) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, err := s.authenticate(c); err == nil && session.ActiveTenantID != nil {
			ctx := tenantctx.WithTenantID(c.Request.Context(), snowflake.ID(*session.ActiveTenantID))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func (s *Server) TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := s.sessionFromContext(c)
		if session != nil && session.ActiveTenantID != nil {
			ctx := tenantctx.WithTenantID(c.Request.Context(), snowflake.ID(*session.ActiveTenantID))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func (s *Server) sessionFromContext(c *gin.Context) *authdomain.Session {
	value, ok := c.Get(contextSessionKey)
	if !ok {
		return nil
	}
	session, ok := value.(*authdomain.Session)
	if !ok {
		return nil
	}
	return session
}

// SubscriptionGuard enforces the route-level gate. Denied page navigations
// bounce to the subscription tab; API calls get the machine-readable 403.
func (s *Server) SubscriptionGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := s.entitlementSvc.Guard(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !decision.Allowed {
			s.denyRequest(c, decision)
			return
		}
		c.Next()
	}
}

// pageGuard applies the subscription gate to SPA navigations. The settings
// page itself stays reachable while blocked so denied navigations have
// somewhere to land.
func (s *Server) pageGuard() gin.HandlerFunc {
	guard := s.SubscriptionGuard()
	return func(c *gin.Context) {
		if c.Request.URL.Path == settingsPagePath {
			c.Next()
			return
		}
		guard(c)
	}
}

func (s *Server) requireFeature(key plandomain.FeatureKey) gin.HandlerFunc {
	return s.requireEntitlement(entitlementdomain.FeatureRequirement(key))
}

func (s *Server) requireLimit(key plandomain.LimitKey) gin.HandlerFunc {
	return s.requireEntitlement(entitlementdomain.LimitRequirement(key))
}

func (s *Server) requireEntitlement(req entitlementdomain.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := s.entitlementSvc.Evaluate(c.Request.Context(), req)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !decision.Allowed {
			s.denyRequest(c, decision)
			return
		}
		c.Next()
	}
}

func (s *Server) denyRequest(c *gin.Context, decision entitlementdomain.Decision) {
	if isPageRequest(c) {
		target := settingsPagePath + "?" + url.Values{
			"tab":    []string{"subscription"},
			"reason": []string{string(decision.Reason)},
		}.Encode()
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
		return
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"error": gin.H{
			"type":    string(decision.Reason),
			"message": reasonMessage(decision.Reason),
		},
		"fallback": decision.Fallback,
		"limit":    decision.Limit,
	})
}

func isPageRequest(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet {
		return false
	}
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return false
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

func reasonMessage(reason entitlementdomain.Reason) string {
	switch reason {
	case entitlementdomain.ReasonTrialExpired:
		return "Tu periodo de prueba ha expirado"
	case entitlementdomain.ReasonTenantSuspended:
		return "La cuenta de la clínica está suspendida"
	case entitlementdomain.ReasonNoSubscription:
		return "La clínica no tiene una suscripción activa"
	case entitlementdomain.ReasonFeatureNotAvailable:
		return "Esta función no está disponible en tu plan"
	case entitlementdomain.ReasonLimitReached:
		return "Has alcanzado el límite de tu plan"
	default:
		return "No tienes permiso para realizar esta acción"
	}
}

func (s *Server) authorizeTenantAction(object string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := tenantctx.UserIDFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		tenantID, ok := tenantctx.TenantIDFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrForbidden)
			return
		}
		actor := "user:" + userID.String()
		if err := s.authzSvc.Authorize(c.Request.Context(), actor, tenantID.String(), object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func (s *Server) RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := tenantctx.UserIDFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		isAdmin, err := s.superAdminSvc.IsSuperAdmin(c.Request.Context(), int64(userID))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !isAdmin {
			AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}
