package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authdomain "github.com/vetcita/vetcita/internal/auth/domain"
	memberdomain "github.com/vetcita/vetcita/internal/member/domain"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
)

type SignupRequest struct {
	ClinicName  string `json:"clinic_name"`
	Subdomain   string `json:"subdomain"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup provisions a clinic: owner account, tenant, membership and the
// trial subscription the entitlement checks evaluate against.
func (s *Server) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if strings.TrimSpace(req.ClinicName) == "" {
		AbortWithError(c, newValidationError("clinic_name", "required", "El nombre de la clínica es obligatorio"))
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		AbortWithError(c, newValidationError("email", "required", "El correo es obligatorio"))
		return
	}
	if len(strings.TrimSpace(req.Password)) < 8 {
		AbortWithError(c, newValidationError("password", "weak_password", "La contraseña debe tener al menos 8 caracteres"))
		return
	}

	ctx := c.Request.Context()

	// Provisioning is all-or-nothing: a failed step (say, the subdomain is
	// taken) must not leave an orphaned user behind that turns a retry with
	// the same email into a 409.
	var (
		user     *authdomain.User
		tenant   *tenantdomain.Response
		tenantID snowflake.ID
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.authSvc.WithTx(tx).CreateUser(ctx, authdomain.CreateUserRequest{
			Email:       req.Email,
			Password:    req.Password,
			DisplayName: req.DisplayName,
		})
		if err != nil {
			return err
		}

		tenant, err = s.tenantSvc.WithTx(tx).Create(ctx, tenantdomain.CreateRequest{
			Name:      req.ClinicName,
			Subdomain: req.Subdomain,
		})
		if err != nil {
			return err
		}

		tenantID, err = snowflake.ParseString(tenant.ID)
		if err != nil {
			return err
		}

		membership := memberdomain.TenantMember{
			ID:       int64(s.genID.Generate()),
			TenantID: int64(tenantID),
			UserID:   int64(user.ID),
			Role:     memberdomain.RoleOwner,
		}
		if err := tx.WithContext(ctx).Create(&membership).Error; err != nil {
			return err
		}

		_, err = s.subscriptionSvc.WithTx(tx).StartTrial(ctx, int64(tenantID), "BASICO")
		return err
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.authSvc.Login(ctx, authdomain.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tid := int64(tenantID)
	if err := s.authSvc.SwitchTenant(ctx, result.SessionID, &tid); err != nil {
		AbortWithError(c, err)
		return
	}

	s.setSessionCookie(c, result.RawToken, cookieMaxAge(result.ExpiresAt))

	c.JSON(http.StatusCreated, gin.H{
		"tenant": tenant,
		"user": gin.H{
			"id":           user.ID.String(),
			"email":        user.Email,
			"display_name": user.DisplayName,
		},
	})
}

func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	result, err := s.authSvc.Login(ctx, authdomain.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tenantIDs, err := s.loadUserTenantIDs(ctx, int64(result.User.ID))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	var activeTenantID *int64
	if len(tenantIDs) == 1 {
		activeTenantID = &tenantIDs[0]
		if err := s.authSvc.SwitchTenant(ctx, result.SessionID, activeTenantID); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	s.setSessionCookie(c, result.RawToken, cookieMaxAge(result.ExpiresAt))

	payload := gin.H{
		"user": gin.H{
			"id":           result.User.ID.String(),
			"email":        result.User.Email,
			"display_name": result.User.DisplayName,
		},
		"tenant_ids": toTenantIDStrings(tenantIDs),
		"expires_at": result.ExpiresAt,
	}
	if activeTenantID != nil {
		payload["active_tenant_id"] = snowflake.ID(*activeTenantID).String()
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) Logout(c *gin.Context) {
	token, ok := readSessionToken(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.authSvc.Logout(c.Request.Context(), token); err != nil {
		AbortWithError(c, err)
		return
	}

	s.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) Me(c *gin.Context) {
	session := s.sessionFromContext(c)
	if session == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	ctx := c.Request.Context()
	var user authdomain.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", session.UserID).Error; err != nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	tenantIDs, err := s.loadUserTenantIDs(ctx, int64(user.ID))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	payload := gin.H{
		"id":           user.ID.String(),
		"email":        user.Email,
		"display_name": user.DisplayName,
		"tenant_ids":   toTenantIDStrings(tenantIDs),
	}
	if session.ActiveTenantID != nil {
		payload["active_tenant_id"] = snowflake.ID(*session.ActiveTenantID).String()
	}
	c.JSON(http.StatusOK, payload)
}

// UseTenant switches the session's active clinic. Membership is checked
// against the target, not the current context.
func (s *Server) UseTenant(c *gin.Context) {
	session := s.sessionFromContext(c)
	if session == nil {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	tenantID, err := snowflake.ParseString(strings.TrimSpace(c.Param("tenantId")))
	if err != nil || tenantID == 0 {
		AbortWithError(c, newValidationError("tenant_id", "invalid_id", "El identificador no es válido"))
		return
	}

	ctx := c.Request.Context()
	var membership memberdomain.TenantMember
	err = s.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", int64(tenantID), int64(session.UserID)).
		First(&membership).Error
	if err != nil {
		AbortWithError(c, ErrForbidden)
		return
	}

	tid := int64(tenantID)
	if err := s.authSvc.SwitchTenant(ctx, session.ID, &tid); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"active_tenant_id": tenantID.String()})
}

func (s *Server) loadUserTenantIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Table("tenant_members").
		Select("tenant_id").
		Where("user_id = ?", userID).
		Order("tenant_id").
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func toTenantIDStrings(ids []int64) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, snowflake.ID(id).String())
	}
	return out
}

func cookieMaxAge(expiresAt time.Time) int {
	remaining := int(time.Until(expiresAt).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}
