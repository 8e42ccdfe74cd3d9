package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	adminreportdomain "github.com/vetcita/vetcita/internal/adminreport/domain"
	analyticsdomain "github.com/vetcita/vetcita/internal/analytics/domain"
	authdomain "github.com/vetcita/vetcita/internal/auth/domain"
	"github.com/vetcita/vetcita/internal/authorization"
	businesshoursdomain "github.com/vetcita/vetcita/internal/businesshours/domain"
	"github.com/vetcita/vetcita/internal/config"
	entitlementdomain "github.com/vetcita/vetcita/internal/entitlement/domain"
	memberdomain "github.com/vetcita/vetcita/internal/member/domain"
	"github.com/vetcita/vetcita/internal/observability"
	obslogger "github.com/vetcita/vetcita/internal/observability/logger"
	obsmetrics "github.com/vetcita/vetcita/internal/observability/metrics"
	obstracing "github.com/vetcita/vetcita/internal/observability/tracing"
	petdomain "github.com/vetcita/vetcita/internal/pet/domain"
	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	"github.com/vetcita/vetcita/internal/ratelimit"
	subscriptiondomain "github.com/vetcita/vetcita/internal/subscription/domain"
	superadmindomain "github.com/vetcita/vetcita/internal/superadmin/domain"
	tenantdomain "github.com/vetcita/vetcita/internal/tenant/domain"
	usagedomain "github.com/vetcita/vetcita/internal/usage/domain"
	whatsappdomain "github.com/vetcita/vetcita/internal/whatsapp/domain"
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine           *gin.Engine
	cfg              config.Config
	db               *gorm.DB
	log              *zap.Logger
	genID            *snowflake.Node
	authSvc          authdomain.Service
	authzSvc         authorization.Service
	tenantSvc        tenantdomain.Service
	planSvc          plandomain.Service
	subscriptionSvc  subscriptiondomain.Service
	entitlementSvc   entitlementdomain.Service
	memberSvc        memberdomain.Service
	petSvc           petdomain.Service
	whatsappSvc      whatsappdomain.Service
	businessHoursSvc businesshoursdomain.Service
	superAdminSvc    superadmindomain.Service
	adminReportSvc   adminreportdomain.Service
	analyticsSvc     analyticsdomain.Service
	usageSvc         usagedomain.Service
	analyticsLimiter *ratelimit.AnalyticsLimiter
}

type ServerParams struct {
	fx.In

	Gin              *gin.Engine
	Cfg              config.Config
	DB               *gorm.DB
	Log              *zap.Logger
	GenID            *snowflake.Node
	AuthSvc          authdomain.Service
	AuthzSvc         authorization.Service
	TenantSvc        tenantdomain.Service
	PlanSvc          plandomain.Service
	SubscriptionSvc  subscriptiondomain.Service
	EntitlementSvc   entitlementdomain.Service
	MemberSvc        memberdomain.Service
	PetSvc           petdomain.Service
	WhatsAppSvc      whatsappdomain.Service
	BusinessHoursSvc businesshoursdomain.Service
	SuperAdminSvc    superadmindomain.Service
	AdminReportSvc   adminreportdomain.Service
	AnalyticsSvc     analyticsdomain.Service
	UsageSvc         usagedomain.Service
	AnalyticsLimiter *ratelimit.AnalyticsLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:           p.Gin,
		cfg:              p.Cfg,
		db:               p.DB,
		log:              p.Log.Named("server"),
		genID:            p.GenID,
		authSvc:          p.AuthSvc,
		authzSvc:         p.AuthzSvc,
		tenantSvc:        p.TenantSvc,
		planSvc:          p.PlanSvc,
		subscriptionSvc:  p.SubscriptionSvc,
		entitlementSvc:   p.EntitlementSvc,
		memberSvc:        p.MemberSvc,
		petSvc:           p.PetSvc,
		whatsappSvc:      p.WhatsAppSvc,
		businessHoursSvc: p.BusinessHoursSvc,
		superAdminSvc:    p.SuperAdminSvc,
		adminReportSvc:   p.AdminReportSvc,
		analyticsSvc:     p.AnalyticsSvc,
		usageSvc:         p.UsageSvc,
		analyticsLimiter: p.AnalyticsLimiter,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()
	svc.registerAdminRoutes()
	svc.registerUIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
	auth.POST("/using/:tenantId", s.AuthRequired(), s.UseTenant)
}

func (s *Server) registerAPIRoutes() {
	// Tracking ingest sits outside the auth chain: the contract is an
	// unconditional 202, never a validation or auth oracle.
	s.engine.POST("/api/analytics/events", s.OptionalAuth(), s.IngestAnalyticsEvent)

	api := s.engine.Group("/api")
	api.Use(s.AuthRequired())
	api.Use(s.TenantContext())

	// Reachable while expired: the upgrade path must stay open.
	api.GET("/trial-status", s.TrialStatus)
	api.GET("/plans", s.ListPlans)
	api.GET("/plans/:code", s.GetPlan)
	api.GET("/subscription", s.GetSubscription)
	api.POST("/subscription/upgrade",
		s.authorizeTenantAction(authorization.ObjectSubscription, authorization.ActionSubscriptionUpgrade),
		s.UpgradeSubscription)
	api.GET("/usage", s.GetUsage)
	api.GET("/settings", s.GetSettings)

	gated := api.Group("", s.SubscriptionGuard())
	{
		gated.GET("/pets",
			s.authorizeTenantAction(authorization.ObjectPet, authorization.ActionPetView),
			s.ListPets)
		gated.GET("/pets/:id",
			s.authorizeTenantAction(authorization.ObjectPet, authorization.ActionPetView),
			s.GetPet)
		gated.POST("/pets",
			s.authorizeTenantAction(authorization.ObjectPet, authorization.ActionPetCreate),
			s.requireLimit(plandomain.LimitPets),
			s.CreatePet)
		gated.POST("/owners",
			s.authorizeTenantAction(authorization.ObjectOwner, authorization.ActionOwnerCreate),
			s.CreateOwner)

		gated.GET("/members",
			s.authorizeTenantAction(authorization.ObjectMember, authorization.ActionMemberView),
			s.ListMembers)
		gated.POST("/members",
			s.authorizeTenantAction(authorization.ObjectMember, authorization.ActionMemberCreate),
			s.requireLimit(plandomain.LimitUsers),
			s.CreateMember)

		gated.GET("/whatsapp/messages",
			s.authorizeTenantAction(authorization.ObjectWhatsApp, authorization.ActionWhatsAppView),
			s.ListWhatsAppMessages)
		gated.POST("/whatsapp/send",
			s.authorizeTenantAction(authorization.ObjectWhatsApp, authorization.ActionWhatsAppSend),
			s.requireFeature(plandomain.FeatureAutomations),
			s.requireLimit(plandomain.LimitWhatsApp),
			s.SendWhatsAppMessage)

		gated.GET("/settings/business-hours",
			s.authorizeTenantAction(authorization.ObjectBusinessHours, authorization.ActionBusinessHoursView),
			s.GetBusinessHours)
		gated.PUT("/settings/business-hours",
			s.authorizeTenantAction(authorization.ObjectBusinessHours, authorization.ActionBusinessHoursUpdate),
			s.UpdateBusinessHours)
	}
}

func (s *Server) registerAdminRoutes() {
	admin := s.engine.Group("/admin")
	admin.Use(s.AuthRequired())
	admin.Use(s.RequireSuperAdmin())

	admin.GET("/billing/summary", s.BillingSummary)
	admin.GET("/super-admins", s.ListSuperAdmins)
	admin.POST("/super-admins", s.AssignSuperAdmin)
	admin.DELETE("/super-admins", s.RemoveSuperAdmin)
}

func (s *Server) registerUIRoutes() {
	app := s.engine.Group("/app")
	app.Use(s.AuthRequired())
	app.Use(s.TenantContext())
	app.Use(s.pageGuard())
	app.GET("/*any", serveIndex)
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(*Server) {}),
	fx.Invoke(run),
)
