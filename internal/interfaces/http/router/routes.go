package router

import (
	"github.com/gin-gonic/gin"

	"github.com/propmanager/backend/internal/interfaces/http/handler"
)

// Handlers bundles the API handlers mounted by RegisterAPI
type Handlers struct {
	Auth          *handler.AuthHandler
	Property      *handler.PropertyHandler
	Tenant        *handler.TenantHandler
	Payment       *handler.PaymentHandler
	Maintenance   *handler.MaintenanceHandler
	Notice        *handler.NoticeHandler
	Event         *handler.EventHandler
	Report        *handler.ReportHandler
	Communication *handler.CommunicationHandler
	System        *handler.SystemHandler
}

// RegisterAPI registers every domain group on r.
// admin guards admin-only routes; authLimit throttles the credential endpoints
// and may be nil.
func RegisterAPI(r *Router, h Handlers, admin gin.HandlerFunc, authLimit gin.HandlerFunc) {
	for _, group := range domainGroups(h, admin, authLimit) {
		r.Register(group)
	}
}

func domainGroups(h Handlers, admin, authLimit gin.HandlerFunc) []*DomainGroup {
	credential := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		if authLimit == nil {
			return []gin.HandlerFunc{fn}
		}
		return []gin.HandlerFunc{authLimit, fn}
	}

	authRoutes := NewDomainGroup("auth", "/auth")
	authRoutes.POST("/signup", credential(h.Auth.Signup)...)
	authRoutes.POST("/login", credential(h.Auth.Login)...)
	authRoutes.POST("/refresh", credential(h.Auth.RefreshToken)...)
	authRoutes.GET("/verify", h.Auth.Verify)
	authRoutes.POST("/logout", h.Auth.Logout)
	authRoutes.GET("/me", h.Auth.GetCurrentUser)
	authRoutes.PUT("/profile", h.Auth.UpdateProfile)
	authRoutes.POST("/change-password", h.Auth.ChangePassword)

	propertyRoutes := NewDomainGroup("properties", "/properties")
	propertyRoutes.GET("", h.Property.List)
	propertyRoutes.GET("/:id", h.Property.Get)
	propertyRoutes.POST("", admin, h.Property.Create)
	propertyRoutes.PUT("/:id", admin, h.Property.Update)
	propertyRoutes.DELETE("/:id", admin, h.Property.Delete)

	tenantRoutes := NewDomainGroup("tenants", "/tenants").Use(admin)
	tenantRoutes.GET("", h.Tenant.List)
	tenantRoutes.GET("/:id", h.Tenant.Get)
	tenantRoutes.POST("", h.Tenant.Create)
	tenantRoutes.PUT("/:id", h.Tenant.Update)
	tenantRoutes.DELETE("/:id", h.Tenant.Delete)
	tenantRoutes.POST("/:id/assign-property", h.Tenant.AssignProperty)

	paymentRoutes := NewDomainGroup("payments", "/payments")
	paymentRoutes.POST("", admin, h.Payment.Record)
	paymentRoutes.POST("/submit", h.Payment.Submit)
	paymentRoutes.GET("", h.Payment.List)
	paymentRoutes.GET("/history/:tenantId", h.Payment.History)
	paymentRoutes.PUT("/:id/confirm", admin, h.Payment.Confirm)
	paymentRoutes.PUT("/:id/reject", admin, h.Payment.Reject)

	maintenanceRoutes := NewDomainGroup("maintenance", "/maintenance")
	maintenanceRoutes.POST("", h.Maintenance.Create)
	maintenanceRoutes.GET("", h.Maintenance.List)
	maintenanceRoutes.GET("/:id", h.Maintenance.Get)
	maintenanceRoutes.PUT("/:id", admin, h.Maintenance.UpdateStatus)

	noticeRoutes := NewDomainGroup("notices", "/notices")
	noticeRoutes.GET("", h.Notice.List)
	noticeRoutes.GET("/read-status", h.Notice.ReadStatus)
	noticeRoutes.POST("", admin, h.Notice.Create)
	noticeRoutes.DELETE("/:id", admin, h.Notice.Delete)
	noticeRoutes.POST("/:id/read", h.Notice.MarkRead)

	eventRoutes := NewDomainGroup("events", "/events")
	eventRoutes.GET("", h.Event.List)
	eventRoutes.POST("", admin, h.Event.Create)
	eventRoutes.PUT("/:id", admin, h.Event.Update)
	eventRoutes.DELETE("/:id", admin, h.Event.Delete)
	eventRoutes.PUT("/:id/confirm", h.Event.Confirm)
	eventRoutes.PUT("/:id/complete", h.Event.Complete)

	reportRoutes := NewDomainGroup("reports", "/reports").Use(admin)
	reportRoutes.GET("/occupancy", h.Report.Occupancy)
	reportRoutes.GET("/revenue", h.Report.Revenue)
	reportRoutes.GET("/properties-summary", h.Report.PropertiesSummary)
	reportRoutes.GET("/archives", h.Report.ListArchives)
	reportRoutes.GET("/:kind/export", h.Report.Export)
	reportRoutes.POST("/:kind/archive", h.Report.Archive)

	communicationRoutes := NewDomainGroup("communication", "/communication")
	communicationRoutes.POST("", h.Communication.Send)
	communicationRoutes.GET("", h.Communication.List)
	communicationRoutes.PUT("/:id/read", h.Communication.MarkRead)

	systemRoutes := NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", h.System.GetSystemInfo)

	return []*DomainGroup{
		authRoutes,
		propertyRoutes,
		tenantRoutes,
		paymentRoutes,
		maintenanceRoutes,
		noticeRoutes,
		eventRoutes,
		reportRoutes,
		communicationRoutes,
		systemRoutes,
	}
}
