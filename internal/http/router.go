package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/quezi/internal/http/handlers"
	"github.com/you/quezi/internal/http/middleware"
)

// Handlers groups the HTTP handlers mounted by BuildRouter
type Handlers struct {
	Auth          *handlers.AuthHandlers
	Users         *handlers.UserHandlers
	Organizations *handlers.OrganizationHandlers
	Reviews       *handlers.ReviewHandlers
	Admin         *handlers.AdminHandlers
	Policies      *handlers.PolicyHandlers
}

// BuildRouter mounts the public routes and the routes guarded by JWT and
// Casbin. Custom binding rules must be registered before serving.
func BuildRouter(h Handlers, jwtmw *middleware.AuthMW, cb middleware.CasbinMiddleware, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	r.GET("/professionals", h.Users.ListProfessionals)
	r.GET("/professionals/:id", h.Users.GetProfessional)
	r.GET("/professionals/:id/reviews", h.Users.ListProfessionalReviews)
	r.GET("/organizations", h.Organizations.List)
	r.GET("/organizations/:id", h.Organizations.Get)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", h.Auth.Me)
	v.POST("/auth/logout", h.Auth.Logout)
	v.POST("/auth/verification/send", h.Auth.SendVerification)
	v.POST("/auth/verification/verify", h.Auth.VerifyVerification)

	v.GET("/users/:id", h.Users.GetUser)
	v.PATCH("/users/:id", h.Users.UpdateUser)

	v.POST("/organizations", h.Organizations.Create)
	v.PATCH("/organizations/:id", h.Organizations.Update)
	v.DELETE("/organizations/:id", h.Organizations.Delete)
	v.GET("/organizations/:id/members", h.Organizations.ListMembers)
	v.POST("/organizations/:id/members", h.Organizations.AddMember)
	v.PATCH("/organizations/:id/members/:userId", h.Organizations.UpdateMember)
	v.DELETE("/organizations/:id/members/:userId", h.Organizations.RemoveMember)
	v.GET("/me/organizations", h.Organizations.ListMine)

	v.POST("/reviews", h.Reviews.Create)
	v.DELETE("/reviews/:id", h.Reviews.Delete)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/users", h.Admin.ListUsers)
	adm.PATCH("/users/:id/status", h.Admin.SetStatus)
	adm.GET("/policies", h.Policies.List)
	adm.POST("/policies", h.Policies.Add)
	adm.DELETE("/policies", h.Policies.Remove)

	return r
}
