package modules

import (
	"github.com/gin-gonic/gin"

	"eventos-api/internal/container"
	handlers "eventos-api/internal/interface/http"
	"eventos-api/internal/interface/middleware"
)

// UserModule wires user CRUD and login routes.
// Login is rate-limited per IP; the limiter falls back to a pass-through
// when redis is not configured.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	loginLimiter := middleware.RateLimit(container.GetRedis(), cfg.LoginRateMax, cfg.LoginRateWindow, middleware.KeyByIP())

	rg.POST("/login", loginLimiter, m.Handler.Login)

	usuarios := rg.Group("/usuarios")
	{
		usuarios.POST("", m.Handler.Create)
		usuarios.GET("", m.Handler.List)
		usuarios.GET("/:id", m.Handler.GetByID)
		usuarios.GET("/username/:username", m.Handler.GetByUsername)
		usuarios.PUT("/:id", m.Handler.UpdateByID)
		usuarios.PUT("/username/:username", m.Handler.UpdateByUsername)
		usuarios.DELETE("/:id", m.Handler.DeleteByID)
		usuarios.DELETE("/username/:username", m.Handler.DeleteByUsername)
	}
}
