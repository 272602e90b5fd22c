package modules

import (
	"github.com/gin-gonic/gin"

	handlers "eventos-api/internal/interface/http"
)

// EventModule wires event CRUD, membership, and the reporting view.
type EventModule struct {
	Handler *handlers.EventHandler
}

func NewEventModule(h *handlers.EventHandler) *EventModule {
	return &EventModule{Handler: h}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	eventos := rg.Group("/eventos")
	{
		eventos.POST("", m.Handler.Create)
		eventos.GET("", m.Handler.List)
		eventos.GET("/con-usuarios", m.Handler.Report)
		eventos.GET("/:id", m.Handler.GetByID)
		eventos.PUT("/:id", m.Handler.Update)
		eventos.DELETE("/:id", m.Handler.Delete)

		eventos.POST("/:id/usuarios/:usuarioId", m.Handler.AddMember)
		eventos.DELETE("/:id/usuarios/:usuarioId", m.Handler.RemoveMember)
	}
}
