package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventos-api/internal/application"
	"eventos-api/internal/domain/entity"
	"eventos-api/pkg/response"
	"eventos-api/pkg/validation"
)

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type createEventRequest struct {
	Name              string   `json:"name" binding:"required"`
	Schedule          string   `json:"schedule" binding:"required"`
	Address           string   `json:"address"`
	UsuariosApuntados []string `json:"usuariosApuntados"`
}

type updateEventRequest struct {
	Name              *string  `json:"name"`
	Schedule          *string  `json:"schedule"`
	Address           *string  `json:"address"`
	UsuariosApuntados []string `json:"usuariosApuntados"`
}

// parseMemberIDs converts hex member IDs, rejecting the whole payload on
// the first malformed one. nil in, nil out — absent and empty lists stay
// distinguishable for partial updates.
func parseMemberIDs(raw []string) ([]primitive.ObjectID, error) {
	if raw == nil {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	members, err := parseMemberIDs(req.UsuariosApuntados)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"usuariosApuntados": "must contain valid object ids"})
		return
	}
	e, err := h.Svc.Create(c.Request.Context(), application.CreateEventInput{
		Name:              req.Name,
		Schedule:          req.Schedule,
		Address:           req.Address,
		UsuariosApuntados: members,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, e, "event created", nil)
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "events", nil)
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	e, err := h.Svc.GetByID(c.Request.Context(), id)
	h.writeEvent(c, e, err, "event")
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	members, err := parseMemberIDs(req.UsuariosApuntados)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"usuariosApuntados": "must contain valid object ids"})
		return
	}
	e, err := h.Svc.Update(c.Request.Context(), id, application.UpdateEventInput{
		Name:              req.Name,
		Schedule:          req.Schedule,
		Address:           req.Address,
		UsuariosApuntados: members,
	})
	h.writeEvent(c, e, err, "event updated")
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	count, err := h.Svc.Delete(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if count == 0 {
		response.Error[any](c, http.StatusNotFound, "event not found", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deletedCount": count}, "event deleted", nil)
}

func (h *EventHandler) AddMember(c *gin.Context) {
	eventID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseObjectID(c, "usuarioId")
	if !ok {
		return
	}
	e, err := h.Svc.AddMember(c.Request.Context(), eventID, userID)
	h.writeEvent(c, e, err, "member added")
}

func (h *EventHandler) RemoveMember(c *gin.Context) {
	eventID, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	userID, ok := parseObjectID(c, "usuarioId")
	if !ok {
		return
	}
	e, err := h.Svc.RemoveMember(c.Request.Context(), eventID, userID)
	h.writeEvent(c, e, err, "member removed")
}

func (h *EventHandler) Report(c *gin.Context) {
	reports, err := h.Svc.Report(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, reports, "events with users", nil)
}

func (h *EventHandler) writeEvent(c *gin.Context, e *entity.EventView, err error, message string) {
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if e == nil {
		response.Error[any](c, http.StatusNotFound, "event not found", nil)
		return
	}
	response.Success(c, http.StatusOK, e, message, nil)
}
