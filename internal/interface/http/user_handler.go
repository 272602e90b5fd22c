package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventos-api/internal/application"
	"eventos-api/internal/domain/entity"
	"eventos-api/internal/domain/repository"
	"eventos-api/pkg/response"
	"eventos-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Username string    `json:"username" binding:"required"`
	Gmail    string    `json:"gmail" binding:"required,email"`
	Password string    `json:"password" binding:"required,pwd"`
	Birthday time.Time `json:"birthday" binding:"required"`
}

type updateUserRequest struct {
	Username *string    `json:"username"`
	Gmail    *string    `json:"gmail" binding:"omitempty,email"`
	Password *string    `json:"password" binding:"omitempty,pwd"`
	Birthday *time.Time `json:"birthday"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// parseObjectID maps a malformed hex ID to a 400 and reports whether the
// handler should continue.
func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid id", map[string]string{param: "must be a valid object id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// writeServiceError maps service errors onto status codes: validation to
// 400, duplicate keys to 409, anything else (storage failures) to 500.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, repository.ErrDuplicateKey):
		response.Error[any](c, http.StatusConflict, "username or gmail already exists", nil)
	default:
		logger.WithError(err).Error("request failed")
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), application.RegisterUserInput{
		Username: req.Username,
		Gmail:    req.Gmail,
		Password: req.Password,
		Birthday: req.Birthday,
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", nil)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	u, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if u == nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

func (h *UserHandler) GetByUsername(c *gin.Context) {
	u, err := h.Svc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if u == nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

func (h *UserHandler) UpdateByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	in, ok := h.bindUpdate(c)
	if !ok {
		return
	}
	u, err := h.Svc.UpdateByID(c.Request.Context(), id, in)
	h.writeUpdated(c, u, err)
}

func (h *UserHandler) UpdateByUsername(c *gin.Context) {
	in, ok := h.bindUpdate(c)
	if !ok {
		return
	}
	u, err := h.Svc.UpdateByUsername(c.Request.Context(), c.Param("username"), in)
	h.writeUpdated(c, u, err)
}

func (h *UserHandler) bindUpdate(c *gin.Context) (application.UpdateUserInput, bool) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return application.UpdateUserInput{}, false
	}
	return application.UpdateUserInput{
		Username: req.Username,
		Gmail:    req.Gmail,
		Password: req.Password,
		Birthday: req.Birthday,
	}, true
}

func (h *UserHandler) writeUpdated(c *gin.Context, u *entity.User, err error) {
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if u == nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

func (h *UserHandler) DeleteByID(c *gin.Context) {
	id, ok := parseObjectID(c, "id")
	if !ok {
		return
	}
	u, err := h.Svc.DeleteByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if u == nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "user deleted", nil)
}

func (h *UserHandler) DeleteByUsername(c *gin.Context) {
	u, err := h.Svc.DeleteByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if u == nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "user deleted", nil)
}

// Login never tells the caller whether the username or the password was
// wrong: both cases are the same 401.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.VerifyLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}
	if u == nil {
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "login successful", nil)
}
