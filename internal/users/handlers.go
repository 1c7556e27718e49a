package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserHandlers provides HTTP handlers for user operations
type UserHandlers struct {
	service  UserService
	links    *LinkBuilder
	validate *validator.Validate
	logger   *zap.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(service UserService, links *LinkBuilder, logger *zap.Logger) *UserHandlers {
	validate := validator.New()
	// report violations under the wire field names, not the Go ones
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &UserHandlers{
		service:  service,
		links:    links,
		validate: validate,
		logger:   logger,
	}
}

// RegisterRoutes registers all user-related routes
func (h *UserHandlers) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.OPTIONS("", h.UserOptions)
		users.GET("/:userId", h.GetUser)
		users.HEAD("/:userId", h.GetUser)
		users.PUT("/:userId", h.ReplaceUser)
		users.PATCH("/:userId", h.PatchUser)
		users.DELETE("/:userId", h.DeleteUser)
	}
}

// GetUser handles GET /users/:userId. The HEAD variant runs the same handler;
// the server drops the body.
func (h *UserHandlers) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := UserToResponse(user)
	h.respond(c, http.StatusOK, resp, resp)
}

// CreateUser handles POST /users
func (h *UserHandlers) CreateUser(c *gin.Context) {
	if c.Request.ContentLength == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is required"})
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if violations := h.fieldViolations(req); len(violations) > 0 {
		h.writeError(c, NewUserValidationError(violations))
		return
	}

	created, err := h.service.CreateUser(c.Request.Context(), CreateRequestToUser(&req))
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := CreatedUserResponse{ID: created.ID}
	c.Header("Location", h.links.ResourceLink("users.read", created.ID.String()))
	h.respond(c, http.StatusCreated, resp, resp)
}

// ReplaceUser handles PUT /users/:userId as an upsert: 201 when the id was
// unseen, 204 when an existing record was overwritten.
func (h *UserHandlers) ReplaceUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if c.Request.ContentLength == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is required"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if violations := h.fieldViolations(req); len(violations) > 0 {
		h.writeError(c, NewUserValidationError(violations))
		return
	}

	inserted, err := h.service.UpsertUser(c.Request.Context(), UpdateRequestToUser(&req, id))
	if err != nil {
		h.writeError(c, err)
		return
	}

	if inserted {
		resp := CreatedUserResponse{ID: id}
		c.Header("Location", h.links.ResourceLink("users.read", id.String()))
		h.respond(c, http.StatusCreated, resp, resp)
		return
	}
	c.Status(http.StatusNoContent)
}

// PatchUser handles PATCH /users/:userId. The patch is applied to a copy of
// the stored record and the result re-validated in full; nothing is written
// back unless both steps succeed.
func (h *UserHandlers) PatchUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if c.Request.ContentLength == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body is required"})
		return
	}

	var ops []PatchOperation
	if err := c.ShouldBindWith(&ops, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch body", "details": err.Error()})
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	patched, violations := ApplyPatch(UserToUpdateRequest(user), ops)
	violations = append(violations, h.fieldViolations(patched)...)
	if len(violations) > 0 {
		h.writeError(c, NewUserValidationError(violations))
		return
	}

	updated := UpdateRequestToUser(&patched, id)
	updated.CreatedAt = user.CreatedAt
	if err := h.service.UpdateUser(c.Request.Context(), updated); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteUser handles DELETE /users/:userId
func (h *UserHandlers) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUsers handles GET /users. Malformed paging input degrades to defaults;
// this endpoint never rejects a request over pagination parameters.
func (h *UserHandlers) ListUsers(c *gin.Context) {
	pageNumber := ResolvePageNumber(c.Query("pageNumber"))
	pageSize := ResolvePageSize(c.Query("pageSize"))

	page, err := h.service.ListUsers(c.Request.Context(), pageNumber, pageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}

	meta, err := json.Marshal(BuildPageMeta(page, h.links))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("X-Pagination", string(meta))

	responses := UsersToResponses(page.Users)
	h.respond(c, http.StatusOK, responses, UserListResponse{Users: responses})
}

// UserOptions handles OPTIONS /users
func (h *UserHandlers) UserOptions(c *gin.Context) {
	c.Header("Allow", "GET, POST, OPTIONS")
	c.Status(http.StatusOK)
}

// respond serializes the payload in the client's preferred format. An
// unspecified or wildcard preference gets JSON; an unsupported one gets 406.
// The JSON and XML payloads are passed separately because lists need a
// wrapping document root in XML but stay a bare array in JSON.
func (h *UserHandlers) respond(c *gin.Context, code int, jsonBody, xmlBody interface{}) {
	switch c.NegotiateFormat(gin.MIMEJSON, gin.MIMEXML, "text/xml") {
	case gin.MIMEXML, "text/xml":
		c.XML(code, xmlBody)
	case gin.MIMEJSON:
		c.JSON(code, jsonBody)
	default:
		c.AbortWithStatusJSON(http.StatusNotAcceptable, gin.H{"error": "requested media type is not supported"})
	}
}

// writeError maps a service error onto the status-code contract
func (h *UserHandlers) writeError(c *gin.Context, err error) {
	var userErr *UserError
	if errors.As(err, &userErr) {
		switch userErr.Type {
		case UserErrorTypeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": userErr.Message})
			return
		case UserErrorTypeInvalidArgument:
			c.JSON(http.StatusBadRequest, gin.H{"error": userErr.Message})
			return
		case UserErrorTypeValidationFailed:
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      userErr.Message,
				"violations": userErr.Violations,
			})
			return
		}
	}

	h.logger.Error("user operation failed",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// fieldViolations runs the full field-level validation rules and returns all
// violations at once instead of stopping at the first.
func (h *UserHandlers) fieldViolations(v interface{}) []string {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			violations = append(violations, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			violations = append(violations, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		default:
			violations = append(violations, fmt.Sprintf("%s failed the %s constraint", fe.Field(), fe.Tag()))
		}
	}
	return violations
}
