package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum-api/internal/dto"
	apierrors "github.com/yukikurage/qa-forum-api/internal/errors"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/services"
	"github.com/yukikurage/qa-forum-api/internal/utils"
)

// UserHandler serves the administrator-only user management endpoints.
type UserHandler struct {
	users    *services.UserService
	pageSize int
}

func NewUserHandler(users *services.UserService, pageSize int) *UserHandler {
	return &UserHandler{users: users, pageSize: pageSize}
}

func (h *UserHandler) List(c *gin.Context) {
	page, err := h.users.GetPaginatedList(c.Request.Context(), utils.GetPaginationParams(c, h.pageSize))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(page, dto.ToUserDTO))
}

func (h *UserHandler) Show(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Update edits email, nickname and roles. A password, when given, is re-hashed.
func (h *UserHandler) Update(c *gin.Context) {
	type UpdateUserRequest struct {
		Email    *string        `json:"email" binding:"omitempty,email,max=180"`
		Nickname *string        `json:"nickname" binding:"omitempty,max=64"`
		Roles    *[]models.Role `json:"roles"`
		Password *string        `json:"password"`
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, ok := h.load(c)
	if !ok {
		return
	}

	user, err := h.users.Update(c.Request.Context(), user, services.UpdateUserInput{
		Email:    req.Email,
		Nickname: req.Nickname,
		Roles:    req.Roles,
		Password: req.Password,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Delete removes the user together with their questions and answers.
func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), user); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) load(c *gin.Context) (*models.User, bool) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid user ID")
		return nil, false
	}

	user, err := h.users.FindOneByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return nil, false
	}
	return user, true
}
