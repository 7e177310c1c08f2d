package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum-api/internal/dto"
	apierrors "github.com/yukikurage/qa-forum-api/internal/errors"
	"github.com/yukikurage/qa-forum-api/internal/services"
	"github.com/yukikurage/qa-forum-api/internal/utils"
)

type CategoryHandler struct {
	categories *services.CategoryService
	pageSize   int
}

func NewCategoryHandler(categories *services.CategoryService, pageSize int) *CategoryHandler {
	return &CategoryHandler{categories: categories, pageSize: pageSize}
}

type categoryRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

// List returns one page of categories.
func (h *CategoryHandler) List(c *gin.Context) {
	page, err := h.categories.GetPaginatedList(c.Request.Context(), utils.GetPaginationParams(c, h.pageSize))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(page, dto.ToCategoryDTO))
}

func (h *CategoryHandler) Show(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categories.FindOneByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categories.Create(c.Request.Context(), services.CategoryInput{Title: req.Title})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryDTO(*category))
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categories.FindOneByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	category, err = h.categories.Update(c.Request.Context(), category, services.CategoryInput{Title: req.Title})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryDTO(*category))
}

// Delete answers 409 while questions still use the category.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categories.FindOneByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	if err := h.categories.Delete(c.Request.Context(), category); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
