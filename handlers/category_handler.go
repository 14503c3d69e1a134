package handlers

import (
	"net/http"
	"strconv"

	"oscarpool/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type updateCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder *int   `json:"display_order"`
}

type reorderRequest struct {
	OrderedIDs []uint `json:"ordered_ids" binding:"required"`
}

type addNomineeRequest struct {
	Name string `json:"name" binding:"required"`
}

type bulkImportRequest struct {
	Categories []services.BulkImportItem `json:"categories" binding:"required,min=1"`
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategoriesWithNominees()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, req.Name, req.DisplayOrder)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) ReorderCategories(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.categoryService.ReorderCategories(req.OrderedIDs); err != nil {
		abortWithError(c, err)
		return
	}

	categories, err := h.categoryService.GetCategoriesWithNominees()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CategoryHandler) AddNominee(c *gin.Context) {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var req addNomineeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	nominee, err := h.categoryService.AddNominee(categoryID, req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, nominee)
}

func (h *CategoryHandler) DeleteNominee(c *gin.Context) {
	nomineeID, err := parseID(c, "nomineeId")
	if err != nil {
		return
	}

	if err := h.categoryService.DeleteNominee(nomineeID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CategoryHandler) SetWinner(c *gin.Context) {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return
	}
	nomineeID, err := parseID(c, "nomineeId")
	if err != nil {
		return
	}

	if err := h.categoryService.SetWinner(categoryID, nomineeID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CategoryHandler) ClearWinner(c *gin.Context) {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return
	}

	if err := h.categoryService.ClearWinner(categoryID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CategoryHandler) BulkImport(c *gin.Context) {
	var req bulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.categoryService.BulkImport(req.Categories)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, err
	}
	return uint(id), nil
}
