package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medville/medjobs/internal/dtos"
	"github.com/medville/medjobs/internal/services"
)

type CityHandler struct {
	Cities *services.CityService
}

func NewCityHandler(cities *services.CityService) *CityHandler {
	return &CityHandler{Cities: cities}
}

// Create is the POST /datas/cities endpoint
func (h *CityHandler) Create(c *gin.Context) {
	var req dtos.CityCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	city, err := h.Cities.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, city)
}

func (h *CityHandler) GetAll(c *gin.Context) {
	cities, err := h.Cities.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (h *CityHandler) GetAllNames(c *gin.Context) {
	names, err := h.Cities.GetAllNames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *CityHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid city ID")
	if !ok {
		return
	}
	city, err := h.Cities.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, city)
}

func (h *CityHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid city ID")
	if !ok {
		return
	}
	var req dtos.CityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	city, err := h.Cities.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, city)
}

func (h *CityHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid city ID")
	if !ok {
		return
	}
	if err := h.Cities.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "City deleted successfully", "id": id})
}
