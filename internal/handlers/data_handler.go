package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// DataHandler serves the bundled commune reference data verbatim.
type DataHandler struct {
	CommunesFile string
}

func NewDataHandler(communesFile string) *DataHandler {
	return &DataHandler{CommunesFile: communesFile}
}

// Communes is the GET /datas/communes endpoint
func (h *DataHandler) Communes(c *gin.Context) {
	if _, err := os.Stat(h.CommunesFile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Commune data unavailable"})
		return
	}
	c.File(h.CommunesFile)
}
