package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pirlanta/internal/models"
	"pirlanta/internal/services"
)

type SiteHandler struct {
	Site    *services.SiteService
	Contact *services.ContactService
}

func NewSiteHandler(site *services.SiteService, contact *services.ContactService) *SiteHandler {
	return &SiteHandler{Site: site, Contact: contact}
}

// @Summary      Контент главной страницы
// @Tags         Site
// @Produce      json
// @Success      200  {object}  models.HomePage
// @Router       /api/home/ [get]
func (h *SiteHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, h.Site.Home())
}

// @Summary      Снимок карты атак
// @Tags         Site
// @Produce      json
// @Success      200  {object}  models.ThreatMapSnapshot
// @Router       /api/threatmap/ [get]
func (h *SiteHandler) ThreatMap(c *gin.Context) {
	c.JSON(http.StatusOK, h.Site.ThreatMap())
}

// @Summary      Форма обратной связи
// @Tags         Site
// @Accept       json
// @Produce      json
// @Param        body  body      models.ContactMessage  true  "Сообщение"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/contact/ [post]
func (h *SiteHandler) SubmitContact(c *gin.Context) {
	var msg models.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Contact.Submit(c.Request.Context(), msg); err != nil {
		if models.IsExternalServiceError(err) {
			writeErrorMessage(c, "[contact][submit]", err, "Failed to deliver message, please try again later")
			return
		}
		writeError(c, "[contact][submit]", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thank you! We will contact you shortly."})
}
