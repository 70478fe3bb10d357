package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crm_manager/internal/models"
	"crm_manager/internal/services"
	"crm_manager/internal/store"
	"crm_manager/pkg/onsend"
)

// WhatsAppHandler serves the outreach manager: message templates, campaigns,
// chatbot flows, vendor credentials and the send operations.
type WhatsAppHandler struct {
	whatsapp *store.WhatsAppStore
	outreach services.OutreachService
}

func NewWhatsAppHandler(whatsapp *store.WhatsAppStore, outreach services.OutreachService) *WhatsAppHandler {
	return &WhatsAppHandler{whatsapp: whatsapp, outreach: outreach}
}

func (h *WhatsAppHandler) ListMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": h.whatsapp.Messages()})
}

func (h *WhatsAppHandler) CreateMessage(c *gin.Context) {
	var message models.Message
	if err := c.ShouldBindJSON(&message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := h.whatsapp.AddMessage(message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WhatsAppHandler) UpdateMessage(c *gin.Context) {
	var message models.Message
	if err := c.ShouldBindJSON(&message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := h.whatsapp.UpdateMessage(c.Param("id"), message)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *WhatsAppHandler) DeleteMessage(c *gin.Context) {
	if err := h.whatsapp.DeleteMessage(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *WhatsAppHandler) ListCampaigns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"campaigns": h.whatsapp.Campaigns()})
}

func (h *WhatsAppHandler) CreateCampaign(c *gin.Context) {
	var campaign models.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := h.whatsapp.AddCampaign(campaign)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WhatsAppHandler) UpdateCampaign(c *gin.Context) {
	var campaign models.Campaign
	if err := c.ShouldBindJSON(&campaign); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := h.whatsapp.UpdateCampaign(c.Param("id"), campaign)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *WhatsAppHandler) DeleteCampaign(c *gin.Context) {
	if err := h.whatsapp.DeleteCampaign(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *WhatsAppHandler) ListFlows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"flows": h.whatsapp.Flows()})
}

func (h *WhatsAppHandler) CreateFlow(c *gin.Context) {
	var flow models.ChatbotFlow
	if err := c.ShouldBindJSON(&flow); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	created, err := h.whatsapp.AddFlow(flow)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WhatsAppHandler) UpdateFlow(c *gin.Context) {
	var flow models.ChatbotFlow
	if err := c.ShouldBindJSON(&flow); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	updated, err := h.whatsapp.UpdateFlow(c.Param("id"), flow)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Flow not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *WhatsAppHandler) DeleteFlow(c *gin.Context) {
	if err := h.whatsapp.DeleteFlow(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *WhatsAppHandler) ConnectionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.outreach.Status()})
}

func (h *WhatsAppHandler) TestConnection(c *gin.Context) {
	result := h.outreach.TestConnection()
	c.JSON(http.StatusOK, result)
}

func (h *WhatsAppHandler) GetCredentials(c *gin.Context) {
	settings := h.outreach.Credentials()
	c.JSON(http.StatusOK, gin.H{
		"instance_id": settings.InstanceID,
		"api_key_set": settings.APIKey != "",
		"updated_at":  settings.UpdatedAt,
	})
}

func (h *WhatsAppHandler) UpdateCredentials(c *gin.Context) {
	var req struct {
		APIKey     string `json:"api_key" binding:"required"`
		InstanceID string `json:"instance_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.outreach.UpdateCredentials(req.APIKey, req.InstanceID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *WhatsAppHandler) ListRecipients(c *gin.Context) {
	audience := c.DefaultQuery("audience", "all")
	c.JSON(http.StatusOK, gin.H{"recipients": h.outreach.Audience(audience)})
}

func (h *WhatsAppHandler) Blast(c *gin.Context) {
	var req struct {
		Audience    string   `json:"audience"`
		Message     string   `json:"message" binding:"required"`
		Attachments []string `json:"attachments"`
		CampaignID  string   `json:"campaign_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Audience == "" {
		req.Audience = "all"
	}

	result, recipients := h.outreach.Blast(req.Audience, req.Message, req.Attachments, req.CampaignID)
	c.JSON(http.StatusOK, gin.H{
		"success":    result.Success,
		"message":    result.Message,
		"recipients": recipients,
	})
}

func (h *WhatsAppHandler) CreateSequence(c *gin.Context) {
	var req struct {
		Name     string                   `json:"name" binding:"required"`
		Audience string                   `json:"audience"`
		Messages []onsend.SequenceMessage `json:"messages" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Audience == "" {
		req.Audience = "all"
	}

	result := h.outreach.CreateSequence(req.Name, req.Messages, req.Audience)
	c.JSON(http.StatusOK, result)
}
