package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crm_manager/internal/models"
	"crm_manager/internal/store"
)

// ContentHandler serves the marketing calendar and blog panel.
type ContentHandler struct {
	marketing *store.MarketingStore
	blog      *store.BlogStore
}

func NewContentHandler(marketing *store.MarketingStore, blog *store.BlogStore) *ContentHandler {
	return &ContentHandler{marketing: marketing, blog: blog}
}

type contentRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Platform        string `json:"platform" binding:"required"`
	Time            string `json:"time"`
	BackgroundColor string `json:"background_color"`
}

func (h *ContentHandler) ListMarketing(c *gin.Context) {
	if date := c.Query("date"); date != "" {
		day, ok := h.marketing.ByDate(date)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"day": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"day": day})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": h.marketing.All()})
}

func (h *ContentHandler) AddContent(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	item, err := h.marketing.AddContent(date, models.ContentItem{
		Title:           req.Title,
		Description:     req.Description,
		Platform:        req.Platform,
		Time:            req.Time,
		BackgroundColor: req.BackgroundColor,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ContentHandler) EditContent(c *gin.Context) {
	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	err := h.marketing.EditContent(c.Param("date"), c.Param("content_id"), models.ContentItem{
		Title:           req.Title,
		Description:     req.Description,
		Platform:        req.Platform,
		Time:            req.Time,
		BackgroundColor: req.BackgroundColor,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *ContentHandler) SetContentStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Status != string(models.ContentPending) && req.Status != string(models.ContentCompleted) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be pending or completed"})
		return
	}

	if err := h.marketing.SetStatus(c.Param("date"), c.Param("content_id"), req.Status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func (h *ContentHandler) DeleteContent(c *gin.Context) {
	if err := h.marketing.DeleteContent(c.Param("date"), c.Param("content_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type blogRequest struct {
	Title         string   `json:"title" binding:"required"`
	Content       string   `json:"content"`
	ImageURL      string   `json:"image_url"`
	Author        string   `json:"author"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	StoreLocation string   `json:"store_location"`
	VisitDate     string   `json:"visit_date"`
	VisitPhotos   []string `json:"visit_photos"`
}

func (req blogRequest) toPost() models.BlogPost {
	return models.BlogPost{
		Title:         req.Title,
		Content:       req.Content,
		ImageURL:      req.ImageURL,
		Author:        req.Author,
		Category:      req.Category,
		Tags:          req.Tags,
		StoreLocation: req.StoreLocation,
		VisitDate:     req.VisitDate,
		VisitPhotos:   req.VisitPhotos,
	}
}

func (h *ContentHandler) ListPosts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"posts": h.blog.All()})
}

func (h *ContentHandler) GetPost(c *gin.Context) {
	post, err := h.blog.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *ContentHandler) CreatePost(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	post, err := h.blog.Add(req.toPost())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *ContentHandler) UpdatePost(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	existing, err := h.blog.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	post := req.toPost()
	post.Date = existing.Date
	updated, err := h.blog.Update(existing.ID, post)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ContentHandler) DeletePost(c *gin.Context) {
	if err := h.blog.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *ContentHandler) IncrementViews(c *gin.Context) {
	if err := h.blog.IncrementViews(c.Param("id")); err != nil {
		h.counterError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ContentHandler) LikePost(c *gin.Context) {
	if err := h.blog.Like(c.Param("id")); err != nil {
		h.counterError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ContentHandler) counterError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
