package controllers

import (
	"net/http"
	"strconv"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/repository"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/services"
	"github.com/gin-gonic/gin"
)

type ReportController struct {
	reports  *services.ReportService
	comments *services.CommentService
	messages *services.MessageService
}

func NewReportController(reports *services.ReportService, comments *services.CommentService, messages *services.MessageService) *ReportController {
	return &ReportController{
		reports:  reports,
		comments: comments,
		messages: messages,
	}
}

type CreateReportRequest struct {
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Photos      []string `json:"photos" binding:"required"`
	Anonymous   bool     `json:"anonymous"`
}

type ReviewReportRequest struct {
	Status          string `json:"status" binding:"required"`
	Explanation     string `json:"explanation"`
	TechnicalOffice string `json:"technicalOffice"`
}

type AssignExternalRequest struct {
	ExternalMaintainerID uint `json:"externalMaintainerId" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreateReport accepts both authenticated and anonymous submissions: the
// anonymous flag is explicit, and an unauthenticated request without it
// is rejected rather than silently filed as anonymous.
func (rc *ReportController) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data", "errors": err.Error()})
		return
	}

	var userID *uint
	if !req.Anonymous {
		id, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required for non-anonymous reports"})
			return
		}
		userID = &id
	}

	report, err := rc.reports.CreateReport(services.CreateReportRequest{
		UserID:      userID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Photos:      req.Photos,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": report})
}

func (rc *ReportController) GetReport(c *gin.Context) {
	id, ok := rc.reportID(c)
	if !ok {
		return
	}

	report, err := rc.reports.GetReport(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

func (rc *ReportController) GetReports(c *gin.Context) {
	filter := repository.ReportFilter{
		Status: models.ReportStatus(c.Query("status")),
	}
	if assignee := c.Query("assigneeId"); assignee != "" {
		if id, err := strconv.ParseUint(assignee, 10, 32); err == nil {
			filter.OfficerID = uint(id)
		}
	}
	if reporter := c.Query("reporterId"); reporter != "" {
		if id, err := strconv.ParseUint(reporter, 10, 32); err == nil {
			filter.ReporterID = uint(id)
		}
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	reports, err := rc.reports.ListReports(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reports})
}

func (rc *ReportController) ReviewReport(c *gin.Context) {
	id, ok := rc.reportID(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var req ReviewReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data"})
		return
	}

	report, err := rc.reports.Review(id, actorID, services.ReviewRequest{
		Status:          req.Status,
		Explanation:     req.Explanation,
		TechnicalOffice: req.TechnicalOffice,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

func (rc *ReportController) AssignExternal(c *gin.Context) {
	id, ok := rc.reportID(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var req AssignExternalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data"})
		return
	}

	report, err := rc.reports.AssignExternal(id, actorID, req.ExternalMaintainerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

func (rc *ReportController) UpdateStatus(c *gin.Context) {
	id, ok := rc.reportID(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data"})
		return
	}

	report, err := rc.reports.UpdateAssigneeStatus(id, actorID, models.ReportStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

func (rc *ReportController) AddComment(c *gin.Context) {
	id, ok := rc.reportID(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data"})
		return
	}

	comment, err := rc.comments.AddComment(id, actorID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": comment})
}

func (rc *ReportController) GetComments(c *gin.Context) {
	id, ok := rc.reportID(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	comments, err := rc.comments.ListComments(id, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
}

func (rc *ReportController) SendMessage(c *gin.Context) {
	id, ok := rc.reportID(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request data"})
		return
	}

	message, err := rc.messages.SendMessage(id, actorID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": message})
}

func (rc *ReportController) GetMessages(c *gin.Context) {
	id, ok := rc.reportID(c)
	if !ok {
		return
	}
	actorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	messages, err := rc.messages.ListMessages(id, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": messages})
}

func (rc *ReportController) reportID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid report id"})
		return 0, false
	}
	return uint(id), true
}
