package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mazzel/portal/internal/application/masrafci"
	"github.com/mazzel/portal/internal/domain/reminder"
)

// MasrafciHandler serves the expense tracker API: records, the dashboard
// summary, reminder rules and reminder events
type MasrafciHandler struct {
	BaseHandler
	recordService   *masrafci.RecordService
	reminderService *masrafci.ReminderService
}

// NewMasrafciHandler creates a new MasrafciHandler
func NewMasrafciHandler(recordService *masrafci.RecordService, reminderService *masrafci.ReminderService) *MasrafciHandler {
	return &MasrafciHandler{
		recordService:   recordService,
		reminderService: reminderService,
	}
}

// RegisterRoutes registers masrafçı routes
func (h *MasrafciHandler) RegisterRoutes(rg *gin.RouterGroup) {
	m := rg.Group("/masrafci")
	{
		m.GET("/records", h.ListRecords)
		m.POST("/records", h.CreateRecord)
		m.DELETE("/records/:id", h.DeleteRecord)
		m.GET("/summary", h.Summary)

		m.GET("/reminder-rules", h.ListRules)
		m.POST("/reminder-rules", h.CreateRule)
		m.PATCH("/reminder-rules/:id", h.UpdateRule)

		m.GET("/reminders", h.ListEvents)
		m.POST("/reminders/:id/action", h.Act)
		m.POST("/reminder-check/run", h.RunCheck)
	}
}

// ListRecords returns the user's records filtered by type and month
func (h *MasrafciHandler) ListRecords(c *gin.Context) {
	var req masrafci.ListRecordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "invalid query parameters")
		return
	}

	records, err := h.recordService.ListRecords(c.Request.Context(), currentUser(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// CreateRecord stores a new record
func (h *MasrafciHandler) CreateRecord(c *gin.Context) {
	var req masrafci.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "ad alanı zorunludur")
		return
	}

	id, err := h.recordService.CreateRecord(c.Request.Context(), currentUser(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"id": id})
}

// DeleteRecord removes the user's record
func (h *MasrafciHandler) DeleteRecord(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.recordService.DeleteRecord(c.Request.Context(), currentUser(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}

// Summary returns the dashboard aggregation
func (h *MasrafciHandler) Summary(c *gin.Context) {
	summary, err := h.recordService.Summary(c.Request.Context(), currentUser(c), c.Query("month"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ListRules returns the user's reminder rules
func (h *MasrafciHandler) ListRules(c *gin.Context) {
	rules, err := h.reminderService.ListRules(c.Request.Context(), currentUser(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rules)
}

// CreateRule creates a reminder rule
func (h *MasrafciHandler) CreateRule(c *gin.Context) {
	var req masrafci.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "display_name zorunludur")
		return
	}

	resp, err := h.reminderService.CreateRule(c.Request.Context(), currentUser(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateRule applies a partial rule update
func (h *MasrafciHandler) UpdateRule(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req masrafci.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body")
		return
	}

	if err := h.reminderService.UpdateRule(c.Request.Context(), currentUser(c), id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"updated": true})
}

// ListEvents returns the month's reminder events, any status
func (h *MasrafciHandler) ListEvents(c *gin.Context) {
	events, err := h.reminderService.ListEvents(c.Request.Context(), currentUser(c), c.Query("month"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// RunCheck runs the due check and returns still-pending events
func (h *MasrafciHandler) RunCheck(c *gin.Context) {
	var req struct {
		Month string `json:"month"`
	}
	// An empty body means the current month.
	_ = c.ShouldBindJSON(&req)

	events, err := h.reminderService.RunCheck(c.Request.Context(), currentUser(c), req.Month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, events)
}

// Act applies a user action to a reminder event
func (h *MasrafciHandler) Act(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req masrafci.ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "action zorunludur")
		return
	}

	resp, err := h.reminderService.Act(c.Request.Context(), currentUser(c), id, reminder.Action(req.Action))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *MasrafciHandler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
