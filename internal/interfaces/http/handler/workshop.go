package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appworkshop "github.com/mazzel/portal/internal/application/workshop"
)

// WorkshopHandler serves the workshop CRUD API: customers, materials and
// nesting projects
type WorkshopHandler struct {
	BaseHandler
	service *appworkshop.Service
}

// NewWorkshopHandler creates a new WorkshopHandler
func NewWorkshopHandler(service *appworkshop.Service) *WorkshopHandler {
	return &WorkshopHandler{service: service}
}

// RegisterRoutes registers workshop routes
func (h *WorkshopHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.ListCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}

	materials := rg.Group("/materials")
	{
		materials.GET("", h.ListMaterials)
		materials.POST("", h.CreateMaterial)
		materials.PUT("/:id", h.UpdateMaterial)
		materials.DELETE("/:id", h.DeleteMaterial)
	}

	rg.GET("/categories", h.Categories)

	nesting := rg.Group("/nesting")
	{
		nesting.GET("/customers", h.ListCustomers)
		nesting.GET("/materials", h.ListMaterials)
		nesting.GET("/projects", h.ListProjects)
		nesting.POST("/project", h.SaveProject)
		nesting.GET("/project/:id", h.GetProject)
		nesting.DELETE("/project/:id", h.DeleteProject)
	}
}

// ListCustomers returns all customers
func (h *WorkshopHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// GetCustomer returns one customer
func (h *WorkshopHandler) GetCustomer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// CreateCustomer stores a new customer
func (h *WorkshopHandler) CreateCustomer(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}
	id, err := h.service.CreateCustomer(c.Request.Context(), payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"id": id})
}

// UpdateCustomer replaces a customer's document
func (h *WorkshopHandler) UpdateCustomer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}
	if err := h.service.UpdateCustomer(c.Request.Context(), id, payload); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"updated": true})
}

// DeleteCustomer removes a customer
func (h *WorkshopHandler) DeleteCustomer(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}

// ListMaterials returns all materials, optionally filtered by category
func (h *WorkshopHandler) ListMaterials(c *gin.Context) {
	materials, err := h.service.ListMaterials(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, materials)
}

// CreateMaterial stores a new material
func (h *WorkshopHandler) CreateMaterial(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}
	id, err := h.service.CreateMaterial(c.Request.Context(), payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"id": id})
}

// UpdateMaterial replaces a material's document
func (h *WorkshopHandler) UpdateMaterial(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}
	if err := h.service.UpdateMaterial(c.Request.Context(), id, payload); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"updated": true})
}

// DeleteMaterial removes a material
func (h *WorkshopHandler) DeleteMaterial(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteMaterial(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}

// Categories returns the distinct material categories
func (h *WorkshopHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListProjects returns all nesting projects
func (h *WorkshopHandler) ListProjects(c *gin.Context) {
	projects, err := h.service.ListProjects(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, projects)
}

// GetProject returns one nesting project
func (h *WorkshopHandler) GetProject(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	project, err := h.service.GetProject(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, project)
}

// SaveProject creates or updates a nesting project by payload ID
func (h *WorkshopHandler) SaveProject(c *gin.Context) {
	payload, ok := h.bindPayload(c)
	if !ok {
		return
	}
	id, err := h.service.SaveProject(c.Request.Context(), payload)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": id})
}

// DeleteProject removes a nesting project
func (h *WorkshopHandler) DeleteProject(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteProject(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"deleted": true})
}

func (h *WorkshopHandler) bindPayload(c *gin.Context) (appworkshop.Payload, bool) {
	var payload appworkshop.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BadRequest(c, "invalid request body")
		return nil, false
	}
	return payload, true
}

func (h *WorkshopHandler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
