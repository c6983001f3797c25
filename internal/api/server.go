package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fridgeplan/internal/config"
	"fridgeplan/internal/models"
	"fridgeplan/internal/monitoring"
	"fridgeplan/internal/planner"
	"fridgeplan/internal/session"

	"github.com/gin-gonic/gin"
)

// Generator issues one meal-plan generation request.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PlannerAPI hosts the user session over HTTP: it owns the inventory
// session state and wires the store, prompt builder, and gateway together.
type PlannerAPI struct {
	Router  *gin.Engine
	Session *session.Session
	Monitor *monitoring.Monitor

	// Gateway is nil when no credentials could be resolved; generation
	// requests then fail before any prompt is built.
	Gateway Generator
	Model   string

	// Timeout bounds a single generation request. Zero means no timeout.
	Timeout time.Duration
}

// NewPlannerAPI creates the HTTP surface around an inventory session.
func NewPlannerAPI(sess *session.Session, gw Generator, mon *monitoring.Monitor) *PlannerAPI {
	api := &PlannerAPI{
		Router:  gin.Default(),
		Session: sess,
		Monitor: mon,
		Gateway: gw,
	}
	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (p *PlannerAPI) setupRoutes() {
	p.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "fridgeplan API is running"})
	})

	v1 := p.Router.Group("/api/v1")
	{
		v1.GET("/inventory", p.GetInventory)
		v1.POST("/inventory", p.AddIngredient)
		v1.PUT("/inventory", p.ReplaceInventory)

		v1.POST("/plan", p.GeneratePlan)

		v1.GET("/stats", p.GetStats)
	}
}

// GetInventory returns the inventory sorted by (category, expiry).
func (p *PlannerAPI) GetInventory(c *gin.Context) {
	c.JSON(http.StatusOK, p.Session.View())
}

// AddIngredient appends one record to the inventory. A record whose name is
// empty after trimming is silently ignored and the unchanged view comes
// back, matching the add-form behavior.
func (p *PlannerAPI) AddIngredient(c *gin.Context) {
	var item models.Ingredient
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !item.Unit.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown unit: " + string(item.Unit)})
		return
	}
	if !item.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + string(item.Category)})
		return
	}
	if item.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
		return
	}

	if _, err := p.Session.Add(item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	p.Monitor.SetInventorySize(p.Session.Len())
	c.JSON(http.StatusOK, p.Session.View())
}

// ReplaceInventory reconciles a full user-edited view back into the
// canonical inventory. Row identity is positional.
func (p *PlannerAPI) ReplaceInventory(c *gin.Context) {
	var rows []session.Row
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := p.Session.Reconcile(rows); err != nil {
		var rowErr *session.RowError
		if errors.As(err, &rowErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	p.Monitor.SetInventorySize(p.Session.Len())
	c.JSON(http.StatusOK, p.Session.View())
}

// GeneratePlan builds the prompt from the current inventory snapshot and
// sends it through the gateway. Gateway failures are terminal for this
// request only; the inventory is never touched on any path here.
func (p *PlannerAPI) GeneratePlan(c *gin.Context) {
	var req models.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Gateway == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": config.ErrNoCredentials.Error()})
		return
	}

	snapshot := p.Session.Snapshot()
	if len(snapshot) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "inventory is empty, add ingredients first"})
		return
	}

	prompt := planner.Build(snapshot, req.Days, req.Strict)

	ctx := c.Request.Context()
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	start := time.Now()
	plan, err := p.Gateway.Generate(ctx, prompt)
	if err != nil {
		p.Monitor.RecordPlanFailed()
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	p.Monitor.RecordPlanGenerated(p.Model, req.Days, time.Since(start))
	c.JSON(http.StatusOK, gin.H{"plan": plan, "days": req.Days, "strict": req.Strict})
}

// GetStats returns the monitor's metric snapshot.
func (p *PlannerAPI) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, p.Monitor.GetMetrics())
}
