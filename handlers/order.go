package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-errand-api/models"
	"campus-errand-api/repository"
	"campus-errand-api/services"
	"campus-errand-api/statemachine"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type CreateOrderRequest struct {
	RequesterID      string           `json:"requester_id" binding:"required"`
	Type             models.OrderType `json:"type" binding:"required"`
	Description      string           `json:"description" binding:"required"`
	PickupLocation   string           `json:"pickup_location" binding:"required"`
	DeliveryLocation string           `json:"delivery_location" binding:"required"`
	Price            float64          `json:"price" binding:"required,gt=0"`
	RequesterWechat  string           `json:"requester_wechat" binding:"required"`
	TimeRequirement  string           `json:"time_requirement"`
	ExtraNeeds       string           `json:"extra_needs"`
}

// Create publishes a new errand order
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Create(services.CreateOrderInput{
		RequesterID:      req.RequesterID,
		Type:             req.Type,
		Description:      req.Description,
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		Price:            req.Price,
		RequesterWechat:  req.RequesterWechat,
		TimeRequirement:  req.TimeRequirement,
		ExtraNeeds:       req.ExtraNeeds,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// List returns orders filtered by status and/or role+user_id, each joined
// with the requester's display fields
func (h *OrderHandler) List(c *gin.Context) {
	filter := repository.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
		Role:   models.Role(c.Query("role")),
		UserID: c.Query("user_id"),
	}
	orders, err := h.orders.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type UpdateOrderStatusRequest struct {
	Status   models.OrderStatus `json:"status" binding:"required"`
	RunnerID string             `json:"runner_id"`
}

// UpdateStatus handles accept, complete, confirm and cancel transitions
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order, err := h.orders.UpdateStatus(c.Param("id"), req.Status, req.RunnerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type CancelAcceptanceRequest struct {
	RunnerID string `json:"runner_id" binding:"required"`
}

// CancelAcceptance lets the assigned runner give the order back
func (h *OrderHandler) CancelAcceptance(c *gin.Context) {
	var req CancelAcceptanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.orders.CancelAcceptance(c.Param("id"), req.RunnerID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// StateMachineInfo returns the full lifecycle for informational purposes
func (h *OrderHandler) StateMachineInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "actor": t.Actor})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.OrderStatus{models.StatusConfirmed, models.StatusCancelled},
		"description":     "Campus Errand Order Lifecycle State Machine",
	})
}
