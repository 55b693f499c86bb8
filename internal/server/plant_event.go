package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	eventdomain "github.com/gridpeak/voltra/internal/plantevent/domain"
)

type createPlantEventRequest struct {
	PowerPlantID     string  `json:"power_plant_id"`
	EventType        string  `json:"event_type"`
	Reason           string  `json:"reason"`
	Description      string  `json:"description"`
	AffectedCapacity float64 `json:"affected_capacity"`
}

func (s *Server) CreatePlantEvent(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req createPlantEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	plantID, err := snowflake.ParseString(req.PowerPlantID)
	if err != nil {
		AbortWithError(c, newValidationError("power_plant_id", "invalid_id", "invalid identifier"))
		return
	}

	event, err := s.eventSvc.Start(c.Request.Context(), actor, eventdomain.StartEventRequest{
		PowerPlantID:     plantID,
		EventType:        req.EventType,
		Reason:           req.Reason,
		Description:      req.Description,
		AffectedCapacity: req.AffectedCapacity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (s *Server) FinishPlantEvent(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	eventID, err := requiredIDPath(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	event, err := s.eventSvc.Finish(c.Request.Context(), actor, eventID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (s *Server) ListPlantEvents(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}
	plantID, err := optionalIDParam(c, "power_plant_id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	events, err := s.eventSvc.List(c.Request.Context(), actor, plantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plant_events": events})
}
