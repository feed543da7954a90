package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/quezi/domain"
	"github.com/you/quezi/internal/http/middleware"
)

// ReviewHandlers serves review creation and removal
type ReviewHandlers struct {
	reviews domain.ReviewService
}

func NewReviewHandlers(reviews domain.ReviewService) *ReviewHandlers {
	return &ReviewHandlers{reviews: reviews}
}

type CreateReviewRequest struct {
	AppointmentID  string `json:"appointmentId" binding:"required,max=64"`
	ProfessionalID uint   `json:"professionalId" binding:"required"`
	Rating         int    `json:"rating" binding:"required,min=1,max=5"`
	Comment        string `json:"comment" binding:"max=1000"`
}

func (h *ReviewHandlers) Create(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	review, err := h.reviews.Create(c.Request.Context(), actor.UserID, domain.ReviewInput{
		AppointmentID:  req.AppointmentID,
		ProfessionalID: req.ProfessionalID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, newReviewResponse(review))
}

func (h *ReviewHandlers) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		respondError(c, domain.ErrUnauthorized)
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
