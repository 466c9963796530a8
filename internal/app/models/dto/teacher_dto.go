package dto

import (
	"time"

	"github.com/emres/learnhub/internal/app/models"
)

// CreateTeacherRequestRequest is the payload for applying to become a teacher
type CreateTeacherRequestRequest struct {
	Message string `json:"message" binding:"required,min=10" example:"I have 5 years of tutoring experience in mathematics."`
}

// RejectTeacherRequestRequest is the payload for rejecting an application
type RejectTeacherRequestRequest struct {
	Reason string `json:"reason" binding:"required" example:"Insufficient teaching background"`
}

// TeacherRequestResponse is the representation of a teacher application.
// Allocated credentials appear only after approval, and only for the
// requester or an admin.
type TeacherRequestResponse struct {
	ID                int64                `json:"id"`
	TeacherID         int64                `json:"teacherId"`
	TeacherName       string               `json:"teacherName,omitempty"`
	TeacherEmail      string               `json:"teacherEmail,omitempty"`
	Message           string               `json:"message"`
	Status            models.RequestStatus `json:"status"`
	RejectionReason   *string              `json:"rejectionReason,omitempty"`
	AllocatedUsername *string              `json:"allocatedUsername,omitempty"`
	ReviewedAt        *time.Time           `json:"reviewedAt,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
}

// ApproveTeacherRequestResponse is returned to the admin after a successful
// approval. It includes the plaintext pool username so it can be relayed to
// the new teacher.
type ApproveTeacherRequestResponse struct {
	Request           TeacherRequestResponse `json:"request"`
	AllocatedUsername string                 `json:"allocatedUsername"`
}

// PoolStatusResponse summarizes teacher account pool occupancy
type PoolStatusResponse struct {
	Total        int64   `json:"total" example:"1000"`
	Allocated    int64   `json:"allocated" example:"37"`
	Available    int64   `json:"available" example:"963"`
	UsagePercent float64 `json:"usagePercent" example:"3.7"`
}

// ToTeacherRequestResponse maps a request model to its API representation
func ToTeacherRequestResponse(r *models.TeacherRequest) TeacherRequestResponse {
	resp := TeacherRequestResponse{
		ID:                r.ID,
		TeacherID:         r.TeacherID,
		Message:           r.Message,
		Status:            r.Status,
		RejectionReason:   r.RejectionReason,
		AllocatedUsername: r.AllocatedUsername,
		ReviewedAt:        r.ReviewedAt,
		CreatedAt:         r.CreatedAt,
	}
	if r.Teacher != nil {
		resp.TeacherName = r.Teacher.Name
		resp.TeacherEmail = r.Teacher.Email
	}
	return resp
}
