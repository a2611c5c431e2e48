package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ringsidehq/member-portal/internal/api/metrics"
	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

// PassHandler serves the public medical pass: the read-only record view the
// QR code on a member's pass points at. No authentication — ringside staff
// scan it without a portal account.
type PassHandler struct {
	medical ports.MedicalService
	audit   ports.AuditRecorder
}

func NewPassHandler(medical ports.MedicalService, audit ports.AuditRecorder) *PassHandler {
	return &PassHandler{medical: medical, audit: audit}
}

// Get renders the medical pass for the subject embedded in the URL.
//
// @Summary      Public medical pass view
// @Tags         medical
// @Produce      json
// @Param        subject_id  path      string  true  "Subject id from the pass QR code"
// @Success      200         {object}  domain.MedicalRecord
// @Router       /v1/medical/pass/{subject_id} [get]
func (h *PassHandler) Get(c echo.Context) error {
	subjectID := c.Param("subject_id")

	record, err := h.medical.GetRecord(c.Request().Context(), subjectID)
	if err != nil {
		return err
	}

	metrics.PassViewsTotal.Inc()
	// Best-effort: a pass must render even when the audit store is down.
	_ = h.audit.Record(c.Request().Context(), &domain.AuditEvent{
		Action:    domain.AuditPassViewed,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, record)
}
