package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ringsidehq/member-portal/internal/core/domain"
	"github.com/ringsidehq/member-portal/internal/core/ports"
)

// MedicalHandler exposes the medical record store to authenticated portal
// users. Mutations are additionally gated to medics by the router.
type MedicalHandler struct {
	medical ports.MedicalService
}

func NewMedicalHandler(medical ports.MedicalService) *MedicalHandler {
	return &MedicalHandler{medical: medical}
}

// GetRecord returns a subject's full medical record.
//
// @Summary      Get a subject's medical record
// @Tags         medical
// @Produce      json
// @Security     BearerAuth
// @Param        subject_id  path      string  true  "Subject id"
// @Success      200         {object}  domain.MedicalRecord
// @Failure      401         {object}  errorResponse
// @Router       /v1/medical/records/{subject_id} [get]
func (h *MedicalHandler) GetRecord(c echo.Context) error {
	if _, err := ctxClaims(c); err != nil {
		return err
	}

	record, err := h.medical.GetRecord(c.Request().Context(), c.Param("subject_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// AddEntry appends a history entry to a subject's record. Author fields
// default to the signed-in medic when the request omits them.
//
// @Summary      Add a medical history entry
// @Tags         medical
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        subject_id  path      string           true  "Subject id"
// @Param        body        body      addEntryRequest  true  "New entry"
// @Success      201         {object}  domain.MedicalRecord
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /v1/medical/records/{subject_id}/entries [post]
func (h *MedicalHandler) AddEntry(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req addEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.AddEntryInput{
		EntryType:  domain.EntryType(req.EntryType),
		Notes:      req.Notes,
		AuthorName: req.AuthorName,
		AuthorID:   req.AuthorID,
	}
	if input.AuthorName == "" {
		input.AuthorName = claims.Email
	}
	if input.AuthorID == "" {
		input.AuthorID = claims.SubjectID
	}

	record, err := h.medical.AddEntry(c.Request().Context(), c.Param("subject_id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, record)
}

// SetSuspension replaces a subject's suspension wholesale.
//
// @Summary      Set a subject's suspension
// @Tags         medical
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        subject_id  path      string                true  "Subject id"
// @Param        body        body      setSuspensionRequest  true  "Suspension"
// @Success      200         {object}  domain.MedicalRecord
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /v1/medical/records/{subject_id}/suspension [put]
func (h *MedicalHandler) SetSuspension(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req setSuspensionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.medical.SetSuspension(c.Request().Context(), c.Param("subject_id"), &domain.Suspension{
		Active:    true,
		Reason:    req.Reason,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IssuedBy:  claims.Email,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// ClearSuspension empties the suspension slot.
//
// @Summary      Clear a subject's suspension
// @Tags         medical
// @Produce      json
// @Security     BearerAuth
// @Param        subject_id  path      string  true  "Subject id"
// @Success      200         {object}  domain.MedicalRecord
// @Failure      401         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /v1/medical/records/{subject_id}/suspension [delete]
func (h *MedicalHandler) ClearSuspension(c echo.Context) error {
	if _, err := ctxClaims(c); err != nil {
		return err
	}

	record, err := h.medical.SetSuspension(c.Request().Context(), c.Param("subject_id"), nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}
