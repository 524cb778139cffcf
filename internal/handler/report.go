package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/repository"
	"github.com/iliyamo/school-community-platform/internal/service"
)

// ReportHandler serves report filing and the moderation queue.
type ReportHandler struct {
	Reports  *repository.ReportRepo
	Resolver *service.Resolver
}

func NewReportHandler(r *repository.ReportRepo, res *service.Resolver) *ReportHandler {
	return &ReportHandler{Reports: r, Resolver: res}
}

type createReportReq struct {
	TargetType string `json:"target_type" validate:"required,oneof=post comment file user"`
	TargetID   uint64 `json:"target_id" validate:"required"`
	Reason     string `json:"reason" validate:"required,max=1000"`
}

// Create files a report. Any verified user may report; the target is
// a loose reference, so reporting an id that no longer exists still
// succeeds and the moderator sees it in context.
func (h *ReportHandler) Create(c echo.Context) error {
	var req createReportReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rep := model.Report{
		ReporterID: currentUserID(c),
		TargetType: model.ReportTargetType(req.TargetType),
		TargetID:   req.TargetID,
		Reason:     req.Reason,
	}
	if err := h.Reports.Create(ctx, &rep); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create report failed"})
	}
	return c.JSON(http.StatusCreated, rep)
}

// List returns the moderation queue, optionally filtered by the
// status query parameter. Admins only.
func (h *ReportHandler) List(c echo.Context) error {
	status := c.QueryParam("status")
	switch status {
	case "", model.ReportStatusPending, model.ReportStatusReviewed, model.ReportStatusResolved, model.ReportStatusDismissed:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	reports, err := h.Reports.List(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reports failed"})
	}
	return c.JSON(http.StatusOK, reports)
}

type resolveReportReq struct {
	Action string  `json:"action" validate:"required,oneof=dismiss delete"`
	Notes  *string `json:"notes"`
}

// Resolve finalizes a report. "dismiss" closes it with no further
// effect; "delete" closes it as resolved and removes the reported
// content. A report can be resolved exactly once; a second attempt
// yields 409. Admins only.
func (h *ReportHandler) Resolve(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req resolveReportReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	status, deleteTarget := model.ReportStatusDismissed, false
	if req.Action == "delete" {
		status, deleteTarget = model.ReportStatusResolved, true
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Resolver.Resolve(ctx, id, currentUserID(c), status, req.Notes, deleteTarget)
	switch err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case repository.ErrAlreadyResolved:
		return c.JSON(http.StatusConflict, echo.Map{"error": "report already resolved"})
	default:
		return writeRepoErr(c, err, "resolve report failed")
	}
}
