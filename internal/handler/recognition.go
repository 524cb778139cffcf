package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/repository"
)

// RecognitionHandler serves the public shout-out wall.
type RecognitionHandler struct {
	Recognitions *repository.RecognitionRepo
	Users        *repository.UserRepo
}

func NewRecognitionHandler(r *repository.RecognitionRepo, u *repository.UserRepo) *RecognitionHandler {
	return &RecognitionHandler{Recognitions: r, Users: u}
}

// List returns the wall, newest first.
func (h *RecognitionHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	recs, err := h.Recognitions.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list recognitions failed"})
	}
	return c.JSON(http.StatusOK, recs)
}

type createRecognitionReq struct {
	RecipientID uint64 `json:"recipient_id" validate:"required"`
	Content     string `json:"content" validate:"required,max=2000"`
}

// Create posts a shout-out to another user. Recognizing yourself is
// refused.
func (h *RecognitionHandler) Create(c echo.Context) error {
	var req createRecognitionReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	uid := currentUserID(c)
	if req.RecipientID == uid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot recognize yourself"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.RecipientID); err != nil {
		return writeRepoErr(c, err, "load recipient failed")
	}
	rec := model.Recognition{CreatedBy: uid, RecipientID: req.RecipientID, Content: req.Content}
	if err := h.Recognitions.Create(ctx, &rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create recognition failed"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// Delete removes a shout-out. The author or an admin may delete.
func (h *RecognitionHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rec, err := h.Recognitions.GetByID(ctx, id)
	if err != nil {
		return writeRepoErr(c, err, "load recognition failed")
	}
	if rec.CreatedBy != currentUserID(c) && currentRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Recognitions.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete recognition failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
