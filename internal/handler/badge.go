package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/repository"
)

// BadgeHandler serves badge definitions and awards. Defining and
// awarding badges is for teachers and admins; the routes enforce
// that via RequireRole.
type BadgeHandler struct {
	Badges *repository.BadgeRepo
	Users  *repository.UserRepo
}

func NewBadgeHandler(b *repository.BadgeRepo, u *repository.UserRepo) *BadgeHandler {
	return &BadgeHandler{Badges: b, Users: u}
}

// List returns every badge definition.
func (h *BadgeHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	badges, err := h.Badges.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list badges failed"})
	}
	return c.JSON(http.StatusOK, badges)
}

type createBadgeReq struct {
	Name        string  `json:"name" validate:"required,max=80"`
	Description *string `json:"description"`
	IconURL     *string `json:"icon_url"`
	Color       *string `json:"color"`
}

// Create defines a new badge.
func (h *BadgeHandler) Create(c echo.Context) error {
	var req createBadgeReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	badge := model.Badge{Name: req.Name, Description: req.Description, IconURL: req.IconURL, Color: req.Color}
	if err := h.Badges.Create(ctx, &badge); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create badge failed"})
	}
	return c.JSON(http.StatusCreated, badge)
}

type awardBadgeReq struct {
	UserID uint64 `json:"user_id" validate:"required"`
}

// Award grants a badge to a user; granting the same badge twice
// yields 409.
func (h *BadgeHandler) Award(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req awardBadgeReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
		return writeRepoErr(c, err, "load user failed")
	}
	if err := h.Badges.Award(ctx, req.UserID, id); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "badge already awarded"})
		}
		return writeRepoErr(c, err, "award failed")
	}
	return c.NoContent(http.StatusNoContent)
}
