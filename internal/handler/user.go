package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/repository"
)

// UserHandler serves user directory and profile endpoints.
type UserHandler struct {
	Users  *repository.UserRepo
	Badges *repository.BadgeRepo
}

func NewUserHandler(u *repository.UserRepo, b *repository.BadgeRepo) *UserHandler {
	return &UserHandler{Users: u, Badges: b}
}

type profileDTO struct {
	ID              uint64   `json:"id"`
	Email           string   `json:"email"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	ProfileImageURL *string  `json:"profile_image_url,omitempty"`
	Role            string   `json:"role"`
	Grade           *string  `json:"grade,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
	Interests       []string `json:"interests"`
	Verified        bool     `json:"verified"`
	Blocked         bool     `json:"blocked"`
}

func profileResp(u model.User) profileDTO {
	if u.Interests == nil {
		u.Interests = []string{}
	}
	return profileDTO{
		ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName,
		ProfileImageURL: u.ProfileImageURL, Role: u.Role, Grade: u.Grade, Bio: u.Bio,
		Interests: u.Interests, Verified: u.Verified, Blocked: u.Blocked,
	}
}

// List returns the user directory without password hashes.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}
	out := make([]profileDTO, 0, len(users))
	for _, u := range users {
		out = append(out, profileResp(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one user's profile.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return writeRepoErr(c, err, "load user failed")
	}
	u.PasswordHash = ""
	return c.JSON(http.StatusOK, profileResp(u))
}

type updateProfileReq struct {
	FirstName string   `json:"first_name" validate:"required"`
	LastName  string   `json:"last_name" validate:"required"`
	Grade     *string  `json:"grade"`
	Bio       *string  `json:"bio"`
	Interests []string `json:"interests"`
}

// UpdateProfile lets the authenticated user edit their own profile.
// Email, role and the moderation flags are not editable here.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	uid := currentUserID(c)
	if err := h.Users.UpdateProfile(ctx, uid, req.FirstName, req.LastName, req.Grade, req.Bio, req.Interests); err != nil {
		return writeRepoErr(c, err, "update profile failed")
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return writeRepoErr(c, err, "load user failed")
	}
	u.PasswordHash = ""
	return c.JSON(http.StatusOK, profileResp(u))
}

// BadgesOf returns the badges a user has earned.
func (h *UserHandler) BadgesOf(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	earned, err := h.Badges.ListByUser(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list badges failed"})
	}
	return c.JSON(http.StatusOK, earned)
}
