package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/repository"
)

// AdminHandler serves the admin console: account verification,
// blocking, role changes, post pinning and file approval. All routes
// here sit behind RequireRole(admin).
type AdminHandler struct {
	Users  *repository.UserRepo
	Posts  *repository.PostRepo
	Files  *repository.FileRepo
	Tokens *repository.TokenRepo
}

func NewAdminHandler(u *repository.UserRepo, p *repository.PostRepo, f *repository.FileRepo, t *repository.TokenRepo) *AdminHandler {
	return &AdminHandler{Users: u, Posts: p, Files: f, Tokens: t}
}

// VerifyUser approves an account so it may create content.
func (h *AdminHandler) VerifyUser(c echo.Context) error {
	return h.setUserFlag(c, func(ctx context.Context, id uint64) error {
		return h.Users.SetVerified(ctx, id, true)
	})
}

// BlockUser blocks an account and revokes all of its sessions, so
// the block takes effect immediately rather than at token expiry.
func (h *AdminHandler) BlockUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if id == currentUserID(c) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot block yourself"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		return writeRepoErr(c, err, "load user failed")
	}
	if err := h.Users.SetBlocked(ctx, id, true); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "block failed"})
	}
	_ = h.Tokens.RevokeAllForUser(ctx, id)
	return c.NoContent(http.StatusNoContent)
}

// UnblockUser lifts a block.
func (h *AdminHandler) UnblockUser(c echo.Context) error {
	return h.setUserFlag(c, func(ctx context.Context, id uint64) error {
		return h.Users.SetBlocked(ctx, id, false)
	})
}

type changeRoleReq struct {
	Role string `json:"role" validate:"required,oneof=student teacher admin"`
}

// ChangeRole reassigns a user's role. Admins cannot demote
// themselves, which keeps at least one admin reachable.
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if id == currentUserID(c) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot change own role"})
	}
	var req changeRoleReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		return writeRepoErr(c, err, "load user failed")
	}
	if err := h.Users.UpdateRole(ctx, id, req.Role); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "change role failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// PinPost pins a post to the top of the feed.
func (h *AdminHandler) PinPost(c echo.Context) error {
	return h.setPostPinned(c, true)
}

// UnpinPost removes the pin.
func (h *AdminHandler) UnpinPost(c echo.Context) error {
	return h.setPostPinned(c, false)
}

// PendingFiles lists library uploads awaiting approval.
func (h *AdminHandler) PendingFiles(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	files, err := h.Files.ListPending(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list files failed"})
	}
	return c.JSON(http.StatusOK, files)
}

// ApproveFile publishes a pending upload to the library.
func (h *AdminHandler) ApproveFile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Files.GetByID(ctx, id); err != nil {
		return writeRepoErr(c, err, "load file failed")
	}
	if err := h.Files.SetApproved(ctx, id, true); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "approve failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) setPostPinned(c echo.Context, pinned bool) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		return writeRepoErr(c, err, "load post failed")
	}
	if post.GroupID != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "only feed posts can be pinned"})
	}
	if err := h.Posts.SetPinned(ctx, id, pinned); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "pin failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) setUserFlag(c echo.Context, apply func(ctx context.Context, id uint64) error) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, id); err != nil {
		return writeRepoErr(c, err, "load user failed")
	}
	if err := apply(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
