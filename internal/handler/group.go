package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/repository"
	"github.com/iliyamo/school-community-platform/internal/service"
)

// GroupHandler serves groups, membership and the group chat.
type GroupHandler struct {
	Groups   *repository.GroupRepo
	Posts    *repository.PostRepo
	Messages *repository.MessageRepo
	Users    *repository.UserRepo
	Notify   *service.Notifier
	Uploads  *UploadStore
}

func NewGroupHandler(g *repository.GroupRepo, p *repository.PostRepo, m *repository.MessageRepo, u *repository.UserRepo, n *service.Notifier, up *UploadStore) *GroupHandler {
	return &GroupHandler{Groups: g, Posts: p, Messages: m, Users: u, Notify: n, Uploads: up}
}

// List returns every group with the caller's membership flag.
func (h *GroupHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	groups, err := h.Groups.List(ctx, currentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list groups failed"})
	}
	return c.JSON(http.StatusOK, groups)
}

// Mine returns the caller's groups.
func (h *GroupHandler) Mine(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	groups, err := h.Groups.ListByUser(ctx, currentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list groups failed"})
	}
	return c.JSON(http.StatusOK, groups)
}

// Get returns one group by id.
func (h *GroupHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	group, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		return writeRepoErr(c, err, "load group failed")
	}
	return c.JSON(http.StatusOK, group)
}

type createGroupReq struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=course club"`
	Grade       *string `json:"grade"`
}

// Create opens a group; the creator joins as its admin member.
func (h *GroupHandler) Create(c echo.Context) error {
	var req createGroupReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	uid := currentUserID(c)
	group := model.Group{Name: req.Name, Description: req.Description, Type: req.Type, Grade: req.Grade, CreatedBy: &uid}
	if err := h.Groups.Create(ctx, &group); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create group failed"})
	}
	return c.JSON(http.StatusCreated, group)
}

// Delete removes a group. The creator or an admin may delete.
func (h *GroupHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	group, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		return writeRepoErr(c, err, "load group failed")
	}
	uid := currentUserID(c)
	isCreator := group.CreatedBy != nil && *group.CreatedBy == uid
	if !isCreator && currentRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Groups.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete group failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Join enrolls the caller. Joining twice yields 409.
func (h *GroupHandler) Join(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Groups.GetByID(ctx, id); err != nil {
		return writeRepoErr(c, err, "load group failed")
	}
	if err := h.Groups.AddMember(ctx, id, currentUserID(c)); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "already a member"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "join failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Leave drops the caller from the roster; leaving a group the user
// never joined succeeds silently.
func (h *GroupHandler) Leave(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Groups.RemoveMember(ctx, id, currentUserID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "leave failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Members returns the roster. Members only.
func (h *GroupHandler) Members(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.requireMember(c, id); err != nil {
		return nil
	}
	members, err := h.Groups.Members(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list members failed"})
	}
	return c.JSON(http.StatusOK, members)
}

// ListPosts returns the group's posts. Members only.
func (h *GroupHandler) ListPosts(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.requireMember(c, id); err != nil {
		return nil
	}
	posts, err := h.Posts.ListByGroup(ctx, currentUserID(c), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list posts failed"})
	}
	return c.JSON(http.StatusOK, posts)
}

// ListMessages returns recent chat history. Members only. The limit
// query parameter caps the window, default 50, max 200.
func (h *GroupHandler) ListMessages(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.requireMember(c, id); err != nil {
		return nil
	}
	msgs, err := h.Messages.ListByGroup(ctx, id, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list messages failed"})
	}
	return c.JSON(http.StatusOK, msgs)
}

// SendMessage posts a chat message, optionally with an uploaded
// attachment (multipart field "media"). Members only. The other
// members are notified best effort.
func (h *GroupHandler) SendMessage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.requireMember(c, id); err != nil {
		return nil
	}

	content := c.FormValue("content")
	msg := model.Message{GroupID: id, SenderID: currentUserID(c), Content: content}

	if file, err := c.FormFile("media"); err == nil {
		stored, err := h.Uploads.Save(file)
		if err != nil {
			return writeUploadErr(c, err)
		}
		msg.MediaURL = &stored.URL
		mediaType := mediaKind(stored.Ext)
		msg.MediaType = &mediaType
	}
	if content == "" && msg.MediaURL == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content or media required"})
	}

	if err := h.Messages.Create(ctx, &msg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send message failed"})
	}

	group, gErr := h.Groups.GetByID(ctx, id)
	sender, uErr := h.Users.GetByID(ctx, msg.SenderID)
	if gErr == nil && uErr == nil {
		h.Notify.MessageSent(ctx, id, msg.SenderID, sender.FirstName+" "+sender.LastName, group.Name)
	}
	return c.JSON(http.StatusCreated, msg)
}

// DeleteMessage removes one message from the group chat. Mounted
// behind the teacher/admin role gate: chat moderation, not message
// ownership.
func (h *GroupHandler) DeleteMessage(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	msgID, err := pathID(c, "messageId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid message id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Messages.Delete(ctx, id, msgID); err != nil {
		return writeRepoErr(c, err, "delete message failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// mediaKind classifies an upload extension into the chat media types.
func mediaKind(ext string) string {
	switch ext {
	case "png", "jpg", "jpeg", "gif", "webp":
		return "image"
	case "mp3", "ogg", "wav", "m4a", "webm":
		return "voice"
	default:
		return "document"
	}
}

// requireMember writes the error response and returns non-nil when
// the caller is not in the group.
func (h *GroupHandler) requireMember(c echo.Context, groupID uint64) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	member, err := h.Groups.IsMember(ctx, groupID, currentUserID(c))
	if err != nil {
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "membership check failed"})
		return err
	}
	if !member {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "not a group member"})
		return repository.ErrForbidden
	}
	return nil
}
