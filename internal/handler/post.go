package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/repository"
	"github.com/iliyamo/school-community-platform/internal/service"
)

// PostHandler serves the feed, group posts, comments and likes.
type PostHandler struct {
	Posts    *repository.PostRepo
	Comments *repository.CommentRepo
	Groups   *repository.GroupRepo
	Users    *repository.UserRepo
	Notify   *service.Notifier
}

func NewPostHandler(p *repository.PostRepo, cm *repository.CommentRepo, g *repository.GroupRepo, u *repository.UserRepo, n *service.Notifier) *PostHandler {
	return &PostHandler{Posts: p, Comments: cm, Groups: g, Users: u, Notify: n}
}

// Feed returns the top-level feed, pinned posts first.
func (h *PostHandler) Feed(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	posts, err := h.Posts.ListFeed(ctx, currentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list posts failed"})
	}
	return c.JSON(http.StatusOK, posts)
}

// ByUser returns one author's posts.
func (h *PostHandler) ByUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	posts, err := h.Posts.ListByUser(ctx, currentUserID(c), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list posts failed"})
	}
	return c.JSON(http.StatusOK, posts)
}

type createPostReq struct {
	Content string   `json:"content" validate:"required,max=5000"`
	GroupID *uint64  `json:"group_id"`
	Media   []string `json:"media" validate:"max=4"`
}

// Create publishes a post. Posting into a group requires membership.
// A top-level post fans a notification out to every other user; the
// fan-out runs after the response-relevant work and its failures do
// not affect the created post.
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	uid := currentUserID(c)
	ctx, cancel := reqCtx(c)
	defer cancel()

	if req.GroupID != nil {
		member, err := h.Groups.IsMember(ctx, *req.GroupID, uid)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "membership check failed"})
		}
		if !member {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not a group member"})
		}
	}

	if req.Media == nil {
		req.Media = []string{}
	}
	post := model.Post{AuthorID: uid, GroupID: req.GroupID, Content: req.Content, Media: req.Media}
	if err := h.Posts.Create(ctx, &post); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create post failed"})
	}

	if req.GroupID == nil {
		if author, err := h.Users.GetByID(ctx, uid); err == nil {
			h.Notify.PostCreated(ctx, uid, post.ID, author.FirstName+" "+author.LastName)
		}
	}
	return c.JSON(http.StatusCreated, post)
}

type updatePostReq struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// Update edits a post's text. Only the author may edit; admins
// moderate by deletion, not by rewriting content.
func (h *PostHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updatePostReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	post, err := h.Posts.GetByID(ctx, id)
	if err != nil {
		return writeRepoErr(c, err, "load post failed")
	}
	if post.AuthorID != currentUserID(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Posts.UpdateContent(ctx, id, req.Content); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update post failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a post. The author or an admin may delete.
func (h *PostHandler) Delete(c echo.Context) error {
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
	if post.AuthorID != currentUserID(c) && currentRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Posts.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete post failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleLike flips the caller's like on a post and reports the
// resulting state.
func (h *PostHandler) ToggleLike(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Posts.GetByID(ctx, id); err != nil {
		return writeRepoErr(c, err, "load post failed")
	}
	liked, err := h.Posts.ToggleLike(ctx, id, currentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle like failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"liked": liked})
}

// ListComments returns a post's comments, oldest first.
func (h *PostHandler) ListComments(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	comments, err := h.Comments.ListByPost(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list comments failed"})
	}
	return c.JSON(http.StatusOK, comments)
}

type createCommentReq struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// AddComment appends a comment to a post.
func (h *PostHandler) AddComment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req createCommentReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Posts.GetByID(ctx, id); err != nil {
		return writeRepoErr(c, err, "load post failed")
	}
	comment := model.Comment{PostID: id, AuthorID: currentUserID(c), Content: req.Content}
	if err := h.Comments.Create(ctx, &comment); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create comment failed"})
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment removes a comment. The author or an admin may delete.
func (h *PostHandler) DeleteComment(c echo.Context) error {
	id, err := pathID(c, "commentId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	comment, err := h.Comments.GetByID(ctx, id)
	if err != nil {
		return writeRepoErr(c, err, "load comment failed")
	}
	if comment.AuthorID != currentUserID(c) && currentRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Comments.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete comment failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
