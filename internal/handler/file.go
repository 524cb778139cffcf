package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/school-community-platform/internal/model"
	"github.com/iliyamo/school-community-platform/internal/repository"
)

// FileHandler serves the shared file library. Uploads land on local
// disk via the UploadStore and start unapproved; only approved
// public files show up in the library listing.
type FileHandler struct {
	Files   *repository.FileRepo
	Uploads *UploadStore
}

func NewFileHandler(f *repository.FileRepo, up *UploadStore) *FileHandler {
	return &FileHandler{Files: f, Uploads: up}
}

// List returns the approved public library, optionally filtered by
// the subject query parameter.
func (h *FileHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	files, err := h.Files.ListApproved(ctx, c.QueryParam("subject"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list files failed"})
	}
	return c.JSON(http.StatusOK, files)
}

// Mine returns the caller's uploads regardless of approval.
func (h *FileHandler) Mine(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	files, err := h.Files.ListByUploader(ctx, currentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list files failed"})
	}
	return c.JSON(http.StatusOK, files)
}

// ByUser returns another user's uploads. The owner and admins see
// everything; everyone else only the approved public files.
func (h *FileHandler) ByUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	files, err := h.Files.ListByUploader(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list files failed"})
	}
	if currentUserID(c) != id && currentRole(c) != model.RoleAdmin {
		files = visibleFiles(files)
	}
	return c.JSON(http.StatusOK, files)
}

// visibleFiles keeps only approved public entries.
func visibleFiles(files []repository.FileWithUploader) []repository.FileWithUploader {
	out := make([]repository.FileWithUploader, 0, len(files))
	for _, f := range files {
		if f.Approved && f.Visibility == model.FileVisibilityPublic {
			out = append(out, f)
		}
	}
	return out
}

// Upload receives a multipart upload (field "file") with optional
// subject/description/visibility form values. Teachers' uploads are
// approved immediately; student uploads wait for moderation.
func (h *FileHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	stored, err := h.Uploads.Save(fh)
	if err != nil {
		return writeUploadErr(c, err)
	}

	visibility := c.FormValue("visibility")
	switch visibility {
	case model.FileVisibilityGroup, model.FileVisibilityPrivate:
	default:
		visibility = model.FileVisibilityPublic
	}

	role := currentRole(c)
	file := model.File{
		UploaderID: currentUserID(c),
		FileName:   fh.Filename,
		FileURL:    stored.URL,
		StorageKey: stored.Key,
		FileType:   stored.Ext,
		FileSize:   stored.Size,
		Visibility: visibility,
		Approved:   role == model.RoleTeacher || role == model.RoleAdmin,
	}
	if s := c.FormValue("subject"); s != "" {
		file.Subject = &s
	}
	if d := c.FormValue("description"); d != "" {
		file.Description = &d
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Files.Create(ctx, &file); err != nil {
		_ = h.Uploads.Remove(stored.Key)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save file failed"})
	}
	return c.JSON(http.StatusCreated, file)
}

// Download streams the blob with the original filename and counts
// the download.
func (h *FileHandler) Download(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	file, err := h.Files.GetByID(ctx, id)
	if err != nil {
		return writeRepoErr(c, err, "load file failed")
	}
	if !file.Approved && file.UploaderID != currentUserID(c) && currentRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	_ = h.Files.IncrementDownloads(ctx, id)
	return c.Attachment(h.Uploads.Path(file.StorageKey), file.FileName)
}

// Delete removes a file from the library and from disk. The
// uploader, any teacher, or an admin may delete; teachers act as
// library moderators here.
func (h *FileHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	file, err := h.Files.GetByID(ctx, id)
	if err != nil {
		return writeRepoErr(c, err, "load file failed")
	}
	role := currentRole(c)
	if file.UploaderID != currentUserID(c) && role != model.RoleTeacher && role != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Files.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete file failed"})
	}
	_ = h.Uploads.Remove(file.StorageKey)
	return c.NoContent(http.StatusNoContent)
}
