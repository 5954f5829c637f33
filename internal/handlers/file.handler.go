package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/fasthttp/router"
	"github.com/salestrack/customer-registry/internal/model"
	xhttp "github.com/salestrack/customer-registry/pkg/http"
)

type FileService interface {
	Store(ctx context.Context, p model.FileUploadRequest) (*model.CustomerFile, error)
	Retrieve(ctx context.Context, id int64) (*model.CustomerFile, []byte, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, customerID int64) ([]*model.CustomerFile, error)
}

type FileHandler struct {
	svc FileService
}

func RegisterFileRoutes(e *router.Group, h *FileHandler) {
	e.POST("/customers/{id}/files", h.UploadFile)
	e.GET("/customers/{id}/files", h.ListFiles)
	e.GET("/files/{id}", h.DownloadFile)
	e.DELETE("/files/{id}", h.DeleteFile)
}

func NewFileHandler(fileService FileService) *FileHandler {
	return &FileHandler{
		svc: fileService,
	}
}

type fileListResponse struct {
	Items []*model.CustomerFile `json:"items"`
	Total int                   `json:"total"`
}

/* --------------------------------- Routes ----------------------------------- */

// UploadFile accepts a multipart form with a "file" part and an optional
// "description" field.
func (h *FileHandler) UploadFile(ctx *xhttp.RequestCtx) {
	customerID, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "multipart field \"file\" is required")
		return
	}

	part, err := header.Open()
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "unreadable file part: "+err.Error())
		return
	}
	defer part.Close()

	content, err := io.ReadAll(part)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "unreadable file part: "+err.Error())
		return
	}

	file, err := h.svc.Store(ctx, model.FileUploadRequest{
		CustomerID:  customerID,
		Filename:    header.Filename,
		Description: string(ctx.FormValue("description")),
		Content:     content,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, file)
}

func (h *FileHandler) ListFiles(ctx *xhttp.RequestCtx) {
	customerID, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid customer id")
		return
	}

	items, err := h.svc.List(ctx, customerID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, fileListResponse{Items: items, Total: len(items)})
}

// DownloadFile streams the stored content back under the original filename.
func (h *FileHandler) DownloadFile(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid file id")
		return
	}

	file, content, err := h.svc.Retrieve(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}

	ctx.Response.Header.Set("Content-Type", "application/octet-stream")
	ctx.Response.Header.Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	ctx.Response.SetStatusCode(xhttp.StatusOK)
	ctx.Response.SetBodyRaw(content)
}

func (h *FileHandler) DeleteFile(ctx *xhttp.RequestCtx) {
	id, err := paramID(ctx)
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid file id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]int64{"deleted": id})
}
