package marketplace

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jannysd28/technohu/internal/guard"
	"github.com/jannysd28/technohu/internal/models"
	"github.com/jannysd28/technohu/internal/store"
)

type CreateUploadRequest struct {
	RequestID int64  `json:"request_id"`
	FileName  string `json:"file_name"`
	FilePath  string `json:"file_path"`
}

// POST /api/uploads — deliver a work artifact against an accepted request.
// Only the request's seller, only while the request is accepted.
func (h *Handler) CreateUpload(c echo.Context) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req CreateUploadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.FileName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file_name is required"})
	}

	ctx := c.Request().Context()
	request, err := h.Store.GetRequest(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch request"})
	}

	if allowed, reason := guard.CanCreateUpload(actor, request); !allowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the seller of an accepted request can upload files", "reason": reason})
	}

	// The file body lives with the external file-storage collaborator;
	// generate an opaque handle when the client didn't supply one.
	filePath := req.FilePath
	if filePath == "" {
		filePath = "uploads/" + uuid.New().String()
	}

	upload, err := h.Store.CreateUpload(ctx, models.Upload{
		RequestID: request.ID,
		SellerID:  request.SellerID,
		BuyerID:   request.BuyerID,
		FileName:  req.FileName,
		FilePath:  filePath,
		Status:    models.UploadPending,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create upload"})
	}
	return c.JSON(http.StatusCreated, upload)
}

// GET /api/uploads/:requestId — participants and admins only.
func (h *Handler) GetUploadsByRequest(c echo.Context) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	requestID, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
	}

	ctx := c.Request().Context()
	request, err := h.Store.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch request"})
	}
	if allowed, reason := guard.CanViewRequest(actor, request); !allowed {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "reason": reason})
	}

	uploads, err := h.Store.ListUploadsByRequest(ctx, requestID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch uploads"})
	}
	if uploads == nil {
		uploads = []models.Upload{}
	}
	return c.JSON(http.StatusOK, uploads)
}
