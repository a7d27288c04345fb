package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velmart/storefront/internal/logging"
	"github.com/velmart/storefront/internal/upload"
)

const maxMultipleFiles = 10

type UploadHandler struct {
	Store *upload.Store
}

func (h *UploadHandler) Single(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.single")

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file uploaded")
	}

	url, err := h.Store.Save(file)
	if err != nil {
		l.Warn("upload_failed", "filename", file.Filename, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	l.Info("upload_success", "url", url)
	return c.JSON(http.StatusOK, echo.Map{
		"url":          url,
		"originalName": file.Filename,
		"size":         file.Size,
	})
}

func (h *UploadHandler) Multiple(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "upload.multiple")

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no files uploaded")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "no files uploaded")
	}
	if len(files) > maxMultipleFiles {
		return echo.NewHTTPError(http.StatusBadRequest, "too many files")
	}

	type uploaded struct {
		URL          string `json:"url"`
		OriginalName string `json:"originalName"`
		Size         int64  `json:"size"`
	}
	out := make([]uploaded, 0, len(files))
	for _, file := range files {
		url, err := h.Store.Save(file)
		if err != nil {
			l.Warn("upload_failed", "filename", file.Filename, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		out = append(out, uploaded{URL: url, OriginalName: file.Filename, Size: file.Size})
	}

	l.Info("upload_success", "count", len(out))
	return c.JSON(http.StatusOK, echo.Map{"files": out})
}
