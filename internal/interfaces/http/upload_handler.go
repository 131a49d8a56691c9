package http

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/upload"
)

// UploadHandler subida de imágenes de producto.
type UploadHandler struct {
	uc *upload.UseCase
}

// NewUploadHandler construye el handler.
func NewUploadHandler(uc *upload.UseCase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// Single godoc
// @Summary      Subir una imagen
// @Tags         upload
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen (máx. 10MB)"
// @Success      200   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/upload [post]
func (h *UploadHandler) Single(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return noFile(c, err)
	}
	f, closeFn, err := openUpload(fh)
	if err != nil {
		return writeError(c, err)
	}
	defer closeFn()

	stored, err := h.uc.Save(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UploadResponse{Message: "Archivo subido", URL: stored.URL, Filename: stored.Filename})
}

// Multiple godoc
// @Summary      Subir varias imágenes
// @Tags         upload
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Imágenes (máx. 10MB c/u)"
// @Success      200    {object}  dto.MultiUploadResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/upload/multiple [post]
func (h *UploadHandler) Multiple(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return noFile(c, err)
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return noFile(c, fasthttp.ErrMissingFile)
	}

	files := make([]upload.File, 0, len(headers))
	for _, fh := range headers {
		f, closeFn, err := openUpload(fh)
		if err != nil {
			return writeError(c, err)
		}
		defer closeFn()
		files = append(files, f)
	}

	stored, err := h.uc.SaveMany(c.UserContext(), files)
	if err != nil {
		return writeError(c, err)
	}
	urls := make([]string, 0, len(stored))
	for _, s := range stored {
		urls = append(urls, s.URL)
	}
	return c.JSON(dto.MultiUploadResponse{Message: "Archivos subidos", URLs: urls})
}

func openUpload(fh *multipart.FileHeader) (upload.File, func(), error) {
	src, err := fh.Open()
	if err != nil {
		return upload.File{}, func() {}, err
	}
	return upload.File{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Content:     src,
	}, func() { _ = src.Close() }, nil
}

func noFile(c *fiber.Ctx, err error) error {
	msg := "no se recibió archivo"
	if !errors.Is(err, fasthttp.ErrMissingFile) && !errors.Is(err, fasthttp.ErrNoMultipartForm) {
		msg = "formulario multipart inválido"
	}
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_FILE", Message: msg})
}
