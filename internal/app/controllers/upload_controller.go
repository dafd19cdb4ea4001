package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/escolinha/backend/internal/app/models/dto"
	"github.com/escolinha/backend/internal/pkg/filestorage"
	"github.com/escolinha/backend/internal/pkg/logger"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// UploadController handles multipart image uploads.
type UploadController struct {
	storage   filestorage.FileStorage
	maxSizeMB int64
	maxFiles  int
}

// NewUploadController creates a new UploadController.
func NewUploadController(storage filestorage.FileStorage, maxSizeMB int64, maxFiles int) *UploadController {
	return &UploadController{
		storage:   storage,
		maxSizeMB: maxSizeMB,
		maxFiles:  maxFiles,
	}
}

// UploadImages stores a batch of images and returns their URLs
// @Summary Upload images
// @Description Accepts jpeg/png/webp files under the configured size limit and returns the stored URLs.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "Image files"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /upload [post]
func (c *UploadController) UploadImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Formulário multipart inválido."))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Nenhum arquivo enviado."))
		return
	}
	if len(files) > c.maxFiles {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Número máximo de arquivos excedido."))
		return
	}

	maxBytes := c.maxSizeMB * 1024 * 1024
	for _, file := range files {
		contentType := strings.ToLower(file.Header.Get("Content-Type"))
		if !allowedImageTypes[contentType] {
			ctx.JSON(http.StatusBadRequest,
				dto.NewErrorResponse("Tipo de arquivo não suportado: "+file.Filename))
			return
		}
		if file.Size > maxBytes {
			ctx.JSON(http.StatusBadRequest,
				dto.NewErrorResponse("Arquivo excede o tamanho máximo: "+file.Filename))
			return
		}
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := c.storage.SaveFileWithPath(file, "imagens")
		if err != nil {
			logger.Error().Err(err).Str("filename", file.Filename).Msg("Failed to store upload")
			ctx.JSON(http.StatusInternalServerError,
				dto.NewErrorResponse("Erro ao salvar arquivo."))
			return
		}
		urls = append(urls, url)
	}

	ctx.JSON(http.StatusCreated, dto.UploadResponse{
		Message: "Upload realizado com sucesso.",
		URLs:    urls,
	})
}
