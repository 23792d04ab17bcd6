package handlers

import (
	"net/http"
	"os"

	"github.com/M-Bohram/pydevops-workshop2-demo/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// FileHandler serves uploaded attachments from the upload store.
type FileHandler struct {
	files *upload.Store
	log   zerolog.Logger
}

func NewFileHandler(files *upload.Store, log zerolog.Logger) *FileHandler {
	return &FileHandler{files: files, log: log}
}

// Serve godoc
// @Summary      Download an uploaded attachment
// @Tags         uploads
// @Produce      octet-stream
// @Param        filename  path  string  true  "Stored file name"
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]string
// @Router       /uploads/{filename} [get]
func (h *FileHandler) Serve(c *gin.Context) {
	name := c.Param("filename")
	path, err := h.files.Path(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.log.Debug().Str("file", name).Msg("serving file")
	// Content type is inferred from the extension by http.ServeFile.
	c.File(path)
}
