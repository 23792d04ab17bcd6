package handlers

import (
	"errors"
	"io"
	"net/http"

	dom "github.com/M-Bohram/pydevops-workshop2-demo/internal/domain"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/dto"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type TodoHandler struct {
	svc *service.TodoService
	log zerolog.Logger
}

func NewTodoHandler(svc *service.TodoService, log zerolog.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, log: log}
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       multipart/form-data
// @Produce      json
// @Param        title        formData  string  true   "Title"
// @Param        description  formData  string  false  "Description"
// @Param        file         formData  file    false  "Attachment"
// @Success      201  {object}  dto.TodoResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	title := c.PostForm("title")

	var description *string
	if v, ok := c.GetPostForm("description"); ok {
		description = &v
	}

	var (
		src          io.Reader
		originalName string
	)
	header, err := c.FormFile("file")
	if err == nil && header.Filename != "" {
		f, err := header.Open()
		if err != nil {
			h.log.Error().Err(err).Msg("open uploaded file")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		defer f.Close()
		src = f
		originalName = header.Filename
	}

	t, err := h.svc.Create(c.Request.Context(), title, description, src, originalName)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			h.log.Warn().Msg("attempted todo creation without title")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title required"})
			return
		}
		h.log.Error().Err(err).Msg("create todo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	h.log.Info().Int64("id", t.ID).Msg("created todo")
	c.JSON(http.StatusCreated, todoToResponse(t))
}

// List godoc
// @Summary      List all todos, newest first
// @Tags         todos
// @Produce      json
// @Success      200  {array}   dto.TodoResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list todos")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	h.log.Info().Int("count", len(list)).Msg("returned todos")
	c.JSON(http.StatusOK, todosToResponses(list))
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	resp := dto.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		FileName:    t.FileName,
		CreatedAt:   t.CreatedAt,
	}
	if t.FileName != nil {
		u := service.FileURL(*t.FileName)
		resp.FileURL = &u
	}
	return resp
}

func todosToResponses(list []dom.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}
