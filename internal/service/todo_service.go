package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/M-Bohram/pydevops-workshop2-demo/internal/cache"
	dom "github.com/M-Bohram/pydevops-workshop2-demo/internal/domain"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/repo"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/upload"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

var ErrTitleRequired = errors.New("title required")

// defaultExt is used when the original filename has no extension.
const defaultExt = "bin"

type TodoService struct {
	repo  repo.TodoRepo
	files *upload.Store
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, files *upload.Store, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, files: files, cache: c}
}

// Create validates the title, stores the attachment if one was sent, and
// inserts the record. The file is written before the insert; if the insert
// fails the file is removed again so no orphan stays behind.
func (s *TodoService) Create(ctx context.Context, title string, description *string, file io.Reader, originalName string) (dom.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Todo{}, ErrTitleRequired
	}

	var fileName *string
	if file != nil && originalName != "" {
		name := newStorageName(originalName)
		if err := s.files.Save(name, file); err != nil {
			return dom.Todo{}, fmt.Errorf("save attachment: %w", err)
		}
		fileName = &name
	}

	t, err := s.repo.Insert(ctx, title, description, fileName)
	if err != nil {
		if fileName != nil {
			_ = s.files.Remove(*fileName)
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// List returns all todos, newest first.
func (s *TodoService) List(ctx context.Context) ([]dom.Todo, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Todo), nil
	}
	return s.repo.List(ctx)
}

// FileURL returns the public URL for a stored attachment name.
func FileURL(fileName string) string {
	return "/uploads/" + fileName
}

// newStorageName builds "<32 hex chars>.<ext>" from a random UUID and the
// lowercased extension of the original filename. A filename without a dot
// gets the "bin" extension instead of leaking the whole name into the
// extension slot.
func newStorageName(originalName string) string {
	ext := defaultExt
	if i := strings.LastIndexByte(originalName, '.'); i >= 0 && i+1 < len(originalName) {
		ext = strings.ToLower(originalName[i+1:])
	}
	id := uuid.New()
	return hex.EncodeToString(id[:]) + "." + ext
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
