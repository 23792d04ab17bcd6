package service

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	dom "github.com/M-Bohram/pydevops-workshop2-demo/internal/domain"
	"github.com/M-Bohram/pydevops-workshop2-demo/internal/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu     sync.Mutex
	todos  []dom.Todo
	nextID int64
	err    error
}

func (f *fakeRepo) Insert(_ context.Context, title string, description, fileName *string) (dom.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return dom.Todo{}, f.err
	}
	f.nextID++
	t := dom.Todo{
		ID:          f.nextID,
		Title:       title,
		Description: description,
		FileName:    fileName,
		CreatedAt:   time.Now().UTC(),
	}
	f.todos = append(f.todos, t)
	return t, nil
}

func (f *fakeRepo) List(_ context.Context) ([]dom.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	// newest first, id descending on ties, like the real store
	out := make([]dom.Todo, 0, len(f.todos))
	for i := len(f.todos) - 1; i >= 0; i-- {
		out = append(out, f.todos[i])
	}
	return out, nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.todos)
}

func newTestService(t *testing.T) (*TodoService, *fakeRepo, *upload.Store) {
	t.Helper()
	store, err := upload.New(t.TempDir())
	require.NoError(t, err)
	r := &fakeRepo{}
	return NewTodoService(r, store, nil), r, store
}

func TestCreate_TitleRequired(t *testing.T) {
	svc, r, _ := newTestService(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(context.Background(), title, nil, nil, "")
		assert.ErrorIs(t, err, ErrTitleRequired, "title %q", title)
	}
	assert.Equal(t, 0, r.count())
}

func TestCreate_WithoutFile(t *testing.T) {
	svc, _, _ := newTestService(t)

	desc := "milk, eggs"
	got, err := svc.Create(context.Background(), "Buy milk", &desc, nil, "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.Nil(t, got.FileName)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreate_WithFile(t *testing.T) {
	svc, _, store := newTestService(t)

	content := "pdf bytes here"
	got, err := svc.Create(context.Background(), "Report", nil, strings.NewReader(content), "notes.PDF")
	require.NoError(t, err)

	require.NotNil(t, got.FileName)
	assert.Regexp(t, `^[0-9a-f]{32}\.pdf$`, *got.FileName)

	f, err := store.Open(*got.FileName)
	require.NoError(t, err)
	defer f.Close()
	saved, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, content, string(saved))
}

func TestCreate_FileNamesAreUnique(t *testing.T) {
	svc, _, _ := newTestService(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		got, err := svc.Create(context.Background(), "t", nil, strings.NewReader("x"), "a.txt")
		require.NoError(t, err)
		require.NotNil(t, got.FileName)
		assert.False(t, seen[*got.FileName], "duplicate name %s", *got.FileName)
		seen[*got.FileName] = true
	}
}

func TestCreate_InsertFailureRemovesFile(t *testing.T) {
	svc, r, store := newTestService(t)
	r.err = errors.New("connection refused")

	_, err := svc.Create(context.Background(), "Report", nil, strings.NewReader("data"), "notes.pdf")
	require.Error(t, err)

	// the saved attachment must not be orphaned
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestList_EmptyAndOrder(t *testing.T) {
	svc, _, _ := newTestService(t)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Create(context.Background(), "first", nil, nil, "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "second", nil, nil, "")
	require.NoError(t, err)

	list, err = svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
	assert.Equal(t, "first", list[1].Title)
}

func TestNewStorageName_Extensions(t *testing.T) {
	tests := []struct {
		original string
		wantExt  string
	}{
		{"notes.PDF", "pdf"},
		{"photo.JPeG", "jpeg"},
		{"archive.tar.gz", "gz"},
		{".gitignore", "gitignore"},
		{"README", "bin"},
		{"trailing.", "bin"},
	}
	for _, tt := range tests {
		name := newStorageName(tt.original)
		assert.Regexp(t, `^[0-9a-f]{32}\.`+tt.wantExt+`$`, name, "original %q", tt.original)
	}
}
