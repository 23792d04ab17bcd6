package repo

import (
	"context"

	dom "github.com/M-Bohram/pydevops-workshop2-demo/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TodoRepo interface {
	Insert(ctx context.Context, title string, description, fileName *string) (dom.Todo, error)
	List(ctx context.Context) ([]dom.Todo, error)
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Insert(ctx context.Context, title string, description, fileName *string) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, description, file_name)
		VALUES ($1, $2, $3)
		RETURNING id, title, description, file_name, created_at`
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, title, description, fileName).Scan(
		&out.ID, &out.Title, &out.Description, &out.FileName, &out.CreatedAt,
	)
	return out, err
}

// List returns all todos, newest first. Ties on created_at break by id
// descending so the order is stable.
func (r *PGTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	query := `
		SELECT id, title, description, file_name, created_at
		FROM todos ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.FileName, &t.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
