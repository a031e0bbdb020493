package repo

import (
	"context"

	dom "github.com/dtakkiy/todo-api/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TodoRepo provides todo persistence. Missing rows surface as pgx.ErrNoRows;
// the service layer translates that into its own not-found error.
type TodoRepo interface {
	List(ctx context.Context, completed *bool) ([]dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	Create(ctx context.Context, title string, description *string) (dom.Todo, error)
	Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error)
	Replace(ctx context.Context, id int64, title string, description *string, completed bool) (dom.Todo, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// PGTodoRepo implements TodoRepo with Postgres.
type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

const todoColumns = `id, title, description, completed, created_at, updated_at`

func scanTodo(row pgx.Row) (dom.Todo, error) {
	var t dom.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// List returns all todos newest-created-first, optionally restricted to a
// completion state. No matching rows is not an error: the slice is just empty.
func (r *PGTodoRepo) List(ctx context.Context, completed *bool) ([]dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos ORDER BY created_at DESC`
	args := []any{}
	if completed != nil {
		query = `SELECT ` + todoColumns + ` FROM todos WHERE completed = $1 ORDER BY created_at DESC`
		args = append(args, *completed)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	return scanTodo(r.db.QueryRow(ctx, query, id))
}

func (r *PGTodoRepo) Create(ctx context.Context, title string, description *string) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, description)
		VALUES ($1, $2)
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, title, description))
}

// Update writes the merged row state produced by the service layer.
// updated_at is always refreshed, even for an empty patch.
func (r *PGTodoRepo) Update(ctx context.Context, id int64, patch dom.Todo) (dom.Todo, error) {
	return r.write(ctx, id, patch.Title, patch.Description, patch.Completed)
}

// Replace overwrites every mutable field; id and created_at are untouched.
func (r *PGTodoRepo) Replace(ctx context.Context, id int64, title string, description *string, completed bool) (dom.Todo, error) {
	return r.write(ctx, id, title, description, completed)
}

func (r *PGTodoRepo) write(ctx context.Context, id int64, title string, description *string, completed bool) (dom.Todo, error) {
	query := `
		UPDATE todos SET title = $2, description = $3, completed = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + todoColumns
	return scanTodo(r.db.QueryRow(ctx, query, id, title, description, completed))
}

// Delete removes the row and reports whether one actually existed, so the
// handler can distinguish 204 from 404.
func (r *PGTodoRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
