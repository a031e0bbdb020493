package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "github.com/dtakkiy/todo-api/internal/domain"

	"github.com/jackc/pgx/v5"
)

// memRepo is a minimal in-memory TodoRepo for service tests.
type memRepo struct {
	nextID int64
	tick   int64
	todos  map[int64]dom.Todo
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, todos: make(map[int64]dom.Todo)}
}

func (m *memRepo) now() time.Time {
	m.tick++
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.tick) * time.Second)
}

func (m *memRepo) List(_ context.Context, completed *bool) ([]dom.Todo, error) {
	var list []dom.Todo
	for _, t := range m.todos {
		if completed == nil || t.Completed == *completed {
			list = append(list, t)
		}
	}
	return list, nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (dom.Todo, error) {
	t, ok := m.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return t, nil
}

func (m *memRepo) Create(_ context.Context, title string, description *string) (dom.Todo, error) {
	now := m.now()
	t := dom.Todo{ID: m.nextID, Title: title, Description: description, CreatedAt: now, UpdatedAt: now}
	m.nextID++
	m.todos[t.ID] = t
	return t, nil
}

func (m *memRepo) Update(_ context.Context, id int64, patch dom.Todo) (dom.Todo, error) {
	return m.write(id, patch.Title, patch.Description, patch.Completed)
}

func (m *memRepo) Replace(_ context.Context, id int64, title string, description *string, completed bool) (dom.Todo, error) {
	return m.write(id, title, description, completed)
}

func (m *memRepo) write(id int64, title string, description *string, completed bool) (dom.Todo, error) {
	t, ok := m.todos[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	t.Title = title
	t.Description = description
	t.Completed = completed
	t.UpdatedAt = m.now()
	m.todos[id] = t
	return t, nil
}

func (m *memRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.todos[id]; !ok {
		return false, nil
	}
	delete(m.todos, id)
	return true, nil
}

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }

func TestUpdate_MergesOnlySuppliedFields(t *testing.T) {
	repo := newMemRepo()
	svc := NewTodoService(repo, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "original", strptr("desc"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Update(ctx, created.ID, TodoPatch{Completed: boolptr(true)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "original" {
		t.Errorf("title changed unexpectedly: %q", got.Title)
	}
	if got.Description == nil || *got.Description != "desc" {
		t.Errorf("description changed unexpectedly: %v", got.Description)
	}
	if !got.Completed {
		t.Errorf("completed should be true")
	}
	if !got.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updated_at should advance")
	}
}

func TestUpdate_DescriptionTriState(t *testing.T) {
	repo := newMemRepo()
	svc := NewTodoService(repo, nil)
	ctx := context.Background()

	created, _ := svc.Create(ctx, "todo", strptr("desc"))

	// not supplied: kept
	got, err := svc.Update(ctx, created.ID, TodoPatch{Title: strptr("renamed")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Description == nil {
		t.Fatalf("description should be kept when not supplied")
	}

	// supplied as null: cleared
	got, err = svc.Update(ctx, created.ID, TodoPatch{DescriptionSet: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Description != nil {
		t.Errorf("description should be cleared, got %q", *got.Description)
	}

	// supplied with value: set
	got, err = svc.Update(ctx, created.ID, TodoPatch{Description: strptr("new"), DescriptionSet: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Description == nil || *got.Description != "new" {
		t.Errorf("description should be 'new', got %v", got.Description)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewTodoService(newMemRepo(), nil)

	_, err := svc.Update(context.Background(), 99, TodoPatch{Completed: boolptr(true)})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewTodoService(newMemRepo(), nil)

	_, err := svc.GetByID(context.Background(), 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplace_OverwritesAndPreservesCreatedAt(t *testing.T) {
	repo := newMemRepo()
	svc := NewTodoService(repo, nil)
	ctx := context.Background()

	created, _ := svc.Create(ctx, "todo", strptr("desc"))

	got, err := svc.Replace(ctx, created.ID, "replaced", nil, false)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got.Title != "replaced" || got.Description != nil || got.Completed {
		t.Errorf("replace did not apply defaults: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("created_at must be preserved")
	}
}

func TestReplace_NotFound(t *testing.T) {
	svc := NewTodoService(newMemRepo(), nil)

	_, err := svc.Replace(context.Background(), 42, "x", nil, false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMemRepo()
	svc := NewTodoService(repo, nil)
	ctx := context.Background()

	created, _ := svc.Create(ctx, "todo", nil)

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}
