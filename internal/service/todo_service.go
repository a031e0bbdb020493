package service

import (
	"context"
	"errors"

	"github.com/dtakkiy/todo-api/internal/cache"
	dom "github.com/dtakkiy/todo-api/internal/domain"
	"github.com/dtakkiy/todo-api/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var ErrNotFound = errors.New("todo not found")

// TodoPatch carries the fields supplied in a partial update. A nil pointer
// means the field was absent from the request. DescriptionSet distinguishes
// "clear the description" (true with nil Description) from "leave it alone".
type TodoPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Completed      *bool
}

type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

func (s *TodoService) Create(ctx context.Context, title string, description *string) (dom.Todo, error) {
	t, err := s.repo.Create(ctx, title, description)
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) List(ctx context.Context, completed *bool) ([]dom.Todo, error) {
	if s.cache != nil {
		key := cache.ListKey(completed)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, completed); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, completed)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, completed, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Todo), nil
	}
	return s.repo.List(ctx, completed)
}

func (s *TodoService) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	if s.cache != nil {
		if t, err := s.cache.GetItem(ctx, id); err == nil && t != nil {
			return *t, nil
		}
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	if s.cache != nil {
		_ = s.cache.SetItem(ctx, t)
	}
	return t, nil
}

// Update merges the patch onto the current row state and writes the result.
// Fields absent from the patch keep their prior value; updated_at is always
// refreshed by the repository.
func (s *TodoService) Update(ctx context.Context, id int64, patch TodoPatch) (dom.Todo, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	merged := existing
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.DescriptionSet {
		merged.Description = patch.Description
	}
	if patch.Completed != nil {
		merged.Completed = *patch.Completed
	}
	t, err := s.repo.Update(ctx, id, merged)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

// Replace overwrites every mutable field. The caller passes the request
// defaults (nil description, false completed) for omitted fields.
func (s *TodoService) Replace(ctx context.Context, id int64, title string, description *string, completed bool) (dom.Todo, error) {
	t, err := s.repo.Replace(ctx, id, title, description, completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx)
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
