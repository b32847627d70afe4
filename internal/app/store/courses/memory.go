package coursestore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process course store with the same semantics as Store.
// Handler tests and local runs without MongoDB use it.
type Memory struct {
	mu      sync.RWMutex
	courses map[primitive.ObjectID]models.Course

	now func() time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		courses: make(map[primitive.ObjectID]models.Course),
		now:     time.Now,
	}
}

func (m *Memory) stamp() time.Time {
	return m.now().UTC().Truncate(time.Millisecond)
}

// List returns every course, oldest first.
func (m *Memory) List(ctx context.Context) ([]models.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, cloneCourse(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.Hex() < out[j].ID.Hex()
	})
	return out, nil
}

// GetByID returns a copy of the course with id.
func (m *Memory) GetByID(ctx context.Context, id string) (models.Course, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.Course{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.courses[oid]
	if !ok {
		return models.Course{}, apperr.NotFound()
	}
	return cloneCourse(c), nil
}

// Create stores a new course with equal created and updated times.
func (m *Memory) Create(ctx context.Context, in CreateInput) (models.Course, error) {
	in, err := in.normalize()
	if err != nil {
		return models.Course{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.stamp()
	c := models.Course{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.courses[c.ID] = c
	return cloneCourse(c), nil
}

// Update applies a partial update. UpdatedAt always moves forward, even
// when the clock has not.
func (m *Memory) Update(ctx context.Context, id string, in UpdateInput) (models.Course, error) {
	oid, err := ParseID(id)
	if err != nil {
		return models.Course{}, err
	}
	in, err = in.normalize()
	if err != nil {
		return models.Course{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.courses[oid]
	if !ok {
		return models.Course{}, apperr.NotFound()
	}
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		if *in.Description == "" {
			c.Description = nil
		} else {
			d := *in.Description
			c.Description = &d
		}
	}
	next := m.stamp()
	if floor := c.UpdatedAt.Add(time.Millisecond); next.Before(floor) {
		next = floor
	}
	c.UpdatedAt = next
	m.courses[oid] = c
	return cloneCourse(c), nil
}

// Delete removes a course permanently.
func (m *Memory) Delete(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.courses[oid]; !ok {
		return apperr.NotFound()
	}
	delete(m.courses, oid)
	return nil
}
