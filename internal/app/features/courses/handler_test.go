package courses_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/app/features/courses"
	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/coursehub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	_ courses.Repository = (*coursestore.Store)(nil)
	_ courses.Repository = (*coursestore.Memory)(nil)
)

const base = "/api/v1/courses"

func newRouter(repo courses.Repository) http.Handler {
	h := courses.NewHandler(repo, 0, zap.NewNop())
	r := chi.NewRouter()
	r.Mount(base, courses.Routes(h))
	return r
}

func do(t *testing.T, router http.Handler, req *http.Request) *testutil.ResponseRecorder {
	t.Helper()
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// courseJSON mirrors the wire shape of a course.
type courseJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func createCourse(t *testing.T, router http.Handler, body any) courseJSON {
	t.Helper()
	rec := do(t, router, testutil.NewJSONRequest(t, http.MethodPost, base, body))
	rec.AssertStatus(t, http.StatusCreated)
	var c courseJSON
	rec.DecodeJSON(t, &c)
	return c
}

func TestCreate_Scenario(t *testing.T) {
	router := newRouter(coursestore.NewMemory())

	rec := do(t, router, testutil.NewJSONRequest(t, http.MethodPost, base, `{"title":"Intro to Systems"}`))
	rec.AssertStatus(t, http.StatusCreated)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q", ct)
	}
	rec.AssertContains(t, `"description":null`)

	var c courseJSON
	rec.DecodeJSON(t, &c)
	if c.ID == "" {
		t.Error("expected generated id")
	}
	if c.Title != "Intro to Systems" {
		t.Errorf("title: got %q", c.Title)
	}
	if c.CreatedAt.IsZero() || !c.CreatedAt.Equal(c.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt, got %v / %v", c.CreatedAt, c.UpdatedAt)
	}
	if loc := rec.Header().Get("Location"); loc != base+"/"+c.ID {
		t.Errorf("Location: got %q", loc)
	}
}

func TestCreate_MissingTitle(t *testing.T) {
	router := newRouter(coursestore.NewMemory())

	for _, body := range []string{`{}`, ``, `{"title":""}`, `{"title":null}`} {
		rec := do(t, router, testutil.NewJSONRequest(t, http.MethodPost, base, body))
		rec.AssertStatus(t, http.StatusBadRequest)
		if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"title is required"}` {
			t.Errorf("body for %q: got %s", body, got)
		}
	}
}

func TestCreate_BadBodies(t *testing.T) {
	router := newRouter(coursestore.NewMemory())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed", `{"title":`, "malformed JSON body"},
		{"wrong type", `{"title":5}`, "title must be a string"},
		{"unknown field", `{"title":"x","id":"abc"}`, `unknown field \"id\"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, testutil.NewJSONRequest(t, http.MethodPost, base, tt.body))
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertContains(t, tt.want)
		})
	}
}

func TestGet_Found(t *testing.T) {
	router := newRouter(coursestore.NewMemory())
	created := createCourse(t, router, map[string]string{"title": "Go", "description": "the language"})

	rec := do(t, router, httptest.NewRequest(http.MethodGet, base+"/"+created.ID, nil))
	rec.AssertStatus(t, http.StatusOK)

	var got courseJSON
	rec.DecodeJSON(t, &got)
	if got.ID != created.ID || got.Title != "Go" {
		t.Errorf("unexpected course: %+v", got)
	}
	if got.Description == nil || *got.Description != "the language" {
		t.Errorf("description: got %v", got.Description)
	}
}

func TestGet_NotFoundScenario(t *testing.T) {
	router := newRouter(coursestore.NewMemory())

	rec := do(t, router, httptest.NewRequest(http.MethodGet, base+"/doesnotexist", nil))
	rec.AssertStatus(t, http.StatusNotFound)
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"not found"}` {
		t.Errorf("body: got %s", got)
	}
}

func TestGet_MalformedID(t *testing.T) {
	router := newRouter(coursestore.NewMemory())

	rec := do(t, router, httptest.NewRequest(http.MethodGet, base+"/bad%20id", nil))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "invalid id")
}

func TestMissingIDs_AllNotFound(t *testing.T) {
	router := newRouter(coursestore.NewMemory())
	id := primitive.NewObjectID().Hex()

	reqs := []*http.Request{
		httptest.NewRequest(http.MethodGet, base+"/"+id, nil),
		testutil.NewJSONRequest(t, http.MethodPut, base+"/"+id, `{"title":"X"}`),
		httptest.NewRequest(http.MethodDelete, base+"/"+id, nil),
	}
	for _, req := range reqs {
		rec := do(t, router, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s: got %d, want 404", req.Method, req.URL.Path, rec.Code)
		}
	}
}

func TestUpdate_ChangesOnlyTitle(t *testing.T) {
	router := newRouter(coursestore.NewMemory())
	created := createCourse(t, router, map[string]string{"title": "Old", "description": "stays"})

	rec := do(t, router, testutil.NewJSONRequest(t, http.MethodPut, base+"/"+created.ID, `{"title":"X"}`))
	rec.AssertStatus(t, http.StatusOK)

	var got courseJSON
	rec.DecodeJSON(t, &got)
	if got.Title != "X" {
		t.Errorf("title: got %q", got.Title)
	}
	if got.Description == nil || *got.Description != "stays" {
		t.Errorf("description changed: %v", got.Description)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt changed: %v -> %v", created.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updatedAt did not increase: %v -> %v", created.UpdatedAt, got.UpdatedAt)
	}
}

func TestUpdate_EmptyFieldSet(t *testing.T) {
	router := newRouter(coursestore.NewMemory())
	created := createCourse(t, router, map[string]string{"title": "T"})

	rec := do(t, router, testutil.NewJSONRequest(t, http.MethodPut, base+"/"+created.ID, `{}`))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, "no fields to update")
}

func TestDelete_ThenGet(t *testing.T) {
	router := newRouter(coursestore.NewMemory())
	created := createCourse(t, router, map[string]string{"title": "Gone"})

	rec := do(t, router, httptest.NewRequest(http.MethodDelete, base+"/"+created.ID, nil))
	rec.AssertStatus(t, http.StatusNoContent)
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}

	rec = do(t, router, httptest.NewRequest(http.MethodGet, base+"/"+created.ID, nil))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestList_ReturnsAllWithUniqueIDs(t *testing.T) {
	router := newRouter(coursestore.NewMemory())

	rec := do(t, router, httptest.NewRequest(http.MethodGet, base, nil))
	rec.AssertStatus(t, http.StatusOK)
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list body: got %s, want []", got)
	}

	const n = 4
	for i := 0; i < n; i++ {
		createCourse(t, router, map[string]string{"title": "Course"})
	}

	rec = do(t, router, httptest.NewRequest(http.MethodGet, base, nil))
	rec.AssertStatus(t, http.StatusOK)

	var list []courseJSON
	rec.DecodeJSON(t, &list)
	if len(list) != n {
		t.Fatalf("list length: got %d, want %d", len(list), n)
	}
	seen := map[string]bool{}
	for _, c := range list {
		if seen[c.ID] {
			t.Errorf("duplicate id %s", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestUnknownRoute_JSON404(t *testing.T) {
	router := newRouter(coursestore.NewMemory())

	rec := do(t, router, httptest.NewRequest(http.MethodGet, base+"/a/b/c", nil))
	rec.AssertStatus(t, http.StatusNotFound)
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"not found"}` {
		t.Errorf("body: got %s", got)
	}
}

func TestMethodNotAllowed_JSON405(t *testing.T) {
	router := newRouter(coursestore.NewMemory())

	rec := do(t, router, httptest.NewRequest(http.MethodPatch, base, nil))
	rec.AssertStatus(t, http.StatusMethodNotAllowed)
	rec.AssertContains(t, "method not allowed")
}

// failingRepo fails every call with the configured error.
type failingRepo struct{ err error }

func (f failingRepo) List(context.Context) ([]models.Course, error) { return nil, f.err }
func (f failingRepo) GetByID(context.Context, string) (models.Course, error) {
	return models.Course{}, f.err
}
func (f failingRepo) Create(context.Context, coursestore.CreateInput) (models.Course, error) {
	return models.Course{}, f.err
}
func (f failingRepo) Update(context.Context, string, coursestore.UpdateInput) (models.Course, error) {
	return models.Course{}, f.err
}
func (f failingRepo) Delete(context.Context, string) error { return f.err }

func TestStoreFailures_GenericJSON500(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"store error", apperr.Store("list courses", errors.New("dial tcp 10.0.0.5:27017: refused"))},
		{"not ready", apperr.ErrNotReady},
		{"unexpected", errors.New("something odd")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(failingRepo{err: tt.err})

			rec := do(t, router, httptest.NewRequest(http.MethodGet, base, nil))
			rec.AssertStatus(t, http.StatusInternalServerError)
			if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"internal server error"}` {
				t.Errorf("body: got %s", got)
			}
		})
	}
}
