package handler_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"

	"github.com/sakif/exercise-tracker/internal/handler"
	"github.com/sakif/exercise-tracker/internal/repository/sqlite"
	"github.com/sakif/exercise-tracker/internal/service"
)

// newTestAPI wires the full stack — in-memory SQLite, services, handlers,
// chi routes — exactly as internal/server does, minus the listener. Tests
// drive it through router.ServeHTTP so path parameters resolve for real.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	userHandler := handler.NewUserHandler(service.NewUserService(db, logger), logger)
	exerciseHandler := handler.NewExerciseHandler(service.NewExerciseService(db, db, logger), logger)
	logHandler := handler.NewLogHandler(service.NewLogService(db, db, logger), logger)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Get("/users", userHandler.HandleList)
		r.Post("/users", userHandler.HandleCreate)
		r.Post("/users/{id}/exercises", exerciseHandler.HandleCreate)
		r.Get("/users/{id}/logs", logHandler.HandleLogs)
		r.Get("/exercises", exerciseHandler.HandleListAll)
	})
	return router
}

func postForm(t *testing.T, api http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, api http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)
	return rr
}

// createUser creates a user through the API and returns its id.
func createUser(t *testing.T, api http.Handler, username string) string {
	t.Helper()
	rr := postForm(t, api, "/api/users", url.Values{"username": {username}})

	var body struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode create-user response: %v", err)
	}
	return body.ID
}

func TestCreateUser(t *testing.T) {
	api := newTestAPI(t)

	rr := postForm(t, api, "/api/users", url.Values{"username": {"bob"}})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "bob", body["username"])
	assert.NotEmpty(t, body["_id"])
}

func TestCreateUser_Duplicate(t *testing.T) {
	api := newTestAPI(t)
	createUser(t, api, "bob")

	rr := postForm(t, api, "/api/users", url.Values{"username": {"bob"}})

	// Errors come back as plain text with status 200 — always.
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Username bob already exists.", rr.Body.String())
}

func TestCreateUser_MissingUsername(t *testing.T) {
	api := newTestAPI(t)

	rr := postForm(t, api, "/api/users", url.Values{})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Path `username` is required.", rr.Body.String())
}

func TestCreateUser_JSONBody(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":"carol"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	api.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "carol", body["username"])
}

func TestListUsers(t *testing.T) {
	api := newTestAPI(t)
	createUser(t, api, "alice")
	createUser(t, api, "bob")

	rr := get(t, api, "/api/users")

	assert.Equal(t, http.StatusOK, rr.Code)

	var users []map[string]string
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&users))
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[0]["username"])
	assert.NotEmpty(t, users[0]["_id"])
}

func TestCreateExercise(t *testing.T) {
	api := newTestAPI(t)
	id := createUser(t, api, "alice")

	rr := postForm(t, api, "/api/users/"+id+"/exercises", url.Values{
		"description": {"running"},
		"duration":    {"30"},
		"date":        {"2024-02-01"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		ID          string `json:"_id"`
		Username    string `json:"username"`
		Date        string `json:"date"`
		Duration    int    `json:"duration"`
		Description string `json:"description"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	// _id on this response is the user's id, not the exercise's.
	assert.Equal(t, id, body.ID)
	assert.Equal(t, "alice", body.Username)
	assert.Equal(t, "Thu Feb 01 2024", body.Date)
	assert.Equal(t, 30, body.Duration)
	assert.Equal(t, "running", body.Description)
}

func TestCreateExercise_MissingDuration(t *testing.T) {
	api := newTestAPI(t)
	id := createUser(t, api, "alice")

	rr := postForm(t, api, "/api/users/"+id+"/exercises", url.Values{
		"description": {"running"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Path `duration` is required.", rr.Body.String())

	// Nothing was stored.
	rr = get(t, api, "/api/exercises")
	var exercises []map[string]any
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&exercises))
	assert.Len(t, exercises, 0)
}

func TestCreateExercise_UnknownUser(t *testing.T) {
	api := newTestAPI(t)
	// A well-formed id that matches no stored user.
	unknown := xid.New().String()

	rr := postForm(t, api, "/api/users/"+unknown+"/exercises", url.Values{
		"description": {"running"},
		"duration":    {"30"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Unknown userID", rr.Body.String())
}

func TestCreateExercise_BodyIDOverridesPath(t *testing.T) {
	api := newTestAPI(t)
	alice := createUser(t, api, "alice")
	bob := createUser(t, api, "bob")

	// The :_id body field wins over the path id.
	rr := postForm(t, api, "/api/users/"+alice+"/exercises", url.Values{
		":_id":        {bob},
		"description": {"cycling"},
		"duration":    {"15"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, bob, body["_id"])
	assert.Equal(t, "bob", body["username"])
}

func TestLogs_Scenario(t *testing.T) {
	api := newTestAPI(t)
	id := createUser(t, api, "alice")

	for _, d := range []string{"2024-01-01", "2024-02-01", "2024-03-01"} {
		rr := postForm(t, api, "/api/users/"+id+"/exercises", url.Values{
			"description": {"running"},
			"duration":    {"10"},
			"date":        {d},
		})
		assert.Equal(t, http.StatusOK, rr.Code)
	}

	rr := get(t, api, "/api/users/"+id+"/logs?from=2024-01-15&to=2024-02-15")
	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
		From     string `json:"from"`
		To       string `json:"to"`
		Count    int    `json:"count"`
		Log      []struct {
			Description string `json:"description"`
			Duration    int    `json:"duration"`
			Date        string `json:"date"`
		} `json:"log"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, id, body.ID)
	assert.Equal(t, "alice", body.Username)
	assert.Equal(t, "Mon Jan 15 2024", body.From)
	assert.Equal(t, "Thu Feb 15 2024", body.To)
	assert.Equal(t, 1, body.Count)
	if assert.Len(t, body.Log, 1) {
		assert.Equal(t, "Thu Feb 01 2024", body.Log[0].Date)
		assert.Equal(t, 10, body.Log[0].Duration)
	}
}

func TestLogs_NoBoundsOmitsFromTo(t *testing.T) {
	api := newTestAPI(t)
	id := createUser(t, api, "alice")

	rr := get(t, api, "/api/users/"+id+"/logs")
	assert.Equal(t, http.StatusOK, rr.Code)

	var raw map[string]any
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	assert.NotContains(t, raw, "from")
	assert.NotContains(t, raw, "to")
	assert.Equal(t, float64(0), raw["count"])
	assert.Equal(t, []any{}, raw["log"])
}

func TestLogs_Limit(t *testing.T) {
	api := newTestAPI(t)
	id := createUser(t, api, "alice")

	for _, d := range []string{"2024-01-01", "2024-02-01", "2024-03-01"} {
		postForm(t, api, "/api/users/"+id+"/exercises", url.Values{
			"description": {"running"},
			"duration":    {"10"},
			"date":        {d},
		})
	}

	rr := get(t, api, "/api/users/"+id+"/logs?limit=2")

	var body struct {
		Count int              `json:"count"`
		Log   []map[string]any `json:"log"`
	}
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	assert.Len(t, body.Log, 2)
}

func TestLogs_ErrorMessages(t *testing.T) {
	api := newTestAPI(t)
	id := createUser(t, api, "alice")

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "invalid from",
			path: "/api/users/" + id + "/logs?from=garbage",
			want: "Invalid Date Entered",
		},
		{
			name: "invalid to",
			path: "/api/users/" + id + "/logs?to=2024-99-99",
			want: "Invalid Date Entered",
		},
		{
			name: "invalid limit",
			path: "/api/users/" + id + "/logs?limit=many",
			want: "Invalid Limit Entered",
		},
		{
			name: "malformed user id",
			path: "/api/users/!!bad!!/logs",
			want: "Invalid userID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := get(t, api, tt.path)
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.want, rr.Body.String())
		})
	}
}

func TestListExercises(t *testing.T) {
	api := newTestAPI(t)
	alice := createUser(t, api, "alice")
	bob := createUser(t, api, "bob")

	postForm(t, api, "/api/users/"+alice+"/exercises", url.Values{
		"description": {"running"}, "duration": {"10"}, "date": {"2024-01-01"},
	})
	postForm(t, api, "/api/users/"+bob+"/exercises", url.Values{
		"description": {"cycling"}, "duration": {"20"}, "date": {"2024-01-02"},
	})

	rr := get(t, api, "/api/exercises")
	assert.Equal(t, http.StatusOK, rr.Code)

	var exercises []map[string]any
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&exercises))
	assert.Len(t, exercises, 2)
	assert.Equal(t, "running", exercises[0]["description"])
	assert.Equal(t, "alice", exercises[0]["username"])
}
