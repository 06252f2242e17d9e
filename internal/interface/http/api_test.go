package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bouyesaturnin/linkvault-app/internal/application"
	"github.com/bouyesaturnin/linkvault-app/internal/infrastructure/memory"
	handlers "github.com/bouyesaturnin/linkvault-app/internal/interface/http"
	"github.com/bouyesaturnin/linkvault-app/internal/router"
	"github.com/bouyesaturnin/linkvault-app/internal/router/modules"
	"github.com/bouyesaturnin/linkvault-app/pkg/helpers"
	"github.com/bouyesaturnin/linkvault-app/pkg/validation"
)

var initOnce sync.Once

func newTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	initOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Init()
	})

	store := memory.NewStore()
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	authSvc := application.NewAuthService(store.Users(), jwt, logger)
	todoSvc := application.NewTodoService(store.Todos(), store.Categories(), logger, nil, "")
	categorySvc := application.NewCategoryService(store.Categories(), nil, logger)

	engine := gin.New()
	reg := router.NewRegistry(engine)
	reg.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger, "localhost", false), jwt))
	reg.Add(modules.NewTodoModule(handlers.NewTodoHandler(todoSvc, logger), jwt))
	reg.Add(modules.NewCategoryModule(handlers.NewCategoryHandler(categorySvc, logger), jwt))
	reg.RegisterAll()
	return engine
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func do(t *testing.T, engine *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope from %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func register(t *testing.T, engine *gin.Engine, username string) {
	t.Helper()
	rec, _ := do(t, engine, http.MethodPost, "/api/register/", "", gin.H{
		"username": username, "password": "password123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
}

func obtainToken(t *testing.T, engine *gin.Engine, username string) (access, refresh string) {
	t.Helper()
	rec, env := do(t, engine, http.MethodPost, "/api/token/", "", gin.H{
		"username": username, "password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("token %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	var data struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode token data: %v", err)
	}
	if data.Access == "" || data.Refresh == "" {
		t.Fatal("expected full token pair in body")
	}
	return data.Access, data.Refresh
}

func TestRegisterValidation(t *testing.T) {
	engine := newTestAPI(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing password", gin.H{"username": "alice"}},
		{"short password", gin.H{"username": "alice", "password": "short"}},
		{"bad email", gin.H{"username": "alice", "password": "password123", "email": "nope"}},
		{"bad username", gin.H{"username": "a!", "password": "password123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := do(t, engine, http.MethodPost, "/api/register/", "", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
			}
			if env.Success {
				t.Fatal("expected a failure envelope")
			}
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	engine := newTestAPI(t)
	register(t, engine, "alice")

	rec, _ := do(t, engine, http.MethodPost, "/api/register/", "", gin.H{
		"username": "alice", "password": "password123",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestTokenObtainAndProtectedAccess(t *testing.T) {
	engine := newTestAPI(t)
	register(t, engine, "alice")

	rec, _ := do(t, engine, http.MethodPost, "/api/token/", "", gin.H{
		"username": "alice", "password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad credentials: status %d", rec.Code)
	}
	rec, _ = do(t, engine, http.MethodPost, "/api/token/", "", gin.H{
		"username": "nosuchuser", "password": "password123",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: status %d", rec.Code)
	}

	access, _ := obtainToken(t, engine, "alice")

	rec, _ = do(t, engine, http.MethodGet, "/api/todos/", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status %d", rec.Code)
	}
	rec, _ = do(t, engine, http.MethodGet, "/api/todos/", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status %d", rec.Code)
	}
	rec, _ = do(t, engine, http.MethodGet, "/api/todos/", access, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestTokenRefreshEndpoint(t *testing.T) {
	engine := newTestAPI(t)
	register(t, engine, "alice")
	_, refresh := obtainToken(t, engine, "alice")

	rec, env := do(t, engine, http.MethodPost, "/api/token/refresh/", "", gin.H{"refresh": refresh})
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: status %d body %s", rec.Code, rec.Body.String())
	}
	var data struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode refresh data: %v", err)
	}

	rec, _ = do(t, engine, http.MethodGet, "/api/todos/", data.Access, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("refreshed access token rejected: status %d", rec.Code)
	}

	rec, _ = do(t, engine, http.MethodPost, "/api/token/refresh/", "", gin.H{"refresh": "garbage"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage refresh: status %d", rec.Code)
	}
	rec, _ = do(t, engine, http.MethodPost, "/api/token/refresh/", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing refresh: status %d", rec.Code)
	}
}

type todoDoc struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	CategoryID  *string `json:"category_id"`
}

type categoryDoc struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func TestOwnershipScenario(t *testing.T) {
	engine := newTestAPI(t)

	register(t, engine, "alice")
	register(t, engine, "bob")
	aliceTok, _ := obtainToken(t, engine, "alice")
	bobTok, _ := obtainToken(t, engine, "bob")

	// alice creates Category{Work, #ff0000}
	rec, env := do(t, engine, http.MethodPost, "/api/categories/", aliceTok, gin.H{
		"name": "Work", "color": "#ff0000",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: status %d body %s", rec.Code, rec.Body.String())
	}
	var work categoryDoc
	if err := json.Unmarshal(env.Data, &work); err != nil {
		t.Fatalf("decode category: %v", err)
	}
	if work.Color != "#ff0000" {
		t.Fatalf("expected #ff0000, got %q", work.Color)
	}

	// alice creates Todo{Ship spec, category: Work}
	rec, env = do(t, engine, http.MethodPost, "/api/todos/", aliceTok, gin.H{
		"title": "Ship release", "category_id": work.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create todo: status %d body %s", rec.Code, rec.Body.String())
	}
	var shipped todoDoc
	if err := json.Unmarshal(env.Data, &shipped); err != nil {
		t.Fatalf("decode todo: %v", err)
	}

	// bob probes alice's records: 404, never 403
	for _, path := range []string{
		"/api/categories/" + work.ID + "/",
		"/api/todos/" + shipped.ID + "/",
	} {
		rec, _ = do(t, engine, http.MethodGet, path, bobTok, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("bob GET %s: status %d", path, rec.Code)
		}
		rec, _ = do(t, engine, http.MethodDelete, path, bobTok, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("bob DELETE %s: status %d", path, rec.Code)
		}
	}
	rec, _ = do(t, engine, http.MethodPatch, "/api/todos/"+shipped.ID+"/", bobTok, gin.H{"title": "stolen"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("bob PATCH: status %d", rec.Code)
	}

	// alice lists exactly one todo with the category populated
	rec, env = do(t, engine, http.MethodGet, "/api/todos/", aliceTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}
	var todos []todoDoc
	if err := json.Unmarshal(env.Data, &todos); err != nil {
		t.Fatalf("decode todos: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}
	if todos[0].CategoryID == nil || *todos[0].CategoryID != work.ID {
		t.Fatalf("category not populated: %+v", todos[0])
	}

	// deleting the category clears the reference; the todo survives
	rec, _ = do(t, engine, http.MethodDelete, "/api/categories/"+work.ID+"/", aliceTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete category: status %d", rec.Code)
	}
	rec, env = do(t, engine, http.MethodGet, "/api/todos/"+shipped.ID+"/", aliceTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("todo must survive: status %d", rec.Code)
	}
	var after todoDoc
	if err := json.Unmarshal(env.Data, &after); err != nil {
		t.Fatalf("decode todo: %v", err)
	}
	if after.CategoryID != nil {
		t.Fatalf("category reference must be cleared, got %v", *after.CategoryID)
	}
}

func TestCreateIgnoresOwnerFields(t *testing.T) {
	engine := newTestAPI(t)
	register(t, engine, "alice")
	register(t, engine, "bob")
	aliceTok, _ := obtainToken(t, engine, "alice")
	bobTok, _ := obtainToken(t, engine, "bob")

	rec, env := do(t, engine, http.MethodPost, "/api/todos/", aliceTok, gin.H{
		"title": "mine",
		"user":  "someone-else",
		"owner": "someone-else",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", rec.Code, rec.Body.String())
	}
	var created todoDoc
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode todo: %v", err)
	}

	// The record belongs to alice, whatever the payload claimed.
	rec, _ = do(t, engine, http.MethodGet, "/api/todos/"+created.ID+"/", aliceTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner get: status %d", rec.Code)
	}
	rec, _ = do(t, engine, http.MethodGet, "/api/todos/"+created.ID+"/", bobTok, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("non-owner get: status %d", rec.Code)
	}
}

func TestPayloadValidation(t *testing.T) {
	engine := newTestAPI(t)
	register(t, engine, "alice")
	tok, _ := obtainToken(t, engine, "alice")

	cases := []struct {
		name string
		path string
		body gin.H
	}{
		{"todo missing title", "/api/todos/", gin.H{"description": "no title"}},
		{"todo bad category id", "/api/todos/", gin.H{"title": "x", "category_id": "not-a-uuid"}},
		{"todo unknown category", "/api/todos/", gin.H{"title": "x", "category_id": "99999999-9999-9999-9999-999999999999"}},
		{"category missing name", "/api/categories/", gin.H{"color": "#ff0000"}},
		{"category bad color", "/api/categories/", gin.H{"name": "Work", "color": "red"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := do(t, engine, http.MethodPost, tc.path, tok, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestMalformedIDIsNotFound(t *testing.T) {
	engine := newTestAPI(t)
	register(t, engine, "alice")
	tok, _ := obtainToken(t, engine, "alice")

	rec, _ := do(t, engine, http.MethodGet, "/api/todos/not-a-uuid/", tok, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
	rec, _ = do(t, engine, http.MethodDelete, "/api/categories/42/", tok, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestPartialUpdateOverHTTP(t *testing.T) {
	engine := newTestAPI(t)
	register(t, engine, "alice")
	tok, _ := obtainToken(t, engine, "alice")

	rec, env := do(t, engine, http.MethodPost, "/api/todos/", tok, gin.H{
		"title": "draft", "description": "keep me",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d", rec.Code)
	}
	var created todoDoc
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec, env = do(t, engine, http.MethodPatch, "/api/todos/"+created.ID+"/", tok, gin.H{"completed": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: status %d body %s", rec.Code, rec.Body.String())
	}
	var patched todoDoc
	if err := json.Unmarshal(env.Data, &patched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !patched.Completed {
		t.Fatal("completed not applied")
	}
	if patched.Title != "draft" || patched.Description != "keep me" {
		t.Fatalf("omitted fields must stay: %+v", patched)
	}
}

func TestLogoutRequiresAuth(t *testing.T) {
	engine := newTestAPI(t)
	register(t, engine, "alice")
	tok, _ := obtainToken(t, engine, "alice")

	rec, _ := do(t, engine, http.MethodPost, "/api/logout", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rec.Code)
	}
	rec, _ = do(t, engine, http.MethodPost, "/api/logout", tok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
}
