package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repo"
	"github.com/techclub/club-portal/internal/service"
	"github.com/techclub/club-portal/internal/tokens"
	"github.com/techclub/club-portal/internal/upload"
)

type testServer struct {
	e     *echo.Echo
	store *repo.GormRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repo.Migrate(db))

	store := repo.New(db)
	issuer := &tokens.Issuer{Secret: []byte("test-secret"), TTL: time.Hour}
	uploads, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)

	authSvc := &service.AuthService{Repo: store, Issuer: issuer}
	annSvc := &service.AnnouncementService{Repo: store}
	eventSvc := &service.EventService{Repo: store}
	actSvc := &service.ActivityService{Repo: store}
	leadSvc := &service.LeadershipService{Repo: store}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := NewRouter(quiet, issuer, uploads.BaseDir, Handlers{
		Auth:          &AuthHTTP{Svc: authSvc},
		Announcements: &AnnouncementHTTP{Svc: annSvc},
		Events:        &EventHTTP{Svc: eventSvc, Uploads: uploads},
		Activities:    &ActivityHTTP{Svc: actSvc, Uploads: uploads},
		Leadership:    &LeadershipHTTP{Svc: leadSvc, Uploads: uploads},
	})
	return &testServer{e: e, store: store}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// registerUser creates an account over the API and optionally promotes it
// directly in the store, the way deployments bootstrap their first admin.
func (ts *testServer) registerUser(t *testing.T, username, role string) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": username,
		"email":    username + "@college.edu",
		"password": "s3cretpw",
		"name":     "Test " + username,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	if role != models.RoleMember {
		user, err := ts.store.GetUserByIdentifier(t.Context(), username)
		require.NoError(t, err)
		user.Role = role
		require.NoError(t, ts.store.SaveUser(t.Context(), user))

		// Re-login so the token carries the new role.
		rec = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
			"username": username, "password": "s3cretpw",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	return decode(t, rec)["token"].(string)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "College Club API is running!", decode(t, rec)["message"])
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "alice@college.edu",
		"password": "s3cretpw",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "member", user["role"])
	_, hasHash := user["passwordHash"]
	assert.False(t, hasHash)

	// Wrong password: generic message, nothing about which part was wrong.
	rec = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec)["message"])

	rec = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"identifier": "alice@college.edu", "password": "s3cretpw",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode(t, rec)["token"].(string)

	rec = ts.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode(t, rec)["username"])

	rec = ts.do(t, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/auth/profile", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", decode(t, rec)["message"])
}

func TestRegisterConflict(t *testing.T) {
	ts := newTestServer(t)
	ts.registerUser(t, "alice", models.RoleMember)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "alice",
		"email":    "alice2@college.edu",
		"password": "s3cretpw",
		"name":     "Imposter",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAnnouncementCRUDAndRoles(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.registerUser(t, "boss", models.RoleAdmin)
	member := ts.registerUser(t, "plain", models.RoleMember)

	payload := map[string]any{
		"title":    "Server room closed",
		"content":  "Maintenance on Saturday",
		"author":   "facilities",
		"priority": "Urgent",
		"category": "Important",
	}

	// Anonymous and member writes are refused.
	rec := ts.do(t, http.MethodPost, "/api/announcements", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = ts.do(t, http.MethodPost, "/api/announcements", member, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied. Admin role required.", decode(t, rec)["message"])

	rec = ts.do(t, http.MethodPost, "/api/announcements", admin, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	id := created["id"].(string)
	assert.Equal(t, "Urgent", created["priority"])

	rec = ts.do(t, http.MethodPost, "/api/announcements", admin, map[string]any{
		"title": "Lost keys", "content": "found in lab 3", "author": "club",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Anyone can read; the priority filter narrows to one.
	rec = ts.do(t, http.MethodGet, "/api/announcements?priority=Urgent", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decode(t, rec)
	meta := listing["meta"].(map[string]any)
	assert.EqualValues(t, 1, meta["total"])
	data := listing["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "Server room closed", data[0].(map[string]any)["title"])

	// Partial update leaves the rest alone.
	rec = ts.do(t, http.MethodPut, "/api/announcements/"+id, admin, map[string]any{
		"isActive": false,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode(t, rec)
	assert.Equal(t, false, updated["isActive"])
	assert.Equal(t, "Server room closed", updated["title"])

	rec = ts.do(t, http.MethodGet, "/api/announcements/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/announcements/"+id, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Announcement deleted successfully", decode(t, rec)["message"])

	rec = ts.do(t, http.MethodDelete, "/api/announcements/"+id, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Announcement not found", decode(t, rec)["message"])
}

func TestAnnouncementValidationShape(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.registerUser(t, "boss", models.RoleAdmin)

	rec := ts.do(t, http.MethodPost, "/api/announcements", admin, map[string]any{
		"title": "x", "content": "y", "author": "z", "priority": "Apocalyptic",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Validation failed", body["message"])
	fields := body["errors"].(map[string]any)
	assert.Contains(t, fields, "priority")
}

func TestEventMultipartUpload(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.registerUser(t, "boss", models.RoleAdmin)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "Demo day"))
	require.NoError(t, w.WriteField("description", "project demos"))
	require.NoError(t, w.WriteField("date", time.Now().AddDate(0, 0, 14).Format(time.RFC3339)))
	require.NoError(t, w.WriteField("time", "10:00"))
	require.NoError(t, w.WriteField("location", "Auditorium"))
	require.NoError(t, w.WriteField("organizer", "club"))
	require.NoError(t, w.WriteField("tags", `["demo","projects"]`))
	fw, err := w.CreateFormFile("image", "poster.png")
	require.NoError(t, err)
	// Minimal PNG header so content sniffing sees an image.
	_, err = fw.Write(append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/events", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+admin)
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.EqualValues(t, []any{"demo", "projects"}, created["tags"])
	img := created["image"].(map[string]any)
	assert.Contains(t, img["path"], "/uploads/events/event-")

	// The upcoming shortcut sees it.
	rec = ts.do(t, http.MethodGet, "/api/events/filter/upcoming", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var upcoming []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upcoming))
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Demo day", upcoming[0]["title"])
}

func TestLeadershipRoutes(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.registerUser(t, "boss", models.RoleAdmin)

	mk := func(name, position string, order int) {
		rec := ts.do(t, http.MethodPost, "/api/leadership", admin, map[string]any{
			"name":         name,
			"position":     position,
			"department":   "CSE",
			"email":        fmt.Sprintf("%s@college.edu", name),
			"displayOrder": order,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	mk("head", "Chancellor", 1)
	mk("prez", "Club President", 2)

	rec := ts.do(t, http.MethodGet, "/api/leadership/filter/main", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var main []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &main))
	require.Len(t, main, 1)
	assert.Equal(t, "head", main[0]["name"])

	rec = ts.do(t, http.MethodGet, "/api/leadership/position/Club%20President", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var byPos []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &byPos))
	require.Len(t, byPos, 1)
	assert.Equal(t, "prez", byPos[0]["name"])
}

func TestPaginationMeta(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.registerUser(t, "boss", models.RoleAdmin)

	for i := 0; i < 12; i++ {
		rec := ts.do(t, http.MethodPost, "/api/announcements", admin, map[string]any{
			"title":   fmt.Sprintf("note %02d", i),
			"content": "body",
			"author":  "club",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := ts.do(t, http.MethodGet, "/api/announcements?page=2&limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 12, meta["total"])
	assert.EqualValues(t, 2, meta["page"])
	assert.EqualValues(t, 3, meta["total_pages"])
	assert.Equal(t, true, meta["has_prev"])
	assert.Equal(t, true, meta["has_next"])
	assert.Len(t, body["data"].([]any), 5)
}
