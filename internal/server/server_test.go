package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/unlockedcoding/backend/internal/config"
	"github.com/unlockedcoding/backend/internal/model"
)

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Category{},
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.Review{},
		&model.ContactSubmission{},
		&model.Session{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		AppEnv:            "test",
		SessionCookieName: "session_token",
		SessionTTL:        time.Hour,
	}

	return New(cfg, db, nil).Handler(), db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session_token" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("expected a session_token cookie, got %v", w.Result().Cookies())
	return nil
}

func register(t *testing.T, router *gin.Engine, username string) *http.Cookie {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/register", gin.H{
		"username": username,
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}
	return sessionCookie(t, w)
}

func promoteToAdmin(t *testing.T, db *gorm.DB, username string) {
	t.Helper()

	if err := db.Model(&model.User{}).
		Where("username = ?", username).
		Update("is_admin", true).Error; err != nil {
		t.Fatalf("failed to promote %q: %v", username, err)
	}
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	router, _ := newTestServer(t)

	cookie := register(t, router, "alice")

	w := doJSON(t, router, http.MethodGet, "/api/user", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/user returned %d: %s", w.Code, w.Body.String())
	}
	var me struct {
		Username string `json:"username"`
		IsAdmin  bool   `json:"is_admin"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("failed to decode /api/user body: %v", err)
	}
	if me.Username != "alice" {
		t.Fatalf("expected username alice, got %q", me.Username)
	}

	w = doJSON(t, router, http.MethodPost, "/api/logout", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout returned %d: %s", w.Code, w.Body.String())
	}

	// The session is revoked server side; the old cookie no longer works.
	w = doJSON(t, router, http.MethodGet, "/api/user", nil, cookie)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/login", gin.H{
		"username": "alice",
		"password": "secret123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", w.Code, w.Body.String())
	}
	fresh := sessionCookie(t, w)

	w = doJSON(t, router, http.MethodGet, "/api/user", nil, fresh)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/user with fresh session returned %d", w.Code)
	}
}

func TestRegisterIgnoresAdminField(t *testing.T) {
	router, db := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/register", gin.H{
		"username": "mallory",
		"password": "secret123",
		"is_admin": true,
		"isAdmin":  true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}

	var user model.User
	if err := db.Where("username = ?", "mallory").First(&user).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if user.IsAdmin {
		t.Fatalf("registration must never produce an admin user")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := newTestServer(t)
	register(t, router, "bob")

	w := doJSON(t, router, http.MethodPost, "/api/login", gin.H{
		"username": "bob",
		"password": "not-the-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	router, _ := newTestServer(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/user"},
		{http.MethodGet, "/api/profile"},
		{http.MethodGet, "/api/enrollments"},
		{http.MethodPost, "/api/courses/" + uuid.NewString() + "/enroll"},
	} {
		w := doJSON(t, router, route.method, route.path, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without session returned %d, want 401", route.method, route.path, w.Code)
		}
	}
}

func TestAdminRoutesRejectNonAdmins(t *testing.T) {
	router, db := newTestServer(t)
	cookie := register(t, router, "carol")

	w := doJSON(t, router, http.MethodPost, "/api/admin/categories", gin.H{
		"name":        "Security",
		"description": "everything about breaking and fixing software",
		"image_url":   "https://example.com/sec.png",
	}, cookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d: %s", w.Code, w.Body.String())
	}

	// The same session gains access once the user is promoted out of band.
	promoteToAdmin(t, db, "carol")
	w = doJSON(t, router, http.MethodPost, "/api/admin/categories", gin.H{
		"name":        "Security",
		"description": "everything about breaking and fixing software",
		"image_url":   "https://example.com/sec.png",
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCourseNotFound(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/api/courses/"+uuid.NewString(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/courses/not-a-uuid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d: %s", w.Code, w.Body.String())
	}
}

func TestContactSubmissionValidation(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/contact", gin.H{
		"name":    "Dana",
		"email":   "dana@example.com",
		"purpose": "world_domination",
		"message": "this purpose is not in the enum",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid purpose, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Fields map[string]string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if _, ok := body.Fields["purpose"]; !ok {
		t.Fatalf("expected a field error for purpose, got %v", body.Fields)
	}

	w = doJSON(t, router, http.MethodPost, "/api/contact", gin.H{
		"name":    "Dana",
		"email":   "dana@example.com",
		"purpose": "become_admin",
		"message": "I would like to help moderate",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestEnrollmentAndProgressOverHTTP(t *testing.T) {
	router, db := newTestServer(t)
	cookie := register(t, router, "student")

	course := seedHTTPCourse(t, db)

	w := doJSON(t, router, http.MethodPost, "/api/courses/"+course.ID.String()+"/enroll", nil, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("enroll returned %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPut, "/api/courses/"+course.ID.String()+"/progress", gin.H{"progress": 100}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("progress returned %d: %s", w.Code, w.Body.String())
	}
	var enrollment struct {
		Progress  int  `json:"progress"`
		Completed bool `json:"completed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &enrollment); err != nil {
		t.Fatalf("failed to decode enrollment: %v", err)
	}
	if enrollment.Progress != 100 || !enrollment.Completed {
		t.Fatalf("expected completed enrollment, got %+v", enrollment)
	}

	w = doJSON(t, router, http.MethodPut, "/api/courses/"+course.ID.String()+"/progress", gin.H{"progress": 150}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for out-of-range progress, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCategoryDeleteRequiresConfirmation(t *testing.T) {
	router, db := newTestServer(t)
	cookie := register(t, router, "admin")
	promoteToAdmin(t, db, "admin")

	course := seedHTTPCourse(t, db)

	path := "/api/admin/categories/" + course.CategoryID.String()
	w := doJSON(t, router, http.MethodDelete, path, nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without confirm flag, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodDelete, path+"?confirm=true", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with confirm flag, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Table("courses").Count(&count).Error; err != nil {
		t.Fatalf("failed to count courses: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cascade to remove courses, got %d", count)
	}
}

func TestDashboardStats(t *testing.T) {
	router, db := newTestServer(t)
	cookie := register(t, router, "admin")
	promoteToAdmin(t, db, "admin")
	seedHTTPCourse(t, db)

	w := doJSON(t, router, http.MethodGet, "/api/admin/dashboard/stats", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("stats returned %d: %s", w.Code, w.Body.String())
	}

	var stats struct {
		Users      int64 `json:"users"`
		Courses    int64 `json:"courses"`
		Categories int64 `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.Users != 2 || stats.Courses != 1 || stats.Categories != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func seedHTTPCourse(t *testing.T, db *gorm.DB) *model.Course {
	t.Helper()

	instructor := &model.User{Username: "instructor-" + uuid.NewString(), PasswordHash: "x.y"}
	if err := db.Create(instructor).Error; err != nil {
		t.Fatalf("failed to create instructor: %v", err)
	}

	category := &model.Category{
		Name:        "Go",
		Slug:        fmt.Sprintf("go-%s", uuid.NewString()),
		Description: "go courses",
		ImageURL:    "https://example.com/go.png",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	course := &model.Course{
		Title:        "Go Fundamentals",
		Slug:         fmt.Sprintf("go-fundamentals-%s", uuid.NewString()),
		Description:  "a course used in handler tests",
		ImageURL:     "https://example.com/course.png",
		CategoryID:   category.ID,
		InstructorID: instructor.ID,
		Duration:     "3h",
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}
