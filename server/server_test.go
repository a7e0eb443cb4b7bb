package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/taskflow-server/access"
	"github.com/jrsteele09/taskflow-server/attachments"
	attachmentfake "github.com/jrsteele09/taskflow-server/attachments/repofake"
	"github.com/jrsteele09/taskflow-server/auth"
	sessionfake "github.com/jrsteele09/taskflow-server/auth/repofake"
	"github.com/jrsteele09/taskflow-server/internal/config"
	"github.com/jrsteele09/taskflow-server/memberships"
	membershipfake "github.com/jrsteele09/taskflow-server/memberships/repofake"
	"github.com/jrsteele09/taskflow-server/projects"
	projectfake "github.com/jrsteele09/taskflow-server/projects/repofake"
	"github.com/jrsteele09/taskflow-server/server"
	"github.com/jrsteele09/taskflow-server/storage/storagefake"
	"github.com/jrsteele09/taskflow-server/tasks"
	taskfake "github.com/jrsteele09/taskflow-server/tasks/repofake"
	"github.com/jrsteele09/taskflow-server/users"
	fakeuserrepo "github.com/jrsteele09/taskflow-server/users/repofake"
)

type testConfig struct {
	config.EnvVars
	config.Cors
	*config.Auth
	config.DB
	config.Storage
}

type testFixture struct {
	server *server.Server
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	userRepo := fakeuserrepo.NewFakeUserRepo()
	sessionRepo := sessionfake.NewFakeSessionTokenRepo()
	membershipRepo := membershipfake.NewFakeMembershipRepo()
	projectRepo := projectfake.NewFakeProjectRepo(membershipRepo)
	taskRepo := taskfake.NewFakeTaskRepo()
	attachmentRepo := attachmentfake.NewFakeAttachmentRepo()

	cfg := testConfig{Auth: config.NewAuth("access-secret", 15*time.Minute, "refresh-secret", 7*24*time.Hour)}

	authService, err := auth.NewService(auth.Repos{Users: userRepo, SessionTokens: sessionRepo}, cfg)
	require.NoError(t, err)

	projectService, err := projects.NewService(projectRepo)
	require.NoError(t, err)

	membershipService, err := memberships.NewService(memberships.Repos{Memberships: membershipRepo, Users: userRepo})
	require.NoError(t, err)

	taskService, err := tasks.NewService(tasks.Repos{Tasks: taskRepo, Memberships: membershipRepo, Users: userRepo})
	require.NoError(t, err)

	attachmentService, err := attachments.NewService(attachments.Repos{
		Attachments: attachmentRepo,
		Tasks:       taskRepo,
		Users:       userRepo,
	}, storagefake.NewFakeObjectStore())
	require.NoError(t, err)

	authorizer, err := access.NewAuthorizer(membershipRepo)
	require.NoError(t, err)

	srv, err := server.New(cfg, server.Services{
		Auth:        authService,
		Projects:    projectService,
		Memberships: membershipService,
		Tasks:       taskService,
		Attachments: attachmentService,
	}, authorizer)
	require.NoError(t, err)

	return &testFixture{server: srv}
}

func (f *testFixture) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, request)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&value))
	return value
}

func (f *testFixture) register(t *testing.T, email string) auth.AuthResponse {
	t.Helper()
	recorder := f.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":       email,
		"password":    "password123",
		"displayName": "Test User",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	return decode[auth.AuthResponse](t, recorder)
}

func TestAuthFlow(t *testing.T) {
	f := setupTestFixture(t)

	registered := f.register(t, "flow@example.com")
	require.NotEmpty(t, registered.AccessToken)

	// the access token authenticates /auth/me
	recorder := f.do(t, http.MethodGet, "/auth/me", registered.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	me := decode[users.PublicUser](t, recorder)
	require.Equal(t, "flow@example.com", me.Email)

	// rotate the refresh token
	recorder = f.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": registered.RefreshToken})
	require.Equal(t, http.StatusOK, recorder.Code)
	refreshed := decode[auth.AuthResponse](t, recorder)
	require.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// the spent token no longer works
	recorder = f.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": registered.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestMeRequiresToken(t *testing.T) {
	f := setupTestFixture(t)

	recorder := f.do(t, http.MethodGet, "/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = f.do(t, http.MethodGet, "/auth/me", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	f := setupTestFixture(t)
	f.register(t, "login@example.com")

	recorder := f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = f.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "login@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestProjectLifecycleOverHTTP(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.register(t, "owner@example.com")

	recorder := f.do(t, http.MethodPost, "/projects", owner.AccessToken, map[string]string{"name": "Website Redesign"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	project := decode[projects.ProjectWithRole](t, recorder)
	require.Equal(t, memberships.RoleOwner, project.Role)

	recorder = f.do(t, http.MethodGet, "/projects", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	listed := decode[[]projects.ProjectWithRole](t, recorder)
	require.Len(t, listed, 1)

	recorder = f.do(t, http.MethodGet, "/projects/"+project.ID, owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(t, http.MethodPatch, "/projects/"+project.ID, owner.AccessToken, map[string]string{"status": "ACTIVE"})
	require.Equal(t, http.StatusOK, recorder.Code)
	updated := decode[projects.ProjectWithRole](t, recorder)
	require.Equal(t, projects.StatusActive, updated.Status)
}

func TestProjectAccessDeniedForNonMember(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.register(t, "owner@example.com")
	stranger := f.register(t, "stranger@example.com")

	recorder := f.do(t, http.MethodPost, "/projects", owner.AccessToken, map[string]string{"name": "Private"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	project := decode[projects.ProjectWithRole](t, recorder)

	recorder = f.do(t, http.MethodGet, "/projects/"+project.ID, stranger.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestViewerCannotMutate(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.register(t, "owner@example.com")
	viewer := f.register(t, "viewer@example.com")

	recorder := f.do(t, http.MethodPost, "/projects", owner.AccessToken, map[string]string{"name": "Guarded"})
	project := decode[projects.ProjectWithRole](t, recorder)

	recorder = f.do(t, http.MethodPost, "/projects/"+project.ID+"/memberships", owner.AccessToken, map[string]string{
		"email": "viewer@example.com",
		"role":  "VIEWER",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	// viewers can read
	recorder = f.do(t, http.MethodGet, fmt.Sprintf("/projects/%s/tasks", project.ID), viewer.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// but not create tasks
	recorder = f.do(t, http.MethodPost, fmt.Sprintf("/projects/%s/tasks", project.ID), viewer.AccessToken, map[string]string{"title": "Nope"})
	require.Equal(t, http.StatusForbidden, recorder.Code)

	// nor update the project
	recorder = f.do(t, http.MethodPatch, "/projects/"+project.ID, viewer.AccessToken, map[string]string{"name": "Hijacked"})
	require.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestMemberRoleChangeRequiresOwner(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.register(t, "owner@example.com")
	admin := f.register(t, "admin@example.com")

	recorder := f.do(t, http.MethodPost, "/projects", owner.AccessToken, map[string]string{"name": "Team"})
	project := decode[projects.ProjectWithRole](t, recorder)

	recorder = f.do(t, http.MethodPost, "/projects/"+project.ID+"/memberships", owner.AccessToken, map[string]string{
		"email": "admin@example.com",
		"role":  "ADMIN",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	member := decode[memberships.Member](t, recorder)

	// an ADMIN may not change roles
	recorder = f.do(t, http.MethodPatch, fmt.Sprintf("/projects/%s/memberships/%s", project.ID, member.ID), admin.AccessToken, map[string]string{"role": "VIEWER"})
	require.Equal(t, http.StatusForbidden, recorder.Code)

	// the OWNER may
	recorder = f.do(t, http.MethodPatch, fmt.Sprintf("/projects/%s/memberships/%s", project.ID, member.ID), owner.AccessToken, map[string]string{"role": "VIEWER"})
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestTaskAndAttachmentFlow(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.register(t, "owner@example.com")

	recorder := f.do(t, http.MethodPost, "/projects", owner.AccessToken, map[string]string{"name": "Files"})
	project := decode[projects.ProjectWithRole](t, recorder)

	recorder = f.do(t, http.MethodPost, fmt.Sprintf("/projects/%s/tasks", project.ID), owner.AccessToken, map[string]string{"title": "Upload the report"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	task := decode[tasks.TaskView](t, recorder)

	recorder = f.do(t, http.MethodPost, fmt.Sprintf("/projects/%s/tasks/%s/attachments/presign", project.ID, task.ID), owner.AccessToken, map[string]string{
		"fileName":    "report.pdf",
		"contentType": "application/pdf",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	upload := decode[attachments.PresignedUpload](t, recorder)
	require.NotEmpty(t, upload.UploadURL)

	recorder = f.do(t, http.MethodPost, fmt.Sprintf("/projects/%s/tasks/%s/attachments", project.ID, task.ID), owner.AccessToken, map[string]string{
		"fileName":    "report.pdf",
		"contentType": "application/pdf",
		"key":         upload.Key,
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = f.do(t, http.MethodGet, fmt.Sprintf("/projects/%s/tasks/%s/attachments", project.ID, task.ID), owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	listed := decode[[]attachments.AttachmentView](t, recorder)
	require.Len(t, listed, 1)
}

func TestHealthEndpoint(t *testing.T) {
	f := setupTestFixture(t)

	recorder := f.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := setupTestFixture(t)

	f.do(t, http.MethodGet, "/health", "", nil)
	recorder := f.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestCorsPreflight(t *testing.T) {
	f := setupTestFixture(t)

	request := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	request.Header.Set("Origin", "http://localhost:5173")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)

	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, request)
	require.Equal(t, "http://localhost:5173", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestClientFacingPaths(t *testing.T) {
	// The React client addresses memberships and presigning at these exact
	// paths; renaming them breaks deployed frontends.
	f := setupTestFixture(t)
	owner := f.register(t, "owner@example.com")

	recorder := f.do(t, http.MethodPost, "/projects", owner.AccessToken, map[string]string{"name": "Wire"})
	project := decode[projects.ProjectWithRole](t, recorder)

	recorder = f.do(t, http.MethodGet, "/projects/"+project.ID+"/memberships", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(t, http.MethodGet, "/projects/"+project.ID+"/members", owner.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = f.do(t, http.MethodPost, fmt.Sprintf("/projects/%s/tasks", project.ID), owner.AccessToken, map[string]string{"title": "Wire task"})
	task := decode[tasks.TaskView](t, recorder)

	recorder = f.do(t, http.MethodPost, fmt.Sprintf("/projects/%s/tasks/%s/attachments/presign", project.ID, task.ID), owner.AccessToken, map[string]string{
		"fileName":    "wire.txt",
		"contentType": "text/plain",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(t, http.MethodPost, fmt.Sprintf("/projects/%s/tasks/%s/attachments/upload-url", project.ID, task.ID), owner.AccessToken, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}
