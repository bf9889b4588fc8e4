package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrag-be/internal/dto"
	"docrag-be/internal/pkg/serverutils"
	"docrag-be/pkg/filesearch"
)

const testSecret = "controller-secret"

type stubStoreService struct {
	uploaded   filesearch.FileUpload
	uploadBody string
	query      *dto.QueryStoreRequest
	err        error
}

func (s *stubStoreService) Create(_ context.Context, _ string, req *dto.CreateStoreRequest) (*dto.CreateStoreResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CreateStoreResponse{Id: "abc", Name: "fileSearchStores/abc", DisplayName: req.DisplayName}, nil
}

func (s *stubStoreService) UploadFile(_ context.Context, _ string, storeId string, file filesearch.FileUpload) (*dto.UploadFileResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.uploaded = file
	body, _ := io.ReadAll(file.Reader)
	s.uploadBody = string(body)
	return &dto.UploadFileResponse{StoreName: filesearch.StoreName(storeId), FileName: file.Name, Polls: 2}, nil
}

func (s *stubStoreService) Query(_ context.Context, _ string, req *dto.QueryStoreRequest) (*dto.QueryStoreResponse, error) {
	s.query = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.QueryStoreResponse{Text: "resposta", GroundingChunks: []dto.GroundingChunkDTO{}}, nil
}

func (s *stubStoreService) ExampleQuestions(context.Context, string) ([]string, error) {
	return []string{"Qual o prazo?"}, nil
}

func (s *stubStoreService) Delete(context.Context, string, string) error {
	return s.err
}

type stubChatService struct {
	userID string
	token  string
}

func (s *stubChatService) RecentChats(_ context.Context, userId, authToken string) (*dto.RecentChatsResponse, error) {
	s.userID, s.token = userId, authToken
	return &dto.RecentChatsResponse{
		Sessions:     []dto.RecentChatDTO{{Id: "s1", Title: "graduacao", LastMessage: "oi"}},
		CleanupJobId: "job-1",
	}, nil
}

func (s *stubChatService) CleanupStatus(_ context.Context, jobId string) (*dto.CleanupJobResponse, error) {
	if jobId != "job-1" {
		return nil, fmt.Errorf("cleanup job %s: %w", jobId, serverutils.ErrNotFound)
	}
	return &dto.CleanupJobResponse{JobId: jobId, Total: 1, Deleted: []string{"s2"}, Failed: []dto.CleanupFailureDTO{}, Done: true}, nil
}

func newTestApp(stores *stubStoreService, chats *stubChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewHealthController(true).RegisterRoutes(app)

	api := app.Group("/api")
	auth := serverutils.JwtMiddleware(testSecret)
	NewStoreController(stores).RegisterRoutes(api, auth)
	NewChatController(chats).RegisterRoutes(api, auth)
	return app
}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, token string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, _ := io.ReadAll(res.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return res, decoded
}

func TestRoutesRequireToken(t *testing.T) {
	app := newTestApp(&stubStoreService{}, &stubChatService{})

	for _, path := range []string{"/api/chat/recent", "/api/stores/abc/example-questions"} {
		res, _ := doJSON(t, app, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, path)
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(&stubStoreService{}, &stubChatService{})

	res, body := doJSON(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, true, data["file_search_ready"])
}

func TestCreateStore(t *testing.T) {
	app := newTestApp(&stubStoreService{}, &stubChatService{})
	token := bearer(t)

	t.Run("validation", func(t *testing.T) {
		res, _ := doJSON(t, app, http.MethodPost, "/api/stores", `{}`, token)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		res, _ := doJSON(t, app, http.MethodPost, "/api/stores", `{`, token)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("created", func(t *testing.T) {
		res, body := doJSON(t, app, http.MethodPost, "/api/stores", `{"display_name":"Graduação"}`, token)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		data := body["data"].(map[string]any)
		assert.Equal(t, "fileSearchStores/abc", data["name"])
	})
}

func TestCreateStoreNotInitialized(t *testing.T) {
	app := newTestApp(&stubStoreService{err: filesearch.ErrNotInitialized}, &stubChatService{})

	res, body := doJSON(t, app, http.MethodPost, "/api/stores", `{"display_name":"x"}`, bearer(t))
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestUploadFile(t *testing.T) {
	stores := &stubStoreService{}
	app := newTestApp(stores, &stubChatService{})
	token := bearer(t)

	t.Run("missing file", func(t *testing.T) {
		res, _ := doJSON(t, app, http.MethodPost, "/api/stores/abc/files", "", token)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("indexed", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "edital.pdf")
		require.NoError(t, err)
		part.Write([]byte("%PDF-1.7"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/stores/abc/files", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)

		res, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "edital.pdf", stores.uploaded.Name)
		assert.Equal(t, "%PDF-1.7", stores.uploadBody)
	})
}

func TestUploadFileTimeout(t *testing.T) {
	app := newTestApp(&stubStoreService{err: fmt.Errorf("%w: op-1", filesearch.ErrOperationTimeout)}, &stubChatService{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "a.pdf")
	part.Write([]byte("x"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/stores/abc/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+bearer(t))

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, res.StatusCode)
}

func TestQueryStore(t *testing.T) {
	stores := &stubStoreService{}
	app := newTestApp(stores, &stubChatService{})
	token := bearer(t)

	res, _ := doJSON(t, app, http.MethodPost, "/api/stores/abc/query", `{"query":""}`, token)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = doJSON(t, app, http.MethodPost, "/api/stores/abc/query",
		`{"query":"E para pós?","history":[{"role":"assistant","content":"x"}]}`, token)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body := doJSON(t, app, http.MethodPost, "/api/stores/abc/query",
		`{"query":"E para pós?","history":[{"role":"user","content":"Qual o prazo?"},{"role":"model","content":"10 dias"}]}`, token)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "resposta", body["data"].(map[string]any)["text"])
	require.Len(t, stores.query.History, 2)
}

func TestQueryStoreUpstreamFailure(t *testing.T) {
	app := newTestApp(&stubStoreService{err: &filesearch.APIError{StatusCode: 500}}, &stubChatService{})

	res, _ := doJSON(t, app, http.MethodPost, "/api/stores/abc/query", `{"query":"x"}`, bearer(t))
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
}

func TestExampleQuestionsAndDelete(t *testing.T) {
	app := newTestApp(&stubStoreService{}, &stubChatService{})
	token := bearer(t)

	res, body := doJSON(t, app, http.MethodGet, "/api/stores/abc/example-questions", "", token)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, []any{"Qual o prazo?"}, body["data"])

	res, _ = doJSON(t, app, http.MethodDelete, "/api/stores/abc", "", token)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRecentChats(t *testing.T) {
	chats := &stubChatService{}
	app := newTestApp(&stubStoreService{}, chats)
	token := bearer(t)

	res, body := doJSON(t, app, http.MethodGet, "/api/chat/recent", "", token)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "u1", chats.userID)
	assert.Equal(t, token, chats.token)

	data := body["data"].(map[string]any)
	assert.Equal(t, "job-1", data["cleanup_job_id"])
	assert.Len(t, data["sessions"], 1)
}

func TestCleanupStatus(t *testing.T) {
	app := newTestApp(&stubStoreService{}, &stubChatService{})
	token := bearer(t)

	res, body := doJSON(t, app, http.MethodGet, "/api/chat/cleanup/job-1", "", token)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]any)["done"])

	res, _ = doJSON(t, app, http.MethodGet, "/api/chat/cleanup/unknown", "", token)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
