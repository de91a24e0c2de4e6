package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/socialflow/configs"
	"github.com/maheshrc27/socialflow/internal/api"
	"github.com/maheshrc27/socialflow/internal/backend"
	"github.com/maheshrc27/socialflow/internal/bulk"
	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/store"
	"github.com/maheshrc27/socialflow/internal/testsupport"
	"github.com/maheshrc27/socialflow/pkg/utils"
)

const testSecret = "test-secret"

var testConfig = config.Config{SecretKey: testSecret, CookieName: "session"}

func newApp(t *testing.T, stores *store.Stores, blobs backend.BlobSource) *fiber.App {
	t.Helper()
	posts := service.NewPostService(stores.Posts, stores.Campaigns, nil, bulk.Policy{})
	return api.NewApp(testConfig, api.Services{
		Posts:     posts,
		Content:   service.NewContentService(posts, nil, bulk.Policy{}, bulk.Policy{}),
		Campaigns: service.NewCampaignService(stores.Campaigns, stores.Studios),
		Media:     service.NewMediaService(stores.Media, stores.Folders, bulk.Policy{}),
		Dashboard: service.NewDashboardService(stores),
		Blobs:     blobs,
	}, api.Options{DisableLogger: true})
}

func newLocalApp(t *testing.T) *fiber.App {
	b := testsupport.LocalBackend(t)
	return newApp(t, b.Stores, b.Blobs)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

func jsonRequest(method, path string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withToken(t *testing.T, req *http.Request, userID string) *http.Request {
	t.Helper()
	token, err := utils.GenerateToken(testSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestPostCRUD(t *testing.T) {
	app := newLocalApp(t)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"title":    "Launch",
		"platform": "twitter",
		"status":   "Draft",
	}))
	if status != http.StatusCreated {
		t.Fatalf("create: %d %s", status, body)
	}
	var created models.Post
	_ = json.Unmarshal(body, &created)
	if created.ID == "" || created.Platform != models.PlatformX {
		t.Fatalf("unexpected post %+v", created)
	}

	status, body = do(t, app, jsonRequest(http.MethodPut, "/api/posts/"+created.ID, map[string]any{
		"title":  "Launch day",
		"status": "Scheduled",
	}))
	if status != http.StatusOK || !strings.Contains(string(body), "Launch day") {
		t.Fatalf("update: %d %s", status, body)
	}

	status, body = do(t, app, jsonRequest(http.MethodGet, "/api/posts", nil))
	var list []models.Post
	_ = json.Unmarshal(body, &list)
	if status != http.StatusOK || len(list) != 1 {
		t.Fatalf("list: %d %s", status, body)
	}

	if status, _ = do(t, app, jsonRequest(http.MethodDelete, "/api/posts/"+created.ID, nil)); status != http.StatusNoContent {
		t.Fatalf("delete: %d", status)
	}
	if status, _ = do(t, app, jsonRequest(http.MethodDelete, "/api/posts/"+created.ID, nil)); status != http.StatusNotFound {
		t.Fatalf("second delete: %d", status)
	}
}

func TestPostValidation(t *testing.T) {
	app := newLocalApp(t)

	status, _ := do(t, app, jsonRequest(http.MethodPost, "/api/posts", map[string]any{"content": "no title"}))
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/api/posts/bulk/status", map[string]any{
		"ids": []string{"a"}, "status": "Archived",
	}))
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", status)
	}
}

func TestBulkCreatePartialFailure(t *testing.T) {
	b := testsupport.LocalBackend(t)
	stores := *b.Stores
	stores.Posts = &testsupport.FlakyStore[models.Post]{
		EntityStore: b.Stores.Posts,
		FailCreate:  func(n int, _ models.Post) bool { return n == 1 },
	}
	app := newApp(t, &stores, b.Blobs)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/api/posts/bulk", map[string]any{
		"posts": []map[string]any{{"title": "a"}, {"title": "b"}, {"title": "c"}},
	}))
	if status != http.StatusMultiStatus {
		t.Fatalf("expected 207, got %d %s", status, body)
	}
	var result struct {
		Succeeded   []models.Post `json:"succeeded"`
		FailedCount int           `json:"failedCount"`
		Total       int           `json:"total"`
	}
	_ = json.Unmarshal(body, &result)
	if len(result.Succeeded) != 2 || result.FailedCount != 1 || result.Total != 3 {
		t.Fatalf("unexpected result %s", body)
	}
}

func TestRemoteRequiresSession(t *testing.T) {
	stores, _, _ := testsupport.RemoteStores()
	app := newApp(t, stores, nil)

	if status, _ := do(t, app, jsonRequest(http.MethodGet, "/api/posts", nil)); status != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", status)
	}

	req := jsonRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	status, body := do(t, app, req)
	if status != http.StatusUnauthorized || !strings.Contains(string(body), "Invalid or expired token") {
		t.Fatalf("bad token: %d %s", status, body)
	}

	status, body = do(t, app, withToken(t, jsonRequest(http.MethodPost, "/api/posts", map[string]any{"title": "mine"}), "u1"))
	if status != http.StatusCreated {
		t.Fatalf("create with session: %d %s", status, body)
	}

	status, body = do(t, app, withToken(t, jsonRequest(http.MethodGet, "/api/dashboard", nil), "u2"))
	var dashboard service.Dashboard
	_ = json.Unmarshal(body, &dashboard)
	if status != http.StatusOK || dashboard.Mode != store.ModeRemote || len(dashboard.Posts) != 0 {
		t.Fatalf("other user's dashboard: %d %s", status, body)
	}
}

func TestFolderRoutes(t *testing.T) {
	app := newLocalApp(t)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/api/folders", map[string]any{"name": "Brand"}))
	if status != http.StatusCreated {
		t.Fatalf("create folder: %d %s", status, body)
	}
	var brand models.MediaFolder
	_ = json.Unmarshal(body, &brand)

	status, body = do(t, app, jsonRequest(http.MethodPost, "/api/folders", map[string]any{"name": "Logos", "parentId": brand.ID}))
	if status != http.StatusCreated {
		t.Fatalf("create child: %d %s", status, body)
	}
	var logos models.MediaFolder
	_ = json.Unmarshal(body, &logos)

	status, body = do(t, app, jsonRequest(http.MethodPost, "/api/folders/"+brand.ID+"/move", map[string]any{"parentId": logos.ID}))
	if status != http.StatusBadRequest {
		t.Fatalf("cycle: expected 400, got %d %s", status, body)
	}

	status, body = do(t, app, jsonRequest(http.MethodGet, "/api/folders/"+logos.ID+"/breadcrumbs", nil))
	var crumbs []models.MediaFolder
	_ = json.Unmarshal(body, &crumbs)
	if status != http.StatusOK || len(crumbs) != 2 || crumbs[1].ID != logos.ID {
		t.Fatalf("breadcrumbs: %d %s", status, body)
	}

	status, body = do(t, app, jsonRequest(http.MethodGet, "/api/folders/root/stats", nil))
	if status != http.StatusOK || !strings.Contains(string(body), `"folders":1`) {
		t.Fatalf("root stats: %d %s", status, body)
	}

	if status, _ = do(t, app, jsonRequest(http.MethodGet, "/api/folders/missing", nil)); status != http.StatusNotFound {
		t.Fatalf("missing folder: expected 404, got %d", status)
	}

	status, body = do(t, app, jsonRequest(http.MethodDelete, "/api/folders/"+brand.ID, nil))
	if status != http.StatusOK || !strings.Contains(string(body), logos.ID) {
		t.Fatalf("delete folder: %d %s", status, body)
	}
}

func TestUploadAndServeBlob(t *testing.T) {
	app := newLocalApp(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, _ := w.CreateFormFile("files", "note.txt")
	_, _ = part.Write([]byte("hello"))
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/media", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	status, body := do(t, app, req)
	if status != http.StatusOK {
		t.Fatalf("upload: %d %s", status, body)
	}
	var result struct {
		Succeeded []models.MediaItem `json:"succeeded"`
	}
	_ = json.Unmarshal(body, &result)
	if len(result.Succeeded) != 1 || !strings.HasPrefix(result.Succeeded[0].URL, "blob:") {
		t.Fatalf("unexpected upload result %s", body)
	}

	status, body = do(t, app, httptest.NewRequest(http.MethodGet, "/media/blob/"+result.Succeeded[0].URL, nil))
	if status != http.StatusOK || string(body) != "hello" {
		t.Fatalf("serve blob: %d %q", status, body)
	}
	if status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/media/blob/blob:unknown", nil)); status != http.StatusNotFound {
		t.Fatalf("unknown blob: expected 404, got %d", status)
	}
}

func TestAdviceUnavailableWithoutModel(t *testing.T) {
	app := newLocalApp(t)

	status, _ := do(t, app, jsonRequest(http.MethodPost, "/api/advice", map[string]any{"platform": "X", "niche": "tea"}))
	if status != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", status)
	}
}

func TestImportRejectsMalformedBody(t *testing.T) {
	app := newLocalApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/posts/import", strings.NewReader(`{"posts": []}`))
	req.Header.Set("Content-Type", "application/json")
	if status, _ := do(t, app, req); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestPostDatesAreStoredInUTC(t *testing.T) {
	app := newLocalApp(t)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"title": "Offset",
		"date":  "2024-03-01T12:00:00+03:00",
	}))
	if status != http.StatusCreated {
		t.Fatalf("create: %d %s", status, body)
	}

	_, body = do(t, app, jsonRequest(http.MethodGet, "/api/posts", nil))
	if !strings.Contains(string(body), `"date":"2024-03-01T09:00:00Z"`) {
		t.Fatalf("date not stored in UTC: %s", body)
	}
}
