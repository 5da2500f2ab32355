package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/creator-studio/internal/api"
	"github.com/jonesrussell/creator-studio/internal/auth"
	"github.com/jonesrussell/creator-studio/internal/config"
	"github.com/jonesrussell/creator-studio/internal/logger"
	"github.com/jonesrussell/creator-studio/internal/pipeline"
	"github.com/jonesrussell/creator-studio/internal/products"
	"github.com/jonesrussell/creator-studio/internal/share"
)

type mockLister struct {
	products []products.SurfacedProduct
	err      error
}

func (m *mockLister) ListSurfaced(_ context.Context) ([]products.SurfacedProduct, error) {
	return m.products, m.err
}

type testEnv struct {
	router  *gin.Engine
	jwt     *auth.JWTManager
	tracker *pipeline.Tracker
	broker  *pipeline.Broker
	lister  *mockLister
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			Username:      "producer",
			Password:      "secret",
			JWTSecret:     "test-secret-key-32-chars-minimum!",
			JWTExpiration: time.Hour,
		},
		Share: config.ShareConfig{
			BaseURL:    "https://studio.example.com",
			QRSize:     256,
			Foreground: "#000000",
			Background: "#ffffff",
		},
		Pipeline: config.PipelineConfig{
			HeartbeatInterval: time.Minute,
		},
	}

	log := logger.Nop()
	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration)
	tracker := pipeline.NewTracker()
	broker := pipeline.NewBroker(pipeline.BrokerConfig{}, log)
	broker.Start(t.Context())
	t.Cleanup(broker.Stop)
	lister := &mockLister{}
	shareSvc := share.NewService(share.Config{
		BaseURL:    cfg.Share.BaseURL,
		Size:       cfg.Share.QRSize,
		Foreground: cfg.Share.Foreground,
		Background: cfg.Share.Background,
	}, log)

	handler := api.NewHandler(api.Deps{
		Config:   cfg,
		Log:      log,
		JWT:      jwtMgr,
		Products: lister,
		Tracker:  tracker,
		Broker:   broker,
		Share:    shareSvc,
	})

	router := gin.New()
	api.SetupRoutes(router, handler)

	return &testEnv{router: router, jwt: jwtMgr, tracker: tracker, broker: broker, lister: lister}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	token, err := e.jwt.GenerateToken("producer")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(t.Context(), method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response: %v, body: %s", err, w.Body.String())
	}
}

func TestLogin_Success(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "producer",
		"password": "secret",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp api.LoginResponse
	decodeJSON(t, w, &resp)
	if resp.Token == "" {
		t.Error("expected token in response")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "producer",
		"password": "wrong",
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestListPages(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/pages", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Routes []struct {
			Pattern string `json:"pattern"`
		} `json:"routes"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Routes) == 0 {
		t.Fatal("expected a non-empty route table")
	}
	if resp.Routes[0].Pattern != "/" {
		t.Errorf("first route = %q, want %q", resp.Routes[0].Pattern, "/")
	}
}

func TestResolvePage(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t)

	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantDecision string
	}{
		{"public page", "/pricing", "", http.StatusOK, "allow"},
		{"protected without session", "/admin", "", http.StatusOK, "redirect"},
		{"protected with session", "/admin", token, http.StatusOK, "allow"},
		{"parameterized route", "/profile/jane", token, http.StatusOK, "allow"},
		{"unknown path", "/no-such-page", "", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.request(t, http.MethodGet, "/api/v1/pages/resolve?path="+tt.path, tt.token, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantDecision == "" {
				return
			}

			var resp struct {
				Decision string            `json:"decision"`
				Params   map[string]string `json:"params"`
			}
			decodeJSON(t, w, &resp)
			if resp.Decision != tt.wantDecision {
				t.Errorf("decision = %q, want %q", resp.Decision, tt.wantDecision)
			}
		})
	}
}

func TestResolvePage_MissingPath(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/pages/resolve", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCaptionStyles(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/captions/styles", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Styles []struct {
			ID string `json:"id"`
		} `json:"styles"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Styles) == 0 {
		t.Fatal("expected caption styles")
	}
}

func TestGetCaptionStyle_UnknownFallsBackToDefault(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/captions/styles/not-a-style", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		ID string `json:"id"`
	}
	decodeJSON(t, w, &resp)
	if resp.ID != "default" {
		t.Errorf("style id = %q, want %q", resp.ID, "default")
	}
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/briefs/validate", "", map[string]any{"title": "x"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestValidateBrief(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t)

	body := map[string]any{
		"title": "Launch teaser",
		"stages": []map[string]any{
			{
				"number": 1,
				"title":  "Hook",
				"cards": []map[string]any{
					{"number": 1, "title": "Opening", "copy": "Hello", "duration_seconds": 5},
				},
			},
		},
	}

	w := env.request(t, http.MethodPost, "/api/v1/briefs/validate", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Errors) != 0 {
		t.Errorf("expected no errors, got %+v", resp.Errors)
	}
}

func TestValidateBrief_MissingTitle(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t)

	w := env.request(t, http.MethodPost, "/api/v1/briefs/validate", token, map[string]any{
		"stages": []map[string]any{},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Errors) == 0 {
		t.Error("expected validation errors for missing title")
	}
}

func TestPipelineRunLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t)

	w := env.request(t, http.MethodPost, "/api/v1/pipeline/runs", token, map[string]any{
		"brief_id": "brief-1",
		"steps":    []string{"script", "render"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("start run status = %d, want %d, body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var run pipeline.Run
	decodeJSON(t, w, &run)
	if len(run.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(run.Steps))
	}

	w = env.request(t, http.MethodPost, "/api/v1/pipeline/runs/"+run.ID+"/steps/step-1", token, map[string]any{
		"status":   "running",
		"progress": 40,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update step status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	w = env.request(t, http.MethodGet, "/api/v1/pipeline/runs/"+run.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get run status = %d, want %d", w.Code, http.StatusOK)
	}

	var updated pipeline.Run
	decodeJSON(t, w, &updated)
	if updated.Status != pipeline.StatusRunning {
		t.Errorf("run status = %q, want %q", updated.Status, pipeline.StatusRunning)
	}
	if updated.Steps[0].Progress != 40 {
		t.Errorf("step progress = %d, want 40", updated.Steps[0].Progress)
	}
}

func TestUpdateRunStep_TerminalConflict(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t)

	run, err := env.tracker.StartRun("brief-2", []string{"render"})
	if err != nil {
		t.Fatalf("failed to start run: %v", err)
	}
	if _, err := env.tracker.UpdateStep(run.ID, "step-1", pipeline.StatusFailed, 0); err != nil {
		t.Fatalf("failed to fail step: %v", err)
	}

	w := env.request(t, http.MethodPost, "/api/v1/pipeline/runs/"+run.ID+"/steps/step-1", token, map[string]any{
		"status": "running",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d, body: %s", w.Code, http.StatusConflict, w.Body.String())
	}
}

func TestGetRun_NotFound(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t)

	w := env.request(t, http.MethodGet, "/api/v1/pipeline/runs/no-such-run", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// streamRecorder is a concurrency-safe ResponseWriter for SSE handlers,
// which keep writing while the test inspects the body.
type streamRecorder struct {
	headers http.Header

	mu  sync.Mutex
	buf bytes.Buffer
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{headers: http.Header{}}
}

func (r *streamRecorder) Header() http.Header { return r.headers }
func (r *streamRecorder) WriteHeader(int)     {}
func (r *streamRecorder) Flush()              {}

func (r *streamRecorder) Write(b []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(b)
}

func (r *streamRecorder) body() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.String()
}

func waitForStream(t *testing.T, rec *streamRecorder, cond func(string) bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond(rec.body()) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for stream output, body: %q", rec.body())
}

func TestStreamRunEvents(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t)

	run, err := env.tracker.StartRun("brief-1", []string{"script", "render"})
	if err != nil {
		t.Fatalf("failed to start run: %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/api/v1/pipeline/runs/"+run.ID+"/events", http.NoBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	rec := newStreamRecorder()
	handlerDone := make(chan struct{})
	go func() {
		env.router.ServeHTTP(rec, req)
		close(handlerDone)
	}()

	// The current run state arrives first.
	waitForStream(t, rec, func(body string) bool {
		return strings.Contains(body, "event: run:updated")
	})

	w := env.request(t, http.MethodPost, "/api/v1/pipeline/runs/"+run.ID+"/steps/step-1", token, map[string]any{
		"status":   "running",
		"progress": 40,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update step status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	waitForStream(t, rec, func(body string) bool {
		return strings.Count(body, "event: run:updated") >= 2
	})

	cancel()
	select {
	case <-handlerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not stop after client disconnect")
	}

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", got)
	}

	body := rec.body()
	if !strings.HasPrefix(body, "event: run:updated\ndata: ") {
		t.Errorf("stream does not start with a framed snapshot event: %q", body)
	}
	if !strings.Contains(body, `"progress":40`) {
		t.Errorf("stream missing the step update event: %q", body)
	}
}

func TestStreamRunEvents_UnknownRun(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t)

	w := env.request(t, http.MethodGet, "/api/v1/pipeline/runs/no-such-run/events", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestSurfacedProducts(t *testing.T) {
	env := setupTestEnv(t)
	env.lister.products = []products.SurfacedProduct{
		{ID: "p1", Name: "Specs One", Sponsor: "Acme", PriceCents: 19900},
	}

	w := env.request(t, http.MethodGet, "/api/smartglasses/surfaced-products", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Products []products.SurfacedProduct `json:"products"`
	}
	decodeJSON(t, w, &resp)
	if len(resp.Products) != 1 || resp.Products[0].Name != "Specs One" {
		t.Errorf("unexpected products: %+v", resp.Products)
	}
}

func TestSurfacedProducts_EmptyIsNotNull(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/smartglasses/surfaced-products", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]json.RawMessage
	decodeJSON(t, w, &resp)
	if string(resp["products"]) != "[]" {
		t.Errorf("products = %s, want []", resp["products"])
	}
}

func TestCreateShareLink(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t)

	w := env.request(t, http.MethodPost, "/api/v1/share", token, map[string]string{
		"path": "/profile/jane",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var link share.Link
	decodeJSON(t, w, &link)
	if link.URL != "https://studio.example.com/profile/jane" {
		t.Errorf("url = %q", link.URL)
	}
	if link.QRPNGBase64 == "" {
		t.Error("expected QR payload")
	}
}

func TestCreateShareLink_UnknownPath(t *testing.T) {
	env := setupTestEnv(t)
	token := env.token(t)

	w := env.request(t, http.MethodPost, "/api/v1/share", token, map[string]string{
		"path": "/definitely/not/a/route",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
