package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"playground/config"
	"playground/internal/content"
	"playground/internal/detail"
	"playground/internal/feedback"
	"playground/internal/middleware"
	"playground/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	srv   *httptest.Server
	store *feedback.Store
	now   time.Time
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	app := &testApp{now: time.Date(2025, 11, 12, 9, 0, 0, 0, time.UTC)}
	app.store = feedback.NewStore(storage.NewMemory(), feedback.DefaultKey)
	clock := func() time.Time {
		app.now = app.now.Add(time.Minute)
		return app.now
	}
	controller := detail.NewController(app.store, content.Default(), detail.WithClock(clock), detail.WithLocation(time.UTC))
	h, err := NewHandler(content.Default(), controller, middleware.NewRateLimiter(0))
	require.NoError(t, err)
	app.srv = httptest.NewServer(h)
	t.Cleanup(app.srv.Close)
	return app
}

func noRedirect() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
}

func (a *testApp) get(t *testing.T, path string) (int, string) {
	t.Helper()
	res, err := http.Get(a.srv.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, string(body)
}

func (a *testApp) postAJAX(t *testing.T, path string, form url.Values) (int, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res.StatusCode, out
}

func TestHomeSelectsFirstItem(t *testing.T) {
	app := newTestApp(t)
	code, body := app.get(t, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Translating bass into light &amp; vibration")
	assert.Contains(t, body, `class="post-detail-footer" data-post-id="post-1"`)
}

func TestHomeUnknownItemRendersGridOnly(t *testing.T) {
	app := newTestApp(t)
	code, body := app.get(t, "/?item=missing")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "posts-grid")
	assert.NotContains(t, body, "post-detail-footer")
}

func TestUnknownPathIs404(t *testing.T) {
	app := newTestApp(t)
	code, _ := app.get(t, "/nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDetailFragment(t *testing.T) {
	app := newTestApp(t)

	code, body := app.get(t, "/items/post-3")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Quiet rooms for sensory breaks")
	assert.NotContains(t, body, "<html")

	code, body = app.get(t, "/items/missing")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Empty(t, body)
}

func TestReactionEndpoint(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	var out map[string]interface{}
	var code int
	for i := 0; i < 3; i++ {
		code, out = app.postAJAX(t, "/items/post-2/reactions/thumbs", nil)
		require.Equal(t, http.StatusOK, code)
	}
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "thumbs", out["kind"])
	assert.Equal(t, float64(3), out["count"])
	assert.Equal(t, 3, app.store.GetRecord(ctx, "post-2").Count("thumbs"))

	code, out = app.postAJAX(t, "/items/post-2/reactions/rocket", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Unknown reaction", out["error"])

	code, _ = app.postAJAX(t, "/items/missing/reactions/thumbs", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = app.get(t, "/items/post-2/reactions/thumbs")
	assert.Equal(t, http.StatusMethodNotAllowed, code)
}

func TestReactionFormPostRedirects(t *testing.T) {
	app := newTestApp(t)
	res, err := noRedirect().Post(app.srv.URL+"/items/post-1/reactions/heart", "application/x-www-form-urlencoded", nil)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/?item=post-1", res.Header.Get("Location"))
	assert.Equal(t, 1, app.store.GetRecord(context.Background(), "post-1").Count("heart"))
}

func TestCommentEndpointAJAX(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	code, out := app.postAJAX(t, "/items/post-1/comments", url.Values{"comment": {"  Great idea  "}})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, detail.MsgCommentSaved, out["message"])
	assert.Equal(t, float64(1), out["count"])

	stored := app.store.GetRecord(ctx, "post-1").Comments
	require.Len(t, stored, 1)
	assert.Equal(t, "Great idea", stored[0].Text)
	assert.Equal(t, app.now.UnixMilli(), stored[0].Timestamp)

	code, out = app.postAJAX(t, "/items/post-1/comments", url.Values{"comment": {`<script>alert("x")</script>`}})
	require.Equal(t, http.StatusOK, code)
	html := out["comments_html"].(string)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;")
	// новые сверху
	assert.Less(t, strings.Index(html, "&lt;script&gt;"), strings.Index(html, "Great idea"))
}

func TestCommentEndpointRejectsBlank(t *testing.T) {
	app := newTestApp(t)

	code, out := app.postAJAX(t, "/items/post-1/comments", url.Values{"comment": {"   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, detail.MsgEmptyComment, out["message"])
	assert.Empty(t, app.store.GetRecord(context.Background(), "post-1").Comments)
}

func TestCommentFormPostRedirects(t *testing.T) {
	app := newTestApp(t)
	client := noRedirect()

	res, err := client.PostForm(app.srv.URL+"/items/post-2/comments", url.Values{"comment": {"it's <b>bold</b>"}})
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, "/?item=post-2&saved=1", res.Header.Get("Location"))

	rec := app.store.GetRecord(context.Background(), "post-2")
	require.Len(t, rec.Comments, 1)
	assert.Equal(t, "it's <b>bold</b>", rec.Comments[0].Text)

	// повторный GET по Location ничего не добавляет
	code, body := app.get(t, "/?item=post-2&saved=1")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "it&#39;s &lt;b&gt;bold&lt;/b&gt;")
	assert.Contains(t, body, "feedback-message success")
	code, _ = app.get(t, "/?item=post-2&saved=1")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, app.store.GetRecord(context.Background(), "post-2").Comments, 1)

	res, err = client.PostForm(app.srv.URL+"/items/post-2/comments", url.Values{"comment": {""}})
	require.NoError(t, err)
	raw, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Contains(t, string(raw), "please type a few words first")
}

func TestStaticAndOps(t *testing.T) {
	app := newTestApp(t)

	code, _ := app.get(t, "/static/app.js")
	assert.Equal(t, http.StatusOK, code)
	code, _ = app.get(t, "/static/posts.json")
	assert.Equal(t, http.StatusNotFound, code)

	code, body := app.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)

	app.postAJAX(t, "/items/post-1/reactions/sparkles", nil)
	code, body = app.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `playground_reactions_total{kind="sparkles"}`)
}

func TestOpenStorageDrivers(t *testing.T) {
	ctx := context.Background()

	cfg := config.Defaults()
	cfg.Storage.Driver = "memory"
	s, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	cfg = config.Defaults()
	cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "app.db")
	s, err = OpenStorage(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, s.SetItem(ctx, "k", "v"))
	require.NoError(t, s.Close())

	cfg.Storage.Driver = "floppy"
	_, err = OpenStorage(ctx, cfg)
	assert.Error(t, err)
}
