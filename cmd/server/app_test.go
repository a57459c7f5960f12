package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/mysite/internal/infra/tokenstore"
	"github.com/anzhiyu-c/mysite/pkg/domain/model"
	"github.com/anzhiyu-c/mysite/pkg/response"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.ini")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// fakeBlog 记录收到的 Authorization 头
func fakeBlog(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()
	var (
		mu    sync.Mutex
		auths []string
	)
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(func(c *gin.Context) {
		mu.Lock()
		auths = append(auths, c.GetHeader("Authorization"))
		mu.Unlock()
	})
	e.GET("/api/blog/posts", func(c *gin.Context) {
		response.Success(c, model.Page[model.BlogPostInfoResponse]{Page: 1, Size: 10}, "ok")
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), auths...)
	}
}

func TestNewApp_StaticToken(t *testing.T) {
	backend, auths := fakeBlog(t)
	path := writeConfig(t, fmt.Sprintf(`
[System]
Port = 0
RateLimit = 0

[Api]
BaseURL = %s/api

[Auth]
Store = static
Token = secret

[Site]
Name = 测试站点
`, backend.URL))

	app, cleanup, err := NewApp(context.Background(), path)
	require.NoError(t, err)
	defer cleanup()

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>首页 - 测试站点</title>")
	assert.Equal(t, []string{"Bearer secret"}, auths())
	assert.Nil(t, app.site.Limiter())
}

func TestNewApp_FileTokenStore(t *testing.T) {
	backend, _ := fakeBlog(t)
	tokenFile := filepath.Join(t.TempDir(), "token.ini")
	path := writeConfig(t, fmt.Sprintf(`
[Api]
BaseURL = %s/api

[Auth]
Store = file
TokenFile = %s
`, backend.URL, tokenFile))

	app, cleanup, err := NewApp(context.Background(), path)
	require.NoError(t, err)
	defer cleanup()

	store, err := app.newTokenStore(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &tokenstore.INIFile{}, store)
	assert.NotNil(t, app.site.Limiter())
}

func TestNewApp_InvalidConfig(t *testing.T) {
	_, _, err := NewApp(context.Background(), writeConfig(t, "[Api]\nBaseURL =\n"))
	assert.Error(t, err)

	path := writeConfig(t, "[Api]\nBaseURL = http://localhost/api\n[Auth]\nStore = redis\n")
	_, _, err = NewApp(context.Background(), path)
	assert.Error(t, err)
}

func TestRun_GracefulShutdown(t *testing.T) {
	backend, _ := fakeBlog(t)
	path := writeConfig(t, fmt.Sprintf("[System]\nPort = 0\n[Api]\nBaseURL = %s/api\n", backend.URL))

	app, cleanup, err := NewApp(context.Background(), path)
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("服务未能在超时时间内关闭")
	}
}
