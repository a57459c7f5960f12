package blog_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/mysite/pkg/api/blog"
	"github.com/anzhiyu-c/mysite/pkg/apiclient"
	"github.com/anzhiyu-c/mysite/pkg/constant"
	"github.com/anzhiyu-c/mysite/pkg/domain/model"
	"github.com/anzhiyu-c/mysite/pkg/response"
)

// fakeBackend 用 gin 模拟博客后端，hits 记录收到的请求数
type fakeBackend struct {
	engine *gin.Engine
	hits   int32
}

func newFakeBackend(t *testing.T) (*fakeBackend, *blog.API) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fb := &fakeBackend{engine: gin.New()}
	fb.engine.Use(func(c *gin.Context) {
		atomic.AddInt32(&fb.hits, 1)
		c.Next()
	})
	srv := httptest.NewServer(fb.engine)
	t.Cleanup(srv.Close)

	client, err := apiclient.New(apiclient.Config{BaseURL: srv.URL + "/api"})
	require.NoError(t, err)
	return fb, blog.New(client)
}

func samplePost() model.BlogPostInfoResponse {
	return model.BlogPostInfoResponse{
		Title:        "你好，Go",
		Slug:         "hello-go",
		Excerpt:      "第一篇",
		CoverImage:   "https://img.example.com/1.png",
		CategorySlug: []int{1, 3},
		Status:       "PUBLISHED",
		Featured:     true,
		ViewCount:    42,
		ReadTime:     5,
		PublishedAt:  "2024-01-05T08:00:00Z",
		CreatedAt:    "2024-01-04T08:00:00Z",
		UpdatedAt:    "2024-01-06T08:00:00Z",
		Tags:         []model.BlogTagResponse{{Name: "Go", Slug: "go"}},
	}
}

func TestGetBlogPostPage(t *testing.T) {
	fb, api := newFakeBackend(t)
	want := &model.Page[model.BlogPostInfoResponse]{
		Content:       []model.BlogPostInfoResponse{samplePost()},
		Page:          2,
		Size:          10,
		TotalElements: 11,
		TotalPages:    2,
	}
	fb.engine.GET("/api/blog/posts", func(c *gin.Context) {
		assert.Equal(t, "2", c.Query("page"))
		assert.Equal(t, "10", c.Query("size"))
		assert.Equal(t, "golang", c.Query("categlorySlug"))
		response.Success(c, want, "ok")
	})

	slug := "golang"
	got, err := api.GetBlogPostPage(context.Background(), &model.GetBlogPostPageRequest{Page: 2, Size: 10, CategorySlug: &slug})
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, got.HasNext())
	assert.True(t, got.HasPrev())
}

func TestGetBlogPostPage_NilRequestSendsNoQuery(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.engine.GET("/api/blog/posts", func(c *gin.Context) {
		assert.Empty(t, c.Request.URL.RawQuery)
		response.Success(c, model.Page[model.BlogPostInfoResponse]{}, "ok")
	})

	got, err := api.GetBlogPostPage(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got.Content)
}

func TestGetBlogPostBySlug(t *testing.T) {
	fb, api := newFakeBackend(t)
	detail := model.BlogPostDetailResponse{BlogPostInfoResponse: samplePost(), Content: "# 标题\n\n正文"}
	fb.engine.GET("/api/blog/posts/:slug", func(c *gin.Context) {
		if c.Param("slug") != "hello-go" {
			response.BusinessFail(c, http.StatusNotFound, "文章不存在")
			return
		}
		response.Success(c, detail, "ok")
	})

	got, err := api.GetBlogPostBySlug(context.Background(), &model.GetBlogPostBySlugRequest{Slug: "hello-go"})
	require.NoError(t, err)
	assert.Equal(t, &detail, got)

	_, err = api.GetBlogPostBySlug(context.Background(), &model.GetBlogPostBySlugRequest{Slug: "missing"})
	require.Error(t, err)
	assert.Equal(t, "文章不存在", err.Error())
	assert.ErrorIs(t, err, constant.ErrBusiness)
}

func TestSlugValidationHappensBeforeNetwork(t *testing.T) {
	fb, api := newFakeBackend(t)
	ctx := context.Background()

	for _, req := range []*model.GetBlogPostBySlugRequest{nil, {}, {Slug: "   "}} {
		_, err := api.GetBlogPostBySlug(ctx, req)
		require.Error(t, err)
		assert.Equal(t, constant.MsgSlugRequired, err.Error())
		assert.ErrorIs(t, err, constant.ErrValidation)
	}
	_, err := api.GetPostBySlug(ctx, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, constant.ErrValidation)

	assert.Zero(t, atomic.LoadInt32(&fb.hits))
}

func TestSlugIsPathEscaped(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.engine.UseRawPath = true
	fb.engine.GET("/api/blog/posts/:slug", func(c *gin.Context) {
		assert.Equal(t, "/api/blog/posts/a%2Fb", c.Request.URL.EscapedPath())
		response.Success(c, model.Post{PostList: model.PostList{Slug: "a/b"}}, "ok")
	})

	got, err := api.GetPostBySlug(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", got.Slug)
}

func TestSlugIsSentUntrimmed(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.engine.UseRawPath = true
	fb.engine.GET("/api/blog/posts/:slug", func(c *gin.Context) {
		assert.Equal(t, "/api/blog/posts/a%20", c.Request.URL.EscapedPath())
		assert.Equal(t, "a ", c.Param("slug"))
		response.Success(c, model.BlogPostDetailResponse{BlogPostInfoResponse: model.BlogPostInfoResponse{Slug: "a "}}, "ok")
	})

	got, err := api.GetBlogPostBySlug(context.Background(), &model.GetBlogPostBySlugRequest{Slug: "a "})
	require.NoError(t, err)
	assert.Equal(t, "a ", got.Slug)
}

func TestGetCategoryList(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.engine.GET("/api/blog/categories", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(`{
			"code": 200, "message": "ok", "timestamp": 1,
			"data": {"categlortList": [{"name":"技术","slug":"tech","description":"d","color":"#fff","createdAt":"c","updateAt":"u"}]}
		}`))
	})

	got, err := api.GetCategoryList(context.Background())
	require.NoError(t, err)
	require.Len(t, got.CategoryList, 1)
	assert.Equal(t, model.BlogCategoryResponse{
		Name: "技术", Slug: "tech", Description: "d", Color: "#fff", CreatedAt: "c", UpdateAt: "u",
	}, got.CategoryList[0])
}

func TestFlattenedContract(t *testing.T) {
	fb, api := newFakeBackend(t)
	categories := []model.PostCategory{{ID: 1, Name: "技术", Slug: "tech", PostCount: 3}}
	tags := []model.PostTag{{ID: 7, Name: "Go", Slug: "go", PostCount: 2}}
	page := model.Page[model.PostList]{
		Content: []model.PostList{{ID: 1, Title: "t", Slug: "s", CategoryName: "技术", TagNames: []string{"Go"}}},
		Page:    1, Size: 5, TotalElements: 1, TotalPages: 1,
	}
	fb.engine.GET("/api/blog/posts/categories", func(c *gin.Context) { response.Success(c, categories, "ok") })
	fb.engine.GET("/api/blog/posts/tags", func(c *gin.Context) { response.Success(c, tags, "ok") })
	fb.engine.GET("/api/blog/posts", func(c *gin.Context) {
		assert.Equal(t, "go", c.Query("tag"))
		assert.Equal(t, "5", c.Query("size"))
		assert.Empty(t, c.Query("category"))
		response.Success(c, page, "ok")
	})

	ctx := context.Background()
	gotCategories, err := api.GetPostCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, categories, gotCategories)

	gotTags, err := api.GetPostTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, tags, gotTags)

	gotPage, err := api.GetPosts(ctx, model.PostQuery{Page: 1, Size: 5, Tag: "go"})
	require.NoError(t, err)
	assert.Equal(t, &page, gotPage)
}

func TestBusinessErrorFallbackMessage(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.engine.GET("/api/blog/posts/tags", func(c *gin.Context) { response.BusinessFail(c, 500, "") })

	_, err := api.GetPostTags(context.Background())
	require.Error(t, err)
	assert.Equal(t, constant.MsgBusinessFallback, err.Error())
}

func TestTransportErrorCarriesStatus(t *testing.T) {
	fb, api := newFakeBackend(t)
	fb.engine.GET("/api/blog/categories", func(c *gin.Context) { response.Fail(c, http.StatusServiceUnavailable, "维护中") })

	_, err := api.GetCategoryList(context.Background())
	require.Error(t, err)
	apiErr, ok := apiclient.AsError(err)
	require.True(t, ok)
	assert.Equal(t, apiclient.KindTransport, apiErr.Kind)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "维护中", apiErr.Message)
}
