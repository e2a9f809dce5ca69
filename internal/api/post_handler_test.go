package api_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopikita/blogshop/internal/api"
	"github.com/kopikita/blogshop/internal/pagination"
	memoryrepo "github.com/kopikita/blogshop/internal/repository/memory"
	"github.com/kopikita/blogshop/internal/service"
	memorystorage "github.com/kopikita/blogshop/internal/storage/memory"
)

const testBaseURL = "http://localhost:8080"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type postPage struct {
	Posts      []api.PostResource `json:"posts"`
	Pagination pagination.Meta    `json:"pagination"`
}

func newPostRouter() (chi.Router, *memorystorage.MemoryBackend) {
	blobs := memorystorage.NewMemoryBackend()
	svc := service.NewPostService(memoryrepo.NewPostRepository(), blobs)
	handler := api.NewPostHandler(svc, testBaseURL)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Mount("/posts", handler.Routes())
	})
	return r, blobs
}

// postForm builds a multipart request body. A non-empty imageName attaches an
// image file under that name.
func postForm(t *testing.T, fields map[string]string, imageName string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doRequest(router chi.Router, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createTestPost(t *testing.T, router chi.Router, title string) api.PostResource {
	t.Helper()

	body, contentType := postForm(t, map[string]string{
		"title":    title,
		"content":  "some content",
		"author":   "tester",
		"category": "general",
	}, "photo.jpg")

	rec := doRequest(router, http.MethodPost, "/api/posts", body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.Success)

	var post api.PostResource
	require.NoError(t, json.Unmarshal(env.Data, &post))
	return post
}

func TestPostHandler_Create(t *testing.T) {
	router, blobs := newPostRouter()

	post := createTestPost(t, router, "hello world")

	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, "Hello world", post.Title, "title is capitalized on read")
	assert.True(t, strings.HasPrefix(post.Image, testBaseURL+"/storage/posts/"), post.Image)
	assert.Len(t, blobs.Keys(), 1)
}

func TestPostHandler_CreateValidationFailure(t *testing.T) {
	router, blobs := newPostRouter()

	body, contentType := postForm(t, map[string]string{
		"content":  "some content",
		"author":   "tester",
		"category": "general",
	}, "photo.jpg")

	rec := doRequest(router, http.MethodPost, "/api/posts", body, contentType)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Contains(t, fields, "title")

	// No storage side effect
	assert.Empty(t, blobs.Keys())
	rec = doRequest(router, http.MethodGet, "/api/posts", nil, "")
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var page postPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(0), page.Pagination.TotalItems)
}

func TestPostHandler_CreateRequiresImage(t *testing.T) {
	router, _ := newPostRouter()

	body, contentType := postForm(t, map[string]string{
		"title":    "no image",
		"content":  "c",
		"author":   "a",
		"category": "x",
	}, "")

	rec := doRequest(router, http.MethodPost, "/api/posts", body, contentType)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Contains(t, fields, "image")
}

func TestPostHandler_CreateRejectsBadImageType(t *testing.T) {
	router, _ := newPostRouter()

	body, contentType := postForm(t, map[string]string{
		"title":    "bad image",
		"content":  "c",
		"author":   "a",
		"category": "x",
	}, "script.exe")

	rec := doRequest(router, http.MethodPost, "/api/posts", body, contentType)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Contains(t, fields, "image")
}

func TestPostHandler_ListPagination(t *testing.T) {
	router, _ := newPostRouter()

	for i := 0; i < 7; i++ {
		createTestPost(t, router, fmt.Sprintf("post %d", i))
	}

	rec := doRequest(router, http.MethodGet, "/api/posts?page=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "Data posts retrieved successfully", env.Message)

	var page postPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Posts, 5)
	assert.Equal(t, 1, page.Pagination.CurrentPage)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, 5, page.Pagination.PerPage)
	assert.Equal(t, int64(7), page.Pagination.TotalItems)
	assert.NotNil(t, page.Pagination.NextPageURL)
	assert.Nil(t, page.Pagination.PrevPageURL)

	rec = doRequest(router, http.MethodGet, "/api/posts?page=2", nil, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Posts, 2)
	assert.Nil(t, page.Pagination.NextPageURL)
	assert.NotNil(t, page.Pagination.PrevPageURL)
}

func TestPostHandler_GetUsesApproximatePage(t *testing.T) {
	router, _ := newPostRouter()

	for i := 0; i < 7; i++ {
		createTestPost(t, router, fmt.Sprintf("post %d", i))
	}

	// id 6 lands on page 2 by the id-based approximation
	rec := doRequest(router, http.MethodGet, "/api/posts/6", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Post retrieved successfully", env.Message)

	var page postPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Posts, 1)
	assert.Equal(t, int64(6), page.Posts[0].ID)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, int64(7), page.Pagination.TotalItems)
}

func TestPostHandler_GetNotFound(t *testing.T) {
	router, _ := newPostRouter()

	rec := doRequest(router, http.MethodGet, "/api/posts/99", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Post not found", env.Message)
}

func TestPostHandler_UpdateWithoutImagePreservesIt(t *testing.T) {
	router, blobs := newPostRouter()

	created := createTestPost(t, router, "before")

	body, contentType := postForm(t, map[string]string{
		"title":    "after",
		"content":  "new content",
		"author":   "tester",
		"category": "general",
	}, "")

	rec := doRequest(router, http.MethodPut, "/api/posts/1", body, contentType)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var post api.PostResource
	require.NoError(t, json.Unmarshal(env.Data, &post))

	assert.Equal(t, "After", post.Title)
	assert.Equal(t, created.Image, post.Image)
	assert.Len(t, blobs.Keys(), 1)
}

func TestPostHandler_UpdateWithBase64Image(t *testing.T) {
	router, blobs := newPostRouter()

	created := createTestPost(t, router, "before")

	encoded := base64.StdEncoding.EncodeToString([]byte("new image bytes"))
	payload, err := json.Marshal(map[string]string{
		"title":    "after",
		"content":  "c",
		"author":   "a",
		"category": "x",
		"image":    "data:image/png;base64," + encoded,
	})
	require.NoError(t, err)

	rec := doRequest(router, http.MethodPut, "/api/posts/1", bytes.NewReader(payload), "application/json")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var post api.PostResource
	require.NoError(t, json.Unmarshal(env.Data, &post))

	assert.NotEqual(t, created.Image, post.Image)
	assert.True(t, strings.HasSuffix(post.Image, ".png"))
	assert.Len(t, blobs.Keys(), 1, "old blob replaced, not accumulated")
}

func TestPostHandler_UpdateWithBase64ImageSpacesNormalized(t *testing.T) {
	router, _ := newPostRouter()

	createTestPost(t, router, "before")

	// '+' characters corrupted into spaces by a form-encoded transport
	encoded := base64.StdEncoding.EncodeToString([]byte{0xfb, 0xff, 0xbf, 0xfe})
	require.Contains(t, encoded, "+")
	corrupted := strings.ReplaceAll(encoded, "+", " ")

	payload, err := json.Marshal(map[string]string{
		"title":    "after",
		"content":  "c",
		"author":   "a",
		"category": "x",
		"image":    "data:image/jpeg;base64," + corrupted,
	})
	require.NoError(t, err)

	rec := doRequest(router, http.MethodPut, "/api/posts/1", bytes.NewReader(payload), "application/json")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPostHandler_UpdateNotFound(t *testing.T) {
	router, _ := newPostRouter()

	body, contentType := postForm(t, map[string]string{
		"title":    "t",
		"content":  "c",
		"author":   "a",
		"category": "x",
	}, "")

	rec := doRequest(router, http.MethodPut, "/api/posts/42", body, contentType)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostHandler_Delete(t *testing.T) {
	router, blobs := newPostRouter()

	createTestPost(t, router, "to delete")

	rec := doRequest(router, http.MethodDelete, "/api/posts/1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "null", strings.TrimSpace(string(env.Data)))

	assert.Empty(t, blobs.Keys(), "blob purged with the row")

	rec = doRequest(router, http.MethodGet, "/api/posts/1", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
