package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doForm(t *testing.T, router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAdminUI_BooksPage(t *testing.T) {
	router, svc := setupTestRouter(t)
	createTestBook(t, svc, "Dune", "Frank Herbert", "Science Fiction")

	w := doJSON(t, router, "GET", "/admin/books", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")
	assert.Contains(t, w.Body.String(), "Frank Herbert")
}

func TestAdminUI_CreateBook(t *testing.T) {
	router, svc := setupTestRouter(t)

	t.Run("renders the form", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/admin/books/new", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "New Book")
	})

	t.Run("creates from form fields", func(t *testing.T) {
		w := doForm(t, router, "/admin/books/new", url.Values{
			"title":        {"Dune"},
			"authorName":   {"Frank Herbert"},
			"genres":       {"Science Fiction", "Adventure"},
			"isBestSeller": {"on"},
		})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "/admin/books")

		books, err := svc.GetAllBooks()
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].Title)
		assert.Equal(t, []string{"Science Fiction", "Adventure"}, books[0].Genres)
		assert.True(t, books[0].IsBestSeller)
	})

	t.Run("re-renders the form on invalid input", func(t *testing.T) {
		w := doForm(t, router, "/admin/books/new", url.Values{
			"title":      {""},
			"authorName": {"Someone"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "title")
	})
}

func TestAdminUI_EditBook(t *testing.T) {
	router, svc := setupTestRouter(t)
	book := createTestBook(t, svc, "Hyperion", "Dan Simmons", "Science Fiction", "Horror")

	t.Run("renders the form with current values", func(t *testing.T) {
		w := doJSON(t, router, "GET", fmt.Sprintf("/admin/books/edit/%d", book.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Hyperion")
	})

	t.Run("updates from form fields", func(t *testing.T) {
		w := doForm(t, router, fmt.Sprintf("/admin/books/edit/%d", book.ID), url.Values{
			"title":      {"Hyperion"},
			"authorName": {"Dan Simmons"},
			"genres":     {"Science Fiction"},
		})
		require.Equal(t, http.StatusFound, w.Code)

		updated, err := svc.GetBook(book.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Science Fiction"}, updated.Genres)
	})

	t.Run("unknown id yields 404", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/admin/books/edit/9999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAdminUI_DeleteBook(t *testing.T) {
	router, svc := setupTestRouter(t)
	book := createTestBook(t, svc, "Solaris", "Stanislaw Lem", "Science Fiction")

	t.Run("renders the confirmation page", func(t *testing.T) {
		w := doJSON(t, router, "GET", fmt.Sprintf("/admin/books/delete/%d", book.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Solaris")
	})

	t.Run("deletes on confirmation", func(t *testing.T) {
		w := doForm(t, router, fmt.Sprintf("/admin/books/delete/%d", book.ID), url.Values{})
		require.Equal(t, http.StatusFound, w.Code)

		books, err := svc.GetAllBooks()
		require.NoError(t, err)
		assert.Empty(t, books)
	})
}

func TestRootRedirectsToAdmin(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "GET", "/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/books", w.Header().Get("Location"))
}
