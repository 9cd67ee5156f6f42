package http

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookworld/internal/catalog"
)

func TestAuthorsAPI_CRUD(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(t, router, "POST", "/api/authors", catalog.AuthorDTO{
		Name:    "Octavia Butler",
		Country: "United States",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[catalog.AuthorDTO](t, w)
	require.NotZero(t, created.ID)

	t.Run("get", func(t *testing.T) {
		w := doJSON(t, router, "GET", fmt.Sprintf("/api/authors/%d", created.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		fetched := decodeBody[catalog.AuthorDTO](t, w)
		assert.Equal(t, "Octavia Butler", fetched.Name)
	})

	t.Run("get unknown yields 404", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/authors/9999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		w := doJSON(t, router, "PUT", fmt.Sprintf("/api/authors/%d", created.ID), catalog.AuthorDTO{
			Name:    "O. E. Butler",
			Country: "USA",
		})
		require.Equal(t, http.StatusOK, w.Code)
		updated := decodeBody[catalog.AuthorDTO](t, w)
		assert.Equal(t, "O. E. Butler", updated.Name)
	})

	t.Run("create without a name yields 400", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/authors", map[string]any{"country": "Nowhere"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate name yields 409", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/authors", catalog.AuthorDTO{Name: "O. E. Butler"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, router, "DELETE", fmt.Sprintf("/api/authors/%d", created.ID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, router, "GET", fmt.Sprintf("/api/authors/%d", created.ID), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAuthorsAPI_DeleteReferenced(t *testing.T) {
	router, svc := setupTestRouter(t)
	createTestBook(t, svc, "Kindred", "Octavia Butler", "Science Fiction")

	authors := decodeBody[[]catalog.AuthorDTO](t, doJSON(t, router, "GET", "/api/authors", nil))
	require.Len(t, authors, 1)

	w := doJSON(t, router, "DELETE", fmt.Sprintf("/api/authors/%d", authors[0].ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
