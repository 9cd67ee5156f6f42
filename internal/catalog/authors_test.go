package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorCRUD(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.CreateAuthor(&AuthorDTO{Name: "Octavia Butler", Country: "United States"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	t.Run("get returns the stored author", func(t *testing.T) {
		fetched, err := svc.GetAuthor(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Octavia Butler", fetched.Name)
		assert.Equal(t, "United States", fetched.Country)
		assert.Empty(t, fetched.BookTitles)
	})

	t.Run("get includes book titles", func(t *testing.T) {
		_, err := svc.CreateBook(&BookDTO{
			Title:      "Kindred",
			AuthorName: "Octavia Butler",
			Genres:     []string{"Science Fiction"},
		})
		require.NoError(t, err)

		fetched, err := svc.GetAuthor(created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Kindred"}, fetched.BookTitles)
	})

	t.Run("update changes name and country", func(t *testing.T) {
		updated, err := svc.UpdateAuthor(created.ID, &AuthorDTO{Name: "O. E. Butler", Country: "USA"})
		require.NoError(t, err)
		assert.Equal(t, "O. E. Butler", updated.Name)
		assert.Equal(t, "USA", updated.Country)
	})

	t.Run("update rejects an empty name", func(t *testing.T) {
		_, err := svc.UpdateAuthor(created.ID, &AuthorDTO{Name: ""})
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("update of unknown id returns ErrNotFound", func(t *testing.T) {
		_, err := svc.UpdateAuthor(9999, &AuthorDTO{Name: "Ghost"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete is refused while books reference the author", func(t *testing.T) {
		err := svc.DeleteAuthor(created.ID)
		require.Error(t, err)
		assert.True(t, IsConstraintViolation(err))
	})

	t.Run("delete succeeds once the books are gone", func(t *testing.T) {
		books, err := svc.ListBooksByAuthor(created.ID)
		require.NoError(t, err)
		for _, b := range books {
			require.NoError(t, svc.DeleteBook(b.ID))
		}

		require.NoError(t, svc.DeleteAuthor(created.ID))
		_, err = svc.GetAuthor(created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete of unknown id returns ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteAuthor(9999), ErrNotFound)
	})
}
