package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreCRUD(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.CreateGenre(&GenreDTO{Name: "Cyberpunk"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	t.Run("get returns the stored genre", func(t *testing.T) {
		fetched, err := svc.GetGenre(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cyberpunk", fetched.Name)
		assert.Empty(t, fetched.BookTitles)
	})

	t.Run("get includes book titles", func(t *testing.T) {
		_, err := svc.CreateBook(&BookDTO{
			Title:      "Neuromancer",
			AuthorName: "William Gibson",
			Genres:     []string{"Cyberpunk"},
		})
		require.NoError(t, err)

		fetched, err := svc.GetGenre(created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Neuromancer"}, fetched.BookTitles)
	})

	t.Run("create rejects a duplicate name", func(t *testing.T) {
		_, err := svc.CreateGenre(&GenreDTO{Name: "Cyberpunk"})
		require.Error(t, err)
		assert.True(t, IsConstraintViolation(err))
	})

	t.Run("update changes the name", func(t *testing.T) {
		updated, err := svc.UpdateGenre(created.ID, &GenreDTO{Name: "Cyber-punk"})
		require.NoError(t, err)
		assert.Equal(t, "Cyber-punk", updated.Name)
	})

	t.Run("update of unknown id returns ErrNotFound", func(t *testing.T) {
		_, err := svc.UpdateGenre(9999, &GenreDTO{Name: "Ghost"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete is refused while books reference the genre", func(t *testing.T) {
		err := svc.DeleteGenre(created.ID)
		require.Error(t, err)
		assert.True(t, IsConstraintViolation(err))
	})

	t.Run("delete succeeds once the associations are gone", func(t *testing.T) {
		books, err := svc.ListBooksByGenre(created.ID)
		require.NoError(t, err)
		for _, b := range books {
			require.NoError(t, svc.DeleteBook(b.ID))
		}

		require.NoError(t, svc.DeleteGenre(created.ID))
		_, err = svc.GetGenre(created.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete of unknown id returns ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteGenre(9999), ErrNotFound)
	})
}
