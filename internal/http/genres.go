package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookworld/internal/catalog"
)

type GenresController struct {
	store GenreStore
}

func NewGenresController(store GenreStore) *GenresController {
	return &GenresController{
		store: store,
	}
}

func (controller *GenresController) GetAllGenres(c *gin.Context) {
	genres, err := controller.store.GetAllGenres()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

func (controller *GenresController) GetGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	genre, err := controller.store.GetGenre(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}

func (controller *GenresController) CreateGenre(c *gin.Context) {
	var dto catalog.GenreDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := controller.store.CreateGenre(&dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

func (controller *GenresController) UpdateGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var dto catalog.GenreDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := controller.store.UpdateGenre(id, &dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}

func (controller *GenresController) DeleteGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.store.DeleteGenre(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGenresByBook serves /api/genres/book/:relatedId. The route shares
// the ":id" wildcard with the single-genre lookup for the same reason the
// book relations do.
func (controller *GenresController) ListGenresByBook(c *gin.Context) {
	if c.Param("id") != "book" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	bookID, ok := parseIDParam(c, "relatedId")
	if !ok {
		return
	}

	genres, err := controller.store.ListGenresByBook(bookID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}
