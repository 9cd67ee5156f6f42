package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookworld/internal/catalog"
)

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{
		store: store,
	}
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books, err := controller.store.GetAllBooks()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (controller *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.store.GetBook(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var dto catalog.BookDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := controller.store.CreateBook(&dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (controller *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var dto catalog.BookDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := controller.store.UpdateBook(id, &dto)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.store.DeleteBook(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListBooksByRelation serves /api/books/author/:relatedId and
// /api/books/genre/:relatedId. Both share one route because Gin's router
// cannot mix the ":id" wildcard with static "author"/"genre" segments.
func (controller *BooksController) ListBooksByRelation(c *gin.Context) {
	relatedID, ok := parseIDParam(c, "relatedId")
	if !ok {
		return
	}

	switch c.Param("id") {
	case "author":
		controller.listBooksByAuthor(c, relatedID)
	case "genre":
		controller.listBooksByGenre(c, relatedID)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	}
}

func (controller *BooksController) listBooksByAuthor(c *gin.Context, authorID uint) {
	books, err := controller.store.ListBooksByAuthor(authorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// listBooksByGenre answers 404 for a genre with no books, matching the
// documented contract for this one lookup.
func (controller *BooksController) listBooksByGenre(c *gin.Context, genreID uint) {
	books, err := controller.store.ListBooksByGenre(genreID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if len(books) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no books found for genre"})
		return
	}
	c.JSON(http.StatusOK, books)
}
