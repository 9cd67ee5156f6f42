package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookworld/internal/auth"
	"github.com/mrlokans/bookworld/internal/catalog"
)

// AdminController serves the server-rendered book management surface.
// All routes are registered behind the admin role gate.
type AdminController struct {
	books  BookStore
	genres GenreStore
}

func NewAdminController(books BookStore, genres GenreStore) *AdminController {
	return &AdminController{
		books:  books,
		genres: genres,
	}
}

func (controller *AdminController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/books", controller.BooksPage)
	group.GET("/books/new", controller.NewBookPage)
	group.POST("/books/new", controller.CreateBook)
	group.GET("/books/edit/:id", controller.EditBookPage)
	group.POST("/books/edit/:id", controller.UpdateBook)
	group.GET("/books/delete/:id", controller.DeleteBookPage)
	group.POST("/books/delete/:id", controller.DeleteBook)
}

// allGenreNames collects genre names for the form's selection list.
func (controller *AdminController) allGenreNames() []string {
	genres, err := controller.genres.GetAllGenres()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

func (controller *AdminController) BooksPage(c *gin.Context) {
	books, err := controller.books.GetAllBooks()
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading books: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "admin-books.html", gin.H{
		"Title":    "Books",
		"Books":    books,
		"Message":  c.Query("message"),
		"Error":    c.Query("error"),
		"Username": auth.GetUsername(c),
	})
}

func (controller *AdminController) NewBookPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin-book-form.html", gin.H{
		"Title":     "New Book",
		"Book":      catalog.BookDTO{},
		"AllGenres": controller.allGenreNames(),
		"Action":    "/admin/books/new",
		"CSRFToken": auth.GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

func (controller *AdminController) CreateBook(c *gin.Context) {
	dto := bookFromForm(c)

	if _, err := controller.books.CreateBook(dto); err != nil {
		c.HTML(http.StatusBadRequest, "admin-book-form.html", gin.H{
			"Title":     "New Book",
			"Book":      *dto,
			"AllGenres": controller.allGenreNames(),
			"Action":    "/admin/books/new",
			"CSRFToken": auth.GetCSRFToken(c),
			"Error":     err.Error(),
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/books?message="+url.QueryEscape("Book created successfully!"))
}

func (controller *AdminController) EditBookPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetBook(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin-book-form.html", gin.H{
		"Title":     "Edit Book",
		"Book":      *book,
		"AllGenres": controller.allGenreNames(),
		"Action":    "/admin/books/edit/" + c.Param("id"),
		"CSRFToken": auth.GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

func (controller *AdminController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	dto := bookFromForm(c)

	if _, err := controller.books.UpdateBook(id, dto); err != nil {
		dto.ID = id
		c.HTML(http.StatusBadRequest, "admin-book-form.html", gin.H{
			"Title":     "Edit Book",
			"Book":      *dto,
			"AllGenres": controller.allGenreNames(),
			"Action":    "/admin/books/edit/" + c.Param("id"),
			"CSRFToken": auth.GetCSRFToken(c),
			"Error":     err.Error(),
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/books?message="+url.QueryEscape("Book updated successfully!"))
}

func (controller *AdminController) DeleteBookPage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.books.GetBook(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin-book-delete.html", gin.H{
		"Title":     "Delete Book",
		"Book":      *book,
		"CSRFToken": auth.GetCSRFToken(c),
	})
}

func (controller *AdminController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := controller.books.DeleteBook(id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/admin/books?message="+url.QueryEscape("Book deleted successfully!"))
}

// bookFromForm builds a BookDTO from the admin form. Genres arrive as a
// multi-value form field, one value per selected genre.
func bookFromForm(c *gin.Context) *catalog.BookDTO {
	return &catalog.BookDTO{
		Title:        c.PostForm("title"),
		AuthorName:   c.PostForm("authorName"),
		Genres:       c.PostFormArray("genres"),
		IsBestSeller: c.PostForm("isBestSeller") == "on",
	}
}
