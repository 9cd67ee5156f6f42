package http

import (
	"github.com/mrlokans/bookworld/internal/auth"
	"github.com/mrlokans/bookworld/internal/catalog"
	"github.com/mrlokans/bookworld/internal/config"
	"github.com/mrlokans/bookworld/internal/database"
)

// BookStore is the catalog surface the book controllers depend on.
type BookStore interface {
	CreateBook(dto *catalog.BookDTO) (*catalog.BookDTO, error)
	UpdateBook(id uint, dto *catalog.BookDTO) (*catalog.BookDTO, error)
	DeleteBook(id uint) error
	GetBook(id uint) (*catalog.BookDTO, error)
	GetAllBooks() ([]catalog.BookDTO, error)
	ListBooksByAuthor(authorID uint) ([]catalog.BookDTO, error)
	ListBooksByGenre(genreID uint) ([]catalog.BookDTO, error)
}

type AuthorStore interface {
	CreateAuthor(dto *catalog.AuthorDTO) (*catalog.AuthorDTO, error)
	UpdateAuthor(id uint, dto *catalog.AuthorDTO) (*catalog.AuthorDTO, error)
	DeleteAuthor(id uint) error
	GetAuthor(id uint) (*catalog.AuthorDTO, error)
	GetAllAuthors() ([]catalog.AuthorDTO, error)
}

type GenreStore interface {
	CreateGenre(dto *catalog.GenreDTO) (*catalog.GenreDTO, error)
	UpdateGenre(id uint, dto *catalog.GenreDTO) (*catalog.GenreDTO, error)
	DeleteGenre(id uint) error
	GetGenre(id uint) (*catalog.GenreDTO, error)
	GetAllGenres() ([]catalog.GenreDTO, error)
	ListGenresByBook(bookID uint) ([]catalog.GenreDTO, error)
}

// RouterConfig carries all router dependencies, improving testability and
// keeping NewRouter's signature stable as the surface grows.
type RouterConfig struct {
	Catalog  *catalog.Service
	Database *database.Database

	TemplatesPath string
	StaticPath    string
	Version       string

	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool
}
