package catalog

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-sqlite3"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookworld/internal/entities"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrInvalid  = errors.New("invalid input")
)

const (
	maxTitleLength = 100
	maxNameLength  = 50
)

// Service translates between DTOs and the entity graph. Multi-step writes
// run in a single transaction, so a failed book create never leaves
// behind the author row it resolved on the way.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// IsConstraintViolation reports whether err is a database constraint
// failure, e.g. deleting an author that still has books.
func IsConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}

// getOrCreateAuthor resolves an author by exact name, inserting a row when
// none exists. The insert uses ON CONFLICT DO NOTHING against the unique
// name index, so two concurrent resolutions of the same name converge on
// one row instead of racing into duplicates.
func getOrCreateAuthor(tx *gorm.DB, name string) (*entities.Author, error) {
	var author entities.Author
	err := tx.Where("name = ?", name).First(&author).Error
	if err == nil {
		return &author, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	author = entities.Author{Name: name}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&author).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create author %q: %w", name, err)
	}
	if author.ID != 0 {
		return &author, nil
	}

	// Conflict: somebody else inserted the row first, fetch theirs.
	if err := tx.Where("name = ?", name).First(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func getOrCreateGenre(tx *gorm.DB, name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := tx.Where("name = ?", name).First(&genre).Error
	if err == nil {
		return &genre, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	genre = entities.Genre{Name: name}
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&genre).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create genre %q: %w", name, err)
	}
	if genre.ID != 0 {
		return &genre, nil
	}

	if err := tx.Where("name = ?", name).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// replaceBookGenres wipes the association rows for a book and re-creates
// them from the given list. Duplicate names are collapsed to the first
// occurrence, so one request can never trip the composite-key constraint.
func replaceBookGenres(tx *gorm.DB, bookID uint, genreNames []string) error {
	if err := tx.Where("book_id = ?", bookID).Delete(&entities.BookGenre{}).Error; err != nil {
		return fmt.Errorf("failed to clear genre associations: %w", err)
	}

	for _, name := range lo.Uniq(genreNames) {
		genre, err := getOrCreateGenre(tx, name)
		if err != nil {
			return err
		}
		link := entities.BookGenre{BookID: bookID, GenreID: genre.ID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link genre %q: %w", name, err)
		}
	}
	return nil
}

func validateBookDTO(dto *BookDTO) error {
	if dto == nil {
		return fmt.Errorf("%w: book payload is required", ErrInvalid)
	}
	if dto.Title == "" || utf8.RuneCountInString(dto.Title) > maxTitleLength {
		return fmt.Errorf("%w: title must be 1-%d characters", ErrInvalid, maxTitleLength)
	}
	if dto.AuthorName == "" || utf8.RuneCountInString(dto.AuthorName) > maxNameLength {
		return fmt.Errorf("%w: author name must be 1-%d characters", ErrInvalid, maxNameLength)
	}
	for _, name := range dto.Genres {
		if name == "" || utf8.RuneCountInString(name) > maxNameLength {
			return fmt.Errorf("%w: genre names must be 1-%d characters", ErrInvalid, maxNameLength)
		}
	}
	return nil
}

// CreateBook materializes a consistent Book + Author + association graph
// from a DTO. Authors and genres are matched by exact, case-sensitive name
// and created when absent, so a single create may add several rows.
func (s *Service) CreateBook(dto *BookDTO) (*BookDTO, error) {
	if err := validateBookDTO(dto); err != nil {
		return nil, err
	}

	var bookID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		author, err := getOrCreateAuthor(tx, dto.AuthorName)
		if err != nil {
			return err
		}

		book := entities.Book{
			Title:        dto.Title,
			AuthorID:     author.ID,
			IsBestSeller: dto.IsBestSeller,
		}
		if err := tx.Create(&book).Error; err != nil {
			return fmt.Errorf("failed to create book: %w", err)
		}
		bookID = book.ID

		return replaceBookGenres(tx, book.ID, dto.Genres)
	})
	if err != nil {
		return nil, err
	}

	return s.GetBook(bookID)
}

// UpdateBook overwrites title, author reference and best-seller flag, and
// fully replaces the genre association set. Genres dropped from the list
// lose their association rows; the genre rows themselves stay.
func (s *Service) UpdateBook(id uint, dto *BookDTO) (*BookDTO, error) {
	if err := validateBookDTO(dto); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		author, err := getOrCreateAuthor(tx, dto.AuthorName)
		if err != nil {
			return err
		}

		book.Title = dto.Title
		book.AuthorID = author.ID
		book.IsBestSeller = dto.IsBestSeller
		if err := tx.Select("title", "author_id", "is_best_seller", "updated_at").Save(&book).Error; err != nil {
			return fmt.Errorf("failed to update book: %w", err)
		}

		return replaceBookGenres(tx, book.ID, dto.Genres)
	})
	if err != nil {
		return nil, err
	}

	return s.GetBook(id)
}

// DeleteBook removes the book and its association rows. Authors and genres
// are never removed, even when the delete orphans them.
func (s *Service) DeleteBook(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		if err := tx.First(&book, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.BookGenre{}).Error; err != nil {
			return fmt.Errorf("failed to delete genre associations: %w", err)
		}
		if err := tx.Delete(&book).Error; err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		return nil
	})
}

func (s *Service) GetBook(id uint) (*BookDTO, error) {
	var book entities.Book
	err := s.bookQuery().First(&book, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapBook(book)
	return &dto, nil
}

func (s *Service) GetAllBooks() ([]BookDTO, error) {
	var books []entities.Book
	if err := s.bookQuery().Order("books.id").Find(&books).Error; err != nil {
		return nil, err
	}
	return lo.Map(books, func(b entities.Book, _ int) BookDTO {
		return mapBook(b)
	}), nil
}

// ListBooksByAuthor returns the books of one author; unknown author ids
// yield an empty list, not an error.
func (s *Service) ListBooksByAuthor(authorID uint) ([]BookDTO, error) {
	var books []entities.Book
	err := s.bookQuery().
		Where("books.author_id = ?", authorID).
		Order("books.id").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return lo.Map(books, func(b entities.Book, _ int) BookDTO {
		return mapBook(b)
	}), nil
}

func (s *Service) ListBooksByGenre(genreID uint) ([]BookDTO, error) {
	var books []entities.Book
	err := s.bookQuery().
		Joins("JOIN book_genres bg ON bg.book_id = books.id").
		Where("bg.genre_id = ?", genreID).
		Order("books.id").
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return lo.Map(books, func(b entities.Book, _ int) BookDTO {
		return mapBook(b)
	}), nil
}

func (s *Service) ListGenresByBook(bookID uint) ([]GenreDTO, error) {
	var genres []entities.Genre
	err := s.genreQuery().
		Joins("JOIN book_genres bg ON bg.genre_id = genres.id").
		Where("bg.book_id = ?", bookID).
		Order("genres.id").
		Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return lo.Map(genres, func(g entities.Genre, _ int) GenreDTO {
		return mapGenre(g)
	}), nil
}

// bookQuery preloads everything a BookDTO needs. Association rows are
// ordered by insertion so genre lists round-trip predictably.
func (s *Service) bookQuery() *gorm.DB {
	return s.db.
		Preload("Author").
		Preload("BookGenres", func(db *gorm.DB) *gorm.DB {
			return db.Order("rowid")
		}).
		Preload("BookGenres.Genre")
}

func (s *Service) genreQuery() *gorm.DB {
	return s.db.
		Preload("BookGenres", func(db *gorm.DB) *gorm.DB {
			return db.Order("rowid")
		}).
		Preload("BookGenres.Book")
}

func mapBook(book entities.Book) BookDTO {
	return BookDTO{
		ID:         book.ID,
		Title:      book.Title,
		AuthorName: book.Author.Name,
		Genres: lo.Map(book.BookGenres, func(bg entities.BookGenre, _ int) string {
			return bg.Genre.Name
		}),
		IsBestSeller: book.IsBestSeller,
	}
}

func mapAuthor(author entities.Author) AuthorDTO {
	return AuthorDTO{
		ID:      author.ID,
		Name:    author.Name,
		Country: author.Country,
		BookTitles: lo.Map(author.Books, func(b entities.Book, _ int) string {
			return b.Title
		}),
	}
}

func mapGenre(genre entities.Genre) GenreDTO {
	return GenreDTO{
		ID:   genre.ID,
		Name: genre.Name,
		BookTitles: lo.Map(genre.BookGenres, func(bg entities.BookGenre, _ int) string {
			return bg.Book.Title
		}),
	}
}
