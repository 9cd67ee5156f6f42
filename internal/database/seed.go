package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/mrlokans/bookworld/internal/entities"
)

var seedAuthors = []entities.Author{
	{ID: 1, Name: "Jane Austen", Country: "United Kingdom"},
	{ID: 2, Name: "George Orwell", Country: "United Kingdom"},
	{ID: 3, Name: "Agatha Christie", Country: "United Kingdom"},
	{ID: 4, Name: "J.K. Rowling", Country: "United Kingdom"},
	{ID: 5, Name: "Ernest Hemingway", Country: "United States"},
	{ID: 6, Name: "Stephen King", Country: "United States"},
	{ID: 7, Name: "Toni Morrison", Country: "United States"},
	{ID: 8, Name: "Mark Twain", Country: "United States"},
	{ID: 9, Name: "Virginia Woolf", Country: "United Kingdom"},
	{ID: 10, Name: "Isaac Asimov", Country: "United States"},
	{ID: 11, Name: "Mary Shelley", Country: "United Kingdom"},
	{ID: 12, Name: "Charles Dickens", Country: "United Kingdom"},
}

var seedGenres = []entities.Genre{
	{ID: 1, Name: "Fiction"},
	{ID: 2, Name: "Non-Fiction"},
	{ID: 3, Name: "Mystery"},
	{ID: 4, Name: "Fantasy"},
	{ID: 5, Name: "Science Fiction"},
	{ID: 6, Name: "Romance"},
	{ID: 7, Name: "Historical"},
	{ID: 8, Name: "Biography"},
	{ID: 9, Name: "Thriller"},
	{ID: 10, Name: "Adventure"},
	{ID: 11, Name: "Horror"},
	{ID: 12, Name: "Self-Help"},
}

var seedBooks = []entities.Book{
	{ID: 1, AuthorID: 1, Title: "Pride and Prejudice"},
	{ID: 2, AuthorID: 2, Title: "1984"},
	{ID: 3, AuthorID: 3, Title: "Murder on the Orient Express"},
	{ID: 4, AuthorID: 4, Title: "Harry Potter and the Philosopher's Stone"},
	{ID: 5, AuthorID: 5, Title: "The Old Man and the Sea"},
	{ID: 6, AuthorID: 6, Title: "The Shining"},
	{ID: 7, AuthorID: 7, Title: "Beloved"},
	{ID: 8, AuthorID: 8, Title: "The Adventures of Tom Sawyer"},
	{ID: 9, AuthorID: 9, Title: "Mrs. Dalloway"},
	{ID: 10, AuthorID: 10, Title: "Foundation"},
	{ID: 11, AuthorID: 11, Title: "Frankenstein"},
	{ID: 12, AuthorID: 12, Title: "Great Expectations"},
}

var seedBookGenres = []entities.BookGenre{
	{BookID: 1, GenreID: 1},
	{BookID: 2, GenreID: 2},
	{BookID: 3, GenreID: 3},
	{BookID: 4, GenreID: 4},
	{BookID: 5, GenreID: 7},
	{BookID: 6, GenreID: 11},
	{BookID: 7, GenreID: 8},
	{BookID: 8, GenreID: 10},
	{BookID: 9, GenreID: 1},
	{BookID: 10, GenreID: 5},
	{BookID: 11, GenreID: 11},
	{BookID: 12, GenreID: 1},
}

// SeedCatalog loads the starter catalog. It is safe to call on every
// start: when any book already exists the seed is skipped entirely.
func (d *Database) SeedCatalog() error {
	var count int64
	if err := d.DB.Model(&entities.Book{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}
	if count > 0 {
		return nil
	}

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		for _, author := range seedAuthors {
			a := author
			if err := tx.Create(&a).Error; err != nil {
				return fmt.Errorf("failed to seed author %q: %w", author.Name, err)
			}
		}
		for _, genre := range seedGenres {
			g := genre
			if err := tx.Create(&g).Error; err != nil {
				return fmt.Errorf("failed to seed genre %q: %w", genre.Name, err)
			}
		}
		for _, book := range seedBooks {
			b := book
			if err := tx.Create(&b).Error; err != nil {
				return fmt.Errorf("failed to seed book %q: %w", book.Title, err)
			}
		}
		for _, bg := range seedBookGenres {
			row := bg
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to seed association %d->%d: %w", bg.BookID, bg.GenreID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("Seeded catalog: %d authors, %d genres, %d books", len(seedAuthors), len(seedGenres), len(seedBooks))
	return nil
}
