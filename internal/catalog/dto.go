// Package catalog implements the data-mapping layer between the relational
// schema and the transport DTOs, including the Book<->Genre association
// synchronization on create and update.
package catalog

// BookDTO is the wire representation of a book. Genres carries names, not
// ids; the service resolves them against the genres table, creating rows
// for names it has never seen.
type BookDTO struct {
	ID           uint     `json:"id"`
	Title        string   `json:"title" binding:"required,max=100"`
	AuthorName   string   `json:"authorName" binding:"required,max=50"`
	Genres       []string `json:"genres"`
	IsBestSeller bool     `json:"isBestSeller"`
}

type AuthorDTO struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name" binding:"required,max=50"`
	Country    string   `json:"country" binding:"max=50"`
	BookTitles []string `json:"bookTitles"`
}

type GenreDTO struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name" binding:"required,max=50"`
	BookTitles []string `json:"bookTitles"`
}
