package entities

import (
	"time"
)

// Author is the "one" side of the Author->Books relation. Names are unique
// at the schema level so concurrent creates cannot produce duplicate rows.
type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Country   string    `gorm:"size:50" json:"country,omitempty"`
	Books     []Book    `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Book struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Title        string      `gorm:"index;size:100;not null" json:"title"`
	AuthorID     uint        `gorm:"index;not null" json:"author_id"`
	IsBestSeller bool        `gorm:"default:false" json:"is_best_seller"`
	Author       Author      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	BookGenres   []BookGenre `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book_genres,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type Genre struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Name       string      `gorm:"uniqueIndex;size:50;not null" json:"name"`
	BookGenres []BookGenre `gorm:"foreignKey:GenreID" json:"book_genres,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// BookGenre is the Book<->Genre join row. The composite key makes the
// association itself the identity; there are no extra attributes.
// Deleting a Book cascades here, deleting a referenced Genre is refused.
type BookGenre struct {
	BookID  uint  `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	GenreID uint  `gorm:"primaryKey;autoIncrement:false" json:"genre_id"`
	Book    Book  `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	Genre   Genre `gorm:"foreignKey:GenreID" json:"-"`
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

func (Genre) TableName() string {
	return "genres"
}

func (BookGenre) TableName() string {
	return "book_genres"
}
