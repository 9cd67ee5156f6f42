package catalog

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/mrlokans/bookworld/internal/entities"
)

func validateGenreDTO(dto *GenreDTO) error {
	if dto == nil {
		return fmt.Errorf("%w: genre payload is required", ErrInvalid)
	}
	if dto.Name == "" || utf8.RuneCountInString(dto.Name) > maxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalid, maxNameLength)
	}
	return nil
}

func (s *Service) CreateGenre(dto *GenreDTO) (*GenreDTO, error) {
	if err := validateGenreDTO(dto); err != nil {
		return nil, err
	}

	genre := entities.Genre{Name: dto.Name}
	if err := s.db.Create(&genre).Error; err != nil {
		return nil, fmt.Errorf("failed to create genre: %w", err)
	}

	return s.GetGenre(genre.ID)
}

func (s *Service) GetGenre(id uint) (*GenreDTO, error) {
	var genre entities.Genre
	err := s.genreQuery().First(&genre, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapGenre(genre)
	return &dto, nil
}

func (s *Service) GetAllGenres() ([]GenreDTO, error) {
	var genres []entities.Genre
	if err := s.genreQuery().Order("id").Find(&genres).Error; err != nil {
		return nil, err
	}
	return lo.Map(genres, func(g entities.Genre, _ int) GenreDTO {
		return mapGenre(g)
	}), nil
}

func (s *Service) UpdateGenre(id uint, dto *GenreDTO) (*GenreDTO, error) {
	if err := validateGenreDTO(dto); err != nil {
		return nil, err
	}

	var genre entities.Genre
	if err := s.db.First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	genre.Name = dto.Name
	if err := s.db.Select("name", "updated_at").Save(&genre).Error; err != nil {
		return nil, fmt.Errorf("failed to update genre: %w", err)
	}

	return s.GetGenre(id)
}

// DeleteGenre removes the genre row. A genre still linked to books fails
// the foreign key constraint on the association table.
func (s *Service) DeleteGenre(id uint) error {
	var genre entities.Genre
	if err := s.db.First(&genre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Delete(&genre).Error
}
