package catalog

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/mrlokans/bookworld/internal/entities"
)

func validateAuthorDTO(dto *AuthorDTO) error {
	if dto == nil {
		return fmt.Errorf("%w: author payload is required", ErrInvalid)
	}
	if dto.Name == "" || utf8.RuneCountInString(dto.Name) > maxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalid, maxNameLength)
	}
	if utf8.RuneCountInString(dto.Country) > maxNameLength {
		return fmt.Errorf("%w: country must be at most %d characters", ErrInvalid, maxNameLength)
	}
	return nil
}

func (s *Service) CreateAuthor(dto *AuthorDTO) (*AuthorDTO, error) {
	if err := validateAuthorDTO(dto); err != nil {
		return nil, err
	}

	author := entities.Author{
		Name:    dto.Name,
		Country: dto.Country,
	}
	if err := s.db.Create(&author).Error; err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return s.GetAuthor(author.ID)
}

func (s *Service) GetAuthor(id uint) (*AuthorDTO, error) {
	var author entities.Author
	err := s.db.Preload("Books").First(&author, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := mapAuthor(author)
	return &dto, nil
}

func (s *Service) GetAllAuthors() ([]AuthorDTO, error) {
	var authors []entities.Author
	if err := s.db.Preload("Books").Order("id").Find(&authors).Error; err != nil {
		return nil, err
	}
	return lo.Map(authors, func(a entities.Author, _ int) AuthorDTO {
		return mapAuthor(a)
	}), nil
}

func (s *Service) UpdateAuthor(id uint, dto *AuthorDTO) (*AuthorDTO, error) {
	if err := validateAuthorDTO(dto); err != nil {
		return nil, err
	}

	var author entities.Author
	if err := s.db.First(&author, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	author.Name = dto.Name
	author.Country = dto.Country
	if err := s.db.Select("name", "country", "updated_at").Save(&author).Error; err != nil {
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	return s.GetAuthor(id)
}

// DeleteAuthor removes the author row. An author that still has books
// fails the foreign key constraint; the service does not pre-check.
func (s *Service) DeleteAuthor(id uint) error {
	var author entities.Author
	if err := s.db.First(&author, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Delete(&author).Error
}
