package app

import (
	"context"
	"strings"

	"mushroom-trivia/internal/domain"
)

const charactersPerPage = 12

// CharacterInput carries the admin-submitted fields for a character.
type CharacterInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// CharacterService exposes the public listing and the admin CRUD for characters.
type CharacterService struct {
	characters CharacterRepository
}

func NewCharacterService(characters CharacterRepository) *CharacterService {
	return &CharacterService{characters: characters}
}

// List returns one newest-first page of characters.
func (s *CharacterService) List(ctx context.Context, page int) (Page[domain.Character], error) {
	if page < 1 {
		page = 1
	}
	items, total, err := s.characters.List(ctx, (page-1)*charactersPerPage, charactersPerPage)
	if err != nil {
		return Page[domain.Character]{}, err
	}
	return Page[domain.Character]{Items: items, Page: page, PerPage: charactersPerPage, Total: total}, nil
}

// Featured returns the n most recently added characters for the home page.
func (s *CharacterService) Featured(ctx context.Context, n int) ([]domain.Character, error) {
	items, _, err := s.characters.List(ctx, 0, n)
	return items, err
}

func (s *CharacterService) Get(ctx context.Context, id int64) (domain.Character, error) {
	return s.characters.Get(ctx, id)
}

func (s *CharacterService) Create(ctx context.Context, input CharacterInput) (domain.Character, error) {
	if err := validateCharacter(input); err != nil {
		return domain.Character{}, err
	}
	character := domain.Character{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
	}
	if err := s.characters.Create(ctx, &character); err != nil {
		return domain.Character{}, err
	}
	return character, nil
}

func (s *CharacterService) Update(ctx context.Context, id int64, input CharacterInput) (domain.Character, error) {
	if err := validateCharacter(input); err != nil {
		return domain.Character{}, err
	}
	character, err := s.characters.Get(ctx, id)
	if err != nil {
		return domain.Character{}, err
	}
	character.Name = strings.TrimSpace(input.Name)
	character.Description = strings.TrimSpace(input.Description)
	character.ImageURL = strings.TrimSpace(input.ImageURL)
	if err := s.characters.Update(ctx, &character); err != nil {
		return domain.Character{}, err
	}
	return character, nil
}

func (s *CharacterService) Delete(ctx context.Context, id int64) error {
	return s.characters.Delete(ctx, id)
}

func validateCharacter(input CharacterInput) error {
	var errs domain.ValidationErrors
	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, domain.ValidationError{Field: "name", Message: "Character name is required."})
	} else if len(input.Name) > 255 {
		errs = append(errs, domain.ValidationError{Field: "name", Message: "Character name may not exceed 255 characters."})
	}
	if strings.TrimSpace(input.Description) == "" {
		errs = append(errs, domain.ValidationError{Field: "description", Message: "Character description is required."})
	}
	if len(input.ImageURL) > 2048 {
		errs = append(errs, domain.ValidationError{Field: "image_url", Message: "Image URL may not exceed 2048 characters."})
	}
	return errs.OrNil()
}
