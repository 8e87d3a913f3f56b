package catalog

import (
	"log/slog"
	"strings"

	"github.com/Adprivat/praxislabor/internal"
	catalogDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	ListCategories(activeOnly bool) ([]*catalogDatamodel.ActivityCategory, error)
	ListBlocks(activeOnly bool) ([]*catalogDatamodel.ActivityBlock, error)
	GetCategory(id int64) (*catalogDatamodel.ActivityCategory, error)
	GetTag(id int64) (*catalogDatamodel.ActivityTag, error)
	GetBlock(id int64) (*catalogDatamodel.ActivityBlock, error)
	CountCategories() (int64, error)
	CountTags(categoryID int64) (int64, error)
	CountBlocks(categoryID int64) (int64, error)
	CreateCategory(category *catalogDatamodel.ActivityCategory) error
	CreateTag(tag *catalogDatamodel.ActivityTag) error
	CreateBlock(block *catalogDatamodel.ActivityBlock) error
	SetCategoryActive(id int64, active bool) error
	SetTagActive(id int64, active bool) error
	SetBlockActive(id int64, active bool) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// AdminCatalog returns the full catalog, inactive rows included.
func (s *Service) AdminCatalog() (*Catalog, error) {
	return s.catalog(false)
}

// ActiveCatalog returns active categories (with active tags) and active
// blocks for the entry pickers.
func (s *Service) ActiveCatalog() (*Catalog, error) {
	return s.catalog(true)
}

func (s *Service) catalog(activeOnly bool) (*Catalog, error) {
	categoryRows, err := s.repo.ListCategories(activeOnly)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, err
	}

	blockRows, err := s.repo.ListBlocks(activeOnly)
	if err != nil {
		s.logger.Error("failed to list blocks", "error", err)
		return nil, err
	}

	result := &Catalog{
		Categories: make([]Category, 0, len(categoryRows)),
		Blocks:     make([]Block, 0, len(blockRows)),
	}
	for _, row := range categoryRows {
		result.Categories = append(result.Categories, CategoryFromDataModel(row))
	}
	for _, row := range blockRows {
		result.Blocks = append(result.Blocks, BlockFromDataModel(row))
	}
	return result, nil
}

func (s *Service) CreateCategory(dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	count, err := s.repo.CountCategories()
	if err != nil {
		return nil, err
	}

	record := &catalogDatamodel.ActivityCategory{
		Name:        strings.TrimSpace(dto.Name),
		Description: dto.Description,
		Color:       dto.Color,
		SortOrder:   int(count) + 1,
		Active:      true,
	}
	if err := s.repo.CreateCategory(record); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", record.Name)
		return nil, err
	}

	s.logger.Info("category created", "category_id", record.ID, "name", record.Name)
	category := CategoryFromDataModel(record)
	return &category, nil
}

func (s *Service) CreateTag(dto CreateTagDTO) (*Tag, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if _, err := s.repo.GetCategory(dto.CategoryID); err != nil {
		return nil, internal.ErrCategoryNotFound
	}

	count, err := s.repo.CountTags(dto.CategoryID)
	if err != nil {
		return nil, err
	}

	record := &catalogDatamodel.ActivityTag{
		Name:        strings.TrimSpace(dto.Name),
		Description: dto.Description,
		CategoryID:  &dto.CategoryID,
		SortOrder:   int(count) + 1,
		Active:      true,
	}
	if err := s.repo.CreateTag(record); err != nil {
		s.logger.Error("failed to create tag", "error", err, "name", record.Name)
		return nil, err
	}

	s.logger.Info("tag created", "tag_id", record.ID, "category_id", dto.CategoryID)
	tag := TagFromDataModel(record)
	return &tag, nil
}

func (s *Service) CreateBlock(dto CreateBlockDTO) (*Block, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if _, err := s.repo.GetCategory(dto.CategoryID); err != nil {
		return nil, internal.ErrCategoryNotFound
	}
	if dto.TagID != nil {
		if _, err := s.repo.GetTag(*dto.TagID); err != nil {
			return nil, internal.ErrTagNotFound
		}
	}

	count, err := s.repo.CountBlocks(dto.CategoryID)
	if err != nil {
		return nil, err
	}

	record := &catalogDatamodel.ActivityBlock{
		Label:       strings.TrimSpace(dto.Label),
		CategoryID:  dto.CategoryID,
		TagID:       dto.TagID,
		Description: dto.Description,
		IsBillable:  dto.IsBillable,
		SortOrder:   int(count) + 1,
		Active:      true,
	}
	if err := s.repo.CreateBlock(record); err != nil {
		s.logger.Error("failed to create block", "error", err, "label", record.Label)
		return nil, err
	}

	s.logger.Info("block created", "block_id", record.ID, "category_id", dto.CategoryID, "billable", dto.IsBillable)
	block := BlockFromDataModel(record)
	return &block, nil
}

func (s *Service) ToggleCategory(id int64, active bool) error {
	if _, err := s.repo.GetCategory(id); err != nil {
		return internal.ErrCategoryNotFound
	}
	if err := s.repo.SetCategoryActive(id, active); err != nil {
		s.logger.Error("failed to toggle category", "error", err, "category_id", id)
		return err
	}
	s.logger.Info("category toggled", "category_id", id, "active", active)
	return nil
}

func (s *Service) ToggleTag(id int64, active bool) error {
	if _, err := s.repo.GetTag(id); err != nil {
		return internal.ErrTagNotFound
	}
	if err := s.repo.SetTagActive(id, active); err != nil {
		s.logger.Error("failed to toggle tag", "error", err, "tag_id", id)
		return err
	}
	s.logger.Info("tag toggled", "tag_id", id, "active", active)
	return nil
}

func (s *Service) ToggleBlock(id int64, active bool) error {
	if _, err := s.repo.GetBlock(id); err != nil {
		return internal.ErrBlockNotFound
	}
	if err := s.repo.SetBlockActive(id, active); err != nil {
		s.logger.Error("failed to toggle block", "error", err, "block_id", id)
		return err
	}
	s.logger.Info("block toggled", "block_id", id, "active", active)
	return nil
}
