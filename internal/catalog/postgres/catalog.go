package postgres

import (
	"github.com/Adprivat/praxislabor/internal/catalog"
	catalogDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/catalog"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListCategories(activeOnly bool) ([]*catalogDatamodel.ActivityCategory, error) {
	var categories []*catalogDatamodel.ActivityCategory
	query := r.db.Order("sort_order ASC")
	if activeOnly {
		query = query.Where("active = ?", true).
			Preload("Tags", func(db *gorm.DB) *gorm.DB {
				return db.Where("active = ?", true).Order("sort_order ASC")
			})
	} else {
		query = query.Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
	}
	err := query.Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) ListBlocks(activeOnly bool) ([]*catalogDatamodel.ActivityBlock, error) {
	var blocks []*catalogDatamodel.ActivityBlock
	query := r.db.Preload("Category").Preload("Tag").Order("category_id ASC, sort_order ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Find(&blocks).Error
	return blocks, err
}

func (r *CatalogRepository) GetCategory(id int64) (*catalogDatamodel.ActivityCategory, error) {
	var category catalogDatamodel.ActivityCategory
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) GetTag(id int64) (*catalogDatamodel.ActivityTag, error) {
	var tag catalogDatamodel.ActivityTag
	if err := r.db.Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *CatalogRepository) GetBlock(id int64) (*catalogDatamodel.ActivityBlock, error) {
	var block catalogDatamodel.ActivityBlock
	if err := r.db.Where("id = ?", id).First(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *CatalogRepository) CountCategories() (int64, error) {
	var count int64
	err := r.db.Model(&catalogDatamodel.ActivityCategory{}).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) CountTags(categoryID int64) (int64, error) {
	var count int64
	err := r.db.Model(&catalogDatamodel.ActivityTag{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) CountBlocks(categoryID int64) (int64, error) {
	var count int64
	err := r.db.Model(&catalogDatamodel.ActivityBlock{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *CatalogRepository) CreateCategory(category *catalogDatamodel.ActivityCategory) error {
	return r.db.Create(category).Error
}

func (r *CatalogRepository) CreateTag(tag *catalogDatamodel.ActivityTag) error {
	return r.db.Create(tag).Error
}

func (r *CatalogRepository) CreateBlock(block *catalogDatamodel.ActivityBlock) error {
	return r.db.Create(block).Error
}

func (r *CatalogRepository) SetCategoryActive(id int64, active bool) error {
	return r.db.Model(&catalogDatamodel.ActivityCategory{}).Where("id = ?", id).Update("active", active).Error
}

func (r *CatalogRepository) SetTagActive(id int64, active bool) error {
	return r.db.Model(&catalogDatamodel.ActivityTag{}).Where("id = ?", id).Update("active", active).Error
}

func (r *CatalogRepository) SetBlockActive(id int64, active bool) error {
	return r.db.Model(&catalogDatamodel.ActivityBlock{}).Where("id = ?", id).Update("active", active).Error
}
