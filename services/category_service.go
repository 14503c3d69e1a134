package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"oscarpool/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	categoryTreeKey = "categories:tree"
	categoryTreeTTL = 5 * time.Minute
)

type CategoryService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCategoryService(db *gorm.DB, redis *redis.Client) *CategoryService {
	return &CategoryService{db: db, redis: redis}
}

type CategoryWithNominees struct {
	models.Category
	Nominees []models.Nominee `json:"nominees"`
	WinnerID *uint            `json:"winner_id"`
}

type BulkImportItem struct {
	Name     string   `json:"name" binding:"required"`
	Nominees []string `json:"nominees" binding:"required"`
}

type BulkImportResult struct {
	CategoriesCreated int `json:"categories_created"`
	NomineesCreated   int `json:"nominees_created"`
}

func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("display_order ASC, id ASC").Find(&categories).Error
	return categories, err
}

func (s *CategoryService) GetCategoryByID(categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// GetCategoriesWithNominees returns every category with its nominees and the
// announced winner, ordered for display. Always reads the database.
func (s *CategoryService) GetCategoriesWithNominees() ([]CategoryWithNominees, error) {
	var categories []models.Category
	err := s.db.Order("display_order ASC, id ASC").
		Preload("Nominees", func(db *gorm.DB) *gorm.DB {
			return db.Order("nominees.id")
		}).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	result := make([]CategoryWithNominees, 0, len(categories))
	for _, category := range categories {
		entry := CategoryWithNominees{Category: category, Nominees: category.Nominees}
		entry.Category.Nominees = nil
		for _, nominee := range entry.Nominees {
			if nominee.IsWinner {
				id := nominee.ID
				entry.WinnerID = &id
				break
			}
		}
		result = append(result, entry)
	}

	return result, nil
}

// GetCategoriesWithNomineesCached serves the public prediction form. It tries
// the Redis copy first and falls back to the database, repopulating the cache
// on a miss. Leaderboard scoring never goes through here.
func (s *CategoryService) GetCategoriesWithNomineesCached() ([]CategoryWithNominees, error) {
	if cached := s.getCachedTree(); cached != nil {
		return cached, nil
	}

	result, err := s.GetCategoriesWithNominees()
	if err != nil {
		return nil, err
	}

	s.storeCachedTree(result)
	return result, nil
}

func (s *CategoryService) CreateCategory(name string) (*models.Category, error) {
	var maxOrder int
	if err := s.db.Model(&models.Category{}).
		Select("COALESCE(MAX(display_order), -1)").
		Scan(&maxOrder).Error; err != nil {
		return nil, err
	}

	category := models.Category{
		Name:         name,
		DisplayOrder: maxOrder + 1,
	}

	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}

	s.invalidateCache()
	return &category, nil
}

func (s *CategoryService) UpdateCategory(categoryID uint, name string, displayOrder *int) (*models.Category, error) {
	category, err := s.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"name": name}
	if displayOrder != nil {
		updates["display_order"] = *displayOrder
	}

	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidateCache()
	return s.GetCategoryByID(categoryID)
}

// ReorderCategories rewrites display order from the position of each id in
// the given sequence. The sequence must cover every current category;
// a partial list would leave the relative order ambiguous, so it is rejected.
func (s *CategoryService) ReorderCategories(orderedIDs []uint) error {
	categories, err := s.GetAllCategories()
	if err != nil {
		return err
	}

	if len(orderedIDs) != len(categories) {
		return ErrPartialReorder
	}
	known := make(map[uint]bool, len(categories))
	for _, category := range categories {
		known[category.ID] = true
	}
	seen := make(map[uint]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] || seen[id] {
			return ErrPartialReorder
		}
		seen[id] = true
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for position, id := range orderedIDs {
		if err := tx.Model(&models.Category{}).Where("id = ?", id).
			Update("display_order", position).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}

func (s *CategoryService) DeleteCategory(categoryID uint) error {
	if _, err := s.GetCategoryByID(categoryID); err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("category_id = ?", categoryID).Delete(&models.Prediction{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("category_id = ?", categoryID).Delete(&models.Nominee{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&models.Category{}, categoryID).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}

func (s *CategoryService) GetNomineesByCategory(categoryID uint) ([]models.Nominee, error) {
	var nominees []models.Nominee
	err := s.db.Where("category_id = ?", categoryID).Order("id ASC").Find(&nominees).Error
	return nominees, err
}

func (s *CategoryService) GetNomineeByID(nomineeID uint) (*models.Nominee, error) {
	var nominee models.Nominee
	if err := s.db.First(&nominee, nomineeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNomineeNotFound
		}
		return nil, err
	}
	return &nominee, nil
}

func (s *CategoryService) AddNominee(categoryID uint, name string) (*models.Nominee, error) {
	if _, err := s.GetCategoryByID(categoryID); err != nil {
		return nil, err
	}

	var existing models.Nominee
	if err := s.db.Where("category_id = ? AND name = ?", categoryID, name).
		First(&existing).Error; err == nil {
		return nil, ErrNomineeExists
	}

	nominee := models.Nominee{
		CategoryID: categoryID,
		Name:       name,
	}

	if err := s.db.Create(&nominee).Error; err != nil {
		return nil, err
	}

	s.invalidateCache()
	return &nominee, nil
}

func (s *CategoryService) DeleteNominee(nomineeID uint) error {
	if _, err := s.GetNomineeByID(nomineeID); err != nil {
		return err
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("nominee_id = ?", nomineeID).Delete(&models.Prediction{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&models.Nominee{}, nomineeID).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}

// SetWinner marks a nominee as the announced outcome for its category.
// The clear and the set run inside one transaction so no reader can see
// two winners, or a half-flipped category, in the same category.
func (s *CategoryService) SetWinner(categoryID, nomineeID uint) error {
	nominee, err := s.GetNomineeByID(nomineeID)
	if err != nil {
		return err
	}
	if nominee.CategoryID != categoryID {
		return ErrNomineeMismatch
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.Nominee{}).Where("category_id = ?", categoryID).
		Update("is_winner", false).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&models.Nominee{}).
		Where("id = ? AND category_id = ?", nomineeID, categoryID).
		Update("is_winner", true).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}

func (s *CategoryService) ClearWinner(categoryID uint) error {
	if _, err := s.GetCategoryByID(categoryID); err != nil {
		return err
	}

	if err := s.db.Model(&models.Nominee{}).Where("category_id = ?", categoryID).
		Update("is_winner", false).Error; err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}

func (s *CategoryService) GetWinnerByCategory(categoryID uint) (*models.Nominee, error) {
	var nominee models.Nominee
	err := s.db.Where("category_id = ? AND is_winner = ?", categoryID, true).
		First(&nominee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &nominee, nil
}

// BulkImport creates categories with their nominees in the given order.
// A duplicate nominee name inside a category skips that nominee without
// aborting its siblings or the rest of the batch; the result reports how
// many rows were actually created.
func (s *CategoryService) BulkImport(items []BulkImportItem) (*BulkImportResult, error) {
	result := &BulkImportResult{}

	for _, item := range items {
		category, err := s.CreateCategory(item.Name)
		if err != nil {
			return nil, err
		}
		result.CategoriesCreated++

		for _, nomineeName := range item.Nominees {
			if _, err := s.AddNominee(category.ID, nomineeName); err != nil {
				if errors.Is(err, ErrNomineeExists) {
					continue
				}
				return nil, err
			}
			result.NomineesCreated++
		}
	}

	s.invalidateCache()
	return result, nil
}

func (s *CategoryService) getCachedTree() []CategoryWithNominees {
	if s.redis == nil {
		return nil
	}

	data, err := s.redis.Get(context.Background(), categoryTreeKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting category tree: %v", err)
		}
		return nil
	}

	var tree []CategoryWithNominees
	if err := json.Unmarshal([]byte(data), &tree); err != nil {
		log.Printf("Failed to unmarshal cached category tree: %v", err)
		return nil
	}

	return tree
}

func (s *CategoryService) storeCachedTree(tree []CategoryWithNominees) {
	if s.redis == nil {
		return
	}

	data, err := json.Marshal(tree)
	if err != nil {
		log.Printf("Failed to marshal category tree: %v", err)
		return
	}

	if err := s.redis.Set(context.Background(), categoryTreeKey, data, categoryTreeTTL).Err(); err != nil {
		log.Printf("Failed to store category tree in Redis: %v", err)
	}
}

func (s *CategoryService) invalidateCache() {
	if s.redis == nil {
		return
	}

	if err := s.redis.Del(context.Background(), categoryTreeKey).Err(); err != nil {
		log.Printf("Failed to invalidate category tree cache: %v", err)
	}
}
