package repository

import (
	"context"
	"coursegpt_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Create(lesson).Error
}

// FindAll returns every lesson, newest first.
func (r *LessonRepository) FindAll(ctx context.Context) ([]*model.Lesson, error) {
	var lessons []*model.Lesson
	err := r.DB.WithContext(ctx).Order("created_at DESC").Order("id").Find(&lessons).Error
	return lessons, err
}

// FindByCategory returns the lessons of one category, newest first.
func (r *LessonRepository) FindByCategory(ctx context.Context, category string) ([]*model.Lesson, error) {
	var lessons []*model.Lesson
	err := r.DB.WithContext(ctx).Where("category = ?", category).
		Order("created_at DESC").Order("id").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) FindByID(ctx context.Context, id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&lesson).Error
	return &lesson, err
}

// FindByIDs returns the lessons with the given ids in no particular order.
// Unknown ids are skipped.
func (r *LessonRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Lesson, error) {
	var lessons []*model.Lesson
	if len(ids) == 0 {
		return lessons, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) Save(ctx context.Context, lesson *model.Lesson) error {
	return r.DB.WithContext(ctx).Save(lesson).Error
}

// Delete removes the lesson row and reports how many rows went away.
func (r *LessonRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Lesson{})
	return result.RowsAffected, result.Error
}
