package repository

import (
	"context"
	"coursegpt_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Create(course).Error
}

func (r *CourseRepository) FindAll(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	err := r.DB.WithContext(ctx).Order("created_at DESC").Order("id").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&course).Error
	return &course, err
}

func (r *CourseRepository) Save(ctx context.Context, course *model.Course) error {
	return r.DB.WithContext(ctx).Save(course).Error
}

func (r *CourseRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Course{})
	return result.RowsAffected, result.Error
}
