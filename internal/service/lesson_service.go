package service

import (
	"context"
	"coursegpt_backend/internal/model"
	"coursegpt_backend/internal/repository"
	"coursegpt_backend/internal/util"
	"coursegpt_backend/pkg/logger"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo *repository.LessonRepository
	Cache      LessonCache
	Timeout    time.Duration

	now func() time.Time
}

func NewLessonService(lessonRepo *repository.LessonRepository, cache LessonCache, timeout time.Duration) *LessonService {
	if cache == nil {
		cache = noopLessonCache{}
	}
	return &LessonService{
		LessonRepo: lessonRepo,
		Cache:      cache,
		Timeout:    timeout,
		now:        time.Now,
	}
}

// Create validates input, fills in defaults and stores a new lesson.
// Subtopic order always follows array position.
func (s *LessonService) Create(ctx context.Context, in model.LessonInput) (*model.Lesson, error) {
	if missing := missingLessonFields(in); len(missing) > 0 {
		return nil, util.NewValidationError("Invalid lesson data: missing "+strings.Join(missing, ", "), missing...)
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = util.DefaultCategory
	}
	level := model.NormalizeLevel(in.Level)
	if level == "" {
		level = util.DefaultLevel
	}
	subtopics := model.BuildSubTopics(in.Subtopics)
	duration := in.Duration
	if duration <= 0 {
		duration = model.TotalDuration(subtopics)
	}

	now := s.now()
	lesson := &model.Lesson{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Level:       level,
		Duration:    duration,
		Subtopics:   subtopics,
	}
	lesson.ID = model.GenerateUUID()
	lesson.CreatedAt = now
	lesson.UpdatedAt = now

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.LessonRepo.Create(ctx, lesson); err != nil {
		return nil, storeError("create lesson", err)
	}

	logger.Log.Info("lesson created", zap.String("id", lesson.ID), zap.Int("subtopics", len(lesson.Subtopics)))
	return lesson, nil
}

func missingLessonFields(in model.LessonInput) []string {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if len(in.Subtopics) == 0 {
		missing = append(missing, "subtopics")
	}
	return missing
}

// ListByCategory returns the lessons whose category matches exactly, newest
// first. An empty category or "all" lists every lesson.
func (s *LessonService) ListByCategory(ctx context.Context, category string) ([]*model.Lesson, error) {
	category = strings.TrimSpace(category)
	if category == "" || category == "all" {
		return s.List(ctx)
	}

	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	lessons, err := s.LessonRepo.FindByCategory(ctx, category)
	if err != nil {
		return nil, storeError("list lessons", err)
	}
	return lessons, nil
}

// List returns all lessons, newest first.
func (s *LessonService) List(ctx context.Context) ([]*model.Lesson, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	lessons, err := s.LessonRepo.FindAll(ctx)
	if err != nil {
		return nil, storeError("list lessons", err)
	}
	return lessons, nil
}

func (s *LessonService) GetByID(ctx context.Context, id string) (*model.Lesson, error) {
	if lesson, ok := s.Cache.Get(ctx, id); ok {
		return lesson, nil
	}

	lesson, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, lesson)
	return lesson, nil
}

func (s *LessonService) find(ctx context.Context, id string) (*model.Lesson, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	lesson, err := s.LessonRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("Lesson", id)
		}
		return nil, storeError("get lesson", err)
	}
	return lesson, nil
}

// Update merges the supplied fields over the stored lesson. Supplied
// subtopics replace the stored ones and are renumbered.
func (s *LessonService) Update(ctx context.Context, id string, patch model.LessonPatch) (*model.Lesson, error) {
	lesson, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		lesson.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		lesson.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		lesson.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Level != nil {
		lesson.Level = model.NormalizeLevel(*patch.Level)
	}
	if patch.Subtopics != nil {
		lesson.Subtopics = model.BuildSubTopics(*patch.Subtopics)
	}
	if patch.Duration != nil {
		lesson.Duration = *patch.Duration
	}

	if err := lesson.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.LessonRepo.Save(ctx, lesson); err != nil {
		return nil, storeError("update lesson", err)
	}
	s.Cache.Invalidate(ctx, id)

	logger.Log.Info("lesson updated", zap.String("id", id))
	return lesson, nil
}

// DeleteByID removes a lesson for good. Deleting an unknown or already
// deleted lesson is a NotFoundError.
func (s *LessonService) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	rows, err := s.LessonRepo.Delete(ctx, id)
	if err != nil {
		return storeError("delete lesson", err)
	}
	s.Cache.Invalidate(ctx, id)
	if rows == 0 {
		return util.NewNotFoundError("Lesson", id)
	}

	logger.Log.Info("lesson deleted", zap.String("id", id))
	return nil
}

// FindByIDs returns the stored lessons among ids, keyed by id.
func (s *LessonService) FindByIDs(ctx context.Context, ids []string) (map[string]*model.Lesson, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	lessons, err := s.LessonRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("find lessons", err)
	}
	byID := make(map[string]*model.Lesson, len(lessons))
	for _, l := range lessons {
		byID[l.ID] = l
	}
	return byID, nil
}
