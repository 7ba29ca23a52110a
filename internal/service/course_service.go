package service

import (
	"context"
	"coursegpt_backend/internal/course"
	"coursegpt_backend/internal/model"
	"coursegpt_backend/internal/repository"
	"coursegpt_backend/internal/util"
	"coursegpt_backend/pkg/logger"
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CourseService stores courses built from existing lessons. The ordering
// rules live in package course; this service loads, applies and saves.
type CourseService struct {
	CourseRepo *repository.CourseRepository
	Lessons    *LessonService
	Timeout    time.Duration

	now func() time.Time
}

func NewCourseService(courseRepo *repository.CourseRepository, lessons *LessonService, timeout time.Duration) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		Lessons:    lessons,
		Timeout:    timeout,
		now:        time.Now,
	}
}

func (s *CourseService) Create(ctx context.Context, in model.CourseInput) (*model.Course, error) {
	lessons, err := s.resolveLessons(ctx, in.LessonIDs)
	if err != nil {
		return nil, err
	}

	draft := course.Draft{
		Title:         strings.TrimSpace(in.Title),
		Description:   strings.TrimSpace(in.Description),
		Difficulty:    strings.TrimSpace(in.Difficulty),
		EstimatedTime: strings.TrimSpace(in.EstimatedTime),
	}
	for _, l := range lessons {
		draft = course.AddLesson(draft, l)
	}
	if missing := course.Validate(draft); len(missing) > 0 {
		return nil, util.NewValidationError("Please provide a course title and select at least one lesson", missing...)
	}

	now := s.now()
	c := &model.Course{}
	c.ID = model.GenerateUUID()
	c.CreatedAt = now
	c.UpdatedAt = now
	applyDraft(c, draft)

	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.CourseRepo.Create(ctx, c); err != nil {
		return nil, storeError("create course", err)
	}

	logger.Log.Info("course created", zap.String("id", c.ID), zap.Int("lessons", len(c.Lessons)))
	return c, nil
}

// resolveLessons looks up ids in the lesson store, keeping their order.
// Any unknown id fails the whole call.
func (s *CourseService) resolveLessons(ctx context.Context, ids []string) ([]model.CourseLesson, error) {
	ids = lo.Uniq(ids)
	found, err := s.Lessons.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	unknown := lo.Filter(ids, func(id string, _ int) bool {
		_, ok := found[id]
		return !ok
	})
	if len(unknown) > 0 {
		return nil, util.NewValidationError("Unknown lesson ids: "+strings.Join(unknown, ", "), "lessonIds")
	}

	return lo.Map(ids, func(id string, _ int) model.CourseLesson {
		return course.LessonRef(*found[id])
	}), nil
}

func (s *CourseService) List(ctx context.Context) ([]*model.Course, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	courses, err := s.CourseRepo.FindAll(ctx)
	if err != nil {
		return nil, storeError("list courses", err)
	}
	for _, c := range courses {
		c.TotalEstimatedHours = course.TotalEstimatedHours(c.Lessons)
	}
	return courses, nil
}

// GetByID returns the course with its lesson entries refreshed from the
// lesson store. Entries whose lesson has been deleted are left out.
func (s *CourseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	c, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.refresh(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) find(ctx context.Context, id string) (*model.Course, error) {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	c, err := s.CourseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("Course", id)
		}
		return nil, storeError("get course", err)
	}
	return c, nil
}

func (s *CourseService) refresh(ctx context.Context, c *model.Course) error {
	ids := lo.Map(c.Lessons, func(l model.CourseLesson, _ int) string { return l.LessonID })
	found, err := s.Lessons.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	c.Lessons = lo.FilterMap(c.Lessons, func(l model.CourseLesson, _ int) (model.CourseLesson, bool) {
		lesson, ok := found[l.LessonID]
		if !ok {
			return model.CourseLesson{}, false
		}
		return course.LessonRef(*lesson), true
	})
	c.TotalEstimatedHours = course.TotalEstimatedHours(c.Lessons)
	return nil
}

func (s *CourseService) Update(ctx context.Context, id string, patch model.CoursePatch) (*model.Course, error) {
	return s.mutate(ctx, id, "update course", func(d course.Draft) (course.Draft, error) {
		if patch.Title != nil {
			d.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			d.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Difficulty != nil {
			d.Difficulty = strings.TrimSpace(*patch.Difficulty)
		}
		if patch.EstimatedTime != nil {
			d.EstimatedTime = strings.TrimSpace(*patch.EstimatedTime)
		}
		if patch.LessonIDs != nil {
			lessons, err := s.resolveLessons(ctx, *patch.LessonIDs)
			if err != nil {
				return d, err
			}
			d.Lessons = nil
			for _, l := range lessons {
				d = course.AddLesson(d, l)
			}
		}
		return d, nil
	})
}

// AddLesson appends a stored lesson to the course. A lesson already in the
// course stays where it is.
func (s *CourseService) AddLesson(ctx context.Context, id, lessonID string) (*model.Course, error) {
	return s.mutate(ctx, id, "add course lesson", func(d course.Draft) (course.Draft, error) {
		lesson, err := s.Lessons.GetByID(ctx, lessonID)
		if err != nil {
			return d, err
		}
		return course.AddLesson(d, course.LessonRef(*lesson)), nil
	})
}

func (s *CourseService) RemoveLesson(ctx context.Context, id, lessonID string) (*model.Course, error) {
	return s.mutate(ctx, id, "remove course lesson", func(d course.Draft) (course.Draft, error) {
		return course.RemoveLesson(d, lessonID), nil
	})
}

func (s *CourseService) Reorder(ctx context.Context, id string, from, to int) (*model.Course, error) {
	return s.mutate(ctx, id, "reorder course", func(d course.Draft) (course.Draft, error) {
		out, err := course.Reorder(d, from, to)
		if err != nil {
			return d, util.NewValidationError(err.Error(), "fromIndex", "toIndex")
		}
		return out, nil
	})
}

func (s *CourseService) Optimize(ctx context.Context, id string) (*model.Course, error) {
	return s.mutate(ctx, id, "optimize course", func(d course.Draft) (course.Draft, error) {
		return course.OptimizeSequence(d), nil
	})
}

// mutate loads a course, applies fn to it as a builder draft and saves the
// result. A course must keep its title and at least one lesson.
func (s *CourseService) mutate(ctx context.Context, id, op string, fn func(course.Draft) (course.Draft, error)) (*model.Course, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	draft, err := fn(toDraft(c))
	if err != nil {
		return nil, err
	}
	// at least one lesson is only required at creation
	if strings.TrimSpace(draft.Title) == "" {
		return nil, util.NewValidationError("Please provide a course title", "title")
	}
	applyDraft(c, draft)

	saveCtx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.CourseRepo.Save(saveCtx, c); err != nil {
		return nil, storeError(op, err)
	}

	logger.Log.Info("course changed", zap.String("id", id), zap.String("op", op))
	return c, nil
}

func (s *CourseService) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()

	rows, err := s.CourseRepo.Delete(ctx, id)
	if err != nil {
		return storeError("delete course", err)
	}
	if rows == 0 {
		return util.NewNotFoundError("Course", id)
	}

	logger.Log.Info("course deleted", zap.String("id", id))
	return nil
}

// Available lists the stored lessons that are not yet in the course,
// optionally narrowed to one difficulty.
func (s *CourseService) Available(ctx context.Context, id, difficulty string) ([]model.CourseLesson, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lessons, err := s.Lessons.List(ctx)
	if err != nil {
		return nil, err
	}

	draft := toDraft(c)
	return lo.FilterMap(lessons, func(l *model.Lesson, _ int) (model.CourseLesson, bool) {
		if course.Contains(draft, l.ID) {
			return model.CourseLesson{}, false
		}
		if difficulty != "" && !strings.EqualFold(l.Category, difficulty) {
			return model.CourseLesson{}, false
		}
		return course.LessonRef(*l), true
	}), nil
}

func toDraft(c *model.Course) course.Draft {
	return course.Draft{
		Title:         c.Title,
		Description:   c.Description,
		Difficulty:    c.Difficulty,
		EstimatedTime: c.EstimatedTime,
		Lessons:       c.Lessons,
	}
}

func applyDraft(c *model.Course, d course.Draft) {
	c.Title = d.Title
	c.Description = d.Description
	c.Difficulty = d.Difficulty
	c.EstimatedTime = d.EstimatedTime
	c.Lessons = d.Lessons
	if c.Lessons == nil {
		c.Lessons = []model.CourseLesson{}
	}
	c.TotalEstimatedHours = course.TotalEstimatedHours(c.Lessons)
}
