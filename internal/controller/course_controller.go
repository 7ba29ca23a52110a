package controller

import (
	"coursegpt_backend/internal/model"
	"coursegpt_backend/internal/service"
	"coursegpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

type AddCourseLessonRequest struct {
	LessonID string `json:"lessonId" binding:"required"`
}

type ReorderRequest struct {
	FromIndex *int `json:"fromIndex" binding:"required"`
	ToIndex   *int `json:"toIndex" binding:"required"`
}

// CreateCourse godoc
// @Summary Create a course
// @Description Builds a course from stored lessons, in the given order
// @Tags Courses
// @Accept json
// @Produce json
// @Param request body model.CourseInput true "Course"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req model.CourseInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid course data")
		return
	}

	course, err := c.CourseService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, "create course", err)
		return
	}

	util.Created(ctx, "Course created successfully", course)
}

// ListCourses godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Failure 500 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseService.List(ctx.Request.Context())
	if err != nil {
		util.RespondError(ctx, "list courses", err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Get a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, "get course", err)
		return
	}
	util.Success(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Merges metadata; lessonIds, when present, replaces the whole sequence
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body model.CoursePatch true "Fields to change"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req model.CoursePatch
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid course data")
		return
	}

	course, err := c.CourseService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.RespondError(ctx, "update course", err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.CourseService.DeleteByID(ctx.Request.Context(), id); err != nil {
		util.RespondError(ctx, "delete course", err)
		return
	}
	util.SuccessWithMessage(ctx, "Course deleted successfully", gin.H{"id": id})
}

// AddLesson godoc
// @Summary Add a lesson to a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body AddCourseLessonRequest true "Lesson"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/lessons [post]
func (c *CourseController) AddLesson(ctx *gin.Context) {
	var req AddCourseLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.AddLesson(ctx.Request.Context(), ctx.Param("id"), req.LessonID)
	if err != nil {
		util.RespondError(ctx, "add course lesson", err)
		return
	}
	util.Success(ctx, course)
}

// RemoveLesson godoc
// @Summary Remove a lesson from a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId} [delete]
func (c *CourseController) RemoveLesson(ctx *gin.Context) {
	course, err := c.CourseService.RemoveLesson(ctx.Request.Context(), ctx.Param("id"), ctx.Param("lessonId"))
	if err != nil {
		util.RespondError(ctx, "remove course lesson", err)
		return
	}
	util.Success(ctx, course)
}

// ReorderLessons godoc
// @Summary Move a lesson within a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body ReorderRequest true "Positions"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/reorder [post]
func (c *CourseController) ReorderLessons(ctx *gin.Context) {
	var req ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Reorder(ctx.Request.Context(), ctx.Param("id"), *req.FromIndex, *req.ToIndex)
	if err != nil {
		util.RespondError(ctx, "reorder course", err)
		return
	}
	util.Success(ctx, course)
}

// OptimizeSequence godoc
// @Summary Order a course from beginner to advanced
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/optimize [post]
func (c *CourseController) OptimizeSequence(ctx *gin.Context) {
	course, err := c.CourseService.Optimize(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, "optimize course", err)
		return
	}
	util.SuccessWithMessage(ctx, "Course sequence optimized", course)
}

// AvailableLessons godoc
// @Summary Lessons not yet in a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Param difficulty query string false "Only lessons of this difficulty"
// @Success 200 {object} util.Response{data=[]model.CourseLesson}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/available [get]
func (c *CourseController) AvailableLessons(ctx *gin.Context) {
	lessons, err := c.CourseService.Available(ctx.Request.Context(), ctx.Param("id"), ctx.Query("difficulty"))
	if err != nil {
		util.RespondError(ctx, "available lessons", err)
		return
	}
	util.Success(ctx, lessons)
}
