package controller

import (
	"coursegpt_backend/internal/model"
	"coursegpt_backend/internal/service"
	"coursegpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// CreateLesson godoc
// @Summary Create a lesson
// @Description Stores a lesson. Subtopic order follows array position; category defaults to General and level to beginner.
// @Tags Lessons
// @Accept json
// @Produce json
// @Param request body model.LessonInput true "Lesson"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response "Invalid lesson data"
// @Failure 500 {object} util.Response
// @Failure 504 {object} util.Response
// @Router /api/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	var req model.LessonInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid lesson data")
		return
	}

	lesson, err := c.LessonService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.RespondError(ctx, "create lesson", err)
		return
	}

	util.Created(ctx, "Lesson created successfully", lesson)
}

// ListLessons godoc
// @Summary List lessons
// @Description Returns every lesson, newest first, optionally only one category
// @Tags Lessons
// @Produce json
// @Param category query string false "Exact category; empty or all lists every lesson"
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Failure 500 {object} util.Response
// @Router /api/lessons [get]
// @Router /api/lessons/all [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	lessons, err := c.LessonService.ListByCategory(ctx.Request.Context(), ctx.Query("category"))
	if err != nil {
		util.RespondError(ctx, "list lessons", err)
		return
	}

	util.Success(ctx, lessons)
}

// GetLesson godoc
// @Summary Get a lesson
// @Tags Lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response "Lesson not found"
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lesson, err := c.LessonService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, "get lesson", err)
		return
	}

	util.Success(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Description Merges the supplied fields over the stored lesson
// @Tags Lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param request body model.LessonPatch true "Fields to change"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response "Lesson not found"
// @Failure 500 {object} util.Response
// @Router /api/lessons/{id} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	var req model.LessonPatch
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid lesson data")
		return
	}

	lesson, err := c.LessonService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.RespondError(ctx, "update lesson", err)
		return
	}

	util.SuccessWithMessage(ctx, "Lesson updated successfully", lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags Lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Lesson not found"
// @Failure 500 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := c.LessonService.DeleteByID(ctx.Request.Context(), id); err != nil {
		util.RespondError(ctx, "delete lesson", err)
		return
	}

	util.SuccessWithMessage(ctx, "Lesson deleted successfully", gin.H{"id": id})
}
