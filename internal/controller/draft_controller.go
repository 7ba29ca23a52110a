package controller

import (
	"coursegpt_backend/internal/editor"
	"coursegpt_backend/internal/service"
	"coursegpt_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DraftController serves lesson drafts: generation, editing and saving.
// Drafts live with the client; every request carries the whole draft.
type DraftController struct {
	GenerationService *service.GenerationService
	LessonService     *service.LessonService
}

func NewDraftController(generationService *service.GenerationService, lessonService *service.LessonService) *DraftController {
	return &DraftController{GenerationService: generationService, LessonService: lessonService}
}

// GenerateDraftRequest
// swagger:model GenerateDraftRequest
type GenerateDraftRequest struct {
	Topic         string `json:"topic" binding:"required"`
	SubtopicCount int    `json:"subtopicCount" binding:"omitempty,min=1,max=20"`
	Category      string `json:"category"`
}

// ApplyOperationRequest
// swagger:model ApplyOperationRequest
type ApplyOperationRequest struct {
	Draft     editor.Draft     `json:"draft"`
	Operation editor.Operation `json:"operation"`
}

type SaveDraftRequest struct {
	Draft editor.Draft `json:"draft"`
}

// GenerateDraft godoc
// @Summary Generate a lesson draft
// @Description Asks the text-generation service for a lesson on the topic
// @Tags Drafts
// @Accept json
// @Produce json
// @Param request body GenerateDraftRequest true "Topic"
// @Success 200 {object} util.Response{data=editor.Draft}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response "Unusable answer from the generation service"
// @Failure 503 {object} util.Response "Generation service not configured or unreachable"
// @Failure 504 {object} util.Response
// @Router /api/drafts/generate [post]
func (c *DraftController) GenerateDraft(ctx *gin.Context) {
	var req GenerateDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft, err := c.GenerationService.Generate(ctx.Request.Context(), req.Topic, req.SubtopicCount, req.Category)
	if err != nil {
		util.RespondError(ctx, "generate draft", err)
		return
	}

	util.Success(ctx, draft)
}

// ApplyOperation godoc
// @Summary Apply an editor operation
// @Description Runs one editor operation (setField, addSubtopic, removeSubtopic, updateSubtopicField, addArrayItem, updateArrayItem, removeArrayItem, select) and returns the new draft
// @Tags Drafts
// @Accept json
// @Produce json
// @Param request body ApplyOperationRequest true "Draft and operation"
// @Success 200 {object} util.Response{data=editor.Draft}
// @Failure 400 {object} util.Response
// @Router /api/drafts/apply [post]
func (c *DraftController) ApplyOperation(ctx *gin.Context) {
	var req ApplyOperationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	draft, err := editor.Apply(req.Draft, req.Operation)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, draft)
}

// SaveDraft godoc
// @Summary Save a draft as a lesson
// @Tags Drafts
// @Accept json
// @Produce json
// @Param request body SaveDraftRequest true "Draft"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/drafts/save [post]
func (c *DraftController) SaveDraft(ctx *gin.Context) {
	var req SaveDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Invalid lesson data")
		return
	}

	lesson, err := c.LessonService.Create(ctx.Request.Context(), editor.ToLessonInput(req.Draft))
	if err != nil {
		util.RespondError(ctx, "save draft", err)
		return
	}

	util.Created(ctx, "Lesson created successfully", lesson)
}
