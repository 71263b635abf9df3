package moderation

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qams/internal/controller"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/service"
	"github.com/rs/zerolog/log"
)

type ModerationController struct {
	moderationService service.ModerationService
}

func NewModerationController(moderationService service.ModerationService) *ModerationController {
	return &ModerationController{moderationService: moderationService}
}

// RegisterRoutes mounts the paper-level and question-level moderation routes.
// rg must already run the auth middleware.
func (c *ModerationController) RegisterRoutes(rg *gin.RouterGroup) {
	paper := rg.Group("/paper-moderation")
	{
		paper.POST("/claim/:paper_id", c.ClaimPaper)
		paper.GET("/paper/:paper_id", c.ListPaperModerations)
		paper.GET("/my", c.ListMyPaperModerations)
		paper.PATCH("/:id/approve", c.ApprovePaperModeration)
		paper.PATCH("/:id/reject", c.RejectPaperModeration)
	}

	question := rg.Group("/question-moderation")
	{
		question.POST("/claim/:paper_id/:question_id", c.ClaimQuestion)
		question.GET("/paper/:paper_id", c.ListQuestionModerationsByPaper)
		question.GET("/question/:question_id", c.ListQuestionModerationsByQuestion)
		question.GET("/my", c.ListMyQuestionModerations)
		question.PATCH("/:id/approve", c.ApproveQuestionModeration)
		question.PATCH("/:id/reject", c.RejectQuestionModeration)
	}
}

// bindOptional binds a JSON body when one was sent. Moderation bodies are optional.
func bindOptional(ctx *gin.Context, obj interface{}) bool {
	if ctx.Request.ContentLength == 0 {
		return true
	}
	if err := ctx.ShouldBindJSON(obj); err != nil {
		// Chunked or unknown-length requests may still carry no body.
		if errors.Is(err, io.EOF) {
			return true
		}
		controller.RespondBindError(ctx, err)
		return false
	}
	return true
}

// ClaimPaper godoc
// @Summary (Moderator) Claim a paper for moderation
// @Description Opens a paper-level moderation record for the calling moderator. The paper must be submitted.
// @Tags Paper Moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param paper_id path int true "Paper ID"
// @Param claim body dto.ClaimRequest false "Optional comments and initial status"
// @Success 201 {object} dto.PaperModerationResult
// @Failure 400 {object} dto.ErrorResponse "Paper is not in a claimable state"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a moderator"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Failure 409 {object} dto.ErrorResponse "Moderator already claimed this paper"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /paper-moderation/claim/{paper_id} [post]
func (c *ModerationController) ClaimPaper(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	paperID, ok := controller.ParseIDParam(ctx, "paper_id")
	if !ok {
		return
	}
	var req dto.ClaimRequest
	if !bindOptional(ctx, &req) {
		return
	}

	result, err := c.moderationService.ClaimPaper(ctx.Request.Context(), actor, paperID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// ClaimQuestion godoc
// @Summary (Moderator) Claim a question of a paper for moderation
// @Description Opens a question-level moderation record. The paper must be submitted or approved and contain the question.
// @Tags Question Moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param paper_id path int true "Paper ID"
// @Param question_id path int true "Question ID"
// @Param claim body dto.ClaimRequest false "Optional comments and initial status"
// @Success 201 {object} dto.QuestionModerationResult
// @Failure 400 {object} dto.ErrorResponse "Paper is not in a claimable state"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a moderator"
// @Failure 404 {object} dto.ErrorResponse "Paper not found or question not in paper"
// @Failure 409 {object} dto.ErrorResponse "Moderator already claimed this question"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /question-moderation/claim/{paper_id}/{question_id} [post]
func (c *ModerationController) ClaimQuestion(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	paperID, ok := controller.ParseIDParam(ctx, "paper_id")
	if !ok {
		return
	}
	questionID, ok := controller.ParseIDParam(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.ClaimRequest
	if !bindOptional(ctx, &req) {
		return
	}

	result, err := c.moderationService.ClaimQuestion(ctx.Request.Context(), actor, paperID, questionID, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// ApprovePaperModeration godoc
// @Summary Approve a paper moderation record
// @Description Sets the record to approved and returns the reconciled paper status.
// @Tags Paper Moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper moderation ID"
// @Param review body dto.ReviewRequest false "Review comments"
// @Success 200 {object} dto.PaperModerationResult
// @Failure 403 {object} dto.ErrorResponse "Not allowed to review this record"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /paper-moderation/{id}/approve [patch]
func (c *ModerationController) ApprovePaperModeration(ctx *gin.Context) {
	c.reviewPaper(ctx, model.ModerationApproved)
}

// RejectPaperModeration godoc
// @Summary Reject a paper moderation record
// @Description Sets the record to rejected; the paper becomes rejected.
// @Tags Paper Moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Paper moderation ID"
// @Param review body dto.ReviewRequest false "Review comments"
// @Success 200 {object} dto.PaperModerationResult
// @Failure 403 {object} dto.ErrorResponse "Not allowed to review this record"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /paper-moderation/{id}/reject [patch]
func (c *ModerationController) RejectPaperModeration(ctx *gin.Context) {
	c.reviewPaper(ctx, model.ModerationRejected)
}

func (c *ModerationController) reviewPaper(ctx *gin.Context, status model.ModerationStatus) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if !bindOptional(ctx, &req) {
		return
	}

	review := c.moderationService.ApprovePaperModeration
	if status == model.ModerationRejected {
		review = c.moderationService.RejectPaperModeration
	}
	result, err := review(ctx.Request.Context(), actor, id, req.Comments)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ApproveQuestionModeration godoc
// @Summary Approve a question moderation record
// @Tags Question Moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question moderation ID"
// @Param review body dto.ReviewRequest false "Review comments"
// @Success 200 {object} dto.QuestionModerationResult
// @Failure 403 {object} dto.ErrorResponse "Not allowed to review this record"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /question-moderation/{id}/approve [patch]
func (c *ModerationController) ApproveQuestionModeration(ctx *gin.Context) {
	c.reviewQuestion(ctx, model.ModerationApproved)
}

// RejectQuestionModeration godoc
// @Summary Reject a question moderation record
// @Tags Question Moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question moderation ID"
// @Param review body dto.ReviewRequest false "Review comments"
// @Success 200 {object} dto.QuestionModerationResult
// @Failure 403 {object} dto.ErrorResponse "Not allowed to review this record"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /question-moderation/{id}/reject [patch]
func (c *ModerationController) RejectQuestionModeration(ctx *gin.Context) {
	c.reviewQuestion(ctx, model.ModerationRejected)
}

func (c *ModerationController) reviewQuestion(ctx *gin.Context, status model.ModerationStatus) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if !bindOptional(ctx, &req) {
		return
	}

	review := c.moderationService.ApproveQuestionModeration
	if status == model.ModerationRejected {
		review = c.moderationService.RejectQuestionModeration
	}
	result, err := review(ctx.Request.Context(), actor, id, req.Comments)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListPaperModerations godoc
// @Summary List paper moderation records of a paper
// @Tags Paper Moderation
// @Produce json
// @Security BearerAuth
// @Param paper_id path int true "Paper ID"
// @Success 200 {object} dto.ListResponse[dto.PaperModerationResponse]
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view this paper"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /paper-moderation/paper/{paper_id} [get]
func (c *ModerationController) ListPaperModerations(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	paperID, ok := controller.ParseIDParam(ctx, "paper_id")
	if !ok {
		return
	}
	recs, err := c.moderationService.ListPaperModerations(ctx.Request.Context(), actor, paperID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(recs))
}

// ListQuestionModerationsByPaper godoc
// @Summary List question moderation records of a paper
// @Tags Question Moderation
// @Produce json
// @Security BearerAuth
// @Param paper_id path int true "Paper ID"
// @Success 200 {object} dto.ListResponse[dto.QuestionModerationResponse]
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view this paper"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /question-moderation/paper/{paper_id} [get]
func (c *ModerationController) ListQuestionModerationsByPaper(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	paperID, ok := controller.ParseIDParam(ctx, "paper_id")
	if !ok {
		return
	}
	recs, err := c.moderationService.ListQuestionModerationsByPaper(ctx.Request.Context(), actor, paperID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(recs))
}

// ListQuestionModerationsByQuestion godoc
// @Summary List moderation records of a question across papers
// @Tags Question Moderation
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.ListResponse[dto.QuestionModerationResponse]
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view this question"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /question-moderation/question/{question_id} [get]
func (c *ModerationController) ListQuestionModerationsByQuestion(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	questionID, ok := controller.ParseIDParam(ctx, "question_id")
	if !ok {
		return
	}
	recs, err := c.moderationService.ListQuestionModerationsByQuestion(ctx.Request.Context(), actor, questionID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(recs))
}

// ListMyPaperModerations godoc
// @Summary (Moderator) List my paper moderation records
// @Tags Paper Moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse[dto.PaperModerationResponse]
// @Failure 403 {object} dto.ErrorResponse "Caller is not a moderator"
// @Router /paper-moderation/my [get]
func (c *ModerationController) ListMyPaperModerations(ctx *gin.Context) {
	mine, ok := c.listMine(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(mine.Papers))
}

// ListMyQuestionModerations godoc
// @Summary (Moderator) List my question moderation records
// @Tags Question Moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse[dto.QuestionModerationResponse]
// @Failure 403 {object} dto.ErrorResponse "Caller is not a moderator"
// @Router /question-moderation/my [get]
func (c *ModerationController) ListMyQuestionModerations(ctx *gin.Context) {
	mine, ok := c.listMine(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(mine.Questions))
}

func (c *ModerationController) listMine(ctx *gin.Context) (*dto.MyModerationsResponse, bool) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return nil, false
	}
	mine, err := c.moderationService.ListMine(ctx.Request.Context(), actor)
	if err != nil {
		controller.RespondError(ctx, err)
		return nil, false
	}
	log.Debug().Uint("moderatorID", actor.UserID).Int("papers", len(mine.Papers)).Int("questions", len(mine.Questions)).Msg("Listed own moderations")
	return mine, true
}
