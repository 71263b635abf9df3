package paper

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qams/internal/controller"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/service"
)

type PaperController struct {
	paperService         service.PaperService
	paperQuestionService service.PaperQuestionService
}

func NewPaperController(paperService service.PaperService, paperQuestionService service.PaperQuestionService) *PaperController {
	return &PaperController{
		paperService:         paperService,
		paperQuestionService: paperQuestionService,
	}
}

func (c *PaperController) RegisterRoutes(rg *gin.RouterGroup) {
	papers := rg.Group("/papers")
	{
		papers.POST("", c.CreatePaper)
		papers.GET("", c.ListPapers)
		papers.GET("/:paper_id", c.GetPaper)
		papers.PUT("/:paper_id", c.UpdatePaper)
		papers.DELETE("/:paper_id", c.DeletePaper)
		papers.POST("/:paper_id/submit", c.SubmitPaper)
		papers.GET("/:paper_id/questions", c.ListPaperQuestions)
		papers.POST("/:paper_id/questions", c.AddPaperQuestion)
	}
	rg.DELETE("/paper-questions/:pq_id", c.RemovePaperQuestion)
}

// CreatePaper godoc
// @Summary Create a question paper
// @Description Creates a draft paper for a course. Instructors may only create papers for their own courses.
// @Tags Papers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param paper body dto.CreatePaperRequest true "Paper data"
// @Success 201 {object} dto.PaperResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to create papers for this course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /papers [post]
func (c *PaperController) CreatePaper(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	var req dto.CreatePaperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	paper, err := c.paperService.CreatePaper(ctx.Request.Context(), actor, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, paper)
}

// ListPapers godoc
// @Summary List question papers
// @Description Instructors see their own papers; moderators and admins see all.
// @Tags Papers
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListResponse[dto.PaperResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Router /papers [get]
func (c *PaperController) ListPapers(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	limit, ok := controller.QueryInt(ctx, "limit", 0)
	if !ok {
		return
	}
	offset, ok := controller.QueryInt(ctx, "offset", 0)
	if !ok {
		return
	}
	papers, err := c.paperService.ListPapers(ctx.Request.Context(), actor, limit, offset)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(papers))
}

// GetPaper godoc
// @Summary Get a question paper
// @Tags Papers
// @Produce json
// @Security BearerAuth
// @Param paper_id path int true "Paper ID"
// @Success 200 {object} dto.PaperResponse
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view this paper"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /papers/{paper_id} [get]
func (c *PaperController) GetPaper(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseIDParam(ctx, "paper_id")
	if !ok {
		return
	}
	paper, err := c.paperService.GetPaper(ctx.Request.Context(), actor, id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// UpdatePaper godoc
// @Summary Update a draft paper
// @Description Only fields present in the body change. The paper must be a draft.
// @Tags Papers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param paper_id path int true "Paper ID"
// @Param paper body dto.UpdatePaperRequest true "Fields to update"
// @Success 200 {object} dto.PaperResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid body or paper is not a draft"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to edit this paper"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /papers/{paper_id} [put]
func (c *PaperController) UpdatePaper(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseIDParam(ctx, "paper_id")
	if !ok {
		return
	}
	var req dto.UpdatePaperRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	paper, err := c.paperService.UpdatePaper(ctx.Request.Context(), actor, id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// DeletePaper godoc
// @Summary Delete a draft paper
// @Tags Papers
// @Security BearerAuth
// @Param paper_id path int true "Paper ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Paper is not a draft"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to delete this paper"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /papers/{paper_id} [delete]
func (c *PaperController) DeletePaper(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseIDParam(ctx, "paper_id")
	if !ok {
		return
	}
	if err := c.paperService.DeletePaper(ctx.Request.Context(), actor, id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SubmitPaper godoc
// @Summary Submit a draft paper for moderation
// @Tags Papers
// @Produce json
// @Security BearerAuth
// @Param paper_id path int true "Paper ID"
// @Success 200 {object} dto.PaperResponse
// @Failure 400 {object} dto.ErrorResponse "Paper is not a draft"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to submit this paper"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /papers/{paper_id}/submit [post]
func (c *PaperController) SubmitPaper(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseIDParam(ctx, "paper_id")
	if !ok {
		return
	}
	paper, err := c.paperService.SubmitPaper(ctx.Request.Context(), actor, id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// ListPaperQuestions godoc
// @Summary List the questions of a paper in sequence order
// @Tags Paper Questions
// @Produce json
// @Security BearerAuth
// @Param paper_id path int true "Paper ID"
// @Success 200 {object} dto.ListResponse[dto.PaperQuestionResponse]
// @Failure 403 {object} dto.ErrorResponse "Not allowed to view this paper"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /papers/{paper_id}/questions [get]
func (c *PaperController) ListPaperQuestions(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseIDParam(ctx, "paper_id")
	if !ok {
		return
	}
	pqs, err := c.paperQuestionService.ListQuestions(ctx.Request.Context(), actor, id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(pqs))
}

// AddPaperQuestion godoc
// @Summary Add a question to a draft paper
// @Description The question must belong to the paper's course. Sequence 0 appends at the end.
// @Tags Paper Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param paper_id path int true "Paper ID"
// @Param question body dto.AddPaperQuestionRequest true "Question to add"
// @Success 201 {object} dto.PaperQuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid body, wrong course or paper not a draft"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to edit this paper"
// @Failure 404 {object} dto.ErrorResponse "Paper or question not found"
// @Failure 409 {object} dto.ErrorResponse "Question already in paper"
// @Router /papers/{paper_id}/questions [post]
func (c *PaperController) AddPaperQuestion(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseIDParam(ctx, "paper_id")
	if !ok {
		return
	}
	var req dto.AddPaperQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	pq, err := c.paperQuestionService.AddQuestion(ctx.Request.Context(), actor, id, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, pq)
}

// RemovePaperQuestion godoc
// @Summary Remove a question from a draft paper
// @Description Remaining questions are renumbered 1..N.
// @Tags Paper Questions
// @Security BearerAuth
// @Param pq_id path int true "Paper question ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Paper is not a draft"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to edit this paper"
// @Failure 404 {object} dto.ErrorResponse "Paper question not found"
// @Router /paper-questions/{pq_id} [delete]
func (c *PaperController) RemovePaperQuestion(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseIDParam(ctx, "pq_id")
	if !ok {
		return
	}
	if err := c.paperQuestionService.RemoveQuestion(ctx.Request.Context(), actor, id); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
