package course

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qams/internal/controller"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/service"
)

// CourseController serves courses and the question bank attached to them.
type CourseController struct {
	courseService   service.CourseService
	questionService service.QuestionService
}

func NewCourseController(courseService service.CourseService, questionService service.QuestionService) *CourseController {
	return &CourseController{courseService: courseService, questionService: questionService}
}

func (c *CourseController) RegisterRoutes(rg *gin.RouterGroup) {
	courses := rg.Group("/courses")
	{
		courses.POST("", c.CreateCourse)
		courses.GET("", c.ListCourses)
		courses.GET("/:course_id", c.GetCourse)
	}
	questions := rg.Group("/questions")
	{
		questions.POST("", c.CreateQuestion)
		questions.GET("", c.ListQuestions)
		questions.GET("/:question_id", c.GetQuestion)
	}
}

// CreateCourse godoc
// @Summary Create a course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.CourseResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Moderators cannot create courses"
// @Failure 409 {object} dto.ErrorResponse "Course code already used"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	course, err := c.courseService.CreateCourse(ctx.Request.Context(), actor, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// ListCourses godoc
// @Summary List courses
// @Description Instructors see the courses they created; other roles see all courses.
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse[dto.CourseResponse]
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	courses, err := c.courseService.ListCourses(ctx.Request.Context(), actor)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(courses))
}

// GetCourse godoc
// @Summary Get a course
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{course_id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "course_id")
	if !ok {
		return
	}
	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// CreateQuestion godoc
// @Summary Add a question to a course's question bank
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Moderators cannot create questions"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /questions [post]
func (c *CourseController) CreateQuestion(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	question, err := c.questionService.CreateQuestion(ctx.Request.Context(), actor, req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// ListQuestions godoc
// @Summary List questions, optionally for one course
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param course_id query int false "Filter by course ID"
// @Success 200 {object} dto.ListResponse[dto.QuestionResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid course_id"
// @Router /questions [get]
func (c *CourseController) ListQuestions(ctx *gin.Context) {
	var courseID *uint
	if raw := ctx.Query("course_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid course_id format"})
			return
		}
		id := uint(val)
		courseID = &id
	}
	questions, err := c.questionService.ListQuestions(ctx.Request.Context(), courseID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(questions))
}

// GetQuestion godoc
// @Summary Get a question
// @Tags Questions
// @Produce json
// @Security BearerAuth
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /questions/{question_id} [get]
func (c *CourseController) GetQuestion(ctx *gin.Context) {
	id, ok := controller.ParseIDParam(ctx, "question_id")
	if !ok {
		return
	}
	question, err := c.questionService.GetQuestion(ctx.Request.Context(), id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}
