package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/qams/config"
	"github.com/lshigami/qams/database"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

// newTestDB opens a private in-memory SQLite database with the full schema.
// A single connection keeps every statement of a transaction on the same handle.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

type fixture struct {
	ctx context.Context
	db  *gorm.DB

	users       repository.UserRepository
	courses     repository.CourseRepository
	questions   repository.QuestionRepository
	papers      repository.PaperRepository
	paperQs     repository.PaperQuestionRepository
	moderations repository.ModerationRepository
	auditRepo   repository.AuditLogRepository

	gate        AccessGate
	audit       AuditLogService
	auth        AuthService
	paperSvc    PaperService
	paperQSvc   PaperQuestionService
	moderation  *moderationService
	courseSvc   CourseService
	questionSvc QuestionService

	admin, instructor, otherInstructor, mod1, mod2 Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{
		ctx:         context.Background(),
		db:          db,
		users:       repository.NewUserRepository(db),
		courses:     repository.NewCourseRepository(db),
		questions:   repository.NewQuestionRepository(db),
		papers:      repository.NewPaperRepository(db),
		paperQs:     repository.NewPaperQuestionRepository(db),
		moderations: repository.NewModerationRepository(db),
		auditRepo:   repository.NewAuditLogRepository(db),
		gate:        NewAccessGate(),
	}
	f.audit = NewAuditLogService(f.auditRepo, f.gate)
	f.auth = NewAuthService(f.users, f.gate, f.audit, db, &config.Config{
		Auth: config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour},
	})
	f.paperSvc = NewPaperService(f.papers, f.courses, f.audit, f.gate, db)
	f.paperQSvc = NewPaperQuestionService(f.papers, f.questions, f.paperQs, f.audit, f.gate, db)
	f.courseSvc = NewCourseService(f.courses, f.gate)
	f.questionSvc = NewQuestionService(f.questions, f.courses, f.gate)
	f.moderation = NewModerationService(
		f.papers, f.questions, f.paperQs, f.moderations,
		NewReconciler(f.papers, f.moderations), f.audit, f.gate, db,
	).(*moderationService)

	f.admin = f.createUser(t, "admin@example.com", model.RoleAdmin)
	f.instructor = f.createUser(t, "lecturer@example.com", model.RoleInstructor)
	f.otherInstructor = f.createUser(t, "other@example.com", model.RoleInstructor)
	f.mod1 = f.createUser(t, "mod1@example.com", model.RoleModerator)
	f.mod2 = f.createUser(t, "mod2@example.com", model.RoleModerator)
	return f
}

func (f *fixture) createUser(t *testing.T, email string, role model.Role) Actor {
	t.Helper()
	u := model.User{Name: strings.Split(email, "@")[0], Email: email, PasswordHash: "x", Role: role, Status: model.UserActive}
	require.NoError(t, f.users.Create(f.ctx, &u))
	return Actor{UserID: u.ID, Role: role}
}

func (f *fixture) createCourse(t *testing.T, owner Actor, code string) *dto.CourseResponse {
	t.Helper()
	c, err := f.courseSvc.CreateCourse(f.ctx, owner, dto.CreateCourseRequest{Code: code, Title: code + " course"})
	require.NoError(t, err)
	return c
}

func (f *fixture) createQuestion(t *testing.T, owner Actor, courseID uint, content string) *dto.QuestionResponse {
	t.Helper()
	q, err := f.questionSvc.CreateQuestion(f.ctx, owner, dto.CreateQuestionRequest{
		CourseID:     courseID,
		Content:      content,
		QuestionType: "subjective",
		Marks:        10,
	})
	require.NoError(t, err)
	return q
}

// draftPaper creates a draft paper owned by f.instructor holding n questions.
func (f *fixture) draftPaper(t *testing.T, n int) (*dto.PaperResponse, []uint) {
	t.Helper()
	course := f.createCourse(t, f.instructor, fmt.Sprintf("CS%d", time.Now().UnixNano()))
	paper, err := f.paperSvc.CreatePaper(f.ctx, f.instructor, dto.CreatePaperRequest{
		CourseID: course.ID,
		Title:    "Midterm",
		ExamType: "midterm",
	})
	require.NoError(t, err)

	var questionIDs []uint
	for i := 0; i < n; i++ {
		q := f.createQuestion(t, f.instructor, course.ID, fmt.Sprintf("Question %d", i+1))
		_, err := f.paperQSvc.AddQuestion(f.ctx, f.instructor, paper.ID, dto.AddPaperQuestionRequest{QuestionID: q.ID})
		require.NoError(t, err)
		questionIDs = append(questionIDs, q.ID)
	}
	return paper, questionIDs
}

// submittedPaper returns a submitted paper with n questions.
func (f *fixture) submittedPaper(t *testing.T, n int) (*model.QuestionPaper, []uint) {
	t.Helper()
	draft, questionIDs := f.draftPaper(t, n)
	_, err := f.paperSvc.SubmitPaper(f.ctx, f.instructor, draft.ID)
	require.NoError(t, err)
	return f.loadPaper(t, draft.ID), questionIDs
}

func (f *fixture) loadPaper(t *testing.T, id uint) *model.QuestionPaper {
	t.Helper()
	p, err := f.papers.FindByID(f.ctx, id)
	require.NoError(t, err)
	return p
}

func (f *fixture) auditCount(t *testing.T, action string) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(&model.AuditLog{})
	if action != "" {
		q = q.Where("action = ?", action)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
