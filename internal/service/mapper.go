package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
)

func toUserResponse(u *model.User) dto.UserResponse {
	var resp dto.UserResponse
	copier.Copy(&resp, u)
	return resp
}

func toCourseResponse(c *model.Course) dto.CourseResponse {
	var resp dto.CourseResponse
	copier.Copy(&resp, c)
	if c.Creator != nil {
		resp.CreatedByName = c.Creator.Name
	}
	return resp
}

func toQuestionResponse(q *model.Question) dto.QuestionResponse {
	var resp dto.QuestionResponse
	copier.Copy(&resp, q)
	return resp
}

func toPaperResponse(p *model.QuestionPaper) dto.PaperResponse {
	var resp dto.PaperResponse
	copier.Copy(&resp, p)
	if p.Course != nil {
		resp.CourseCode = p.Course.Code
		resp.CourseTitle = p.Course.Title
	}
	if p.Instructor != nil {
		resp.InstructorName = p.Instructor.Name
	}
	return resp
}

func toPaperQuestionResponse(pq *model.PaperQuestion) dto.PaperQuestionResponse {
	var resp dto.PaperQuestionResponse
	copier.Copy(&resp, pq)
	if pq.Question != nil {
		resp.Content = pq.Question.Content
		resp.QuestionType = pq.Question.QuestionType
	}
	return resp
}

func toPaperModerationResponse(rec *model.PaperModeration) dto.PaperModerationResponse {
	var resp dto.PaperModerationResponse
	copier.Copy(&resp, rec)
	if rec.Paper != nil {
		resp.PaperTitle = rec.Paper.Title
	}
	if rec.Moderator != nil {
		resp.ModeratorName = rec.Moderator.Name
	}
	return resp
}

func toQuestionModerationResponse(rec *model.QuestionModeration) dto.QuestionModerationResponse {
	var resp dto.QuestionModerationResponse
	copier.Copy(&resp, rec)
	if rec.Paper != nil {
		resp.PaperTitle = rec.Paper.Title
	}
	if rec.Question != nil {
		resp.QuestionContent = rec.Question.Content
		resp.QuestionType = rec.Question.QuestionType
	}
	if rec.Moderator != nil {
		resp.ModeratorName = rec.Moderator.Name
	}
	return resp
}

func toAuditLogResponse(entry *model.AuditLog) dto.AuditLogResponse {
	resp := dto.AuditLogResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Action:    entry.Action,
		Details:   map[string]interface{}(entry.Details),
		CreatedAt: entry.CreatedAt,
	}
	if entry.User != nil {
		resp.UserName = entry.User.Name
		resp.UserRole = entry.User.Role
	}
	return resp
}

func mapSlice[M any, D any](items []M, fn func(*M) D) []D {
	out := make([]D, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
