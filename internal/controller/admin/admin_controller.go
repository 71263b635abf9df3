package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qams/internal/controller"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/middleware"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	auditLogService service.AuditLogService
	authService     service.AuthService
}

func NewAdminController(auditLogService service.AuditLogService, authService service.AuthService) *AdminController {
	return &AdminController{auditLogService: auditLogService, authService: authService}
}

func (c *AdminController) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin", middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/logs", c.ListLogs)
		admin.GET("/logs/user/:user_id", c.ListLogsByUser)
		admin.DELETE("/logs/:log_id", c.DeleteLog)
		admin.GET("/users", c.ListUsers)
		admin.PATCH("/users/:user_id/activate", c.ActivateUser)
		admin.PATCH("/users/:user_id/deactivate", c.DeactivateUser)
	}
}

// ListLogs godoc
// @Summary (Admin) List audit log entries, newest first
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {object} dto.ListResponse[dto.AuditLogResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Router /admin/logs [get]
func (c *AdminController) ListLogs(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	limit, ok := controller.QueryInt(ctx, "limit", 0)
	if !ok {
		return
	}
	entries, err := c.auditLogService.List(ctx.Request.Context(), actor, limit)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(entries))
}

// ListLogsByUser godoc
// @Summary (Admin) List audit log entries written by one user
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param limit query int false "Maximum entries (default 50, max 500)"
// @Success 200 {object} dto.ListResponse[dto.AuditLogResponse]
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID or limit"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Router /admin/logs/user/{user_id} [get]
func (c *AdminController) ListLogsByUser(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	userID, ok := controller.ParseIDParam(ctx, "user_id")
	if !ok {
		return
	}
	limit, ok := controller.QueryInt(ctx, "limit", 0)
	if !ok {
		return
	}
	entries, err := c.auditLogService.ListByUser(ctx.Request.Context(), actor, userID, limit)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(entries))
}

// DeleteLog godoc
// @Summary (Admin) Delete an audit log entry
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param log_id path int true "Log ID"
// @Success 200 {object} dto.AuditLogResponse "The deleted entry"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Failure 404 {object} dto.ErrorResponse "Log entry not found"
// @Router /admin/logs/{log_id} [delete]
func (c *AdminController) DeleteLog(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	id, ok := controller.ParseIDParam(ctx, "log_id")
	if !ok {
		return
	}
	entry, err := c.auditLogService.Delete(ctx.Request.Context(), actor, id)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	log.Info().Uint("logID", id).Uint("adminID", actor.UserID).Msg("Audit log entry deleted")
	ctx.JSON(http.StatusOK, entry)
}

// ListUsers godoc
// @Summary (Admin) List user accounts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse[dto.UserResponse]
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	users, err := c.authService.ListUsers(ctx.Request.Context(), actor)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewListResponse(users))
}

// ActivateUser godoc
// @Summary (Admin) Re-activate a user account
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{user_id}/activate [patch]
func (c *AdminController) ActivateUser(ctx *gin.Context) {
	c.setUserStatus(ctx, model.UserActive)
}

// DeactivateUser godoc
// @Summary (Admin) Deactivate a user account
// @Description Inactive users cannot log in, and tokens issued earlier stop working.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot deactivate yourself"
// @Failure 403 {object} dto.ErrorResponse "Admins only"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{user_id}/deactivate [patch]
func (c *AdminController) DeactivateUser(ctx *gin.Context) {
	c.setUserStatus(ctx, model.UserInactive)
}

func (c *AdminController) setUserStatus(ctx *gin.Context, status model.UserStatus) {
	actor, ok := controller.CurrentActor(ctx)
	if !ok {
		return
	}
	userID, ok := controller.ParseIDParam(ctx, "user_id")
	if !ok {
		return
	}
	user, err := c.authService.SetUserStatus(ctx.Request.Context(), actor, userID, status)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}
