package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jewellery-backoffice/internal/service"
	"jewellery-backoffice/internal/transport/http/ez"
)

type ReportHandler struct {
	svc *service.ReportService
	log *zap.Logger
}

func NewReportHandler(svc *service.ReportService, l *zap.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: l}
}

func (h *ReportHandler) Priority() int { return 40 }

func (h *ReportHandler) MountAPI(g *gin.RouterGroup) {
	e := ez.New(g, h.log)

	ez.RegisterAction(e, ez.Action[struct{}, *service.DashboardStats]{
		Method: http.MethodGet, Path: "/dashboard/stats", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.DashboardStats, error) {
			return h.svc.Stats(c.Request.Context())
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, *service.RecentActivity]{
		Method: http.MethodGet, Path: "/dashboard/recent", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.RecentActivity, error) {
			return h.svc.Recent(c.Request.Context())
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, *service.SummaryReport]{
		Method: http.MethodGet, Path: "/reports/summary", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (*service.SummaryReport, error) {
			return h.svc.Summary(c.Request.Context())
		},
	})
}
