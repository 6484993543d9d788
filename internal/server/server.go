package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vistoriahub/vistoria/internal/agency"
	agencydomain "github.com/vistoriahub/vistoria/internal/agency/domain"
	"github.com/vistoriahub/vistoria/internal/config"
	"github.com/vistoriahub/vistoria/internal/creditsale"
	creditsaledomain "github.com/vistoriahub/vistoria/internal/creditsale/domain"
	"github.com/vistoriahub/vistoria/internal/inspection"
	inspectiondomain "github.com/vistoriahub/vistoria/internal/inspection/domain"
	"github.com/vistoriahub/vistoria/internal/inspector"
	inspectordomain "github.com/vistoriahub/vistoria/internal/inspector/domain"
	"github.com/vistoriahub/vistoria/internal/ledger"
	ledgerdomain "github.com/vistoriahub/vistoria/internal/ledger/domain"
	"github.com/vistoriahub/vistoria/internal/metrics"
	"github.com/vistoriahub/vistoria/internal/statement"
	statementdomain "github.com/vistoriahub/vistoria/internal/statement/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	agency.Module,
	ledger.Module,
	creditsale.Module,
	inspection.Module,
	inspector.Module,
	statement.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(metrics.GinMiddleware(m))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(m *metrics.Metrics) *gin.Engine {
	return NewEngine(m)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	agencySvc     agencydomain.Service
	ledgerSvc     ledgerdomain.Service
	creditSaleSvc creditsaledomain.Service
	inspectionSvc inspectiondomain.Service
	inspectorSvc  inspectordomain.Service
	statementSvc  statementdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	AgencySvc     agencydomain.Service
	LedgerSvc     ledgerdomain.Service
	CreditSaleSvc creditsaledomain.Service
	InspectionSvc inspectiondomain.Service
	InspectorSvc  inspectordomain.Service
	StatementSvc  statementdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		agencySvc:     p.AgencySvc,
		ledgerSvc:     p.LedgerSvc,
		creditSaleSvc: p.CreditSaleSvc,
		inspectionSvc: p.InspectionSvc,
		inspectorSvc:  p.InspectorSvc,
		statementSvc:  p.StatementSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	agencies := api.Group("/agencies")
	{
		agencies.POST("", s.CreateAgency)
		agencies.GET("", s.ListAgencies)
		agencies.GET("/:id", s.GetAgencyByID)
		agencies.PATCH("/:id", s.UpdateAgency)
		agencies.GET("/:id/credits", s.GetAgencyCredits)
		agencies.POST("/:id/reconcile", s.ReconcileAgencyCredits)
		agencies.POST("/:id/credit-sales", s.CreateCreditSale)
		agencies.GET("/:id/credit-sales", s.ListCreditSales)
	}

	sales := api.Group("/credit-sales")
	{
		sales.PUT("/:id", s.UpdateCreditSale)
		sales.DELETE("/:id", s.DeleteCreditSale)
	}

	inspections := api.Group("/inspections")
	{
		inspections.POST("", s.CreateInspection)
		inspections.GET("", s.ListInspections)
		inspections.GET("/:id", s.GetInspectionByID)
		inspections.PUT("/:id", s.UpdateInspection)
		inspections.DELETE("/:id", s.DeleteInspection)
	}

	inspectors := api.Group("/inspectors")
	{
		inspectors.POST("", s.CreateInspector)
		inspectors.GET("", s.ListInspectors)
		inspectors.GET("/:id", s.GetInspectorByID)
		inspectors.PATCH("/:id", s.UpdateInspector)
		inspectors.GET("/:id/payroll", s.GetInspectorPayroll)
	}

	api.GET("/statements/monthly", s.GetMonthlyStatement)
}
