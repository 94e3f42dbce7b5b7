package main

import (
	"context"

	"hud-compliance/internal/api"
	"hud-compliance/internal/conf"
	"hud-compliance/internal/database"
	"hud-compliance/internal/repository"
	"hud-compliance/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Config
	cfg, err := conf.LoadConfig()
	if err != nil {
		logrus.Fatalf("Config error: %v", err)
	}

	// 2. Database
	mongoClient, err := database.Connect(cfg.MongoDB)
	if err != nil {
		logrus.Fatalf("Database error: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB.Database)

	// 3. Dependency Injection (依賴注入)
	// Repo -> Service -> Handler
	certRepo := repository.NewMongoCertificationRepo(db)
	inspectionRepo := repository.NewMongoInspectionRepo(db)
	allowanceRepo := repository.NewMongoAllowanceRepo(db)
	settingsRepo := repository.NewMongoSettingsRepo(db)

	evaluator := service.NewEvaluatorService()
	rentCalc := service.NewRentCalcService()
	notifier := service.NewNotifierService(certRepo, settingsRepo)
	authService := service.NewAuthService(db, cfg.JWT.Secret)
	authService.InitAdmin()

	scheduler := service.NewSchedulerService(evaluator, notifier, certRepo, inspectionRepo, settingsRepo, cfg.Cron.EvaluateSchedule)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := api.NewAuthHandler(authService)
	certHandler := api.NewCertificationHandler(certRepo)
	inspectionHandler := api.NewInspectionHandler(inspectionRepo)
	allowanceHandler := api.NewAllowanceHandler(allowanceRepo, rentCalc)
	dashboardHandler := api.NewDashboardHandler(evaluator, notifier, certRepo, inspectionRepo, settingsRepo)

	// 4. Gin Router Setup
	r := gin.Default()
	r.Use(api.CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.POST("/api/v1/auth/login", authHandler.Login)

	v1 := r.Group("/api/v1")
	v1.Use(api.JWTMiddleware(cfg.JWT.Secret))
	{
		// 認證 (Tenant Income Certifications)
		v1.GET("/certifications", certHandler.ListCertifications)
		v1.POST("/certifications", certHandler.CreateCertification)
		v1.GET("/certifications/expiring", certHandler.ListExpiring)
		v1.GET("/certifications/:id", certHandler.GetCertification)
		v1.PUT("/certifications/:id", certHandler.UpdateCertification)
		v1.DELETE("/certifications/:id", certHandler.DeleteCertification)
		v1.POST("/certifications/:id/submit", certHandler.SubmitHUD50059)
		v1.POST("/certifications/:id/members", certHandler.AddHouseholdMember)
		v1.DELETE("/certifications/:id/members/:memberId", certHandler.RemoveHouseholdMember)

		// REAC 檢查
		v1.GET("/inspections", inspectionHandler.ListInspections)
		v1.POST("/inspections", inspectionHandler.CreateInspection)
		v1.GET("/inspections/upcoming", inspectionHandler.ListUpcoming)
		v1.PUT("/inspections/:id", inspectionHandler.UpdateInspection)

		// 水電補貼與租金試算
		v1.GET("/utility-allowances", allowanceHandler.ListAllowances)
		v1.POST("/utility-allowances", allowanceHandler.CreateAllowance)
		v1.GET("/utility-allowances/current", allowanceHandler.GetCurrentAllowance)
		v1.POST("/calculate-rent", allowanceHandler.CalculateRent)

		// 儀表板與設定
		v1.GET("/dashboard", dashboardHandler.GetDashboard)
		v1.GET("/dashboard/export", dashboardHandler.ExportCertifications)
		v1.GET("/settings", dashboardHandler.GetSettings)
		v1.POST("/settings", dashboardHandler.SaveSettings)
		v1.POST("/settings/test", dashboardHandler.TestWebhook)
	}

	// 5. Start Server
	logrus.Infof("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		logrus.Fatalf("Server startup failed: %v", err)
	}
}
