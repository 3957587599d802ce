package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fitcrm/internal/config"
	"fitcrm/internal/database"
	"fitcrm/internal/domain"
	"fitcrm/internal/middleware"
	"fitcrm/internal/modules/auth"
	"fitcrm/internal/modules/dashboard"
	"fitcrm/internal/modules/members"
	"fitcrm/internal/modules/payments"
	"fitcrm/internal/modules/schedules"
	jwtsvc "fitcrm/internal/pkg/jwt"
	"fitcrm/internal/repository"
	"fitcrm/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Studio{},
		&domain.Profile{},
		&domain.MembershipType{},
		&domain.Member{},
		&domain.Payment{},
		&domain.ClassSchedule{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	studioRepo := repository.NewStudioRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	verifier := session.NewVerifier(j, profileRepo)
	guard := session.NewMiddleware(verifier, cfg.CookieName, cfg.LoginPath, cfg.DashboardPath)

	hub := dashboard.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Name:   cfg.CookieName,
		TTL:    cfg.JWTAccessTTL,
		Secure: cfg.CookieSecure,
	})

	memberService := members.NewService(memberRepo, profileRepo, hub)
	memberHandler := members.NewHandler(memberService)

	paymentService := payments.NewService(paymentRepo, memberRepo, hub)
	paymentHandler := payments.NewHandler(paymentService)

	scheduleService := schedules.NewService(scheduleRepo, hub)
	scheduleHandler := schedules.NewHandler(scheduleService)

	dashboardService := dashboard.NewService(memberService, paymentRepo, scheduleRepo, studioRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService, hub)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(guard.RequireAuth())
		{
			authHandler.RegisterProtectedRoutes(protected)
			memberHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			scheduleHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
		}
	}

	log.Println("fitcrm api listening on", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
