package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CourseMarket/internal/app/server"
	"CourseMarket/internal/config"
	"CourseMarket/internal/delivery/http"
	"CourseMarket/internal/service"
	"CourseMarket/internal/service/auth"
	"CourseMarket/internal/service/course"
	"CourseMarket/internal/service/enrollment"
	"CourseMarket/internal/service/pricing"
	"CourseMarket/internal/storage/elastic"
	"CourseMarket/internal/storage/minio_storage"
	"CourseMarket/internal/storage/postgres"
	"CourseMarket/pkg/logger"
)

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewCourseSearchRepository(esClient, cfg.ES.Index)
	if err := searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error preparing course index", err)
	}

	imageRepo, err := minio_storage.NewImageStorage(
		cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey,
		cfg.Minio.UseSSL, cfg.Minio.ImageBucket, cfg.Minio.PresignTTL,
	)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}

	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	subRepo := postgres.NewSubscriptionPostgres(pg.Pool)

	// catalog courses come from seed data, so the search index is
	// rebuilt on every start
	if total, err := courseRepo.CountCourses(context.Background()); err != nil {
		log.ErrorErr("error counting courses for indexing", err)
	} else if courses, err := courseRepo.ListCourses(context.Background(), total, 0); err != nil {
		log.ErrorErr("error loading courses for indexing", err)
	} else {
		for _, c := range courses {
			if err := searchRepo.Index(context.Background(), c); err != nil {
				log.ErrorErr("error indexing course", err, "course_id", c.ID.String())
			}
		}
	}

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, "course-market", cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authService := auth.NewAuthService(log, jwtManager, userRepo, tokenRepo)

	catalog := pricing.DefaultCatalog()
	evaluator := pricing.NewEvaluator(catalog)
	courseService := course.NewCourseService(log, courseRepo, searchRepo, imageRepo, subRepo)
	enrollmentService := enrollment.NewService(log, courseRepo, subRepo, evaluator)

	u := service.Collection{
		AuthService:       authService,
		CourseService:     courseService,
		EnrollmentService: enrollmentService,
	}

	r := http.InitRoutes(log, u, catalog)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err := srv.Shutdown(); err != nil {
		log.ErrorErr("shutdown error", err)
	}
}
