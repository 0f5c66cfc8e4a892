package main

import (
	"context"
	"file-sharing-server/config"
	_ "file-sharing-server/docs"
	"file-sharing-server/internal/handler"
	"file-sharing-server/internal/ports"
	"file-sharing-server/internal/repository"
	"file-sharing-server/internal/security"
	"file-sharing-server/internal/service"
	"flag"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// @title File-sharing-server
// @version 1.0
// @description REST API для загрузки файлов и совместного доступа к ним

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "config.yaml", "путь к файлу конфигурации")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.Server.Addr)

	userRepo := repository.NewUserRepository(db)
	jwtRepo := repository.NewJWTRepository(db)
	fileRepo := repository.NewFileRepository(db)
	grantRepo := repository.NewGrantRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.FileCache)*time.Second)
	lockRepo := repository.NewLockRepository(redisClient, cfg.Uploads.LockTTL(), cfg.Uploads.LockWait())

	storage, err := setupStorage(ctx, &cfg.Storage)
	if err != nil {
		log.Fatalf("Ошибка создания хранилища файлов: %v", err)
	}

	jwtService := security.NewJWTService(&cfg.JWT)
	fileService := service.NewFileService(fileRepo, grantRepo, userRepo, cacheRepo, storage, lockRepo, cfg.Storage.Namespace, cfg.Uploads)
	accessService := service.NewAccessService(fileRepo, grantRepo, userRepo)
	userService := service.NewUserService(userRepo, fileRepo, fileService, jwtService, jwtRepo)
	authService := service.NewAuthenticationService(jwtRepo, jwtService, userRepo)

	authHandler := handler.NewAuthenticationHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	fileHandler := handler.NewFileHandler(fileService, cfg.Server.PublicURL, cfg.Uploads)
	accessHandler := handler.NewAccessHandler(accessService)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	authMiddleware := security.JWTMiddleware(jwtService, jwtRepo)
	setupAuthRoutes(router, authHandler, userHandler, authMiddleware)
	setupFileRoutes(router, fileHandler, accessHandler, authMiddleware)

	runServer(ctx, srv)
}

// setupStorage : local -> каталог на диске, s3 -> бакет
func setupStorage(ctx context.Context, cfg *config.StorageConfig) (ports.BlobStore, error) {
	switch cfg.Type {
	case "s3":
		return service.NewS3Service(ctx, &cfg.S3, cfg.Namespace)
	default:
		return service.NewDiskStorage(cfg.Local.Root, cfg.Namespace)
	}
}

func setupAuthRoutes(r chi.Router, auth *handler.AuthenticationHandler, users *handler.UserHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/authorization", auth.Login)
	r.Post("/registration", users.RegisterUser)
	// access токен может быть уже просрочен, поэтому без middleware
	r.Post("/refresh", auth.RefreshToken)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/logout", auth.Logout)
		r.Get("/me", users.GetCurrentUser)
		r.Delete("/me", users.DeleteCurrentUser)
	})
}

func setupFileRoutes(r chi.Router, files *handler.FileHandler, accesses *handler.AccessHandler, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/files", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", files.UploadFiles)
		r.Get("/disk", files.ListOwnedFiles)
		r.Get("/shared", files.ListSharedFiles)

		r.Route("/{file_id}", func(r chi.Router) {
			r.Get("/", files.DownloadFile)
			r.Patch("/", files.RenameFile)
			r.Delete("/", files.DeleteFile)
			r.Post("/accesses", accesses.GrantAccess)
			r.Delete("/accesses", accesses.RevokeAccess)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
