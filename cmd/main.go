package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/fanhub/fanhub-server/internal/api/rest/handler"
	"github.com/fanhub/fanhub-server/internal/api/rest/router"
	"github.com/fanhub/fanhub-server/internal/config"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
	"github.com/fanhub/fanhub-server/internal/repository/postgres"
	"github.com/fanhub/fanhub-server/internal/server"
	"github.com/fanhub/fanhub-server/internal/service"
	storage "github.com/fanhub/fanhub-server/internal/storage/minio"
	"github.com/fanhub/fanhub-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	fandomRepo := postgres.NewFandomRepository(db)
	blogRepo := postgres.NewBlogRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	permissionRepo := postgres.NewPermissionRepository(db)
	moderationRepo := postgres.NewModerationRepository(db)

	tokenManager := token.NewManager(
		[]byte(cfg.Token.AccessKey),
		[]byte(cfg.Token.RefreshKey),
		[]byte(cfg.Token.OriginKey),
	)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	resolver := service.NewPermission(permissionRepo, logger)
	authService, err := service.NewAuth(accountRepo, tokenManager, service.NewHasher(), logger)
	if err != nil {
		logger.Fatal("failed to initialize auth service", "error", err)
	}
	userService := service.NewUser(accountRepo, blogRepo, postRepo, commentRepo, resolver, storageClient, logger)
	fandomService := service.NewFandom(fandomRepo, resolver, logger)
	blogService := service.NewBlog(blogRepo, permissionRepo, resolver, logger)
	postService := service.NewPost(postRepo, resolver, logger)
	commentService := service.NewComment(commentRepo, resolver, logger)
	moderationService := service.NewModeration(moderationRepo, permissionRepo, accountRepo, resolver, logger)

	r := router.New(
		handler.NewAuth(authService, logger),
		handler.NewUser(userService, logger),
		handler.NewFandom(fandomService, blogService, postService, moderationService, logger),
		handler.NewBlog(blogService, postService, moderationService, logger),
		handler.NewPost(postService, commentService, logger),
		handler.NewComment(commentService, logger),
		tokenManager,
		logger,
	)

	httpServer := server.NewHTTPServer(r.Handler(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
