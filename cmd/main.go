package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/lianjung1/kanban-app/internal/api/auth_api"
	"github.com/lianjung1/kanban-app/internal/api/board_api"
	"github.com/lianjung1/kanban-app/internal/api/socket_api"
	"github.com/lianjung1/kanban-app/internal/config"
	"github.com/lianjung1/kanban-app/internal/database"
	"github.com/lianjung1/kanban-app/internal/repository/auth_repository"
	"github.com/lianjung1/kanban-app/internal/repository/board_repository"
	"github.com/lianjung1/kanban-app/internal/services/auth_services"
	"github.com/lianjung1/kanban-app/internal/services/board_services"
	"github.com/lianjung1/kanban-app/internal/services/socket_services"
)

func setupCORS(cfg config.Config, router http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CorsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}

func main() {
	cfg := config.Load()

	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("FATAL: schema setup failed: %v", err)
	}
	log.Println("INFO: Database connection successful")

	// AUTH
	userRepo := auth_repository.NewUserRepo(db)
	authSvc := auth_services.NewAuthService(userRepo, cfg.JWTSecret)
	authHandler := auth_api.NewAuthHandler(authSvc)

	// STORE ACCESS
	boardRepo := board_repository.NewBoardRepo(db)
	columnRepo := board_repository.NewColumnRepo(db)
	taskRepo := board_repository.NewTaskRepo(db)
	commentRepo := board_repository.NewCommentRepo(db)

	// BOARD
	boardService := board_services.NewBoardService(boardRepo, columnRepo, taskRepo, commentRepo, userRepo)
	boardService.OwnerOnlyListing = cfg.BoardListOwnerOnly
	boardHandler := board_api.NewBoardHandler(boardService, authSvc, boardRepo)

	// COLUMN
	columnService := board_services.NewColumnService(boardRepo, columnRepo, taskRepo, commentRepo)
	columnHandler := board_api.NewColumnHandler(columnService, authSvc)

	// TASK
	taskService := board_services.NewTaskService(columnRepo, taskRepo, commentRepo, userRepo)
	taskHandler := board_api.NewTaskHandler(taskService, authSvc)

	// COMMENT
	commentService := board_services.NewCommentService(commentRepo)
	commentHandler := board_api.NewCommentHandler(commentService, authSvc)

	// REALTIME RELAY
	hub := socket_services.NewHub()
	go hub.Run()
	socketHandler := socket_api.NewSocketHandler(hub, authSvc)

	r := mux.NewRouter()

	authHandler.RegisterRoutes(r)
	boardHandler.BoardRoutes(r)
	columnHandler.ColumnRoutes(r)
	taskHandler.TaskRoutes(r)
	commentHandler.CommentRoutes(r)
	socketHandler.SocketRoutes(r)

	handlerWithCORS := setupCORS(cfg, r)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handlerWithCORS,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("INFO: Starting HTTP server on port %s", cfg.HTTPPort)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("FATAL: failed to start HTTP server: %v", err)
	}
}
