package main

import (
	"fmt"
	"net/http"

	"github.com/orbai/attendance-backend-go/internal/config"
	appHTTP "github.com/orbai/attendance-backend-go/internal/handler/http"
	"github.com/orbai/attendance-backend-go/internal/pkg/database"
	"github.com/orbai/attendance-backend-go/internal/pkg/jwt"
	"github.com/orbai/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/orbai/attendance-backend-go/internal/service/attendance"
	authService "github.com/orbai/attendance-backend-go/internal/service/auth"
	reportService "github.com/orbai/attendance-backend-go/internal/service/report"
	taskService "github.com/orbai/attendance-backend-go/internal/service/task"
	userService "github.com/orbai/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolSettings{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(userRepo, jwtService, postgresql.NewTxManager(db))
	userSvc := userService.NewUserService(userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, cfg.Attendance)
	taskSvc := taskService.NewTaskService(taskRepo, userRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, taskRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		userHandler,
		taskHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
