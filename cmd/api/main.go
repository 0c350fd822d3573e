package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/bellastudio/studio-backend-go/internal/config"
	appHTTP "github.com/bellastudio/studio-backend-go/internal/handler/http"
	"github.com/bellastudio/studio-backend-go/internal/pkg/database"
	"github.com/bellastudio/studio-backend-go/internal/pkg/jwt"
	"github.com/bellastudio/studio-backend-go/internal/pkg/permission"
	"github.com/bellastudio/studio-backend-go/internal/repository/postgresql"
	payrollService "github.com/bellastudio/studio-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	payrollRepo := postgresql.NewPayrollRepository(db)
	staffRepo := postgresql.NewStaffRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	financeRepo := postgresql.NewFinanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	checker, err := permission.NewChecker()
	if err != nil {
		log.Fatal("Failed to initialize permission checker:", err)
	}

	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, staffRepo, taskRepo, contractRepo, financeRepo)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(jwtService, checker, cfg.App.FrontendURL, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
