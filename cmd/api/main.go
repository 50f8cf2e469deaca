package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/wagely/payroll-backend-go/internal/config"
	appHTTP "github.com/wagely/payroll-backend-go/internal/handler/http"
	"github.com/wagely/payroll-backend-go/internal/pkg/calendar"
	"github.com/wagely/payroll-backend-go/internal/pkg/database"
	"github.com/wagely/payroll-backend-go/internal/pkg/events"
	"github.com/wagely/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/wagely/payroll-backend-go/internal/service/attendance"
	correctionService "github.com/wagely/payroll-backend-go/internal/service/correction"
	"github.com/wagely/payroll-backend-go/internal/service/recalc"
	salaryService "github.com/wagely/payroll-backend-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	contractRepo := postgresql.NewContractRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	allowanceRepo := postgresql.NewAllowanceRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	uow := postgresql.NewTxRunner(db)

	holidays := calendar.NewStaticOracle(cfg.Payroll.Holidays)
	sink := events.NewLogSink(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	salarySvc := salaryService.NewSalaryService(
		uow,
		contractRepo,
		attendanceRepo,
		allowanceRepo,
		salaryRepo,
		salaryService.DefaultRates(),
	)
	coordinator := recalc.NewCoordinator(
		contractRepo,
		attendanceRepo,
		allowanceRepo,
		salarySvc,
		sink,
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		uow,
		attendanceRepo,
		contractRepo,
		coordinator,
		holidays,
	)
	correctionSvc := correctionService.NewCorrectionService(
		uow,
		correctionRepo,
		attendanceRepo,
		contractRepo,
		coordinator,
		holidays,
	)

	contractHandler := appHTTP.NewContractHandler(contractRepo)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionSvc)

	router := appHTTP.NewRouter(
		contractHandler,
		attendanceHandler,
		salaryHandler,
		correctionHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
