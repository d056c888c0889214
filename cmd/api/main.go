package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/config"
	"github.com/cmlabs-hris/attendance-engine-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/attendance-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-engine-go/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/attendance-engine-go/internal/service/calendar"
	policyService "github.com/cmlabs-hris/attendance-engine-go/internal/service/policy"
	shortLeaveService "github.com/cmlabs-hris/attendance-engine-go/internal/service/shortleave"
	"github.com/go-chi/jwtauth/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.Engine.Timezone)
	if err != nil {
		log.Fatal("Invalid ENGINE_TIMEZONE: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	policyRepo := postgresql.NewPolicyRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	weekendRepo := postgresql.NewWeekendConfigRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	recordRepo := postgresql.NewRecordRepository(db)
	shortLeaveRepo := postgresql.NewShortLeaveRepository(db)
	quotaLedger := postgresql.NewQuotaLedger(db)

	if err := fixtures.SeedDefaultPolicies(context.Background(), policyRepo, time.Now().In(loc)); err != nil {
		log.Fatal("Failed to seed default policies: ", err)
	}

	policySvc := policyService.NewService(policyRepo)
	calendarCtx := calendarService.NewContext(holidayRepo, weekendRepo)
	engine := attendanceService.NewEngine(
		punchRepo,
		leaveRepo,
		employeeRepo,
		recordRepo,
		shortLeaveRepo,
		policySvc,
		calendarCtx,
		quotaLedger,
		attendanceService.WithLocation(loc),
		attendanceService.WithMaxWorkers(cfg.Engine.MaxWorkers),
	)
	shortLeaveSvc := shortLeaveService.NewService(shortLeaveRepo, employeeRepo, policySvc, quotaLedger)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(engine, loc, cfg.Engine.FinalizeHour)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	attendanceHandler := appHTTP.NewAttendanceHandler(engine, recordRepo)
	policyHandler := appHTTP.NewPolicyHandler(policySvc)
	shortLeaveHandler := appHTTP.NewShortLeaveHandler(shortLeaveSvc)

	router := appHTTP.NewRouter(
		tokenAuth,
		attendanceHandler,
		policyHandler,
		shortLeaveHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
