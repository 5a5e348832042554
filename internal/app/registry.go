package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/nosakhare/simple-payroll/internal/calculator"
	"github.com/nosakhare/simple-payroll/internal/employee"
	"github.com/nosakhare/simple-payroll/internal/messaging/kafka"
	"github.com/nosakhare/simple-payroll/internal/middleware"
	"github.com/nosakhare/simple-payroll/internal/payroll"
	"github.com/nosakhare/simple-payroll/internal/salaryconfig"
	"github.com/nosakhare/simple-payroll/internal/schedule"
	"github.com/nosakhare/simple-payroll/internal/taxbracket"
)

func payslipDir() string {
	if dir := os.Getenv("PAYSLIP_DIR"); dir != "" {
		return dir
	}
	return "payslips"
}

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	configRepo := salaryconfig.NewRepository(gormDB)
	bracketRepo := taxbracket.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewService(gormDB, employeeRepo)
	configService := salaryconfig.NewService(gormDB, configRepo, rdb)
	bracketService := taxbracket.NewService(gormDB, bracketRepo)
	scheduleGenerator := schedule.NewGenerator(gormDB, scheduleRepo)
	scheduleService := schedule.NewService(scheduleRepo)
	payrollService := payroll.NewService(
		gormDB,
		payrollRepo,
		payroll.ProcessorDeps{
			Employees: employeeRepo,
			Configs:   configRepo,
			Brackets:  bracketRepo,
			Outbox:    outboxRepo,
		},
		scheduleGenerator,
		payslipDir(),
	)
	calculatorService := calculator.NewService(configService, bracketRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandlerWithRedis(employeeService, rdb)
	configHandler := salaryconfig.NewHandlerWithRedis(configService, rdb)
	bracketHandler := taxbracket.NewHandlerWithRedis(bracketService, rdb)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	scheduleHandler := schedule.NewHandler(scheduleService)
	calculatorHandler := calculator.NewHandlerWithRedis(calculatorService, rdb)

	// --- Middleware & Routes ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ExtractUserID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	api := router.Group("/api/v1")
	api.Use(middleware.Idempotency(rdb))
	{
		employee.RegisterRoutes(api, employeeHandler)
		salaryconfig.RegisterRoutes(api, configHandler)
		taxbracket.RegisterRoutes(api, bracketHandler)
		payroll.RegisterRoutes(api, payrollHandler)
		schedule.RegisterRoutes(api, scheduleHandler)
		calculator.RegisterRoutes(api, calculatorHandler)
	}

	return nil
}
