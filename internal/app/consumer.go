package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/nosakhare/simple-payroll/internal/employee"
	"github.com/nosakhare/simple-payroll/internal/events"
	"github.com/nosakhare/simple-payroll/internal/messaging/kafka"
	"github.com/nosakhare/simple-payroll/internal/messaging/kafka/consumer"
	"github.com/nosakhare/simple-payroll/internal/payroll"
	"github.com/nosakhare/simple-payroll/internal/salaryconfig"
	"github.com/nosakhare/simple-payroll/internal/schedule"
	"github.com/nosakhare/simple-payroll/internal/shared/connection"
	"github.com/nosakhare/simple-payroll/internal/taxbracket"
)

// RunConsumer renders payslips for processed payroll runs until interrupted.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	payrollRepo := payroll.NewRepository(gormDB)
	scheduleRepo := schedule.NewRepository(gormDB)
	payrollService := payroll.NewService(
		gormDB,
		payrollRepo,
		payroll.ProcessorDeps{
			Employees: employee.NewRepository(gormDB),
			Configs:   salaryconfig.NewRepository(gormDB),
			Brackets:  taxbracket.NewRepository(gormDB),
			Outbox:    kafka.NewOutboxRepository(gormDB),
		},
		schedule.NewGenerator(gormDB, scheduleRepo),
		payslipDir(),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.PayrollProcessedTopic,
		GroupID:        "simple-payroll-payslips",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayrollProcessed(ctx, reader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
