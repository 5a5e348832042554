package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/nosakhare/simple-payroll/internal/events"
	"github.com/nosakhare/simple-payroll/internal/payroll"
)

// ConsumePayrollProcessed renders payslip documents for every item of a
// processed payroll run. Rendering happens outside the request path so a
// large run never blocks the API.
func ConsumePayrollProcessed(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_payslip")
	log.Info("payroll payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll payslip consumer stopped")
				return
			}
			log.Error("fetch payroll processed message failed", zap.Error(err))
			continue
		}

		var event events.PayrollProcessedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll processed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		generated, err := payrollService.GeneratePayslips(ctx, event.PayrollID)
		if err != nil {
			log.Error("generate payslips failed",
				zap.String("payroll_id", event.PayrollID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll processed message failed", zap.Error(err))
			continue
		}

		log.Info("payslips generated",
			zap.String("payroll_id", event.PayrollID),
			zap.Int("count", generated),
		)
	}
}
