package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"surf-calendar/internal/domain/model"
	"surf-calendar/internal/domain/usecase/surf"
	"surf-calendar/pkg/log"
	"surf-calendar/pkg/msg"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
)

// RunProcessor consumes forecast run requests from the queue
type RunProcessor struct {
	surfUseCase surf.UseCase
}

func NewRunProcessor(surfUseCase surf.UseCase) *RunProcessor {
	return &RunProcessor{
		surfUseCase: surfUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface. A run already in progress leaves
// the message on the queue so it is retried after the visibility timeout.
func (p *RunProcessor) HandleMessage(ctx context.Context, message *types.Message) error {
	if message == nil || message.Body == nil {
		return fmt.Errorf("received nil message or message body")
	}

	log.Info(msg.GetMessage("surf.processor.received", aws.ToString(message.MessageId)))

	var request model.RunRequest
	if err := json.Unmarshal([]byte(*message.Body), &request); err != nil {
		return fmt.Errorf("failed to unmarshal run request: %w", err)
	}
	if request.RequestID == "" {
		request.RequestID = aws.ToString(message.MessageId)
	}

	var (
		report *model.RunReport
		err    error
	)
	if request.DryRun {
		report, err = p.surfUseCase.EvaluateForecast(ctx)
	} else {
		report, err = p.surfUseCase.ProcessForecast(ctx, request.RequestID)
	}
	if err != nil {
		return fmt.Errorf("forecast run %s failed: %w", request.RequestID, err)
	}

	days := 0
	if report != nil {
		days = len(report.Days)
	}
	log.Info(msg.GetMessage("surf.processor.processed", request.RequestID, days),
		zap.String("request_id", request.RequestID), zap.Bool("dry_run", request.DryRun))
	return nil
}
