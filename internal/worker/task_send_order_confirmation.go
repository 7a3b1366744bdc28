package worker

import (
	"context"
	"encoding/json"
	"fmt"
	
	"github.com/hibiken/asynq"
	"github.com/jplus/jstore-api/internal/mailer"
	"github.com/rs/zerolog/log"
)

type PayloadSendOrderConfirmation struct {
	Confirmation mailer.OrderConfirmation `json:"confirmation"`
}

func (distributor *RedisTaskDistributor) DistributeTaskSendOrderConfirmation(
	ctx context.Context,
	payload *PayloadSendOrderConfirmation,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}
	
	task := asynq.NewTask(TaskSendOrderConfirmation, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	
	log.Info().Str("type", task.Type()).Str("order_code", payload.Confirmation.OrderCode).
		Str("queue", info.Queue).Int("max_retry", info.MaxRetry).Msg("task enqueued")
	
	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskSendOrderConfirmation(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadSendOrderConfirmation
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}
	
	if payload.Confirmation.Email == "" || payload.Confirmation.OrderCode == "" {
		return fmt.Errorf("confirmation is missing email or order code: %w", asynq.SkipRetry)
	}
	
	if err := processor.mailer.SendOrderConfirmation(ctx, payload.Confirmation); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}
	
	log.Info().Str("type", task.Type()).Str("order_code", payload.Confirmation.OrderCode).
		Str("email", payload.Confirmation.Email).Msg("task processed")
	
	return nil
}
