package worker

import (
	"context"
	"encoding/json"
	"fmt"
	
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

type PayloadNotifyStaff struct {
	OrderCode string `json:"order_code"`
	Message   string `json:"message"`
}

func (distributor *RedisTaskDistributor) DistributeTaskNotifyStaff(
	ctx context.Context,
	payload *PayloadNotifyStaff,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}
	
	task := asynq.NewTask(TaskNotifyStaff, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}
	
	log.Info().Str("type", task.Type()).Str("order_code", payload.OrderCode).
		Str("queue", info.Queue).Int("max_retry", info.MaxRetry).Msg("task enqueued")
	
	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskNotifyStaff(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadNotifyStaff
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}
	
	if err := processor.notifier.Notify(ctx, payload.Message); err != nil {
		return err
	}
	
	log.Info().Str("type", task.Type()).Str("order_code", payload.OrderCode).Msg("task processed")
	
	return nil
}
