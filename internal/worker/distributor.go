package worker

import (
	"context"
	
	"github.com/hibiken/asynq"
)

const (
	TaskSendOrderConfirmation = "email:order_confirmation"
	TaskNotifyStaff           = "staff:new_order"
)

// TaskDistributor enqueues the follow-up work of a placed order.
type TaskDistributor interface {
	DistributeTaskSendOrderConfirmation(ctx context.Context, payload *PayloadSendOrderConfirmation, opts ...asynq.Option) error
	DistributeTaskNotifyStaff(ctx context.Context, payload *PayloadNotifyStaff, opts ...asynq.Option) error
}

type RedisTaskDistributor struct {
	client *asynq.Client // client sends tasks to redis queue.
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt) TaskDistributor {
	client := asynq.NewClient(redisOpt)
	
	return &RedisTaskDistributor{
		client: client,
	}
}
