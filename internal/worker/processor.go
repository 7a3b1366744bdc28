package worker

import (
	"context"
	
	"github.com/hibiken/asynq"
	"github.com/jplus/jstore-api/internal/mailer"
	"github.com/jplus/jstore-api/internal/notification"
	"github.com/rs/zerolog/log"
)

/*
 This file contains code that will pick up the tasks from the Redis queue and process them.
*/

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

type TaskProcessor interface {
	Start() error
	Shutdown()
}

type RedisTaskProcessor struct {
	server   *asynq.Server
	mailer   mailer.Sender
	notifier notification.Notifier
}

func NewRedisTaskProcessor(redisOpt asynq.RedisClientOpt, mailSender mailer.Sender, notifier notification.Notifier) TaskProcessor {
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				QueueCritical: 10,
				QueueDefault:  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).
					Bytes("payload", task.Payload()).Msg("process task failed")
			}),
			Logger: NewLogger(),
		},
	)
	
	return &RedisTaskProcessor{
		server:   server,
		mailer:   mailSender,
		notifier: notifier,
	}
}

// Start registers the task handlers for the mux, attaches the mux to the asynq server, and starts the server.
func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()
	
	mux.HandleFunc(TaskSendOrderConfirmation, processor.ProcessTaskSendOrderConfirmation)
	mux.HandleFunc(TaskNotifyStaff, processor.ProcessTaskNotifyStaff)
	
	return processor.server.Start(mux)
}

func (processor *RedisTaskProcessor) Shutdown() {
	processor.server.Shutdown()
}
