package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"propmart/config"
	"propmart/database/repository"
	"propmart/services/notify"
	"propmart/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitNotificationWorker runs the async dispatch worker in background. The
// core enqueues; this worker is the only place pushes are actually sent.
func InitNotificationWorker(pusher notify.Pusher, notifications repository.NotificationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotificationDispatch, handleDispatchTask(pusher, notifications))

	go monitorRedisConnection()

	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleDispatchTask(pusher notify.Pusher, notifications repository.NotificationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.NotificationPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[NotificationWorker] invalid payload: %v", err)
			return err
		}

		if err := pusher.Send(ctx, p.Recipient, p.Title, p.Body, p.Data); err != nil {
			// Delivery is best-effort; asynq retries transient failures.
			log.Printf("[NotificationWorker] failed to send notification %s: %v", p.NotificationID, err)
			return err
		}

		if p.NotificationID != "" {
			if err := notifications.MarkSent(ctx, p.NotificationID); err != nil {
				log.Printf("[NotificationWorker] failed to mark notification %s sent: %v", p.NotificationID, err)
			}
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NotificationWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
