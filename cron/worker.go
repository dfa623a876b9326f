package cron

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"sportify/config"
	"sportify/models"
	"sportify/services/notification"
	"sportify/services/reservation"
	"sportify/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitTaskWorker runs the async worker in background. It drains the mail queue
// and fires the deferred auto-completion of paid reservations.
func InitTaskWorker(mailer notification.Mailer, bookings reservation.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueue,
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
	mux.HandleFunc(notification.TypeEmailSend, handleEmailTask(mailer))
	mux.HandleFunc(notification.TypeReservationComplete, handleCompletionTask(bookings))

	go monitorRedisConnection()

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting task worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("task worker failed to start",
					zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("task worker exhausted start attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid email payload", zap.Error(err))
			return err
		}

		if err := mailer.Send(p); err != nil {
			utils.GetLogger().Error("email delivery failed",
				zap.String("to", p.To), zap.String("reservationID", p.ReservationID), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleCompletionTask(bookings reservation.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p notification.CompletionPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid completion payload", zap.Error(err))
			return err
		}

		res, err := bookings.Complete(ctx, p.ReservationID)
		if err != nil {
			// A reservation cancelled before its window ends no longer needs
			// completing; retrying would never succeed.
			var transition *reservation.TransitionError
			var notFound *reservation.NotFoundError
			if errors.As(err, &transition) || errors.As(err, &notFound) {
				utils.GetLogger().Info("skipping auto-completion",
					zap.String("reservationID", p.ReservationID), zap.Error(err))
				return nil
			}
			return err
		}

		utils.GetLogger().Info("reservation auto-completed",
			zap.String("reservationID", res.ID))
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueue,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			utils.GetLogger().Warn("redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
