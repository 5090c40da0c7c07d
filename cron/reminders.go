package cron

import (
	"context"
	"encoding/json"
	"time"

	"salonbook/config"
	appointmentRepo "salonbook/database/repository/appointment"
	salonRepo "salonbook/database/repository/salon"
	"salonbook/services/notification"
	"salonbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// ReminderPayload is the asynq task body for one appointment reminder.
type ReminderPayload struct {
	SalonID       string `json:"salonId"`
	AppointmentID string `json:"appointmentId"`
}

func queueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitReminderWorker starts the asynq worker that delivers reminders, plus
// the sweep that finds appointments coming due and enqueues them.
func InitReminderWorker(appts appointmentRepo.AppointmentRepository, salons salonRepo.SalonRepository, notifier notification.Notifier) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		queueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(appts, salons, notifier))

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("reminder worker gave up after max attempts")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	go runReminderSweep(appts)
}

func handleReminderTask(appts appointmentRepo.AppointmentRepository, salons salonRepo.SalonRepository, notifier notification.Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		appt, err := appts.GetByID(p.SalonID, p.AppointmentID)
		if err != nil {
			logger.Warn("reminder target not found",
				zap.String("appointmentID", p.AppointmentID), zap.Error(err))
			return nil
		}
		// The booking may have been canceled or already reminded between
		// the sweep and now.
		if !appt.Blocks() || appt.ReminderSent {
			return nil
		}

		salonName := ""
		if salon, err := salons.GetByID(p.SalonID); err == nil {
			salonName = salon.Name
		}

		if err := notifier.SendReminder(appt, salonName); err != nil {
			logger.Error("reminder delivery failed",
				zap.String("appointmentID", appt.ID), zap.Error(err))
			return err
		}
		if err := appts.MarkReminderSent(p.SalonID, appt.ID); err != nil {
			logger.Warn("failed to mark reminder sent",
				zap.String("appointmentID", appt.ID), zap.Error(err))
		}
		return nil
	}
}

// runReminderSweep periodically enqueues a reminder task for every confirmed
// appointment entering the reminder window. The window is half open, [lead,
// lead+sweep), so consecutive sweeps never pick the same appointment twice;
// the reminderSent flag catches the rest.
func runReminderSweep(appts appointmentRepo.AppointmentRepository) {
	logger := utils.GetLogger()

	sweep := time.Duration(config.AppConfig.ReminderSweepMinutes) * time.Minute
	if sweep <= 0 {
		sweep = 10 * time.Minute
	}
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	if lead <= 0 {
		lead = time.Hour
	}

	client := asynq.NewClient(queueRedisOpt())
	defer client.Close()

	ticker := time.NewTicker(sweep)
	defer ticker.Stop()

	for {
		now := time.Now().UTC()
		due, err := appts.FindDueReminders(now.Add(lead), now.Add(lead+sweep))
		if err != nil {
			logger.Error("reminder sweep query failed", zap.Error(err))
		} else {
			for _, appt := range due {
				payload, err := json.Marshal(ReminderPayload{
					SalonID:       appt.SalonID,
					AppointmentID: appt.ID,
				})
				if err != nil {
					continue
				}
				task := asynq.NewTask(TypeReminderSend, payload)
				if _, err := client.Enqueue(task, asynq.MaxRetry(3)); err != nil {
					logger.Error("failed to enqueue reminder",
						zap.String("appointmentID", appt.ID), zap.Error(err))
				}
			}
			if len(due) > 0 {
				logger.Info("reminder sweep enqueued tasks", zap.Int("count", len(due)))
			}
		}
		<-ticker.C
	}
}
