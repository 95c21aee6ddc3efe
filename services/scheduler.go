package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartQueueSweeper runs the push alternative to client-driven resolution:
// every minute it finds users with due queue entries and runs the same apply
// passes for them. Disabled by default; the pull contract stays authoritative.
func (s *WarriorService) StartQueueSweeper() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			now := time.Now()
			var userIDs []uint
			err := s.DB.Raw(`
				SELECT user_id FROM warrior_trainings WHERE finish_time <= ?
				UNION
				SELECT user_id FROM warrior_upgrades WHERE finish_time <= ?
			`, now, now).Scan(&userIDs).Error
			if err != nil {
				log.Printf("[Sweeper] DB error: %v", err)
				return
			}

			for _, userID := range userIDs {
				if _, err := s.ApplyTraining(userID); err != nil {
					log.Printf("[Sweeper] Failed to apply trainings for user %d: %v", userID, err)
				}
				if _, err := s.ApplyUpgrades(userID); err != nil {
					log.Printf("[Sweeper] Failed to apply upgrades for user %d: %v", userID, err)
				}
			}
		}),
	)

	log.Println("✅ Queue sweeper running (every 1m)")
}
