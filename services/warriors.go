package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"stepwars-server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WarriorService owns the two pending-action queues. Enqueueing writes a row
// with a fixed finish_time; nothing happens until a caller asks to apply, at
// which point every due row is applied exactly once and deleted. There is no
// background driver unless the sweeper is enabled (see scheduler.go).
type WarriorService struct {
	DB    *gorm.DB
	locks *userLocks
}

func NewWarriorService(db *gorm.DB) *WarriorService {
	return &WarriorService{DB: db, locks: newUserLocks()}
}

// UserWarriors returns all warrior instances owned by one user.
func (s *WarriorService) UserWarriors(userID uint) ([]models.UserWarrior, error) {
	var warriors []models.UserWarrior
	err := s.DB.Where("user_id = ?", userID).Order("warrior_type_id ASC").Find(&warriors).Error
	return warriors, err
}

// Train enqueues a training batch. The per-unit duration comes from the user's
// own warrior row (it diverges from the catalog as the instance levels up) and
// scales linearly with count: finish = now + duration*count.
func (s *WarriorService) Train(userID, warriorTypeID uint, count int) (time.Time, error) {
	if userID == 0 || warriorTypeID == 0 || count <= 0 {
		return time.Time{}, fmt.Errorf("%w: userId, warriorTypeId and count are required", ErrInvalidArgument)
	}

	var warrior models.UserWarrior
	err := s.DB.Where("user_id = ? AND warrior_type_id = ?", userID, warriorTypeID).First(&warrior).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return time.Time{}, fmt.Errorf("%w: user warrior", ErrNotFound)
		}
		return time.Time{}, err
	}
	if warrior.TrainingTime <= 0 {
		return time.Time{}, fmt.Errorf("%w: warrior has no training time", ErrInvalidArgument)
	}

	finish := time.Now().Add(time.Duration(warrior.TrainingTime) * time.Second * time.Duration(count))
	entry := models.WarriorTraining{
		UserID:        userID,
		WarriorTypeID: warriorTypeID,
		Count:         count,
		FinishTime:    finish,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return time.Time{}, err
	}

	log.Printf("⚔️ Training queued: user=%d type=%d count=%d finish=%s", userID, warriorTypeID, count, finish.Format(time.RFC3339))
	return finish, nil
}

// Upgrade enqueues a level-up for one warrior instance. upgradingTime is the
// client-reported duration in seconds; finish = now + upgradingTime. The data
// model permits stacking several pending upgrades for the same instance.
func (s *WarriorService) Upgrade(userID, warriorTypeID uint, upgradingTime int) (time.Time, error) {
	if userID == 0 || warriorTypeID == 0 || upgradingTime <= 0 {
		return time.Time{}, fmt.Errorf("%w: userId, warriorTypeId and upgradingTime are required", ErrInvalidArgument)
	}

	finish := time.Now().Add(time.Duration(upgradingTime) * time.Second)
	entry := models.WarriorUpgrade{
		UserID:        userID,
		WarriorTypeID: warriorTypeID,
		UpgradingTime: upgradingTime,
		FinishTime:    finish,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		return time.Time{}, err
	}

	log.Printf("🛡️ Upgrade queued: user=%d type=%d finish=%s", userID, warriorTypeID, finish.Format(time.RFC3339))
	return finish, nil
}

// ApplyTraining resolves every due training entry for one user: each due row
// increments the owned count by its batch size and is deleted in the same
// transaction. Nothing due is a no-op, not an error. Returns the number of
// entries applied.
func (s *WarriorService) ApplyTraining(userID uint) (int, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	applied := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var due []models.WarriorTraining
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND finish_time <= ?", userID, time.Now()).
			Order("finish_time ASC").
			Find(&due).Error; err != nil {
			return err
		}

		for _, entry := range due {
			res := tx.Model(&models.UserWarrior{}).
				Where("user_id = ? AND warrior_type_id = ?", userID, entry.WarriorTypeID).
				UpdateColumn("count", gorm.Expr("count + ?", entry.Count))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: user warrior %d", ErrNotFound, entry.WarriorTypeID)
			}
			if err := tx.Delete(&models.WarriorTraining{}, entry.ID).Error; err != nil {
				return err
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if applied > 0 {
		log.Printf("✅ Applied %d training(s) for user %d", applied, userID)
	}
	return applied, nil
}

// ApplyUpgrades resolves every due upgrade entry for one user. Each entry
// advances the instance by exactly one level, rescales its denormalized
// cost/time/stat fields off their current values, and is deleted in the same
// transaction. The first failure aborts the whole pass, leaving every entry
// due for the next call. Returns the number of entries applied.
func (s *WarriorService) ApplyUpgrades(userID uint) (int, error) {
	unlock := s.locks.lock(userID)
	defer unlock()

	applied := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var due []models.WarriorUpgrade
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND finish_time <= ?", userID, time.Now()).
			Order("finish_time ASC").
			Find(&due).Error; err != nil {
			return err
		}

		for _, entry := range due {
			var warrior models.UserWarrior
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ? AND warrior_type_id = ?", userID, entry.WarriorTypeID).
				First(&warrior).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: user warrior %d", ErrNotFound, entry.WarriorTypeID)
				}
				return err
			}

			applyLevelUp(&warrior)

			if err := tx.Save(&warrior).Error; err != nil {
				return err
			}
			if err := tx.Delete(&models.WarriorUpgrade{}, entry.ID).Error; err != nil {
				return err
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if applied > 0 {
		log.Printf("✅ Applied %d upgrade(s) for user %d", applied, userID)
	}
	return applied, nil
}

// TrainingQueue lists pending training entries, soonest first.
func (s *WarriorService) TrainingQueue(userID uint) ([]models.WarriorTraining, error) {
	var entries []models.WarriorTraining
	err := s.DB.Where("user_id = ?", userID).Order("finish_time ASC").Find(&entries).Error
	return entries, err
}

// UpgradeQueue lists pending upgrade entries, soonest first.
func (s *WarriorService) UpgradeQueue(userID uint) ([]models.WarriorUpgrade, error) {
	var entries []models.WarriorUpgrade
	err := s.DB.Where("user_id = ?", userID).Order("finish_time ASC").Find(&entries).Error
	return entries, err
}

// applyLevelUp advances the instance by one level and rescales its fields.
// Multipliers are keyed on the level being entered and applied to the row's
// *current* values, so repeated upgrades compound off already-scaled numbers.
// Clients rely on these exact results; do not rebase onto the catalog.
func applyLevelUp(w *models.UserWarrior) {
	newLevel := w.Level + 1
	costMult := math.Pow(1.5, float64(newLevel-1))
	timeMult := math.Pow(1.2, float64(newLevel-1))
	statMult := math.Pow(1.1, float64(newLevel-1))

	newCost := make(models.ResourceCost, len(w.ResourceCost))
	for name, amount := range w.ResourceCost {
		newCost[name] = int(math.Floor(float64(amount) * costMult))
	}

	w.Level = newLevel
	// Both cost columns track the same scaled map, as clients expect.
	w.TrainingCost = newCost
	w.ResourceCost = newCost
	w.TrainingTime = int(math.Round(float64(w.TrainingTime) * timeMult))
	w.UpgradingTime = int(math.Round(float64(w.UpgradingTime) * timeMult))
	w.Attack = int(math.Round(float64(w.Attack) * statMult))
	w.Defense = int(math.Round(float64(w.Defense) * statMult))
	w.Speed = int(math.Round(float64(w.Speed) * statMult))
}
