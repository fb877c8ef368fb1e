package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Expirer отклоняет просроченные предложения
type Expirer interface {
	ExpireOffers(ctx context.Context) (int, error)
}

// Scheduler периодически запускает истечение предложений по cron-выражению
type Scheduler struct {
	schedule string
	expirer  Expirer
	cron     *cron.Cron
}

func New(schedule string, expirer Expirer) *Scheduler {
	return &Scheduler{
		schedule: schedule,
		expirer:  expirer,
		cron:     cron.New(),
	}
}

// Start регистрирует задачу. Пустое выражение - планировщик не запускается.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.schedule == "" {
		log.Println("No offer expiry schedule configured")
		return nil
	}

	log.Printf("Starting offer expiry with cron: %s", s.schedule)
	_, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx) })
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	s.cron.Start()
	return nil
}

// RunOnce выполняет один проход истечения
func (s *Scheduler) RunOnce(ctx context.Context) {
	n, err := s.expirer.ExpireOffers(ctx)
	if err != nil {
		log.Printf("Offer expiry error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Expired %d offers", n)
	}
}

// Stop останавливает cron и ждёт завершения запущенной задачи
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
