// Package digest posts the day's accumulated orders to the staff channel once a day.
package digest

import (
	"context"
	"fmt"
	"time"
	
	"github.com/go-co-op/gocron/v2"
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/jplus/jstore-api/internal/notification"
	"github.com/jplus/jstore-api/internal/whatsapp"
	"github.com/rs/zerolog/log"
)

type OrderLister interface {
	ListOrdersCreatedSince(ctx context.Context, createdAt time.Time) ([]db.Order, error)
}

type Digest struct {
	store     OrderLister
	notifier  notification.Notifier
	scheduler gocron.Scheduler
	hour      uint
}

func NewDigest(store OrderLister, notifier notification.Notifier, hour uint) (*Digest, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	
	return &Digest{
		store:     store,
		notifier:  notifier,
		scheduler: scheduler,
		hour:      hour,
	}, nil
}

// Start schedules the digest every day at the configured hour.
func (d *Digest) Start() error {
	_, err := d.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(d.hour, 0, 0))),
		gocron.NewTask(
			func() {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				
				if err := d.Run(ctx, time.Now()); err != nil {
					log.Err(err).Str("job", "daily_digest").Msg("failed to post daily digest")
				}
			},
		),
	)
	if err != nil {
		return err
	}
	
	d.scheduler.Start()
	return nil
}

func (d *Digest) Stop() error {
	return d.scheduler.Shutdown()
}

// Run posts the orders created since midnight of now's day. Days without
// orders post nothing.
func (d *Digest) Run(ctx context.Context, now time.Time) error {
	orders, err := d.store.ListOrdersCreatedSince(ctx, StartOfDay(now))
	if err != nil {
		return fmt.Errorf("failed to list today's orders: %w", err)
	}
	
	if len(orders) == 0 {
		log.Info().Str("job", "daily_digest").Msg("no orders today, digest skipped")
		return nil
	}
	
	if err = d.notifier.Notify(ctx, whatsapp.OrdersMessage(orders)); err != nil {
		return err
	}
	
	log.Info().Str("job", "daily_digest").Int("orders", len(orders)).Msg("daily digest posted")
	return nil
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
