package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 5 * time.Minute

// Expirer reverts lapsed paid subscriptions and reports how many changed.
type Expirer interface {
	ExpireLapsed(ctx context.Context) (int, error)
}

// StartSubscriptionExpiry schedules the expiry sweep on schedule (standard
// five-field cron syntax or descriptors like "@daily"). The caller stops the
// returned scheduler on shutdown.
func StartSubscriptionExpiry(schedule string, expirer Expirer) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		runSubscriptionExpiry(context.Background(), expirer)
	})
	if err != nil {
		return nil, fmt.Errorf("could not schedule subscription expiry %q: %w", schedule, err)
	}

	c.Start()
	log.Printf("Subscription expiry scheduled (%s)", schedule)
	return c, nil
}

func runSubscriptionExpiry(ctx context.Context, expirer Expirer) {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	log.Println("Checking for lapsed subscriptions...")
	n, err := expirer.ExpireLapsed(ctx)
	if err != nil {
		log.Printf("Error expiring subscriptions (%d reverted before failure): %v", n, err)
		return
	}
	log.Printf("Reverted %d lapsed subscriptions to the free tier", n)
}
