package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Loader reads the visible job list from the database.
type Loader func(ctx context.Context) ([]models.Job, error)

// Warmer refreshes the job list cache on a cron schedule.
type Warmer struct {
	cron  *cron.Cron
	cache JobList
	load  Loader
}

func NewWarmer(schedule string, cache JobList, load Loader) (*Warmer, error) {
	w := &Warmer{
		cron:  cron.New(),
		cache: cache,
		load:  load,
	}
	if _, err := w.cron.AddFunc(schedule, func() { _ = w.Refresh(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid cache warm schedule %q: %w", schedule, err)
	}
	return w, nil
}

// Refresh loads the list once and stores it.
func (w *Warmer) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	gen, err := w.cache.Generation(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cache warm: generation read failed")
		return err
	}
	jobs, err := w.load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cache warm: load failed")
		return err
	}
	if err := w.cache.Set(ctx, gen, jobs); err != nil {
		if errors.Is(err, ErrStale) {
			log.Debug().Msg("cache warm: list changed during load, skipped")
		} else {
			log.Warn().Err(err).Msg("cache warm: store failed")
		}
		return err
	}
	log.Debug().Int("jobs", len(jobs)).Msg("cache warm: job list refreshed")
	return nil
}

// Run warms once, then follows the schedule until ctx is done.
func (w *Warmer) Run(ctx context.Context) error {
	_ = w.Refresh(ctx)
	w.cron.Start()
	<-ctx.Done()
	<-w.cron.Stop().Done()
	return nil
}
