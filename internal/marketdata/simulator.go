package marketdata

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tradesim/internal/domain"
	"tradesim/internal/store"
)

// Indian equity market hours: 9:15 to 15:30 IST, Monday to Friday.
const (
	marketOpenMinute  = 9*60 + 15
	marketCloseMinute = 15*60 + 30
)

// maxDriftFraction bounds each simulated move to ±2% of the current price.
const maxDriftFraction = 0.02

var istZone = loadIST()

func loadIST() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}

// MarketOpenAt reports whether the exchange is trading at t. Weekends are
// closed; holidays are not modelled.
func MarketOpenAt(t time.Time) bool {
	ist := t.In(istZone)
	switch ist.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	minute := ist.Hour()*60 + ist.Minute()
	return minute >= marketOpenMinute && minute < marketCloseMinute
}

// Simulator drifts every instrument's stored price by a random fraction in
// [-2%, +2%] on each tick, but only while the market is open. When the
// market is closed prices stay at their last value, so quotes off-hours
// behave like closing prices.
type Simulator struct {
	store    *store.Store
	interval time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSimulator creates a price simulator ticking at the given interval.
func NewSimulator(st *store.Store, interval time.Duration, seed int64, logger zerolog.Logger) *Simulator {
	return &Simulator{
		store:    st,
		interval: interval,
		logger:   logger.With().Str("component", "simulator").Logger(),
		now:      time.Now,
		rnd:      rand.New(rand.NewSource(seed)),
	}
}

// Run ticks until ctx is cancelled. An immediate tick fires at startup so
// prices start moving without waiting a full interval.
func (s *Simulator) Run(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Bool("market_open", MarketOpenAt(s.now())).
		Msg("Price simulator started")

	s.maybeTick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Price simulator stopped")
			return
		case <-ticker.C:
			s.maybeTick(ctx)
		}
	}
}

func (s *Simulator) maybeTick(ctx context.Context) {
	if !MarketOpenAt(s.now()) {
		s.logger.Debug().Msg("Market closed, prices held")
		return
	}
	if err := s.Tick(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Price simulation tick failed")
	}
}

// Tick applies one round of drift to every instrument. Prices floor at one
// paisa so a long losing streak can never reach zero.
func (s *Simulator) Tick(ctx context.Context) error {
	instruments, err := s.store.ListInstruments(ctx)
	if err != nil {
		return err
	}

	for _, in := range instruments {
		s.mu.Lock()
		drift := (s.rnd.Float64()*2 - 1) * maxDriftFraction
		s.mu.Unlock()

		newPrice := int64(float64(in.LastTradedPrice) * (1 + drift))
		if newPrice < 1 {
			newPrice = 1
		}

		if err := s.store.UpdateInstrumentPrice(ctx, in.Symbol, in.Exchange, newPrice); err != nil {
			return err
		}

		s.logger.Debug().
			Str("symbol", in.Symbol).
			Float64("old", domain.PaiseToRupees(in.LastTradedPrice)).
			Float64("new", domain.PaiseToRupees(newPrice)).
			Msg("Price drifted")
	}

	s.logger.Debug().Int("instruments", len(instruments)).Msg("Prices updated")
	return nil
}
