package services

import (
	"errors"
	"math/rand"

	"jjreviews/metrics"
)

const (
	rouletteFrames     = 20
	rouletteTickMillis = 100
)

var ErrEmptyWatchlist = errors.New("watchlist is empty")

// SpinResult drives the roulette animation: the frames are shown one per tick
// and are purely cosmetic; the winner is drawn independently afterwards and
// is not necessarily the last frame.
type SpinResult struct {
	Frames      []int `json:"frames"`
	WinnerIndex int   `json:"winner_index"`
	TickMillis  int   `json:"tick_millis"`
}

// Spin picks one of n watchlist entries uniformly at random, with the
// intermediate draws for the animation. n must be positive.
func Spin(n int) (*SpinResult, error) {
	if n <= 0 {
		return nil, ErrEmptyWatchlist
	}

	frames := make([]int, rouletteFrames)
	for i := range frames {
		frames[i] = rand.Intn(n)
	}

	metrics.RouletteSpins.Inc()
	return &SpinResult{
		Frames:      frames,
		WinnerIndex: rand.Intn(n),
		TickMillis:  rouletteTickMillis,
	}, nil
}
