package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"jjreviews/metrics"
	"jjreviews/models"

	"github.com/google/uuid"
)

type BattleStage string

const (
	StageSetup  BattleStage = "setup"
	StageBattle BattleStage = "battle"
	StageWinner BattleStage = "winner"
)

type BattleCriteria string

const (
	CriteriaRandom     BattleCriteria = "random"
	CriteriaTopRated   BattleCriteria = "top_rated"
	CriteriaWorstRated BattleCriteria = "worst_rated"
	CriteriaRecent     BattleCriteria = "recent"
	CriteriaOscar      BattleCriteria = "oscar"
	CriteriaNational   BattleCriteria = "national"
)

// QuantityAll asks for every eligible movie instead of a fixed bracket size.
const QuantityAll = -1

var (
	ErrNotEnoughMovies = errors.New("at least 2 movies are required to start a battle")
	ErrBattleNotFound  = errors.New("battle not found")
	ErrNotInBattle     = errors.New("battle is not in the voting stage")
	ErrInvalidWinner   = errors.New("winner is not part of the current pairing")
)

// Battle is one single-elimination tournament. Byes sit in NextRound from the
// start and advance without voting; CurrentRound always has an even length.
type Battle struct {
	ID           string          `json:"id"`
	Stage        BattleStage     `json:"stage"`
	Criteria     BattleCriteria  `json:"criteria"`
	Quantity     int             `json:"quantity"`
	CurrentRound []models.Movie  `json:"current_round"`
	NextRound    []models.Movie  `json:"next_round"`
	PairIndex    int             `json:"pair_index"`
	BracketSize  int             `json:"bracket_size"`
	Champion     *models.Movie   `json:"champion,omitempty"`
}

// NextPowerOfTwo returns the smallest power of two >= n (0 for 0).
func NextPowerOfTwo(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// EligiblePool filters the enriched list down to battle contestants: watched
// movies with a rating, optionally narrowed by the awards/national criteria.
// The other criteria only affect ordering, not membership.
func EligiblePool(movies []models.Movie, criteria BattleCriteria) []models.Movie {
	var pool []models.Movie
	for _, m := range movies {
		if !m.Watched() || m.Rating == nil {
			continue
		}
		switch criteria {
		case CriteriaOscar:
			if !m.IsOscar {
				continue
			}
		case CriteriaNational:
			if !m.IsNational {
				continue
			}
		}
		pool = append(pool, m)
	}
	return pool
}

// newBattle seeds the bracket. The pool is ordered by criterion, truncated,
// then reshuffled (unless already random) before fighters and byes are split,
// so a top-rated bracket does not hand the best movies the byes.
func newBattle(pool []models.Movie, criteria BattleCriteria, quantity int) (*Battle, error) {
	if len(pool) < 2 {
		return nil, ErrNotEnoughMovies
	}
	if quantity != QuantityAll && quantity < 2 {
		return nil, fmt.Errorf("invalid battle quantity %d", quantity)
	}

	selected := make([]models.Movie, len(pool))
	copy(selected, pool)

	switch criteria {
	case CriteriaTopRated:
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].RatingOrZero() > selected[j].RatingOrZero()
		})
	case CriteriaWorstRated:
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].RatingOrZero() < selected[j].RatingOrZero()
		})
	case CriteriaRecent:
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].ID > selected[j].ID
		})
	default:
		shuffleMovies(selected)
	}

	targetCount := len(selected)
	if quantity != QuantityAll && quantity < targetCount {
		targetCount = quantity
	}
	participants := selected[:targetCount]

	bracketSize := NextPowerOfTwo(len(participants))
	byesCount := bracketSize - len(participants)
	fightersCount := len(participants) - byesCount

	// Bye slots must not be a reward for the ordering criterion.
	if criteria != CriteriaRandom {
		shuffleMovies(participants)
	}

	fighters := make([]models.Movie, fightersCount)
	copy(fighters, participants[:fightersCount])
	byes := make([]models.Movie, byesCount)
	copy(byes, participants[fightersCount:])

	return &Battle{
		ID:           uuid.NewString(),
		Stage:        StageBattle,
		Criteria:     criteria,
		Quantity:     quantity,
		CurrentRound: fighters,
		NextRound:    byes,
		PairIndex:    0,
		BracketSize:  bracketSize,
	}, nil
}

// CurrentPair returns the two movies facing each other, or nil outside the
// battle stage.
func (b *Battle) CurrentPair() (*models.Movie, *models.Movie) {
	if b.Stage != StageBattle || b.PairIndex+1 >= len(b.CurrentRound) {
		return nil, nil
	}
	return &b.CurrentRound[b.PairIndex], &b.CurrentRound[b.PairIndex+1]
}

// Vote advances the bracket by one decision. When a round completes, the
// winners plus the accumulated byes either crown a champion or get shuffled
// into the next round.
func (b *Battle) Vote(winnerID int) error {
	if b.Stage != StageBattle {
		return ErrNotInBattle
	}
	left, right := b.CurrentPair()
	if left == nil || right == nil {
		return ErrNotInBattle
	}

	var winner models.Movie
	switch winnerID {
	case left.ID:
		winner = *left
	case right.ID:
		winner = *right
	default:
		return ErrInvalidWinner
	}

	b.NextRound = append(b.NextRound, winner)

	if b.PairIndex+2 < len(b.CurrentRound) {
		b.PairIndex += 2
		return nil
	}

	// Round complete.
	if len(b.NextRound) == 1 {
		champion := b.NextRound[0]
		b.Champion = &champion
		b.Stage = StageWinner
		return nil
	}

	shuffleMovies(b.NextRound)
	b.CurrentRound = b.NextRound
	b.NextRound = nil
	b.PairIndex = 0
	b.BracketSize /= 2
	return nil
}

// Replay returns to setup keeping the last criterion and quantity as the
// defaults for the next run.
func (b *Battle) Replay() {
	b.Stage = StageSetup
	b.CurrentRound = nil
	b.NextRound = nil
	b.PairIndex = 0
	b.BracketSize = 0
	b.Champion = nil
}

// RoundTitle names the round by bracket size, down to the final.
func (b *Battle) RoundTitle() string {
	switch b.BracketSize {
	case 2:
		return "Grande Final"
	case 4:
		return "Semifinais"
	case 8:
		return "Quartas de Final"
	case 16:
		return "Oitavas de Final"
	default:
		return fmt.Sprintf("Rodada de %d", b.BracketSize)
	}
}

// MatchNumber is the 1-based pairing being voted on within this round.
func (b *Battle) MatchNumber() int {
	return b.PairIndex/2 + 1
}

// MatchesInRound is the number of pairings this round holds.
func (b *Battle) MatchesInRound() int {
	return len(b.CurrentRound) / 2
}

// ByesWaiting counts movies already through to the next round.
func (b *Battle) ByesWaiting() int {
	return len(b.NextRound)
}

func shuffleMovies(movies []models.Movie) {
	rand.Shuffle(len(movies), func(i, j int) {
		movies[i], movies[j] = movies[j], movies[i]
	})
}

// BattleManager keeps the live battles, one per viewer session. Battles are
// in-memory only and vanish on restart.
type BattleManager struct {
	mu      sync.Mutex
	battles map[string]*Battle
}

func NewBattleManager() *BattleManager {
	return &BattleManager{battles: make(map[string]*Battle)}
}

// Start builds a battle from the enriched list and registers it.
func (m *BattleManager) Start(movies []models.Movie, criteria BattleCriteria, quantity int) (*Battle, error) {
	pool := EligiblePool(movies, criteria)
	battle, err := newBattle(pool, criteria, quantity)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.battles[battle.ID] = battle
	m.mu.Unlock()

	metrics.BattlesStarted.Inc()
	return battle, nil
}

func (m *BattleManager) Get(id string) (*Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	battle, ok := m.battles[id]
	if !ok {
		return nil, ErrBattleNotFound
	}
	return battle, nil
}

// Vote records one pairing decision on a registered battle.
func (m *BattleManager) Vote(id string, winnerID int) (*Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	battle, ok := m.battles[id]
	if !ok {
		return nil, ErrBattleNotFound
	}
	if err := battle.Vote(winnerID); err != nil {
		return nil, err
	}
	return battle, nil
}

// Replay resets a finished battle back to setup.
func (m *BattleManager) Replay(id string) (*Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	battle, ok := m.battles[id]
	if !ok {
		return nil, ErrBattleNotFound
	}
	battle.Replay()
	return battle, nil
}

// Drop forgets a battle entirely (viewer left the mode).
func (m *BattleManager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.battles, id)
}
