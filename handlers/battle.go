package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"jjreviews/logger"
	"jjreviews/models"
	"jjreviews/services"
)

type battleStartRequest struct {
	Criteria string `json:"criteria"`
	Quantity int    `json:"quantity"`
}

type battleVoteRequest struct {
	ID       string `json:"id"`
	WinnerID int    `json:"winner_id"`
}

// battleView is the battle state as the client sees it: the current pairing
// plus round progress, never the full internal bracket (no spoilers about
// who is waiting in the next round).
type battleView struct {
	ID             string                  `json:"id"`
	Stage          services.BattleStage    `json:"stage"`
	Criteria       services.BattleCriteria `json:"criteria"`
	RoundTitle     string                  `json:"round_title,omitempty"`
	MatchNumber    int                     `json:"match_number,omitempty"`
	MatchesInRound int                     `json:"matches_in_round,omitempty"`
	ByesWaiting    int                     `json:"byes_waiting"`
	BracketSize    int                     `json:"bracket_size"`
	PairA          *models.Movie           `json:"pair_a,omitempty"`
	PairB          *models.Movie           `json:"pair_b,omitempty"`
	Champion       *models.Movie           `json:"champion,omitempty"`
}

func newBattleView(b *services.Battle) battleView {
	view := battleView{
		ID:          b.ID,
		Stage:       b.Stage,
		Criteria:    b.Criteria,
		ByesWaiting: b.ByesWaiting(),
		BracketSize: b.BracketSize,
		Champion:    b.Champion,
	}
	if b.Stage == services.StageBattle {
		view.RoundTitle = b.RoundTitle()
		view.MatchNumber = b.MatchNumber()
		view.MatchesInRound = b.MatchesInRound()
		view.PairA, view.PairB = b.CurrentPair()
	}
	return view
}

// StartBattleHandler seeds a tournament from the current enriched library.
func StartBattleHandler(w http.ResponseWriter, r *http.Request) {
	var req battleStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	criteria := services.BattleCriteria(req.Criteria)
	switch criteria {
	case services.CriteriaRandom, services.CriteriaTopRated, services.CriteriaWorstRated,
		services.CriteriaRecent, services.CriteriaOscar, services.CriteriaNational:
	case "":
		criteria = services.CriteriaRandom
	default:
		writeError(w, http.StatusBadRequest, "unknown battle criteria")
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = services.QuantityAll
	}

	movies, err := loadEnrichedMovies(r)
	if err != nil {
		logger.Error("failed to load reviews for battle", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load reviews")
		return
	}

	battle, err := battles.Start(movies, criteria, quantity)
	if err != nil {
		if errors.Is(err, services.ErrNotEnoughMovies) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Info("battle started", "battle_id", battle.ID, "criteria", criteria,
		"bracket_size", battle.BracketSize, "byes", battle.ByesWaiting())
	writeJSON(w, http.StatusOK, newBattleView(battle))
}

func BattleStateHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing id parameter")
		return
	}

	battle, err := battles.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, newBattleView(battle))
}

// VoteHandler records one pairing decision and returns the next state.
func VoteHandler(w http.ResponseWriter, r *http.Request) {
	var req battleVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	battle, err := battles.Vote(req.ID, req.WinnerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBattleNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidWinner), errors.Is(err, services.ErrNotInBattle):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, newBattleView(battle))
}

// ReplayBattleHandler resets a finished battle back to setup.
func ReplayBattleHandler(w http.ResponseWriter, r *http.Request) {
	var req battleVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	battle, err := battles.Replay(req.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, newBattleView(battle))
}
