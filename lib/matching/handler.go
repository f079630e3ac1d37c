package matchinghandler

import (
	"time"

	log "github.com/sirupsen/logrus"

	"crewing-backend/db"
	candidatestore "crewing-backend/lib/candidate/store"
	"crewing-backend/lib/matching/evaluator"
	"crewing-backend/lib/matching/score"
	matchingstore "crewing-backend/lib/matching/store"
	requirementstore "crewing-backend/lib/requirement/store"
	matchingapimodels "crewing-backend/models/api/matching"
	dbmodels "crewing-backend/models/db"
)

type Provider interface {
	// EvaluateAndScore re-evaluates every active candidate against the
	// requirement, replaces the current match set wholesale and records an
	// audit run. The previous matches stay readable as superseded rows.
	EvaluateAndScore(requirementID, triggeredBy string) (matchingapimodels.MatchRunView, error)
	ListMatches(requirementID string) ([]matchingapimodels.CandidateMatchView, error)
	GetMatch(requirementID, candidateID string) (matchingapimodels.CandidateMatchView, error)
	ListRuns(requirementID string, limit int) ([]matchingapimodels.MatchRunView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:            matchingstore.NewInstance(db.DB),
		candidateStore:   candidatestore.NewInstance(db.DB),
		requirementStore: requirementstore.NewInstance(db.DB),
		scoreConfig:      score.DefaultConfig(),
	}
}

type impl struct {
	store            matchingstore.Provider
	candidateStore   candidatestore.Provider
	requirementStore requirementstore.Provider
	scoreConfig      score.Config
}

func (i impl) GetLogger(requirementID string) *log.Entry {
	logger := log.
		WithField("requirement_id", requirementID)
	return logger
}

func (i impl) EvaluateAndScore(requirementID, triggeredBy string) (matchingapimodels.MatchRunView, error) {
	logger := i.GetLogger(requirementID).
		WithField("triggered_by", triggeredBy)
	started := time.Now()

	requirement, err := i.requirementStore.GetByID(requirementID)
	if err != nil {
		logger.WithError(err).Error("failed to read requirement")
		return matchingapimodels.MatchRunView{}, err
	}
	if requirement == nil {
		return matchingapimodels.MatchRunView{}, ErrUnknownRequirement
	}
	facts := matchingapimodels.RequirementFactsConvert(*requirement)

	candidates, err := i.candidateStore.ListActive()
	if err != nil {
		logger.WithError(err).Error("failed to list active candidates")
		return matchingapimodels.MatchRunView{}, err
	}

	evaluatedAt := time.Now()
	matches := make([]dbmodels.CandidateMatch, 0, len(candidates))
	eligible := 0
	for _, candidate := range candidates {
		snap := matchingapimodels.SnapshotConvert(candidate)
		eval := evaluator.Evaluate(snap, facts)
		matchScore := score.Calculate(i.scoreConfig, snap, facts, eval)
		if eval.CanAssign() {
			eligible++
		}
		matches = append(matches, dbmodels.CandidateMatch{
			RequirementID: requirementID,
			CandidateID:   candidate.ID,
			Score:         matchScore,
			CanAssign:     eval.CanAssign(),
			Reasons:       eval.Reasons,
			Warnings:      eval.Warnings,
			Blockers:      eval.Blockers,
			EvaluatedAt:   evaluatedAt,
		})
	}

	err = i.store.ReplaceForRequirement(requirementID, matches)
	if err != nil {
		logger.WithError(err).Error("failed to replace the match set")
		return matchingapimodels.MatchRunView{}, err
	}

	run := dbmodels.MatchRun{
		RequirementID:  requirementID,
		TriggeredBy:    triggeredBy,
		CandidateCount: len(matches),
		EligibleCount:  eligible,
		DurationMs:     time.Since(started).Milliseconds(),
	}
	runID, err := i.store.CreateRun(run)
	if err != nil {
		logger.WithError(err).Error("failed to record the match run")
		return matchingapimodels.MatchRunView{}, err
	}
	run.ID = runID
	run.CreatedAt = evaluatedAt

	logger.
		WithField("candidate_count", run.CandidateCount).
		WithField("eligible_count", run.EligibleCount).
		WithField("duration_ms", run.DurationMs).
		Info("requirement matching completed")
	return matchingapimodels.MatchRunConvert(run), nil
}

func (i impl) ListMatches(requirementID string) ([]matchingapimodels.CandidateMatchView, error) {
	list, err := i.store.ListCurrent(requirementID)
	if err != nil {
		i.GetLogger(requirementID).WithError(err).Error("failed to list current matches")
		return nil, err
	}
	result := make([]matchingapimodels.CandidateMatchView, 0, len(list))
	for _, rec := range list {
		result = append(result, matchingapimodels.MatchConvert(rec))
	}
	return result, nil
}

func (i impl) GetMatch(requirementID, candidateID string) (matchingapimodels.CandidateMatchView, error) {
	rec, err := i.store.GetCurrent(requirementID, candidateID)
	if err != nil {
		return matchingapimodels.CandidateMatchView{}, err
	}
	if rec == nil {
		return matchingapimodels.CandidateMatchView{}, ErrNoCurrentMatch
	}
	return matchingapimodels.MatchConvert(*rec), nil
}

func (i impl) ListRuns(requirementID string, limit int) ([]matchingapimodels.MatchRunView, error) {
	list, err := i.store.ListRuns(requirementID, limit)
	if err != nil {
		return nil, err
	}
	result := make([]matchingapimodels.MatchRunView, 0, len(list))
	for _, rec := range list {
		result = append(result, matchingapimodels.MatchRunConvert(rec))
	}
	return result, nil
}
