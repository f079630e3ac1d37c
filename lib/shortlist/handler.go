package shortlisthandler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"crewing-backend/db"
	matchingstore "crewing-backend/lib/matching/store"
	shortliststore "crewing-backend/lib/shortlist/store"
	"crewing-backend/lib/utils/lock"
	"crewing-backend/models"
	matchingapimodels "crewing-backend/models/api/matching"
	dbmodels "crewing-backend/models/db"
)

const rebuildLockWait = 10 * time.Second

type Provider interface {
	// Rebuild re-ranks the requirement's current matches into the shortlist,
	// replacing it wholesale. Entry workflow statuses survive for candidates
	// that stay on the list.
	Rebuild(ctx context.Context, requirementID string) ([]matchingapimodels.ShortlistEntryView, error)
	List(requirementID string) ([]matchingapimodels.ShortlistEntryView, error)
	UpdateEntryStatus(requirementID, candidateID string, data matchingapimodels.EntryStatusData) (matchingapimodels.ShortlistEntryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:      shortliststore.NewInstance(db.DB),
		matchStore: matchingstore.NewInstance(db.DB),
	}
}

type impl struct {
	store      shortliststore.Provider
	matchStore matchingstore.Provider
}

func (i impl) GetLogger(requirementID string) *log.Entry {
	logger := log.
		WithField("requirement_id", requirementID)
	return logger
}

func (i impl) Rebuild(ctx context.Context, requirementID string) ([]matchingapimodels.ShortlistEntryView, error) {
	logger := i.GetLogger(requirementID)

	var rebuildErr error
	taken, err := lock.WithDelay(ctx, "shortlist:"+requirementID, rebuildLockWait, func() error {
		rebuildErr = i.rebuild(requirementID)
		return rebuildErr
	})
	if err != nil {
		return nil, err
	}
	if !taken {
		logger.Warn("shortlist rebuild lock is busy")
		return nil, errors.New("a shortlist rebuild for this requirement is already running")
	}
	if rebuildErr != nil {
		return nil, rebuildErr
	}
	return i.List(requirementID)
}

func (i impl) rebuild(requirementID string) error {
	logger := i.GetLogger(requirementID)

	matches, err := i.matchStore.ListCurrent(requirementID)
	if err != nil {
		logger.WithError(err).Error("failed to list current matches")
		return err
	}

	ranked := Rank(matches)
	entries := make([]dbmodels.ShortlistEntry, 0, len(ranked))
	for idx, match := range ranked {
		entries = append(entries, dbmodels.ShortlistEntry{
			RequirementID: requirementID,
			CandidateID:   match.CandidateID,
			Rank:          idx + 1,
			Score:         match.Score,
			CanAssign:     match.CanAssign,
			Reasons:       match.Reasons,
			Warnings:      match.Warnings,
			Blockers:      match.Blockers,
			Status:        models.ShortlistStatusShortlisted,
		})
	}

	err = i.store.Replace(requirementID, entries)
	if err != nil {
		logger.WithError(err).Error("failed to replace the shortlist")
		return err
	}
	logger.WithField("entry_count", len(entries)).Info("shortlist rebuilt")
	return nil
}

func (i impl) List(requirementID string) ([]matchingapimodels.ShortlistEntryView, error) {
	list, err := i.store.List(requirementID)
	if err != nil {
		i.GetLogger(requirementID).WithError(err).Error("failed to list the shortlist")
		return nil, err
	}
	result := make([]matchingapimodels.ShortlistEntryView, 0, len(list))
	for _, rec := range list {
		result = append(result, matchingapimodels.ShortlistEntryConvert(rec))
	}
	return result, nil
}

func (i impl) UpdateEntryStatus(requirementID, candidateID string, data matchingapimodels.EntryStatusData) (matchingapimodels.ShortlistEntryView, error) {
	if !data.Status.IsKnown() {
		return matchingapimodels.ShortlistEntryView{}, errors.Errorf("unknown shortlist status: %v", data.Status)
	}
	rec, err := i.store.GetEntry(requirementID, candidateID)
	if err != nil {
		return matchingapimodels.ShortlistEntryView{}, err
	}
	if rec == nil {
		return matchingapimodels.ShortlistEntryView{}, errors.New("candidate is not on this requirement's shortlist")
	}
	err = i.store.UpdateEntry(rec.ID, map[string]interface{}{
		"status": data.Status,
	})
	if err != nil {
		i.GetLogger(requirementID).WithError(err).Error("failed to update the shortlist entry status")
		return matchingapimodels.ShortlistEntryView{}, err
	}
	rec.Status = data.Status
	return matchingapimodels.ShortlistEntryConvert(*rec), nil
}
