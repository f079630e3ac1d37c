package rematchworker

import (
	"context"
	"time"

	"crewing-backend/config"
	"crewing-backend/db"
	matchinghandler "crewing-backend/lib/matching"
	requirementstore "crewing-backend/lib/requirement/store"
	shortlisthandler "crewing-backend/lib/shortlist"
	baseworker "crewing-backend/lib/utils/base-worker"
	"crewing-backend/lib/utils/helpers"
	"crewing-backend/models"
)

// StartWorker periodically re-evaluates every open requirement so expiring
// certificates and new availability windows surface without a manual rematch.
func StartWorker(ctx context.Context) {
	runInterval := time.Duration(config.Conf.Matching.RematchIntervalMin) * time.Minute
	i := &impl{
		BaseImpl:         *baseworker.NewInstance("RematchWorker", 1*time.Minute, runInterval),
		requirementStore: requirementstore.NewInstance(db.DB),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	requirementStore requirementstore.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.requirementStore.ListOpen()
	if err != nil {
		logger.WithError(err).Error("failed to list open requirements")
		return
	}
	for _, requirement := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		reqLogger := logger.WithField("requirement_id", requirement.ID)
		_, err = matchinghandler.Instance.EvaluateAndScore(requirement.ID, models.SystemUser)
		if err != nil {
			reqLogger.WithError(err).Error("scheduled rematch failed")
			continue
		}
		_, err = shortlisthandler.Instance.Rebuild(ctx, requirement.ID)
		if err != nil {
			reqLogger.WithError(err).Error("scheduled shortlist rebuild failed")
			continue
		}
	}
}
