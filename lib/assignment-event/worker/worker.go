package assignmenteventworker

import (
	"context"
	"fmt"
	"time"

	"crewing-backend/config"
	"crewing-backend/db"
	assignmenteventstore "crewing-backend/lib/assignment-event/store"
	candidatestore "crewing-backend/lib/candidate/store"
	requirementstore "crewing-backend/lib/requirement/store"
	"crewing-backend/lib/smtp"
	baseworker "crewing-backend/lib/utils/base-worker"
	"crewing-backend/lib/utils/helpers"
	dbmodels "crewing-backend/models/db"
)

const dispatchBatchSize = 50

// StartWorker drains the assignment event outbox: each approved checklist row
// is announced to staffing by email and marked dispatched. Rows that fail stay
// pending and are retried on the next run.
func StartWorker(ctx context.Context) {
	runInterval := time.Duration(config.Conf.Matching.DispatchIntervalSec) * time.Second
	i := &impl{
		BaseImpl:         *baseworker.NewInstance("AssignmentEventWorker", 30*time.Second, runInterval),
		eventStore:       assignmenteventstore.NewInstance(db.DB),
		candidateStore:   candidatestore.NewInstance(db.DB),
		requirementStore: requirementstore.NewInstance(db.DB),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	eventStore       assignmenteventstore.Provider
	candidateStore   candidatestore.Provider
	requirementStore requirementstore.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.eventStore.ListPending(dispatchBatchSize)
	if err != nil {
		logger.WithError(err).Error("failed to list pending assignment events")
		return
	}
	for _, event := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		eventLogger := logger.WithField("event_id", event.EventID)
		err = i.dispatch(event)
		if err != nil {
			eventLogger.WithError(err).Error("assignment event dispatch failed")
			continue
		}
		err = i.eventStore.MarkDispatched(event.ID)
		if err != nil {
			eventLogger.WithError(err).Error("failed to mark assignment event dispatched")
			continue
		}
		eventLogger.Info("assignment event dispatched")
	}
}

func (i impl) dispatch(event dbmodels.AssignmentEvent) error {
	staffingEmail := config.Conf.Smtp.StaffingEmail
	if staffingEmail == "" {
		return nil
	}
	candidateName := event.CandidateID
	candidate, err := i.candidateStore.GetByID(event.CandidateID)
	if err == nil && candidate != nil {
		candidateName = candidate.GetFullName()
	}
	roleTitle := event.RequirementID
	requirement, err := i.requirementStore.GetByID(event.RequirementID)
	if err == nil && requirement != nil {
		roleTitle = fmt.Sprintf("%v (%v)", requirement.RoleTitle, requirement.VesselName)
	}
	message := fmt.Sprintf(
		"Release checklist %v is approved.\nCandidate: %v\nPosition: %v\nApproved at: %v",
		event.ChecklistID, candidateName, roleTitle, event.ApprovedAt.Format(time.RFC3339),
	)
	return smtp.Instance.SendEMail(config.Conf.Smtp.User, staffingEmail, message, "candidate release approved")
}
