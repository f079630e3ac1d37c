package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "crewing-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.StaffUser{}); err != nil {
		return errors.Wrap(err, "migration failed for StaffUser")
	}
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "migration failed for Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateCertificate{}); err != nil {
		return errors.Wrap(err, "migration failed for CandidateCertificate")
	}
	if err := DB.AutoMigrate(&dbmodels.AvailabilityWindow{}); err != nil {
		return errors.Wrap(err, "migration failed for AvailabilityWindow")
	}
	if err := DB.AutoMigrate(&dbmodels.Assignment{}); err != nil {
		return errors.Wrap(err, "migration failed for Assignment")
	}
	if err := DB.AutoMigrate(&dbmodels.JobRequirement{}); err != nil {
		return errors.Wrap(err, "migration failed for JobRequirement")
	}
	if err := DB.AutoMigrate(&dbmodels.CandidateMatch{}); err != nil {
		return errors.Wrap(err, "migration failed for CandidateMatch")
	}
	if err := DB.AutoMigrate(&dbmodels.MatchRun{}); err != nil {
		return errors.Wrap(err, "migration failed for MatchRun")
	}
	if err := DB.AutoMigrate(&dbmodels.ShortlistEntry{}); err != nil {
		return errors.Wrap(err, "migration failed for ShortlistEntry")
	}
	if err := DB.AutoMigrate(&dbmodels.ReleaseChecklist{}); err != nil {
		return errors.Wrap(err, "migration failed for ReleaseChecklist")
	}
	if err := DB.AutoMigrate(&dbmodels.ChecklistHistory{}); err != nil {
		return errors.Wrap(err, "migration failed for ChecklistHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.AssignmentEvent{}); err != nil {
		return errors.Wrap(err, "migration failed for AssignmentEvent")
	}
	log.Info("migrations finished")
	return nil
}
