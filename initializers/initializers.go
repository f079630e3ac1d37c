package initializers

import (
	"context"
	"crewing-backend/config"
	"crewing-backend/fiberlog"
	assignmenteventworker "crewing-backend/lib/assignment-event/worker"
	candidatehandler "crewing-backend/lib/candidate"
	checklisthandler "crewing-backend/lib/checklist"
	xlsexport "crewing-backend/lib/export/xls"
	matchinghandler "crewing-backend/lib/matching"
	rematchworker "crewing-backend/lib/matching/rematch-worker"
	requirementhandler "crewing-backend/lib/requirement"
	shortlisthandler "crewing-backend/lib/shortlist"
	"time"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	candidatehandler.NewHandler()
	requirementhandler.NewHandler()
	matchinghandler.NewHandler()
	shortlisthandler.NewHandler()
	checklisthandler.NewHandler()
	xlsexport.NewHandler()
	go initWorkers(ctx)
}

// workers start with a gap between them to spread the load
func initWorkers(ctx context.Context) {
	// periodic re-evaluation of open requirements
	rematchworker.StartWorker(ctx)

	if !makeTimeGap(ctx) {
		return
	}

	// dispatch of approved release events to the staffing desk
	assignmenteventworker.StartWorker(ctx)
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
