package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/unclebandit/adreport-backend/internal/model"
	"github.com/unclebandit/adreport-backend/internal/projectconfig"
	"github.com/unclebandit/adreport-backend/internal/repository"
)

// ScheduleWorker mirrors project auto-report schedules into the schedule index.
type ScheduleWorker struct {
	Schedules repository.ScheduleRepositoryInterface
	Logger    *zap.Logger
}

func NewScheduleWorker(schedules repository.ScheduleRepositoryInterface, logger *zap.Logger) *ScheduleWorker {
	return &ScheduleWorker{Schedules: schedules, Logger: logger}
}

// Handle processes one project event. Malformed events are logged and
// acknowledged; only store failures are returned, which triggers a retry.
func (w *ScheduleWorker) Handle(ctx context.Context, payload []byte) error {
	var event model.ProjectEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		w.Logger.Warn("invalid project event", zap.Error(err))
		return nil
	}
	log := w.Logger.With(zap.String("event", event.Type), zap.Int64("pid", event.PID))

	switch event.Type {
	case model.ProjectCreated, model.ProjectUpdated:
		auto, err := projectconfig.DecodeAuto([]byte(event.Auto))
		if err != nil {
			log.Warn("invalid auto in project event", zap.Error(err))
			return nil
		}
		text, err := auto.Encode()
		if err != nil {
			return err
		}
		if err := w.Schedules.Put(ctx, event.PID, text); err != nil {
			return err
		}
		log.Info("schedule stored", zap.String("using_target", string(auto.UsingTarget)))
	case model.ProjectDeleted:
		if err := w.Schedules.Remove(ctx, event.PID); err != nil {
			return err
		}
		log.Info("schedule removed")
	default:
		log.Warn("unknown project event type")
	}
	return nil
}
