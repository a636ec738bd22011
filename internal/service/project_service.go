// internal/service/project_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/adreport-backend/internal/auth"
	appErrors "github.com/unclebandit/adreport-backend/internal/errors"
	"github.com/unclebandit/adreport-backend/internal/model"
	"github.com/unclebandit/adreport-backend/internal/projectconfig"
	"github.com/unclebandit/adreport-backend/internal/queue"
	"github.com/unclebandit/adreport-backend/internal/repository"
	"github.com/unclebandit/adreport-backend/internal/validation"
)

const DefaultEventsTopic = "project_events"

type ProjectService struct {
	ProjectRepo repository.ProjectRepositoryInterface
	Queue       queue.Queue
	EventsTopic string
	Logger      *zap.Logger
}

type RegisterProjectInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// UpdateProjectInput replaces a project wholesale. A missing config or auto
// resets that blob to its defaults.
type UpdateProjectInput struct {
	Name   string          `json:"name" validate:"required,max=255"`
	Config json.RawMessage `json:"config"`
	Auto   json.RawMessage `json:"auto"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// Register creates a project for the caller's company with default config and auto.
func (s *ProjectService) Register(ctx context.Context, p auth.Principal, in RegisterProjectInput) (*model.Project, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	project := &model.Project{
		CID:    p.CID,
		Name:   in.Name,
		Config: projectconfig.DefaultConfig(),
		Auto:   projectconfig.DefaultAuto(),
	}
	if err := s.ProjectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.publish(ctx, model.ProjectCreated, project)
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, p auth.Principal, pid int64) (*model.Project, error) {
	return s.ProjectRepo.GetByID(ctx, p.CID, pid)
}

// List fetches the caller's projects with pagination
func (s *ProjectService) List(ctx context.Context, p auth.Principal, page, pageSize int) ([]*model.Project, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	projects, total, err := s.ProjectRepo.ListByCompany(ctx, p.CID, offset, pageSize)
	if err != nil {
		return nil, Pagination{}, err
	}

	return projects, Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// Update validates name, config and auto together so the caller sees every
// violation at once, then replaces the stored project.
func (s *ProjectService) Update(ctx context.Context, p auth.Principal, pid int64, in UpdateProjectInput) (*model.Project, error) {
	verr := &appErrors.ValidationError{}
	validation.Collect(verr, "", in)

	config, err := projectconfig.ParseConfig(in.Config)
	if err := verr.Merge("config", err); err != nil {
		return nil, err
	}
	auto, err := projectconfig.ParseAuto(in.Auto)
	if err := verr.Merge("auto", err); err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	project, err := s.ProjectRepo.GetByID(ctx, p.CID, pid)
	if err != nil {
		return nil, err
	}
	project.Name = in.Name
	project.Config = config
	project.Auto = auto

	if err := s.ProjectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.publish(ctx, model.ProjectUpdated, project)
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, p auth.Principal, pid int64) error {
	if err := s.ProjectRepo.Delete(ctx, p.CID, pid); err != nil {
		return err
	}
	s.publish(ctx, model.ProjectDeleted, &model.Project{PID: pid, CID: p.CID})
	return nil
}

// publish is best effort: the project change is already committed.
func (s *ProjectService) publish(ctx context.Context, eventType string, project *model.Project) {
	if s.Queue == nil {
		return
	}
	log := s.logger().With(zap.String("event", eventType), zap.Int64("pid", project.PID))

	event := model.ProjectEvent{
		Type:       eventType,
		PID:        project.PID,
		CID:        project.CID,
		OccurredAt: time.Now().UTC(),
	}
	if eventType != model.ProjectDeleted {
		auto, err := project.Auto.Encode()
		if err != nil {
			log.Error("failed to encode auto", zap.Error(err))
			return
		}
		event.Auto = auto
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error("failed to encode project event", zap.Error(err))
		return
	}

	topic := s.EventsTopic
	if topic == "" {
		topic = DefaultEventsTopic
	}
	if err := s.Queue.Publish(ctx, topic, payload); err != nil {
		log.Warn("failed to publish project event", zap.Error(err))
	}
}

func (s *ProjectService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
