package service

import (
	"fmt"
	"slices"

	"github.com/Freeeeeet/medislot/internal/metrics"
	"github.com/Freeeeeet/medislot/internal/model"
	"github.com/Freeeeeet/medislot/internal/users"
	"go.uber.org/zap"
)

// UserService backs the admin "Manage Users" step.
type UserService struct {
	recorder metrics.Recorder
	logger   *zap.Logger
}

func NewUserService(recorder metrics.Recorder, logger *zap.Logger) *UserService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &UserService{
		recorder: recorder,
		logger:   logger,
	}
}

// Users lists the session's directory entries that pass f. Admin only.
func (s *UserService) Users(ws *Workspace, f users.Filter) ([]model.User, error) {
	if err := requireRole(ws, model.RoleAdmin); err != nil {
		return nil, err
	}
	return slices.Collect(ws.Users.List(f)), nil
}

// ToggleStatus activates or deactivates a user. Admin only.
func (s *UserService) ToggleStatus(ws *Workspace, userID int64) (model.User, error) {
	if err := requireRole(ws, model.RoleAdmin); err != nil {
		return model.User{}, err
	}

	u, err := ws.Users.Toggle(userID)
	if err != nil {
		s.recorder.RecordUserStatusChange("error")
		return model.User{}, fmt.Errorf("toggle user: %w", err)
	}
	s.recorder.RecordUserStatusChange("ok")

	s.logger.Info("User status changed",
		zap.Int64("user_id", u.ID),
		zap.String("status", string(u.Status)))

	return u, nil
}
