package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/revgantt/internal/db"
	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/repository"
	"github.com/google/uuid"
)

type teamService struct {
	teams    repository.TeamRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTeamService(teams repository.TeamRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TeamService {
	return &teamService{teams: teams, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Create stores the team and its initial members in one transaction.
func (s *teamService) Create(ctx context.Context, t *domain.Team) (err error) {
	defer observe(ctx, s.observer, "create-team", map[string]any{"team": t.Name}, &err)()

	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTeamRepo(tx).Create(ctx, t)
	})
}

func (s *teamService) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	return s.teams.GetByID(ctx, id)
}

func (s *teamService) List(ctx context.Context) ([]*domain.Team, error) {
	return s.teams.List(ctx)
}

func (s *teamService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-team", map[string]any{"team_id": id}, &err)()
	return s.teams.Delete(ctx, id)
}

func (s *teamService) AddMember(ctx context.Context, teamID, name string) (err error) {
	defer observe(ctx, s.observer, "add-team-member", map[string]any{"team_id": teamID}, &err)()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: member name is required", ErrInvalidInput)
	}
	if _, err = s.teams.GetByID(ctx, teamID); err != nil {
		return err
	}
	return s.teams.AddMember(ctx, teamID, name)
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, name string) error {
	return s.teams.RemoveMember(ctx, teamID, name)
}

// Members returns the member names of an existing team, in the order they
// were added.
func (s *teamService) Members(ctx context.Context, teamID string) ([]string, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.teams.ListMembers(ctx, teamID)
}
