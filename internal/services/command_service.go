package services

import (
	"context"
	"strconv"
	"strings"

	repoerrors "quickcmd/internal/infrastructure/errors"
	"quickcmd/internal/infrastructure/logging"
	"quickcmd/internal/repository"
	"quickcmd/internal/types"
)

// CommandService is the launcher's view of saved commands.
type CommandService struct {
	repo   repository.CommandRepository
	runner Runner
	logger logging.Logger
}

// NewCommandService wires the service. A nil runner starts commands through
// the platform shell.
func NewCommandService(repo repository.CommandRepository, runner Runner, logger logging.Logger) *CommandService {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	logger = logging.WithComponent(logger, "commands")
	if runner == nil {
		runner = NewShellRunner(logger)
	}
	return &CommandService{repo: repo, runner: runner, logger: logger}
}

// Search returns commands matching search; surrounding whitespace is ignored.
func (s *CommandService) Search(ctx context.Context, search string) ([]types.Command, error) {
	return s.repo.SearchCommands(ctx, strings.TrimSpace(search))
}

func (s *CommandService) Get(ctx context.Context, id int64) (*types.Command, error) {
	return s.repo.GetCommand(ctx, id)
}

func (s *CommandService) Add(ctx context.Context, name, description, command, icon string) (int64, error) {
	id, err := s.repo.AddCommand(ctx, &types.Command{
		Name:        name,
		Description: description,
		Command:     command,
		Icon:        icon,
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("Command added", "id", id, "name", strings.TrimSpace(name))
	return id, nil
}

func (s *CommandService) Update(ctx context.Context, cmd types.Command) error {
	if err := s.repo.UpdateCommand(ctx, &cmd); err != nil {
		return err
	}
	s.logger.Info("Command updated", "id", cmd.ID)
	return nil
}

func (s *CommandService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCommand(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Command deleted", "id", id)
	return nil
}

// CommandText returns the shell text of a stored command.
func (s *CommandService) CommandText(ctx context.Context, id int64) (string, error) {
	cmd, err := s.repo.GetCommand(ctx, id)
	if err != nil {
		return "", err
	}
	return cmd.Command, nil
}

// Run starts the stored command in the background. It returns once the
// process has started; output is discarded.
func (s *CommandService) Run(ctx context.Context, id int64) error {
	cmd, err := s.repo.GetCommand(ctx, id)
	if err != nil {
		return err
	}
	if err := s.runner.Start(cmd.Command); err != nil {
		return repoerrors.NewRepositoryErrorWithContext("RunCommand", err, repoerrors.ErrCodeInternal, map[string]string{
			"id":   strconv.FormatInt(id, 10),
			"name": cmd.Name,
		})
	}
	s.logger.Info("Command started", "id", id, "name", cmd.Name)
	return nil
}
