package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"quickcmd/internal/infrastructure/errors"
	"quickcmd/internal/repository"
	"quickcmd/internal/types"
)

// MockRepository is an in-memory CommandRepository for tests
type MockRepository struct {
	mu       sync.RWMutex
	commands map[int64]types.Command
	nextID   int64

	searchCalls int
	failNext    error
}

var _ repository.CommandRepository = (*MockRepository)(nil)

func NewMockRepository() *MockRepository {
	return &MockRepository{commands: make(map[int64]types.Command), nextID: 1}
}

// FailNext makes the next call return err.
func (m *MockRepository) FailNext(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

func (m *MockRepository) SearchCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.searchCalls
}

// takeFailure must be called with m.mu held.
func (m *MockRepository) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func (m *MockRepository) SearchCommands(ctx context.Context, search string) ([]types.Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	if err := m.takeFailure(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(search)
	result := []types.Command{}
	for _, c := range m.commands {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Description), needle) ||
			strings.Contains(strings.ToLower(c.Icon), needle) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *MockRepository) GetCommand(ctx context.Context, id int64) (*types.Command, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	c, ok := m.commands[id]
	if !ok {
		return nil, errors.HandleNotFound("GetCommand", "command", strconv.FormatInt(id, 10))
	}
	return &c, nil
}

func (m *MockRepository) AddCommand(ctx context.Context, cmd *types.Command) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	clean, err := cleanCommand("AddCommand", cmd)
	if err != nil {
		return 0, err
	}
	clean.ID = m.nextID
	m.nextID++
	m.commands[clean.ID] = clean
	return clean.ID, nil
}

func (m *MockRepository) UpdateCommand(ctx context.Context, cmd *types.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	clean, err := cleanCommand("UpdateCommand", cmd)
	if err != nil {
		return err
	}
	if _, ok := m.commands[clean.ID]; !ok {
		return errors.HandleNotFound("UpdateCommand", "command", strconv.FormatInt(clean.ID, 10))
	}
	m.commands[clean.ID] = clean
	return nil
}

func (m *MockRepository) DeleteCommand(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return err
	}
	delete(m.commands, id)
	return nil
}

func (m *MockRepository) CountCommands(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return 0, err
	}
	return int64(len(m.commands)), nil
}

// WithTransaction runs fn directly; the mock has no isolation.
func (m *MockRepository) WithTransaction(ctx context.Context, fn func(repo repository.CommandRepository) error) error {
	return fn(m)
}

func cleanCommand(op string, cmd *types.Command) (types.Command, error) {
	if cmd == nil {
		return types.Command{}, errors.HandleValidationError(op, "command", "nil", "command is nil")
	}
	clean := types.Command{
		ID:          cmd.ID,
		Name:        strings.TrimSpace(cmd.Name),
		Description: strings.TrimSpace(cmd.Description),
		Command:     strings.TrimSpace(cmd.Command),
		Icon:        strings.TrimSpace(cmd.Icon),
	}
	if clean.Name == "" || clean.Command == "" {
		return types.Command{}, errors.HandleValidationError(op, "command", fmt.Sprintf("%+v", *cmd), "name and command are required")
	}
	return clean, nil
}
