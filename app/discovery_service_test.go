package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/battyone/beyond-correlation/adapters/rforest"
	"github.com/battyone/beyond-correlation/domain/core"
	"github.com/battyone/beyond-correlation/domain/relate"
	"github.com/battyone/beyond-correlation/internal/testkit"
)

// MockResultRepository implements ports.ResultRepository for testing
type MockResultRepository struct {
	mock.Mock
	saved []*relate.Run
}

func (m *MockResultRepository) SaveRun(ctx context.Context, run *relate.Run) error {
	args := m.Called(ctx, run)
	m.saved = append(m.saved, run)
	return args.Error(0)
}

func (m *MockResultRepository) GetRun(ctx context.Context, id core.RunID) (*relate.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*relate.Run), args.Error(1)
}

func (m *MockResultRepository) ListRuns(ctx context.Context, limit, offset int) ([]*relate.Run, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*relate.Run), args.Error(1)
}

func newService(repo *MockResultRepository) *DiscoveryService {
	if repo == nil {
		return NewDiscoveryService(rforest.NewFactory(), nil, nil)
	}
	return NewDiscoveryService(rforest.NewFactory(), repo, nil)
}

func TestDiscoverAssemblesRun(t *testing.T) {
	kit := testkit.NewKit()
	seed := int64(11)

	run, err := newService(nil).Discover(context.Background(), DiscoverRequest{
		Source: "synthetic",
		Frame:  kit.LinearFrame(20, 0.1),
		Method: "pearson",
		Seed:   &seed,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "synthetic", run.Source)
	assert.Equal(t, relate.MethodPearson, run.Method)
	assert.Equal(t, []string{"a", "b", "c"}, run.Columns)
	assert.Len(t, run.Result.Scores, 6)
}

func TestDiscoverRejectsUnknownMethod(t *testing.T) {
	kit := testkit.NewKit()
	_, err := newService(nil).Discover(context.Background(), DiscoverRequest{
		Source: "synthetic",
		Frame:  kit.LinearFrame(10, 0),
		Method: "chi_square",
	})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownMethod))
}

func TestDiscoverRejectsNilFrame(t *testing.T) {
	_, err := newService(nil).Discover(context.Background(), DiscoverRequest{
		Source: "empty",
		Method: "rf",
	})
	assert.Error(t, err)
}

func TestDiscoverPersistsWhenRequested(t *testing.T) {
	repo := &MockResultRepository{}
	repo.On("SaveRun", mock.Anything, mock.Anything).Return(nil)

	kit := testkit.NewKit()
	run, err := newService(repo).Discover(context.Background(), DiscoverRequest{
		Source:  "synthetic",
		Frame:   kit.LinearFrame(15, 0),
		Method:  "spearman",
		Persist: true,
	})
	assert.NoError(t, err)
	repo.AssertCalled(t, "SaveRun", mock.Anything, run)
	assert.Len(t, repo.saved, 1)
}

func TestDiscoverPersistWithoutRepositoryFails(t *testing.T) {
	kit := testkit.NewKit()
	_, err := newService(nil).Discover(context.Background(), DiscoverRequest{
		Source:  "synthetic",
		Frame:   kit.LinearFrame(15, 0),
		Method:  "rf",
		Persist: true,
	})
	assert.Error(t, err)
}

func TestReportIncludesRunDetails(t *testing.T) {
	kit := testkit.NewKit()
	service := newService(nil)
	f := kit.LinearFrame(20, 0.1)

	run, err := service.Discover(context.Background(), DiscoverRequest{
		Source: "synthetic",
		Frame:  f,
		Method: "pearson",
	})
	assert.NoError(t, err)

	md := service.Report(run, f)
	assert.True(t, strings.Contains(md, "synthetic"))
	assert.True(t, strings.Contains(md, "## Strongest Relationships"))
	assert.True(t, strings.Contains(md, "## Column Profiles"))

	html := string(service.ReportHTML(run, f))
	assert.True(t, strings.Contains(html, "<table>"))
}

func TestListRunsClampsPagination(t *testing.T) {
	repo := &MockResultRepository{}
	repo.On("ListRuns", mock.Anything, 20, 0).Return([]*relate.Run{}, nil)

	_, err := newService(repo).ListRuns(context.Background(), -5, -1)
	assert.NoError(t, err)
	repo.AssertCalled(t, "ListRuns", mock.Anything, 20, 0)
}

func TestGetRunWithoutRepositoryFails(t *testing.T) {
	_, err := newService(nil).GetRun(context.Background(), "some-id")
	assert.Error(t, err)
}
