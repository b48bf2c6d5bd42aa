package transactions

import (
	"context"
	"errors"
	"inventory/pkg/auditlog"
	"inventory/pkg/metadata"
	"inventory/pkg/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) ApplyTransition(ctx context.Context, req models.CommitRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type MockAuditLog struct {
	mock.Mock
}

func (m *MockAuditLog) Log(ctx context.Context, action string, data interface{}, item auditlog.Auditable, userID string) {
	m.Called(ctx, action, data, item, userID)
}

func TestCommitOne(t *testing.T) {
	repo := new(MockStateRepository)
	audit := new(MockAuditLog)
	service := NewTransactionService(repo, audit)

	req := models.CommitRequest{
		AssetID:     "a-1",
		Direction:   metadata.DirectionCheckIn,
		Metadata:    models.CommitMetadata{Notes: strPtr("lens cap missing")},
		PerformedBy: operator,
	}
	repo.On("ApplyTransition", mock.Anything, req).Return(nil).Once()
	audit.On("Log", mock.Anything, "check_in", req.Metadata, req, "u-1").Once()

	err := service.CommitOne(context.Background(), req)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestCommitOne_FailureIsNotAudited(t *testing.T) {
	repo := new(MockStateRepository)
	audit := new(MockAuditLog)
	service := NewTransactionService(repo, audit)

	repo.On("ApplyTransition", mock.Anything, mock.Anything).Return(errors.New("deadlock")).Once()

	err := service.CommitOne(context.Background(), models.CommitRequest{AssetID: "a-1", Direction: metadata.DirectionCheckOut})

	assert.EqualError(t, err, "deadlock")
	audit.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCommitOne_RejectsInvalidRequests(t *testing.T) {
	repo := new(MockStateRepository)
	service := NewTransactionService(repo, new(MockAuditLog))

	assert.Error(t, service.CommitOne(context.Background(), models.CommitRequest{AssetID: "a-1", Direction: "LEND"}))
	assert.Error(t, service.CommitOne(context.Background(), models.CommitRequest{Direction: metadata.DirectionCheckOut}))
	repo.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything)
}
