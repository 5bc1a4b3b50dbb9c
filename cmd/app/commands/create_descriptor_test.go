package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/keyring/internal/errors"
	"github.com/allisson/keyring/internal/keyring/domain"
	"github.com/allisson/keyring/internal/keyring/service"
	usecaseMocks "github.com/allisson/keyring/internal/keyring/usecase/mocks"
)

func exportedDescriptor(t *testing.T) *domain.Descriptor {
	t.Helper()
	cfg := domain.NewGCMConfiguration()
	descriptor, err := service.NewDescriptorExporter(nil).Export(cfg)
	require.NoError(t, err)
	t.Cleanup(cfg.MasterKey().Release)
	return descriptor
}

func TestRunCreateDescriptor(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()

	t.Run("success-stdout", func(t *testing.T) {
		descriptor := exportedDescriptor(t)
		mockUseCase := &usecaseMocks.MockConfigurationUseCase{}
		mockUseCase.On("GenerateDescriptor", ctx, mock.Anything).Return(descriptor, nil)

		var buf bytes.Buffer
		err := RunCreateDescriptor(ctx, mockUseCase, logger, testIO(&buf), "gcm-v1", "AES", "", 256, "", "")
		require.NoError(t, err)
		require.Contains(t, buf.String(), "<descriptor>")
		require.Contains(t, buf.String(), "<masterKey>")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success-output-file", func(t *testing.T) {
		descriptor := exportedDescriptor(t)
		mockUseCase := &usecaseMocks.MockConfigurationUseCase{}
		mockUseCase.On("GenerateDescriptor", ctx, mock.Anything).Return(descriptor, nil)

		output := filepath.Join(t.TempDir(), "descriptor.xml")

		var buf bytes.Buffer
		err := RunCreateDescriptor(ctx, mockUseCase, logger, testIO(&buf), "gcm-v1", "AES", "", 256, "", output)
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		require.Contains(t, string(data), "<descriptor>")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("success-with-secret", func(t *testing.T) {
		descriptor := exportedDescriptor(t)
		mockUseCase := &usecaseMocks.MockConfigurationUseCase{}
		mockUseCase.On("GenerateDescriptorFromSecret", ctx, mock.Anything, mock.Anything).Return(descriptor, nil)

		var buf bytes.Buffer
		err := RunCreateDescriptor(
			ctx,
			mockUseCase,
			logger,
			testIO(&buf),
			"gcm-v1",
			"AES",
			"",
			256,
			"MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=",
			"",
		)
		require.NoError(t, err)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-secret", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockConfigurationUseCase{}

		var buf bytes.Buffer
		err := RunCreateDescriptor(ctx, mockUseCase, logger, testIO(&buf), "gcm-v1", "AES", "", 256, "not base64!", "")
		require.Error(t, err)
		require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("generation-failure", func(t *testing.T) {
		mockUseCase := &usecaseMocks.MockConfigurationUseCase{}
		mockUseCase.On("GenerateDescriptor", ctx, mock.Anything).Return(nil, domain.ErrUnsupportedAlgorithm)

		var buf bytes.Buffer
		err := RunCreateDescriptor(ctx, mockUseCase, logger, testIO(&buf), "gcm-v1", "AES", "", 256, "", "")
		require.Error(t, err)
		require.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
		mockUseCase.AssertExpectations(t)
	})
}
