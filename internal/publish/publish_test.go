package publish_test

import (
	"context"
	"errors"
	"testing"

	"synapse/internal/models"
	"synapse/internal/publish"

	"github.com/stretchr/testify/require"
)

type stubPublisher struct {
	result publish.PublishResult
	err    error
	panics bool
}

func (s *stubPublisher) Publish(ctx context.Context, content string) (publish.PublishResult, error) {
	if s.panics {
		panic("stub exploded")
	}
	return s.result, s.err
}

func TestRegistryPublish_Success(t *testing.T) {
	reg := publish.NewRegistryOf(map[models.Platform]publish.Publisher{
		models.PlatformTwitter: &stubPublisher{result: publish.PublishResult{PostID: "123", URL: "https://t.co/123"}},
	})

	res, err := reg.Publish(context.Background(), models.PlatformTwitter, "hello world")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "123", res.PostID)
}

func TestRegistryPublish_PublisherError(t *testing.T) {
	reg := publish.NewRegistryOf(map[models.Platform]publish.Publisher{
		models.PlatformTwitter: &stubPublisher{err: errors.New("token expired")},
	})

	res, err := reg.Publish(context.Background(), models.PlatformTwitter, "hello world")
	require.Error(t, err)
	require.False(t, res.Success)
	require.Contains(t, res.Error, "token expired")
}

func TestRegistryPublish_NotConfigured(t *testing.T) {
	reg := publish.NewRegistryOf(map[models.Platform]publish.Publisher{})

	res, err := reg.Publish(context.Background(), models.PlatformLinkedIn, "hello world")
	require.Error(t, err)
	require.True(t, publish.IsNotImplemented(err))
	require.False(t, res.Success)
	require.NotEmpty(t, res.Error)
}

func TestRegistryPublish_RecoversPanic(t *testing.T) {
	reg := publish.NewRegistryOf(map[models.Platform]publish.Publisher{
		models.PlatformFacebook: &stubPublisher{panics: true},
	})

	res, err := reg.Publish(context.Background(), models.PlatformFacebook, "hello world")
	require.Error(t, err)
	require.False(t, res.Success)
	require.Contains(t, res.Error, "panic")
}

func TestRegistryPublish_ModerationRejects(t *testing.T) {
	stub := &stubPublisher{result: publish.PublishResult{PostID: "x"}}
	reg := publish.NewRegistryOf(map[models.Platform]publish.Publisher{
		models.PlatformTwitter: stub,
	})

	_, err := reg.Publish(context.Background(), models.PlatformTwitter, "")
	require.Error(t, err)
	require.ErrorIs(t, err, publish.ErrRejected)
}

func TestIsNotImplemented(t *testing.T) {
	require.True(t, publish.IsNotImplemented(publish.ErrNotImplemented))
	require.True(t, publish.IsNotImplemented(errors.New("operation Not Implemented for this account")))
	require.False(t, publish.IsNotImplemented(errors.New("timeout")))
	require.False(t, publish.IsNotImplemented(nil))
}

func TestConfigured(t *testing.T) {
	reg := publish.NewRegistryOf(map[models.Platform]publish.Publisher{
		models.PlatformGoogleBusiness: &stubPublisher{},
		models.PlatformFacebook:       &stubPublisher{},
	})

	// Порядок фиксирован порядком AllPlatforms.
	require.Equal(t,
		[]models.Platform{models.PlatformFacebook, models.PlatformGoogleBusiness},
		reg.Configured(),
	)
}

func TestNewRegistry_SkipsMissingCredentials(t *testing.T) {
	reg := publish.NewRegistry(publish.Credentials{TwitterToken: "tok"})
	require.Equal(t, []models.Platform{models.PlatformTwitter}, reg.Configured())
}
