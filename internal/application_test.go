package application

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crevelings/monopoly-backend/internal/announcer"
	"github.com/crevelings/monopoly-backend/internal/config"
	"github.com/crevelings/monopoly-backend/testing/suite"
)

func TestNewAnnouncer(t *testing.T) {
	ctx := context.Background()

	t.Run("Log announcer by default", func(t *testing.T) {
		ann, closeFn, err := newAnnouncer(ctx, discardLogger(), &config.Config{})

		require.NoError(t, err)
		assert.IsType(t, &announcer.Logger{}, ann)
		require.NoError(t, closeFn())
	})

	t.Run("Unknown announcer is rejected", func(t *testing.T) {
		_, _, err := newAnnouncer(ctx, discardLogger(), &config.Config{Announcer: "carrier-pigeon"})

		require.ErrorIs(t, err, ErrUnknownAnnouncer)
	})

	t.Run("Redis announcer needs a host", func(t *testing.T) {
		_, _, err := newAnnouncer(ctx, discardLogger(), &config.Config{Announcer: config.AnnouncerRedis})

		require.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("Redis announcer publishes and logs", func(t *testing.T) {
		ctx, st := suite.New(t)

		host, port, err := net.SplitHostPort(st.Addr())
		require.NoError(t, err)

		conf := &config.Config{
			Announcer: config.AnnouncerRedis,
			Redis:     config.Redis{Host: host, Port: port, Channel: "test:announcements"},
		}

		ann, closeFn, err := newAnnouncer(ctx, st.Logger, conf)

		require.NoError(t, err)
		assert.IsType(t, announcer.Multi{}, ann)
		require.NoError(t, closeFn())
	})
}
