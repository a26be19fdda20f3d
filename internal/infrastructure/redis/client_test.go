package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/internal/config"
)

func TestNewClient(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewClient(config.RedisConfig{URL: "redis://" + srv.Addr(), DB: 2}, nil)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 2, client.Options().DB)
	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewClient_Unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	client, err := NewClient(config.RedisConfig{URL: "redis://" + addr}, nil)
	require.NoError(t, err)
	defer client.Close()
	assert.Error(t, client.Ping(context.Background()).Err())
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := NewClient(config.RedisConfig{URL: "http://nope"}, nil)
	assert.Error(t, err)
}
