package artifact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("/exports/")

	require.NoError(t, s.Put(ctx, "b.api.json", []byte(`{"b":1}`)))
	require.NoError(t, s.Put(ctx, "/a.api.json", []byte(`{"a":1}`)))

	got, err := s.Get(ctx, "a.api.json")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.api.json", "b.api.json"}, names)

	_, err = s.Get(ctx, "missing.api.json")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, s.Put(ctx, "  ", nil))
}

func TestMemoryStoreCopiesContent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("")
	buf := []byte("one")
	require.NoError(t, s.Put(ctx, "x.api.json", buf))
	buf[0] = 'X'

	got, err := s.Get(ctx, "x.api.json")
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))
}

func TestNilMemoryStore(t *testing.T) {
	var s *MemoryStore
	assert.Error(t, s.Put(context.Background(), "a", nil))
	_, err := s.List(context.Background())
	assert.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "a.api.json", objectKey("", "a.api.json"))
	assert.Equal(t, "workflows/a.api.json", objectKey(normalizePrefix("/workflows/"), "/a.api.json"))
}

func TestNewS3StoreValidatesConfig(t *testing.T) {
	base := S3Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "b"}

	cases := map[string]func(*S3Config){
		"endpoint": func(c *S3Config) { c.Endpoint = " " },
		"keys":     func(c *S3Config) { c.SecretKey = "" },
		"bucket":   func(c *S3Config) { c.Bucket = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			_, err := NewS3Store(cfg)
			assert.Error(t, err)
		})
	}

	s, err := NewS3Store(S3Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "b", Prefix: "/cvb/"})
	require.NoError(t, err)
	assert.Equal(t, "us-east-1", s.region)
	assert.Equal(t, "cvb", s.prefix)
}
