package loader_test

import (
	"errors"
	"testing"

	"storage-kit/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loads   int
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(fiber.Router) error {
	s.loads++
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	a := &stubFeature{name: "a", enabled: true}
	b := &stubFeature{name: "b"}
	c := &stubFeature{name: "c", enabled: true}

	m := loader.NewManager()
	m.Register(a)
	m.Register(b)
	m.Register(c)

	loaded, err := m.LoadAll(fiber.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, loaded)
	assert.Equal(t, 0, b.loads)
}

func TestManager_LoadAllStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	bad := &stubFeature{name: "bad", enabled: true, err: boom}
	after := &stubFeature{name: "after", enabled: true}

	m := loader.NewManager()
	m.Register(bad)
	m.Register(after)

	_, err := m.LoadAll(fiber.New())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, after.loads)
}
