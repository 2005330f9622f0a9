package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }

func (f *stubFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	a := &stubFeature{name: "a", enabled: true}
	b := &stubFeature{name: "b", enabled: false}

	mgr := NewManager(zap.NewNop())
	mgr.Register(a)
	mgr.Register(b)

	assert.NoError(t, mgr.LoadAll(fiber.New()))
	assert.True(t, a.loaded)
	assert.False(t, b.loaded)
	assert.Len(t, mgr.Features(), 2)
}

func TestManager_LoadAll_StopsOnError(t *testing.T) {
	a := &stubFeature{name: "a", enabled: true, err: errors.New("boom")}
	b := &stubFeature{name: "b", enabled: true}

	mgr := NewManager(nil)
	mgr.Register(a)
	mgr.Register(b)

	err := mgr.LoadAll(fiber.New())
	assert.ErrorContains(t, err, "feature a")
	assert.False(t, b.loaded)
}
