package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StWron/customnode4portfolio/pkg/bus"
	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

func TestNew(t *testing.T) {
	t.Run("registers all nodes in stable order", func(t *testing.T) {
		r, err := New(Options{Bus: bus.NewMemory(), AssetRoot: t.TempDir()})
		require.NoError(t, err)

		names := r.Names()
		require.Len(t, names, 3+len(pipeline.Categories()))
		assert.Equal(t, "MasterController", names[0])
		assert.Equal(t, "MasterSender", names[1])
		assert.Equal(t, "MasterReceiver", names[2])
		assert.Equal(t, "Settings_01_Background", names[3])
		assert.Equal(t, "Settings_06_Audio", names[8])
	})

	t.Run("every node describes a schema", func(t *testing.T) {
		r, err := New(Options{Bus: bus.NewMemory(), AssetRoot: t.TempDir()})
		require.NoError(t, err)

		for _, name := range r.Names() {
			n, ok := r.Get(name)
			require.True(t, ok, name)
			schema := n.Describe()
			assert.NotEmpty(t, schema.Outputs, name)
		}
	})

	t.Run("display names drop the ordering prefix", func(t *testing.T) {
		r, err := New(Options{Bus: bus.NewMemory(), AssetRoot: t.TempDir()})
		require.NoError(t, err)

		assert.Equal(t, "SpecialEffects Settings", r.DisplayName("Settings_05_SpecialEffects"))
		assert.Equal(t, "Master Controller", r.DisplayName("MasterController"))
	})

	t.Run("requires a bus", func(t *testing.T) {
		_, err := New(Options{})
		require.Error(t, err)
	})
}
