package bus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// transportsUnderTest builds each Bus implementation against throwaway
// backing storage so the shared contract can be exercised uniformly.
func transportsUnderTest(t *testing.T) map[string]Bus {
	t.Helper()

	fileBus, err := NewFile(filepath.Join(t.TempDir(), "channels"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	redisBus, err := NewRedis(&redis.Options{Addr: mr.Addr()}, "test-instance")
	require.NoError(t, err)
	t.Cleanup(func() { redisBus.Close() })

	return map[string]Bus{
		"memory": NewMemory(),
		"file":   fileBus,
		"redis":  redisBus,
	}
}

func TestBusContract(t *testing.T) {
	ctx := context.Background()

	for name, b := range transportsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("get after set returns value", func(t *testing.T) {
				require.NoError(t, b.Set(ctx, "MASTER_CH", []byte(`{"a":1}`)))

				got, err := b.Get(ctx, "MASTER_CH")
				require.NoError(t, err)
				assert.Equal(t, []byte(`{"a":1}`), got)
			})

			t.Run("last write wins", func(t *testing.T) {
				require.NoError(t, b.Set(ctx, "LWW_CH", []byte("first")))
				require.NoError(t, b.Set(ctx, "LWW_CH", []byte("second")))

				got, err := b.Get(ctx, "LWW_CH")
				require.NoError(t, err)
				assert.Equal(t, []byte("second"), got)
			})

			t.Run("unset channel returns ErrNoData", func(t *testing.T) {
				_, err := b.Get(ctx, "NEVER_SET")
				assert.ErrorIs(t, err, ErrNoData)
			})

			t.Run("rejects empty channel name", func(t *testing.T) {
				assert.Error(t, b.Set(ctx, "  ", []byte("x")))
				_, err := b.Get(ctx, "")
				assert.Error(t, err)
			})
		})
	}
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = b.Set(ctx, "CONC_CH", []byte(fmt.Sprintf("writer-%d", n)))
		}(i)
		go func() {
			defer wg.Done()
			_, _ = b.Get(ctx, "CONC_CH")
		}()
	}
	wg.Wait()

	// Whatever interleaving happened, the channel holds exactly one of the
	// written values.
	got, err := b.Get(ctx, "CONC_CH")
	require.NoError(t, err)
	assert.Contains(t, string(got), "writer-")
}

func TestMemoryCopiesPayloads(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()

	payload := []byte("original")
	require.NoError(t, b.Set(ctx, "COPY_CH", payload))
	payload[0] = 'X'

	got, err := b.Get(ctx, "COPY_CH")
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))
}

func TestFileRotation(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "channels")
	b, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, b.Set(ctx, "ROT_CH", []byte("v1")))
	require.NoError(t, b.Set(ctx, "ROT_CH", []byte("v2")))

	latest, err := os.ReadFile(filepath.Join(dir, "ROT_CH_latest.json"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(latest))

	backup, err := os.ReadFile(filepath.Join(dir, "ROT_CH_backup.json"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(backup))
}

func TestFileFlattensChannelNames(t *testing.T) {
	ctx := context.Background()
	b, err := NewFile(filepath.Join(t.TempDir(), "channels"))
	require.NoError(t, err)

	require.NoError(t, b.Set(ctx, "proj/main", []byte("x")))

	_, err = os.Stat(filepath.Join(b.Dir(), "proj_main_latest.json"))
	assert.NoError(t, err)
}

func TestRedisNamespaceIsolation(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	first, err := NewRedis(&redis.Options{Addr: mr.Addr()}, "first")
	require.NoError(t, err)
	defer first.Close()

	second, err := NewRedis(&redis.Options{Addr: mr.Addr()}, "second")
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, first.Set(ctx, "MASTER_CH", []byte("first-data")))

	_, err = second.Get(ctx, "MASTER_CH")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestNewRedisRejectsEmptyNamespace(t *testing.T) {
	_, err := NewRedis(&redis.Options{Addr: "localhost:6379"}, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "namespace cannot be empty")
}

func TestNewFactory(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		b, err := New(Options{Transport: TransportMemory})
		require.NoError(t, err)
		assert.IsType(t, &Memory{}, b)
	})

	t.Run("file", func(t *testing.T) {
		b, err := New(Options{Transport: TransportFile, CacheDir: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &File{}, b)
	})

	t.Run("unknown transport", func(t *testing.T) {
		_, err := New(Options{Transport: "carrier-pigeon"})
		assert.Error(t, err)
	})
}

func TestTransportValidate(t *testing.T) {
	assert.NoError(t, TransportMemory.Validate())
	assert.NoError(t, TransportFile.Validate())
	assert.NoError(t, TransportRedis.Validate())
	assert.Error(t, Transport("smoke-signal").Validate())
}
