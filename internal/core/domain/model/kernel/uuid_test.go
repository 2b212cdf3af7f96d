package kernel_test

import (
	"encoding/json"
	"sync"
	"testing"

	"menuorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a new UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		assert.False(t, id1.IsEqual(id2))
	})
}

func TestNewOrderedUUID(t *testing.T) {
	t.Run("should create a version 7 UUID", func(t *testing.T) {
		id := kernel.NewOrderedUUID()

		require.NoError(t, id.Validate())
		assert.Equal(t, uuid.Version(7), id.Bytes().Version())
	})

	t.Run("should sort by creation order", func(t *testing.T) {
		first := kernel.NewOrderedUUID()
		second := kernel.NewOrderedUUID()

		assert.Less(t, first.String(), second.String())
	})

	t.Run("should stay unique under concurrent generation", func(t *testing.T) {
		const workers, perWorker = 20, 500

		var (
			mu   sync.Mutex
			seen = make(map[string]struct{}, workers*perWorker)
			wg   sync.WaitGroup
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				local := make([]string, 0, perWorker)
				for range perWorker {
					local = append(local, kernel.NewOrderedUUID().String())
				}
				mu.Lock()
				for _, id := range local {
					seen[id] = struct{}{}
				}
				mu.Unlock()
			}()
		}
		wg.Wait()

		assert.Len(t, seen, workers*perWorker)
	})
}

func TestUUIDFromString(t *testing.T) {
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should create UUID from valid string", func(t *testing.T) {
		id, err := kernel.UUIDFromString(validUUID)

		require.NoError(t, err)
		assert.Equal(t, validUUID, id.String())
		require.NoError(t, id.Validate())
	})

	t.Run("should accept UUID with urn prefix", func(t *testing.T) {
		id, err := kernel.UUIDFromString("urn:uuid:" + validUUID)

		require.NoError(t, err)
		assert.Equal(t, validUUID, id.String())
	})

	t.Run("should reject malformed string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("table-4")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should parse nil UUID but fail validation", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		require.NoError(t, err)
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through bytes", func(t *testing.T) {
		original := kernel.NewOrderedUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		require.Error(t, err)
	})

	t.Run("should reject nil UUID bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
}

func TestUUID_Text(t *testing.T) {
	t.Run("should round trip through JSON", func(t *testing.T) {
		id := kernel.NewOrderedUUID()

		b, err := json.Marshal(struct{ ID kernel.UUID }{id})
		require.NoError(t, err)
		assert.JSONEq(t, `{"ID":"`+id.String()+`"}`, string(b))

		var decoded struct{ ID kernel.UUID }
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.True(t, id.IsEqual(decoded.ID))
	})

	t.Run("should reject malformed text", func(t *testing.T) {
		var id kernel.UUID

		require.Error(t, id.UnmarshalText([]byte("not-a-uuid")))
	})
}
