package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	type args[T any] struct {
		key  string
		val  *T
		m    *MStorage
		opts []func(*SetOptions)
	}
	type testCase[T any] struct {
		name    string
		args    args[T]
		wantErr error
	}
	type target struct {
		Key string
		Val int
	}
	ms := NewMemStorage()
	tests := []testCase[target]{
		{
			name: "default",
			args: args[target]{
				key: "key1",
				val: &target{Key: "key1", Val: 1},
				m:   ms,
			},
		}, {
			name: "duplicate records",
			args: args[target]{
				key: "key1",
				val: &target{Key: "key1", Val: 2},
				m:   ms,
			},
			wantErr: ErrDuplicateKey,
		}, {
			name: "overwrite",
			args: args[target]{
				key:  "key1",
				val:  &target{Key: "key1", Val: 3},
				m:    ms,
				opts: []func(*SetOptions){WithOverwrite()},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Set[target](t.Context(), tt.args.key, tt.args.val, tt.args.m, tt.args.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("%s: Set() error = %+v, wantErr %+v", tt.name, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)

			val, getErr := Get[target](t.Context(), tt.args.key, tt.args.m)
			if getErr != nil {
				t.Fatal(getErr)
			}
			if val.Key != tt.args.val.Key || val.Val != tt.args.val.Val {
				t.Errorf("%s: Set() Val = %+v, want %+v", tt.name, val, tt.args.val)
			}
		})
	}
}

func TestGet_NotFoundAndCanceled(t *testing.T) {
	ms := NewMemStorage()
	_, err := Get[int](t.Context(), "missing", ms)
	require.ErrorIs(t, err, ErrNotFound)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = Get[int](ctx, "missing", ms)
	require.ErrorIs(t, err, context.Canceled)
}

func TestUpdate_IsAtomic(t *testing.T) {
	type counter struct {
		N   int
		Max int
	}
	ms := NewMemStorage()
	require.NoError(t, Set(t.Context(), "c", &counter{Max: 10}, ms))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applied int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := Update[counter](context.Background(), "c", ms, func(c *counter) bool {
				if c.N >= c.Max {
					return false
				}
				c.N++
				return true
			})
			if err != nil {
				t.Error(err)
				return
			}
			if ok {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, err := Get[counter](t.Context(), "c", ms)
	require.NoError(t, err)
	assert.Equal(t, 10, got.N)
	assert.Equal(t, 10, applied)

	_, err = Update[counter](t.Context(), "nope", ms, func(*counter) bool { return true })
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFilterAll(t *testing.T) {
	ms := NewMemStorage()
	for i, v := range []int{1, 2, 3, 4} {
		require.NoError(t, Set(t.Context(), "num:"+string(rune('a'+i)), &v, ms))
	}
	other := "not a number"
	require.NoError(t, Set(t.Context(), "str:a", &other, ms))

	even, err := FilterAll[int](t.Context(), ms, "num:", func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{2, 4}, even)
	assert.Equal(t, 5, ms.Len())

	_, err = FilterAll[int](t.Context(), ms, "", func(int) bool { return true })
	require.Error(t, err)
}
