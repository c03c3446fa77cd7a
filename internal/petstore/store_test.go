package petstore_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/petdocs/internal/petstore"
)

func ids(pets []petstore.Pet) []int64 {
	out := make([]int64, len(pets))
	for i, p := range pets {
		out[i] = p.ID
	}
	return out
}

func TestStore_Create_assigns_sequential_ids(t *testing.T) {
	t.Parallel()

	s := petstore.New()

	first := s.Create("max")
	second := s.Create("moritz")

	assert.Equal(t, petstore.Pet{ID: 1, Name: "max"}, first)
	assert.Equal(t, petstore.Pet{ID: 2, Name: "moritz"}, second)
	assert.Equal(t, s.List(), petstore.NewSeeded().List())
}

func TestStore_Create_next_id_is_one_above_max(t *testing.T) {
	t.Parallel()

	s := petstore.New(petstore.Pet{ID: 7, Name: "a"}, petstore.Pet{ID: 3, Name: "b"})

	p := s.Create("c")
	assert.Equal(t, int64(8), p.ID)
	assert.Equal(t, []int64{7, 3, 8}, ids(s.List()))
}

func TestStore_Create_does_not_reuse_deleted_ids(t *testing.T) {
	t.Parallel()

	s := petstore.NewSeeded()

	require.True(t, s.Delete(2))
	p := s.Create("again")

	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, []int64{1, 3}, ids(s.List()))
}

func TestStore_Create_allows_duplicate_names(t *testing.T) {
	t.Parallel()

	s := petstore.NewSeeded()
	p := s.Create("max")

	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, 3, s.Len())
}

func TestStore_Find(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id     int64
		want   petstore.Pet
		wantOK bool
	}{
		"present": {
			id:     2,
			want:   petstore.Pet{ID: 2, Name: "moritz"},
			wantOK: true,
		},
		"absent": {
			id: 42,
		},
		"zero id": {
			id: 0,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := petstore.NewSeeded().Find(tc.id)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStore_Update(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id       int64
		pet      petstore.Pet
		wantOK   bool
		wantList []petstore.Pet
	}{
		"replaces and moves to end": {
			id:     1,
			pet:    petstore.Pet{ID: 1, Name: "maximilian"},
			wantOK: true,
			wantList: []petstore.Pet{
				{ID: 2, Name: "moritz"},
				{ID: 1, Name: "maximilian"},
			},
		},
		"last record stays last": {
			id:     2,
			pet:    petstore.Pet{ID: 2, Name: "mo"},
			wantOK: true,
			wantList: []petstore.Pet{
				{ID: 1, Name: "max"},
				{ID: 2, Name: "mo"},
			},
		},
		"body id mismatch": {
			id:  1,
			pet: petstore.Pet{ID: 2, Name: "other"},
			wantList: []petstore.Pet{
				{ID: 1, Name: "max"},
				{ID: 2, Name: "moritz"},
			},
		},
		"body id missing": {
			id:  1,
			pet: petstore.Pet{Name: "anonymous"},
			wantList: []petstore.Pet{
				{ID: 1, Name: "max"},
				{ID: 2, Name: "moritz"},
			},
		},
		"unknown id": {
			id:  9,
			pet: petstore.Pet{ID: 9, Name: "ghost"},
			wantList: []petstore.Pet{
				{ID: 1, Name: "max"},
				{ID: 2, Name: "moritz"},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := petstore.NewSeeded()
			assert.Equal(t, tc.wantOK, s.Update(tc.id, tc.pet))
			assert.Equal(t, tc.wantList, s.List())
		})
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	t.Run("present id removes exactly one record", func(t *testing.T) {
		t.Parallel()

		s := petstore.New(
			petstore.Pet{ID: 1, Name: "a"},
			petstore.Pet{ID: 1, Name: "dup"},
			petstore.Pet{ID: 2, Name: "b"},
		)

		require.True(t, s.Delete(1))
		assert.Equal(t, []petstore.Pet{{ID: 1, Name: "dup"}, {ID: 2, Name: "b"}}, s.List())
	})

	t.Run("absent id leaves store unchanged", func(t *testing.T) {
		t.Parallel()

		s := petstore.NewSeeded()
		before := s.List()

		assert.False(t, s.Delete(99))
		assert.Equal(t, before, s.List())
	})
}

func TestStore_List_returns_copy(t *testing.T) {
	t.Parallel()

	s := petstore.NewSeeded()
	list := s.List()
	list[0].Name = "changed"

	p, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, "max", p.Name)
}

func TestStore_concurrent_creates_get_unique_ids(t *testing.T) {
	t.Parallel()

	s := petstore.New()

	const n = 50
	var wg sync.WaitGroup
	for range n {
		wg.Go(func() {
			s.Create("pet")
		})
	}
	wg.Wait()

	seen := make(map[int64]bool, n)
	for _, p := range s.List() {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
	assert.Len(t, seen, n)
}
