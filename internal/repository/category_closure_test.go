package repository

import (
	"errors"
	"sort"
	"testing"
)

// treeChildren builds a childrenOf func over a static parent -> children map.
func treeChildren(tree map[int64][]int64) func([]int64) ([]int64, error) {
	return func(frontier []int64) ([]int64, error) {
		var out []int64
		for _, id := range frontier {
			out = append(out, tree[id]...)
		}
		return out, nil
	}
}

func sorted(ids []int64) []int64 {
	out := append([]int64{}, ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestExpandClosure(t *testing.T) {
	tests := []struct {
		name string
		tree map[int64][]int64
		seed int64
		want []int64
	}{
		{
			name: "leaf yields only itself",
			tree: map[int64][]int64{1: {2, 3}},
			seed: 2,
			want: []int64{2},
		},
		{
			name: "unknown seed yields only itself",
			tree: map[int64][]int64{1: {2}},
			seed: 99,
			want: []int64{99},
		},
		{
			name: "direct children",
			tree: map[int64][]int64{1: {2, 3}},
			seed: 1,
			want: []int64{1, 2, 3},
		},
		{
			name: "multi level",
			tree: map[int64][]int64{
				1: {2, 3},
				2: {4},
				3: {5, 6},
				5: {7},
			},
			seed: 1,
			want: []int64{1, 2, 3, 4, 5, 6, 7},
		},
		{
			name: "subtree only",
			tree: map[int64][]int64{
				1: {2, 3},
				3: {5, 6},
			},
			seed: 3,
			want: []int64{3, 5, 6},
		},
		{
			name: "deep chain",
			tree: map[int64][]int64{1: {2}, 2: {3}, 3: {4}, 4: {5}},
			seed: 1,
			want: []int64{1, 2, 3, 4, 5},
		},
		{
			name: "cycle terminates",
			tree: map[int64][]int64{1: {2}, 2: {3}, 3: {1}},
			seed: 1,
			want: []int64{1, 2, 3},
		},
		{
			name: "duplicate child reported once",
			tree: map[int64][]int64{1: {2, 2, 3}, 3: {2}},
			seed: 1,
			want: []int64{1, 2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandClosure(tt.seed, treeChildren(tt.tree))
			if err != nil {
				t.Fatalf("expandClosure returned error: %v", err)
			}
			gotSorted := sorted(got)
			wantSorted := sorted(tt.want)
			if len(gotSorted) != len(wantSorted) {
				t.Fatalf("got %v, want %v", gotSorted, wantSorted)
			}
			for i := range gotSorted {
				if gotSorted[i] != wantSorted[i] {
					t.Fatalf("got %v, want %v", gotSorted, wantSorted)
				}
			}
		})
	}
}

func TestExpandClosureSeedFirst(t *testing.T) {
	got, err := expandClosure(1, treeChildren(map[int64][]int64{1: {2, 3}}))
	if err != nil {
		t.Fatalf("expandClosure returned error: %v", err)
	}
	if len(got) == 0 || got[0] != 1 {
		t.Errorf("got %v, want seed 1 first", got)
	}
}

func TestExpandClosurePropagatesError(t *testing.T) {
	boom := errors.New("query failed")
	_, err := expandClosure(1, func([]int64) ([]int64, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want %v", err, boom)
	}
}
