package ecs

import (
	"slices"
	"testing"

	"github.com/milk9111/vermarine/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestEntityHandles(t *testing.T) {
	cases := []struct {
		name       string
		run        func(w *World) Entity
		wantIndex  uint32
		wantGen    uint32
		wantAlive  int
		wantString string
	}{
		{
			name: "fresh_indices_start_at_one",
			run: func(w *World) Entity {
				CreateEntity(w)
				CreateEntity(w)
				return CreateEntity(w)
			},
			wantIndex: 3, wantGen: 0, wantAlive: 3, wantString: "3v0",
		},
		{
			name: "last_freed_index_reused_first",
			run: func(w *World) Entity {
				a, b := CreateEntity(w), CreateEntity(w)
				CreateEntity(w)
				DestroyEntity(w, a)
				DestroyEntity(w, b)
				return CreateEntity(w)
			},
			wantIndex: 2, wantGen: 1, wantAlive: 2, wantString: "2v1",
		},
		{
			name: "generation_counts_recycles",
			run: func(w *World) Entity {
				e := CreateEntity(w)
				DestroyEntity(w, e)
				e = CreateEntity(w)
				DestroyEntity(w, e)
				return CreateEntity(w)
			},
			wantIndex: 1, wantGen: 2, wantAlive: 1, wantString: "1v2",
		},
		{
			name: "stale_destroy_leaves_successor",
			run: func(w *World) Entity {
				old := CreateEntity(w)
				DestroyEntity(w, old)
				cur := CreateEntity(w)
				if DestroyEntity(w, old) {
					return 0
				}
				return cur
			},
			wantIndex: 1, wantGen: 1, wantAlive: 1, wantString: "1v1",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			e := c.run(w)
			if !e.Valid() {
				t.Fatalf("expected a valid handle, got %s", e)
			}
			if e.Index() != c.wantIndex || e.Generation() != c.wantGen {
				t.Fatalf("expected index %d gen %d, got %s", c.wantIndex, c.wantGen, e)
			}
			if e.String() != c.wantString {
				t.Fatalf("expected %q, got %q", c.wantString, e.String())
			}
			if !IsAlive(w, e) {
				t.Fatalf("returned handle should be alive")
			}
			if n := len(Entities(w)); n != c.wantAlive {
				t.Fatalf("expected %d alive entities, got %d", c.wantAlive, n)
			}
		})
	}
}

func TestTrackedRemovals(t *testing.T) {
	cases := []struct {
		name        string
		run         func(w *World, k component.ComponentKind[int], e Entity)
		wantRemoved bool
		wantDeleted bool
		wantValue   int // 0 = component absent
	}{
		{
			name:        "remove",
			run:         func(w *World, k component.ComponentKind[int], e Entity) { Remove(w, e, k) },
			wantRemoved: true,
		},
		{
			name:        "destroy",
			run:         func(w *World, k component.ComponentKind[int], e Entity) { DestroyEntity(w, e) },
			wantDeleted: true,
		},
		{
			name: "remove_then_destroy",
			run: func(w *World, k component.ComponentKind[int], e Entity) {
				Remove(w, e, k)
				DestroyEntity(w, e)
			},
			wantRemoved: true,
		},
		{
			name: "readd_cancels_removal",
			run: func(w *World, k component.ComponentKind[int], e Entity) {
				Remove(w, e, k)
				_ = Add(w, e, k, intPtr(7))
			},
			wantValue: 7,
		},
		{
			name:      "replace_is_not_a_removal",
			run:       func(w *World, k component.ComponentKind[int], e Entity) { _ = Add(w, e, k, intPtr(9)) },
			wantValue: 9,
		},
		{
			name: "remove_twice_records_once",
			run: func(w *World, k component.ComponentKind[int], e Entity) {
				Remove(w, e, k)
				Remove(w, e, k)
			},
			wantRemoved: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			k := component.NewComponentKind[int]()
			Track(w, k)
			bystander := CreateEntity(w)
			e := CreateEntity(w)
			for _, x := range []Entity{bystander, e} {
				if err := Add(w, x, k, intPtr(1)); err != nil {
					t.Fatal(err)
				}
			}

			c.run(w, k, e)

			removed, deleted := TakeRemoved(w, k), TakeDeleted(w, k)
			if got := slices.Contains(removed, e); got != c.wantRemoved || len(removed) > 1 {
				t.Fatalf("TakeRemoved = %v, want e recorded=%v", removed, c.wantRemoved)
			}
			if got := slices.Contains(deleted, e); got != c.wantDeleted || len(deleted) > 1 {
				t.Fatalf("TakeDeleted = %v, want e recorded=%v", deleted, c.wantDeleted)
			}
			v, ok := Get(w, e, k)
			if c.wantValue == 0 && ok {
				t.Fatalf("component should be absent, got %d", *v)
			}
			if c.wantValue != 0 && (!ok || *v != c.wantValue) {
				t.Fatalf("expected value %d, got %v ok=%v", c.wantValue, v, ok)
			}
			if !Has(w, bystander, k) {
				t.Fatalf("bystander lost its component")
			}
		})
	}
}

func TestForEachSkipsStaleHandles(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	kept := CreateEntity(w)
	for _, e := range []Entity{old, kept} {
		if err := Add(w, e, k, intPtr(int(e.Index()))); err != nil {
			t.Fatal(err)
		}
	}
	DestroyEntity(w, old)
	reused := CreateEntity(w)
	if reused.Index() != old.Index() {
		t.Fatalf("expected index %d to be reused, got %s", old.Index(), reused)
	}

	var seen []Entity
	ForEach(w, k, func(e Entity, _ *int) { seen = append(seen, e) })
	if len(seen) != 1 || seen[0] != kept {
		t.Fatalf("expected only %s, got %v", kept, seen)
	}
	if Has(w, old, k) || Has(w, reused, k) {
		t.Fatalf("neither handle of the recycled index should hold the component")
	}
}

func TestForEach2(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[string]()

				if err := Add(w, e1, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ka, intPtr(2)); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, kb, stringPtr("two")); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, kb, stringPtr("three")); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, n *int, s *string) {
					if *n != 2 || *s != "two" {
						t.Fatalf("unexpected values %d %q", *n, *s)
					}
					res = append(res, e)
				})
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)
				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}
				called := false
				ForEach2(w, ka, kb, func(Entity, *int, *int) { called = true })
				if called {
					t.Fatalf("expected no callback when a store is missing")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEachDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	var ents []Entity
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		ents = append(ents, e)
		if err := Add(w, e, k, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, k, func(e Entity, v *int) {
		visited++
		if *v == 0 {
			DestroyEntity(w, ents[4])
		}
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
}

func TestGenerationReuse(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, k, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)
	cur := CreateEntity(w)

	if cur.Index() != old.Index() || cur.Generation() != old.Generation()+1 {
		t.Fatalf("expected index reuse with bumped generation, got %s after %s", cur, old)
	}
	if IsAlive(w, old) || !IsAlive(w, cur) {
		t.Fatalf("only the new handle should be alive")
	}
	if Has(w, cur, k) {
		t.Fatalf("components must not survive index reuse")
	}
	if err := Add(w, old, k, intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	if DestroyEntity(w, old) {
		t.Fatalf("destroying a stale handle should fail")
	}
}

func TestTracking(t *testing.T) {
	w := NewWorld()
	k := component.NewComponentKind[int]()
	untracked := component.NewComponentKind[int]()
	Track(w, k)

	removed := CreateEntity(w)
	destroyed := CreateEntity(w)
	for _, e := range []Entity{removed, destroyed} {
		if err := Add(w, e, k, intPtr(1)); err != nil {
			t.Fatal(err)
		}
		if err := Add(w, e, untracked, intPtr(1)); err != nil {
			t.Fatal(err)
		}
	}

	Remove(w, removed, k)
	DestroyEntity(w, destroyed)

	if got := TakeRemoved(w, k); len(got) != 1 || got[0] != removed {
		t.Fatalf("TakeRemoved = %v", got)
	}
	if got := TakeDeleted(w, k); len(got) != 1 || got[0] != destroyed {
		t.Fatalf("TakeDeleted = %v", got)
	}
	if got := TakeRemoved(w, k); got != nil {
		t.Fatalf("TakeRemoved should drain, got %v", got)
	}
	if got := TakeDeleted(w, untracked); got != nil {
		t.Fatalf("untracked store should record nothing, got %v", got)
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	if err := Add[int](w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add[int](w, e, component.NewComponentKind[int](), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestEventQueue(t *testing.T) {
	w := NewWorld()
	w.Events().PushCollision(CollisionEvent{Entity: 1, Other: 2, Kind: CollisionEventPickup})
	if w.Events().Len() != 1 {
		t.Fatalf("expected one queued event")
	}
	evts := w.Events().Drain()
	if len(evts) != 1 || evts[0].Type != CollisionEventType {
		t.Fatalf("unexpected events %v", evts)
	}
	if ce, ok := evts[0].Data.(CollisionEvent); !ok || ce.Kind != CollisionEventPickup {
		t.Fatalf("unexpected payload %v", evts[0].Data)
	}
	if w.Events().Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

type countingSystem struct{ n *int }

func (s countingSystem) Update(*World) { *s.n++ }

func TestScheduler(t *testing.T) {
	n := 0
	s := NewScheduler(countingSystem{&n}, nil)
	s.Add(countingSystem{&n})
	s.Update(NewWorld())
	if n != 2 || len(s.Systems()) != 2 {
		t.Fatalf("expected two systems run once, got n=%d systems=%d", n, len(s.Systems()))
	}
}
