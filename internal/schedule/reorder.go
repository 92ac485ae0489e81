package schedule

import (
	"context"

	"pawhub/internal/models"
)

// OrderChange assigns a new ordinal to one task.
type OrderChange struct {
	TaskID int64
	Order  int
}

// PlanReorder computes the ordinal updates for moving the source task to the
// position currently held by the target task within one order-sorted
// partition. The whole partition is renumbered densely 1..N and only tasks
// whose ordinal actually changes are returned, ascending by new position.
// ok is false when either id is missing from the partition; callers treat
// that as a no-op.
func PlanReorder(partition []models.Task, sourceID, targetID int64) (changes []OrderChange, ok bool) {
	from, to := -1, -1
	for i, t := range partition {
		if t.ID == sourceID {
			from = i
		}
		if t.ID == targetID {
			to = i
		}
	}
	if from < 0 || to < 0 || sourceID == targetID {
		return nil, from >= 0 && from == to
	}

	moved := make([]models.Task, len(partition))
	copy(moved, partition)
	task := moved[from]
	moved = append(moved[:from], moved[from+1:]...)
	// Reinsert at the target's pre-removal index. Removing an earlier
	// element shifts later indices left by one, so this single splice is
	// the conventional array move: forward drags land just after the
	// target, backward drags land just before it.
	moved = append(moved[:to], append([]models.Task{task}, moved[to:]...)...)

	for pos, t := range moved {
		if want := pos + 1; t.Order != want {
			changes = append(changes, OrderChange{TaskID: t.ID, Order: want})
		}
	}
	return changes, true
}

// Reorderer turns a completed drag gesture into the minimal sequence of
// persisted ordinal updates against a TaskStore.
type Reorderer struct {
	store *TaskStore
}

// NewReorderer wires a reorder engine to its task store.
func NewReorderer(store *TaskStore) *Reorderer {
	return &Reorderer{store: store}
}

// Reorder moves the source task to the target task's position within the
// given day partition. Both ids must belong to that partition; otherwise the
// call is a no-op. Updates are issued sequentially, ascending by new
// position, so an interruption leaves a prefix of the intended state and
// never duplicate ordinals. If a write fails mid-sequence the remaining
// updates are abandoned, the store is reloaded from the backend, and the
// StorageError is returned.
func (r *Reorderer) Reorder(ctx context.Context, day models.DayOfWeek, sourceID, targetID int64) error {
	partition := r.store.Partition(day)
	changes, ok := PlanReorder(partition, sourceID, targetID)
	if !ok || len(changes) == 0 {
		return nil
	}

	for _, ch := range changes {
		if err := r.store.SetOrder(ctx, ch.TaskID, ch.Order); err != nil {
			// Resync rather than roll back: compensating the writes that
			// already landed could reintroduce duplicate ordinals.
			if loadErr := r.store.Load(ctx, r.store.PetID()); loadErr != nil {
				return loadErr
			}
			return err
		}
	}
	return nil
}
