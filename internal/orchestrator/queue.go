package orchestrator

// TaskQueue is the run's work list. Retries and alternatives go to the
// front so they run next; mined follow-ups go to the back behind work that
// is already planned.
type TaskQueue struct {
	items []string
}

func NewTaskQueue(tasks []string) *TaskQueue {
	return &TaskQueue{items: append([]string(nil), tasks...)}
}

func (q *TaskQueue) Len() int { return len(q.items) }

func (q *TaskQueue) PushFront(task string) {
	q.items = append([]string{task}, q.items...)
}

func (q *TaskQueue) PushBack(task string) {
	q.items = append(q.items, task)
}

func (q *TaskQueue) PopFront() (string, bool) {
	if len(q.items) == 0 {
		return "", false
	}
	task := q.items[0]
	q.items = q.items[1:]
	return task, true
}

// Items returns a copy in queue order.
func (q *TaskQueue) Items() []string {
	return append([]string(nil), q.items...)
}

// Replace swaps the whole contents, as a re-ranking may drop or rephrase
// entries.
func (q *TaskQueue) Replace(tasks []string) {
	q.items = append([]string(nil), tasks...)
}
