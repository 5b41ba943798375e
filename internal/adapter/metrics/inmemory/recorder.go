package inmemory

import "sync"

type Snapshot struct {
	TickTotal        uint64            `json:"tick_total"`
	Commits          uint64            `json:"commits"`
	Rejections       uint64            `json:"rejections"`
	NoAction         uint64            `json:"no_action"`
	CommitsByModule  map[string]uint64 `json:"commits_by_module"`
	NoActionByReason map[string]uint64 `json:"no_action_by_reason"`
}

type Recorder struct {
	mu         sync.Mutex
	commits    uint64
	rejections uint64
	noAction   uint64
	byModule   map[string]uint64
	byReason   map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byModule: map[string]uint64{},
		byReason: map[string]uint64{},
	}
}

func (r *Recorder) RecordCommit(module string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits++
	r.byModule[module]++
}

func (r *Recorder) RecordRejection(module string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections++
}

func (r *Recorder) RecordNoAction(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.noAction++
	r.byReason[reason]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		Commits:          r.commits,
		Rejections:       r.rejections,
		NoAction:         r.noAction,
		TickTotal:        r.commits + r.rejections + r.noAction,
		CommitsByModule:  make(map[string]uint64, len(r.byModule)),
		NoActionByReason: make(map[string]uint64, len(r.byReason)),
	}
	for k, v := range r.byModule {
		out.CommitsByModule[k] = v
	}
	for k, v := range r.byReason {
		out.NoActionByReason[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
