package main

// StateManager drives one or more States over a single function's
// instruction list until none are active, per §4.3. It owns the
// instruction list it was built from and is single-threaded.
type StateManager struct {
	instructions []Instruction

	states  map[int]*State
	active  map[int]bool
	fellOff map[int]bool
	nextID  int

	traceFn   func(mess string, args ...interface{})
	diag      func(string)
	entryOpts []StateOption
}

// NewStateManager builds a manager for the given instruction list and
// spawns a single entry state at position 0.
func NewStateManager(instructions []Instruction, opts ...ManagerOption) *StateManager {
	mgr := &StateManager{
		instructions: instructions,
		states:       make(map[int]*State),
		active:       make(map[int]bool),
		fellOff:      make(map[int]bool),
	}
	for _, opt := range opts {
		opt.apply(mgr)
	}
	mgr.spawn(0, mgr.entryOpts...)
	return mgr
}

// spawn creates a new State at the given starting position, applying the
// manager's trace/diag hooks ahead of any caller-supplied options, and adds
// it to the active set.
func (mgr *StateManager) spawn(pos int, opts ...StateOption) *State {
	id := mgr.nextID
	mgr.nextID++

	all := make([]StateOption, 0, len(opts)+2)
	if mgr.traceFn != nil {
		all = append(all, WithStateTrace(mgr.traceFn))
	}
	if mgr.diag != nil {
		all = append(all, WithDiag(mgr.diag))
	}
	all = append(all, opts...)

	st := NewState(id, all...)
	st.Pos = pos
	mgr.states[id] = st
	mgr.active[id] = true
	return st
}

// Explore steps every active state once per round until the active set is
// empty. A state whose position runs off the end of the instruction list
// (rather than terminating via RET) is recorded as "fell off the end";
// errored states leave the active set but are never recorded that way —
// they are reported through the state's own Status/Err fields instead.
func (mgr *StateManager) Explore() {
	for len(mgr.active) > 0 {
		finished := make([]int, 0, len(mgr.active))
		for id := range mgr.active {
			st := mgr.states[id]
			if st.Pos >= 0 && st.Pos < len(mgr.instructions) {
				st.Step(mgr.instructions[st.Pos])
				if st.Status != StateActive {
					finished = append(finished, id)
				}
			} else {
				finished = append(finished, id)
				mgr.fellOff[id] = true
			}
		}
		for _, id := range finished {
			delete(mgr.active, id)
		}
	}
}

// States returns every state the manager has spawned, in id order.
func (mgr *StateManager) States() []*State {
	out := make([]*State, 0, len(mgr.states))
	for id := 0; id < mgr.nextID; id++ {
		if st, ok := mgr.states[id]; ok {
			out = append(out, st)
		}
	}
	return out
}

// FellOff reports whether the given state id terminated by running off the
// end of the instruction list, as opposed to via RET or an error.
func (mgr *StateManager) FellOff(id int) bool { return mgr.fellOff[id] }
