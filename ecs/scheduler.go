package ecs

// System updates a world once per frame. dt is the fixed step in seconds.
type System interface {
	Update(w *World, dt float64)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World, dt float64)

func (f SystemFunc) Update(w *World, dt float64) {
	f(w, dt)
}

type gatedSystem struct {
	system System
	when   func() bool
}

func (g gatedSystem) Update(w *World, dt float64) {
	if g.when != nil && !g.when() {
		return
	}
	g.system.Update(w, dt)
}

// RunIf wraps system so it only runs while when reports true.
func RunIf(when func() bool, system System) System {
	return gatedSystem{system: system, when: when}
}

// Scheduler runs systems in insertion order, then clears the frame's event
// queues.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World, dt float64) {
	for _, system := range s.systems {
		system.Update(w, dt)
	}
	w.ClearEvents()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
