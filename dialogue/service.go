package dialogue

import "sync"

// Service owns the loaded dialogue graphs and the shared Context.
type Service struct {
	mu      sync.RWMutex
	graphs  map[string]*Graph
	Context *Context
}

func NewService() *Service {
	return &Service{
		graphs:  make(map[string]*Graph),
		Context: NewContext(),
	}
}

// Load merges graphs from data, keyed and named by their map key.
func (s *Service) Load(data Data) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, g := range data.Dialogues {
		if id == "" || g == nil {
			continue
		}
		g.ID = id
		if g.Start == "" {
			g.Start = "start"
		}
		s.graphs[id] = g
	}
}

func (s *Service) Get(id string) (*Graph, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[id]
	return g, ok
}

func (s *Service) Substitute(text string) string {
	return s.Context.Substitute(text)
}

func (s *Service) CheckConditions(conds []Condition) bool {
	return s.Context.CheckConditions(conds)
}

func (s *Service) ApplyActions(actions []Action) {
	s.Context.ApplyActions(actions)
}
