// Package gamestate tracks the top-level mode of the game.
package gamestate

import (
	"context"
	"errors"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/milk9111/anewworld/logger"
	"github.com/sirupsen/logrus"
)

type State string

const (
	Playing  State = "playing"
	Dialogue State = "dialogue"
	Paused   State = "paused"
	Cutscene State = "cutscene"
)

const (
	EventStartDialogue = "start_dialogue"
	EventEndDialogue   = "end_dialogue"
	EventPause         = "pause"
	EventResume        = "resume"
	eventResumeDialog  = "resume_dialogue"
	EventStartCutscene = "start_cutscene"
	EventEndCutscene   = "end_cutscene"
)

// Service wraps a state machine. Pausing remembers the state it left so
// resuming from a dialogue returns to that dialogue.
type Service struct {
	machine   *fsm.FSM
	resumeTo  State
	listeners []func(from, to State)
}

func NewService() *Service {
	s := &Service{resumeTo: Playing}
	s.machine = fsm.NewFSM(
		string(Playing),
		fsm.Events{
			{Name: EventStartDialogue, Src: []string{string(Playing)}, Dst: string(Dialogue)},
			{Name: EventEndDialogue, Src: []string{string(Dialogue)}, Dst: string(Playing)},
			{Name: EventPause, Src: []string{string(Playing), string(Dialogue)}, Dst: string(Paused)},
			{Name: EventResume, Src: []string{string(Paused)}, Dst: string(Playing)},
			{Name: eventResumeDialog, Src: []string{string(Paused)}, Dst: string(Dialogue)},
			{Name: EventStartCutscene, Src: []string{string(Playing)}, Dst: string(Cutscene)},
			{Name: EventEndCutscene, Src: []string{string(Cutscene)}, Dst: string(Playing)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				from, to := State(e.Src), State(e.Dst)
				logger.Log.WithFields(logrus.Fields{"from": from, "to": to, "event": e.Event}).Debug("game state changed")
				for _, fn := range s.listeners {
					fn(from, to)
				}
			},
		},
	)
	return s
}

func (s *Service) Current() State {
	return State(s.machine.Current())
}

func (s *Service) Is(state State) bool {
	return s.machine.Is(string(state))
}

// OnChange registers a callback fired after every transition.
func (s *Service) OnChange(fn func(from, to State)) {
	s.listeners = append(s.listeners, fn)
}

// Fire runs the named event. Firing an event that does not apply to the
// current state returns an error and leaves the state unchanged.
func (s *Service) Fire(event string) error {
	if event == EventResume {
		return s.resume()
	}
	prev := s.Current()
	if err := s.machine.Event(context.Background(), event); err != nil {
		var noTransition fsm.NoTransitionError
		if errors.As(err, &noTransition) {
			return nil
		}
		return fmt.Errorf("gamestate: %s from %s: %w", event, prev, err)
	}
	if event == EventPause {
		s.resumeTo = prev
	}
	return nil
}

func (s *Service) resume() error {
	if !s.Is(Paused) {
		return fmt.Errorf("gamestate: resume from %s: not paused", s.Current())
	}
	event := EventResume
	if s.resumeTo == Dialogue {
		event = eventResumeDialog
	}
	s.resumeTo = Playing
	if err := s.machine.Event(context.Background(), event); err != nil {
		return fmt.Errorf("gamestate: %s: %w", event, err)
	}
	return nil
}

// TogglePause pauses from Playing or Dialogue and resumes from Paused.
func (s *Service) TogglePause() error {
	if s.Is(Paused) {
		return s.Fire(EventResume)
	}
	return s.Fire(EventPause)
}

func (s *Service) Can(event string) bool {
	return s.machine.Can(event)
}
