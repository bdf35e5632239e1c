package system

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/anewworld/dialogue"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/input"
	"github.com/milk9111/anewworld/logger"
	"github.com/milk9111/anewworld/sound"
)

const (
	// BlipAsset plays while dialogue text is being revealed.
	BlipAsset   = "dialogue_blip"
	blipLoopKey = "dialogue_blip"
	blipVolume  = 0.35
)

// DialogueSystem opens dialogues on InteractionStarted and walks the graph
// on confirm presses. It runs in every game state so it can notice its own
// transitions.
type DialogueSystem struct {
	service        *dialogue.Service
	actions        ActionSource
	bus            *sound.Bus
	charsPerSecond float64

	active   bool
	speaker  ecs.Entity
	graph    *dialogue.Graph
	node     *dialogue.Node
	text     []rune
	visible  float64
	selected int
	blipping bool
}

// NewDialogueSystem reveals text at charsPerSecond; zero or less reveals
// whole lines at once.
func NewDialogueSystem(service *dialogue.Service, actions ActionSource, bus *sound.Bus, charsPerSecond float64) *DialogueSystem {
	return &DialogueSystem{
		service:        service,
		actions:        actions,
		bus:            bus,
		charsPerSecond: charsPerSecond,
	}
}

func (s *DialogueSystem) Active() bool {
	return s.active
}

// Speaker is the entity the player is talking to.
func (s *DialogueSystem) Speaker() ecs.Entity {
	return s.speaker
}

func (s *DialogueSystem) Node() *dialogue.Node {
	if !s.active {
		return nil
	}
	return s.node
}

// VisibleText returns the revealed part of the current line.
func (s *DialogueSystem) VisibleText() string {
	n := int(s.visible)
	if n > len(s.text) {
		n = len(s.text)
	}
	return string(s.text[:n])
}

func (s *DialogueSystem) FullText() string {
	return string(s.text)
}

func (s *DialogueSystem) FullyRevealed() bool {
	return int(s.visible) >= len(s.text)
}

func (s *DialogueSystem) Selected() int {
	return s.selected
}

// ChoiceAvailable reports whether the i-th choice of the current node passes
// its conditions.
func (s *DialogueSystem) ChoiceAvailable(i int) bool {
	if !s.node.HasChoices() || i < 0 || i >= len(s.node.Choices) {
		return false
	}
	return s.service.CheckConditions(s.node.Choices[i].Conditions)
}

func (s *DialogueSystem) Update(w *ecs.World, dt float64) {
	if !s.active {
		s.tryStart(w)
		return
	}
	if s.node == nil {
		s.end()
		return
	}

	s.reveal(dt)

	if s.node.HasChoices() {
		count := len(s.node.Choices)
		if s.pressed(input.ActionMoveUp) {
			s.selected = (s.selected - 1 + count) % count
		}
		if s.pressed(input.ActionMoveDown) {
			s.selected = (s.selected + 1) % count
		}
	}

	if !s.pressed(input.ActionInteract) {
		return
	}
	if !s.FullyRevealed() {
		s.visible = float64(len(s.text))
		s.stopBlip()
		return
	}

	if !s.node.HasChoices() {
		s.advance(s.node.Next)
		return
	}

	choice := s.pickChoice()
	if choice == nil {
		s.end()
		return
	}
	s.service.ApplyActions(choice.Actions)
	s.advance(choice.Next)
}

func (s *DialogueSystem) tryStart(w *ecs.World) {
	for _, evt := range ecs.Events(w, component.InteractionStartedEvent).Events() {
		target := ecs.Entity(evt.Target)
		ref, ok := ecs.Get(w, target, component.DialogueRefComponent.Kind())
		if !ok {
			continue
		}
		graph, ok := s.service.Get(ref.DialogueID)
		if !ok {
			logger.Log.WithField("dialogue", ref.DialogueID).Warn("dialogue: unknown graph")
			continue
		}
		node, ok := graph.StartNode()
		if !ok {
			continue
		}

		s.active = true
		s.speaker = target
		s.graph = graph
		logger.Log.WithFields(logrus.Fields{"dialogue": graph.ID, "entity": target}).Debug("dialogue started")
		s.enter(node, s.service.CheckConditions(node.Conditions))
		return
	}
}

// pickChoice returns the selected choice if its conditions pass, otherwise
// the first choice that passes.
func (s *DialogueSystem) pickChoice() *dialogue.Choice {
	choices := s.node.Choices
	if s.selected >= 0 && s.selected < len(choices) && s.service.CheckConditions(choices[s.selected].Conditions) {
		return &choices[s.selected]
	}
	for i := range choices {
		if s.service.CheckConditions(choices[i].Conditions) {
			return &choices[i]
		}
	}
	return nil
}

func (s *DialogueSystem) advance(next string) {
	if next == "" {
		s.end()
		return
	}
	node, ok := s.graph.Node(next)
	if !ok || !s.service.CheckConditions(node.Conditions) {
		s.end()
		return
	}
	s.enter(node, true)
}

func (s *DialogueSystem) enter(node *dialogue.Node, applyActions bool) {
	s.node = node
	s.selected = 0
	s.visible = 0
	s.text = []rune(s.service.Substitute(node.Text))
	if applyActions {
		s.service.ApplyActions(node.Actions)
	}
	if s.charsPerSecond <= 0 {
		s.visible = float64(len(s.text))
	}
	if s.FullyRevealed() {
		s.stopBlip()
		return
	}
	s.startBlip()
}

func (s *DialogueSystem) reveal(dt float64) {
	if s.FullyRevealed() {
		s.stopBlip()
		return
	}
	s.visible += s.charsPerSecond * dt
	if s.FullyRevealed() {
		s.visible = float64(len(s.text))
		s.stopBlip()
	}
}

func (s *DialogueSystem) end() {
	if s.graph != nil {
		logger.Log.WithField("dialogue", s.graph.ID).Debug("dialogue ended")
	}
	s.active = false
	s.speaker = 0
	s.graph = nil
	s.node = nil
	s.text = nil
	s.visible = 0
	s.selected = 0
	s.stopBlip()
}

func (s *DialogueSystem) pressed(action string) bool {
	return s.actions != nil && s.actions.JustPressed(action)
}

func (s *DialogueSystem) startBlip() {
	if s.blipping || s.bus == nil {
		return
	}
	s.blipping = true
	s.bus.PublishStartLoop(sound.StartLoop{Asset: BlipAsset, Key: blipLoopKey, Volume: blipVolume, Pitch: 1})
}

func (s *DialogueSystem) stopBlip() {
	if !s.blipping {
		return
	}
	s.blipping = false
	if s.bus != nil {
		s.bus.PublishStopLoop(sound.StopLoop{Key: blipLoopKey})
	}
}
