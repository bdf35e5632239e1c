package input

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/milk9111/anewworld/mocks"
)

type fakeKeys map[string]bool

func (f fakeKeys) IsKeyDown(name string) bool {
	return f[name]
}

func TestJustPressedAndActive(t *testing.T) {
	keys := fakeKeys{}
	svc := NewActionService(Bindings{ActionInteract: {"E", "Space"}}, keys)

	frames := []struct {
		name        string
		down        []string
		justPressed bool
		active      bool
	}{
		{"idle", nil, false, false},
		{"press", []string{"E"}, true, true},
		{"hold", []string{"E"}, false, true},
		{"second_key_while_held", []string{"E", "Space"}, true, true},
		{"release", nil, false, false},
	}
	for _, f := range frames {
		t.Run(f.name, func(t *testing.T) {
			clear(keys)
			for _, k := range f.down {
				keys[k] = true
			}
			svc.Update()
			if got := svc.JustPressed(ActionInteract); got != f.justPressed {
				t.Fatalf("JustPressed: expected %v, got %v", f.justPressed, got)
			}
			if got := svc.Active(ActionInteract); got != f.active {
				t.Fatalf("Active: expected %v, got %v", f.active, got)
			}
			svc.EndFrame()
		})
	}
}

func TestUnknownAction(t *testing.T) {
	svc := NewActionService(Bindings{}, fakeKeys{"E": true})
	svc.Update()
	if svc.JustPressed("Nope") || svc.Active("Nope") {
		t.Fatal("unbound action must never fire")
	}
}

func TestOverlayToggle(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := mocks.NewMockKeySource(ctrl)

	gomock.InOrder(
		src.EXPECT().IsKeyDown("F3").Return(true),
		src.EXPECT().IsKeyDown("F3").Return(true),
		src.EXPECT().IsKeyDown("F3").Return(false),
		src.EXPECT().IsKeyDown("F3").Return(true),
	)

	svc := NewActionService(Bindings{ActionToggleOverlay: {"F3"}}, src)
	if !svc.OverlayActive() {
		t.Fatal("overlay starts active")
	}

	want := []bool{false, false, false, true}
	for i, w := range want {
		svc.Update()
		if svc.OverlayActive() != w {
			t.Fatalf("frame %d: expected overlay %v", i, w)
		}
		svc.EndFrame()
	}
}
