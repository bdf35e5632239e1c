package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/anewworld/camera"
	"github.com/milk9111/anewworld/dialogue"
	"github.com/milk9111/anewworld/ecs"
	"github.com/milk9111/anewworld/ecs/component"
	"github.com/milk9111/anewworld/ecs/system"
	"github.com/milk9111/anewworld/gamestate"
	"github.com/milk9111/anewworld/items"
)

const (
	glyphWidth   = 7
	lineHeight   = 16
	slotSize     = 40
	slotGap      = 4
	slotMargin   = 12
	iconSize     = 32
	boxPadding   = 12
	promptOffset = 20
)

var (
	panelColor    = color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xdc}
	slotColor     = color.NRGBA{R: 0x22, G: 0x22, B: 0x2a, A: 0xc8}
	textColor     = colornames.White
	speakerColor  = colornames.Gold
	selectedColor = colornames.Gold
	disabledColor = colornames.Gray
)

// PromptSource reports the interactable the player would use.
type PromptSource interface {
	Current() (system.InteractionTarget, bool)
}

// DialogueView is the read side of the running conversation.
type DialogueView interface {
	Active() bool
	Speaker() ecs.Entity
	Node() *dialogue.Node
	VisibleText() string
	FullyRevealed() bool
	Selected() int
	ChoiceAvailable(i int) bool
}

// HUD draws screen-space overlays: the interaction prompt, the inventory
// bar, the dialogue box and the debug readout.
type HUD struct {
	face     text.Face
	images   *ImageCache
	cam      *camera.Service
	registry *items.Registry
	prompts  PromptSource
	dialogue DialogueView
	Debug    bool
}

func NewHUD(images *ImageCache, cam *camera.Service, registry *items.Registry, prompts PromptSource, dlg DialogueView) *HUD {
	return &HUD{
		face:     text.NewGoXFace(basicfont.Face7x13),
		images:   images,
		cam:      cam,
		registry: registry,
		prompts:  prompts,
		dialogue: dlg,
	}
}

func (h *HUD) Draw(screen *ebiten.Image, w *ecs.World, state gamestate.State) {
	if h == nil || screen == nil {
		return
	}
	talking := h.dialogue != nil && h.dialogue.Active()
	if state == gamestate.Playing && !talking {
		h.drawPrompt(screen)
	}
	if !talking {
		h.drawInventory(screen, w)
	}
	if talking {
		h.drawDialogue(screen, w)
	}
	if h.Debug {
		h.drawDebug(screen, w, state)
	}
}

func (h *HUD) drawPrompt(screen *ebiten.Image) {
	if h.prompts == nil || h.cam == nil {
		return
	}
	target, ok := h.prompts.Current()
	if !ok || target.Prompt == "" {
		return
	}
	p := h.cam.WorldToScreen(target.Position)
	p.Y -= promptOffset * h.cam.Zoom
	label := "[E] " + target.Prompt
	width := float64(len(label) * glyphWidth)

	vector.DrawFilledRect(screen, float32(p.X-width/2-4), float32(p.Y-lineHeight), float32(width+8), lineHeight+4, panelColor, false)
	h.drawText(screen, label, p.X-width/2, p.Y-lineHeight+2, textColor)
}

// slotRects lays n inventory slots out centered along the bottom edge.
func slotRects(n, screenW, screenH int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	total := n*slotSize + (n-1)*slotGap
	x := (screenW - total) / 2
	y := screenH - slotMargin - slotSize
	rects := make([]image.Rectangle, n)
	for i := range rects {
		rects[i] = image.Rect(x, y, x+slotSize, y+slotSize)
		x += slotSize + slotGap
	}
	return rects
}

func (h *HUD) drawInventory(screen *ebiten.Image, w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	inv, ok := ecs.Get(w, player, component.InventoryComponent.Kind())
	if !ok || len(inv.Slots) == 0 {
		return
	}

	b := screen.Bounds()
	rects := slotRects(len(inv.Slots), b.Dx(), b.Dy())
	for i, r := range rects {
		id := inv.Slots[i]
		vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), slotSize, slotSize, slotColor, false)
		if i == inv.Selected {
			vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), slotSize, slotSize, 2, selectedColor, false)
		}
		h.drawIcon(screen, id, r)
		if stack, ok := inv.Stacks[id]; ok && stack.Quantity > 1 {
			qty := fmt.Sprint(stack.Quantity)
			h.drawText(screen, qty, float64(r.Max.X-2-len(qty)*glyphWidth), float64(r.Max.Y-lineHeight), textColor)
		}
	}

	if id, ok := items.ActiveItem(inv); ok {
		name := h.registry.DisplayName(id)
		h.drawText(screen, name, float64(b.Dx()-len(name)*glyphWidth)/2, float64(rects[0].Min.Y-lineHeight-2), textColor)
	}
}

func (h *HUD) drawIcon(screen *ebiten.Image, itemID string, slot image.Rectangle) {
	icon := "items/" + itemID + ".png"
	if def, ok := h.registry.Get(itemID); ok && def.Icon != "" {
		icon = def.Icon
	}
	img, ok := h.images.Get(icon)
	if !ok {
		h.drawText(screen, strings.ToUpper(itemID[:1]), float64(slot.Min.X+slotSize/2-glyphWidth/2), float64(slot.Min.Y+slotSize/2-lineHeight/2), textColor)
		return
	}
	ib := img.Bounds()
	scale := float64(iconSize) / float64(max(ib.Dx(), ib.Dy(), 1))
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(slot.Min.X+(slotSize-iconSize)/2), float64(slot.Min.Y+(slotSize-iconSize)/2))
	screen.DrawImage(img, op)
}

// speakerName prefers the node's speaker and falls back to the speaking
// entity's name.
func speakerName(w *ecs.World, view DialogueView) string {
	if node := view.Node(); node != nil && node.Speaker != "" {
		return node.Speaker
	}
	if name, ok := ecs.Get(w, view.Speaker(), component.NameComponent.Kind()); ok {
		return name.Value
	}
	return ""
}

// choiceLines renders the current node's choices with a cursor on the
// selected one. The second slice reports which choices can be taken.
func choiceLines(view DialogueView) ([]string, []bool) {
	node := view.Node()
	if !node.HasChoices() || !view.FullyRevealed() {
		return nil, nil
	}
	lines := make([]string, len(node.Choices))
	enabled := make([]bool, len(node.Choices))
	for i, c := range node.Choices {
		cursor := "  "
		if i == view.Selected() {
			cursor = "> "
		}
		lines[i] = cursor + c.Text
		enabled[i] = view.ChoiceAvailable(i)
	}
	return lines, enabled
}

func (h *HUD) drawDialogue(screen *ebiten.Image, w *ecs.World) {
	b := screen.Bounds()
	boxH := b.Dy() * 3 / 10
	x, y := float64(slotMargin), float64(b.Dy()-boxH-slotMargin)
	boxW := float64(b.Dx() - 2*slotMargin)

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), panelColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), 2, colornames.Lightgray, false)

	cx, cy := x+boxPadding, y+boxPadding
	if name := speakerName(w, h.dialogue); name != "" {
		h.drawText(screen, name, cx, cy, speakerColor)
		cy += lineHeight + 4
	}

	maxChars := int(boxW-2*boxPadding) / glyphWidth
	for _, line := range wrapText(h.dialogue.VisibleText(), maxChars) {
		h.drawText(screen, line, cx, cy, textColor)
		cy += lineHeight
	}

	lines, enabled := choiceLines(h.dialogue)
	if len(lines) > 0 {
		cy += lineHeight / 2
	}
	for i, line := range lines {
		clr := color.Color(textColor)
		switch {
		case !enabled[i]:
			clr = disabledColor
		case i == h.dialogue.Selected():
			clr = selectedColor
		}
		h.drawText(screen, line, cx, cy, clr)
		cy += lineHeight
	}

	if h.dialogue.FullyRevealed() && len(lines) == 0 {
		h.drawText(screen, ">>", x+boxW-boxPadding-2*glyphWidth, y+float64(boxH)-boxPadding-lineHeight, textColor)
	}
}

// wrapText breaks s into lines of at most width characters on spaces and
// existing newlines. Words longer than width are split.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			for len(word) > width {
				if line != "" {
					lines = append(lines, line)
					line = ""
				}
				lines = append(lines, word[:width])
				word = word[width:]
			}
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func (h *HUD) drawDebug(screen *ebiten.Image, w *ecs.World, state gamestate.State) {
	msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nEntities: %d\nState: %s", ebiten.ActualFPS(), ebiten.ActualTPS(), ecs.EntityCount(w), state)
	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			msg += fmt.Sprintf("\nPlayer: %.1f, %.1f", t.X, t.Y)
		}
	}
	if h.cam != nil {
		pos := h.cam.Position()
		msg += fmt.Sprintf("\nCamera: %.1f, %.1f", pos.X, pos.Y)
	}
	if h.prompts != nil {
		if target, ok := h.prompts.Current(); ok {
			msg += fmt.Sprintf("\nTarget: %d %q at %.0f, %.0f", target.Entity, target.Prompt, target.Position.X, target.Position.Y)
		}
	}
	ebitenutil.DebugPrint(screen, msg)
}

func (h *HUD) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, h.face, op)
}
