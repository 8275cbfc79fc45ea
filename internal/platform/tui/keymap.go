package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/decompose/internal/core"
)

// GameKeyMap defines the key bindings while playing a level.
type GameKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Apply       key.Binding
	NextPattern key.Binding
	PrevPattern key.Binding
	Pick        key.Binding
	Undo        key.Binding
	Restart     key.Binding
	Next        key.Binding
	Pause       key.Binding
	Screenshot  key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/s", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d", "right")),
		Apply:       key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "apply")),
		NextPattern: key.NewBinding(key.WithKeys("tab", "e"), key.WithHelp("tab", "next pattern")),
		PrevPattern: key.NewBinding(key.WithKeys("shift+tab", "q"), key.WithHelp("S-tab", "prev pattern")),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "pick pattern"),
		),
		Undo:       key.NewBinding(key.WithKeys("u", "z", "backspace"), key.WithHelp("u", "undo")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Next:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next level")),
		Pause:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("C-s", "screenshot")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("C-c", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help views.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Apply):
		return core.ActionApply
	case key.Matches(msg, k.NextPattern):
		return core.ActionNextPattern
	case key.Matches(msg, k.PrevPattern):
		return core.ActionPrevPattern
	case key.Matches(msg, k.Pick):
		n, _ := strconv.Atoi(msg.String())
		return core.PickAction(n - 1)
	case key.Matches(msg, k.Undo):
		return core.ActionUndo
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Next):
		return core.ActionNext
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	}
	return core.ActionNone
}

// MapKeyToFrame updates an input frame based on a key message.
// Quit and Back are returned but never set on the frame; the platform handles
// them.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) core.Action {
	action := km.MapKey(msg)
	switch action {
	case core.ActionNone, core.ActionQuit, core.ActionBack:
	default:
		frame.Set(action)
	}
	return action
}

// MapMouseToFrame records a pointer event. Only the left button clicks.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	click := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
	frame.SetPointer(msg.X, msg.Y, click)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionContinue
	MenuActionTimes
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h", "shift+tab":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "c":
		return MenuActionContinue
	case "tab", "t":
		return MenuActionTimes
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
