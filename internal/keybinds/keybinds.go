// package keybinds provides keybind functionality for the entire application
package keybinds

import (
	"fmt"
	"sort"

	"github.com/veandco/go-sdl2/sdl"
	"radiantwavetech.com/noisewave/internal/logger"
)

// KeyCombo represents a combination of a key and it's active modifier.
type KeyCombo struct {
	Key sdl.Keycode
	Mod sdl.Keymod
}

func (k KeyCombo) String() string {
	name := sdl.GetKeyName(k.Key)
	if name == "" {
		name = fmt.Sprintf("key %d", k.Key)
	}
	prefix := ""
	if k.Mod&sdl.KMOD_CTRL != 0 {
		prefix += "Ctrl+"
	}
	if k.Mod&sdl.KMOD_ALT != 0 {
		prefix += "Alt+"
	}
	if k.Mod&sdl.KMOD_SHIFT != 0 {
		prefix += "Shift+"
	}
	if k.Mod&sdl.KMOD_GUI != 0 {
		prefix += "Gui+"
	}
	return prefix + name
}

// Binding is a registered combo with a short description for the help listing.
type Binding struct {
	Combo       KeyCombo
	Description string
	Action      func()
}

var binds = make(map[KeyCombo]Binding)

// Register binds action to the key combo. A combo can only be bound once.
func Register(k sdl.Keycode, m sdl.Keymod, description string, action func()) error {
	combo := KeyCombo{k, NormalizeModifiers(m)}
	if _, ok := binds[combo]; ok {
		logger.ErrorF("Unable to bind key combo %s, combo already exists", combo)
		return fmt.Errorf("key combo %s already bound", combo)
	}
	binds[combo] = Binding{Combo: combo, Description: description, Action: action}
	return nil
}

// Unregister removes a combo from the available binds.
func Unregister(k sdl.Keycode, m sdl.Keymod) {
	delete(binds, KeyCombo{k, NormalizeModifiers(m)})
}

// Reset removes every bind.
func Reset() {
	binds = make(map[KeyCombo]Binding)
}

// List returns the registered binds ordered by description.
func List() []Binding {
	out := make([]Binding, 0, len(binds))
	for _, b := range binds {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out
}

// PerformAction runs the action bound to a key-down event and reports whether
// one was found.
func PerformAction(event sdl.Event) bool {
	e, ok := event.(*sdl.KeyboardEvent)
	if !ok || e.Type != sdl.KEYDOWN {
		return false
	}
	combo := KeyCombo{e.Keysym.Sym, NormalizeModifiers(sdl.Keymod(e.Keysym.Mod))}
	b, ok := binds[combo]
	if !ok {
		return false
	}
	logger.DebugF("Key %s: %s", combo, b.Description)
	b.Action()
	return true
}

// NormalizeModifiers converts a raw SDL modifier bitmask into a canonical form
// focusing on common modifiers (SHIFT, CTRL, ALT, GUI) and ignoring others like CapsLock.
func NormalizeModifiers(mod sdl.Keymod) sdl.Keymod {
	var normalized sdl.Keymod = sdl.KMOD_NONE
	if mod&sdl.KMOD_SHIFT != 0 {
		normalized |= sdl.KMOD_SHIFT
	}
	if mod&sdl.KMOD_CTRL != 0 {
		normalized |= sdl.KMOD_CTRL
	}
	if mod&sdl.KMOD_ALT != 0 {
		normalized |= sdl.KMOD_ALT
	}
	if mod&sdl.KMOD_GUI != 0 {
		normalized |= sdl.KMOD_GUI
	}
	return normalized
}
