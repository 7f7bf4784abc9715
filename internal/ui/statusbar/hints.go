package statusbar

import "github.com/riordanpawley/taskflow/internal/types"

// GetHints returns the keybinding hints for the given mode and tab
func GetHints(mode types.Mode, tab types.Tab) string {
	switch mode {
	case types.ModeNormal:
		switch tab {
		case types.TabTasks:
			return "j/k: move  J: jump  a: add  e: edit  Space: done  s: status  d: delete  /: search  f: filter  o: sort  ?: help"
		case types.TabTimer:
			return "Space: start/pause  r: reset  w: work  b: break  ?: help  q: quit"
		default:
			return "1-4: tabs  n: notifications  ,: settings  ?: help  q: quit"
		}
	case types.ModeSearch:
		return "Type to search  Enter: confirm  Esc: cancel"
	case types.ModeForm:
		return "Tab: next field  Enter: save  Esc: cancel"
	case types.ModeMenu:
		return "j/k: move  Enter: select  Esc: close"
	case types.ModeJump:
		return "Type a label  Backspace: delete  Esc: cancel"
	default:
		return ""
	}
}
