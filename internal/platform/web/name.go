package web

import "unicode"

// MaxNameLength bounds the player name typed on the title screen.
const MaxNameLength = 16

// EditName applies typed characters and backspaces to a name. Non-printable
// runes are dropped and the result never exceeds MaxNameLength runes.
func EditName(name string, typed []rune, backspaces int) string {
	runes := []rune(name)

	for ; backspaces > 0 && len(runes) > 0; backspaces-- {
		runes = runes[:len(runes)-1]
	}

	for _, r := range typed {
		if len(runes) >= MaxNameLength {
			break
		}
		if unicode.IsPrint(r) {
			runes = append(runes, r)
		}
	}
	return string(runes)
}
