//go:build js && wasm

package web

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"syscall/js"
)

// LocalStorage keeps the high score in the browser's window.localStorage.
// It satisfies game.HighScoreStore.
type LocalStorage struct {
	Key string
}

// call runs fn and turns a JavaScript exception into an error. Browsers throw
// when storage is disabled or full.
func call(fn func() js.Value) (v js.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("localStorage: %v", r)
		}
	}()

	ls := js.Global().Get("localStorage")
	if !ls.Truthy() {
		return js.Undefined(), errors.New("localStorage: not available")
	}
	return fn(), nil
}

// LoadHighScore reads the stored value; a missing key reads as 0.
func (s LocalStorage) LoadHighScore() (int, error) {
	v, err := call(func() js.Value {
		return js.Global().Get("localStorage").Call("getItem", s.Key)
	})
	if err != nil {
		return 0, err
	}
	if v.IsNull() || v.IsUndefined() {
		return 0, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(v.String()))
	if err != nil {
		return 0, fmt.Errorf("localStorage: value of %q is not an integer: %w", s.Key, err)
	}
	return n, nil
}

// SaveHighScore overwrites the stored value.
func (s LocalStorage) SaveHighScore(score int) error {
	_, err := call(func() js.Value {
		return js.Global().Get("localStorage").Call("setItem", s.Key, strconv.Itoa(score))
	})
	return err
}
