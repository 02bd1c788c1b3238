package app

import "errors"

// ErrNoGUI is returned by Run in builds without the ebiten tag.
var ErrNoGUI = errors.New("the csca window requires the ebiten build tag; rebuild with `-tags ebiten` or use `csca tui`")
