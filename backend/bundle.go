package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState is what a window needs to render backend state.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle holds the backend services shared by every window.
type Bundle struct {
	Library *Library
}

func NewBundle(opts Options) (Bundle, error) {
	lib, err := NewLibrary(opts)
	if err != nil {
		return Bundle{}, err
	}
	return Bundle{Library: lib}, nil
}
