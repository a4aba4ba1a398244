package editor

import "errors"

var (
	// ErrQuit signals the event loop to stop. It is the only error
	// HandleKey propagates; everything else becomes a status message.
	ErrQuit = errors.New("quit")

	// ErrDirtyBuffer reports a close attempt on an unsaved session.
	ErrDirtyBuffer = errors.New("unsaved changes")

	// ErrNoPath reports a write on a session with no backing file.
	ErrNoPath = errors.New("buffer has no path")

	// ErrUnknownCommand reports an unrecognized command-line verb.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoFilter reports :filter with no transform runner wired in.
	ErrNoFilter = errors.New("no filter runner available")
)
