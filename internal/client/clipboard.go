package client

import "github.com/atotto/clipboard"

type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the desktop clipboard (xclip/xsel/wl-copy on
// Linux, pbcopy on macOS).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
