package client

import (
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-guard/internal/adapter"
	"github.com/MKhiriev/go-pass-guard/internal/tui"
)

// NewBrowserOpener prints the consent URL and puts it on the clipboard when
// one is available.
func NewBrowserOpener(out io.Writer, copyFn func(string) error) adapter.BrowserOpener {
	return func(url string) error {
		fmt.Fprintln(out, "Open this address in your browser to continue:")
		fmt.Fprintln(out, url)
		if copyFn != nil && copyFn(url) == nil {
			fmt.Fprintln(out, tui.RenderHint("(copied to clipboard)"))
		}
		return nil
	}
}
