package platform

import "sync"

// Format identifies a clipboard data format. Text is predefined; hosts and
// applications register additional formats by name.
type Format uint32

// FormatText is the predefined plain-text format.
const FormatText Format = 1

var (
	formatMu    sync.Mutex
	formatNames = map[string]Format{"text": FormatText}
	nextFormat  = Format(2)
)

// RegisterFormat returns the id for a named format, allocating one on first
// use. Registration is idempotent per name.
func RegisterFormat(name string) Format {
	formatMu.Lock()
	defer formatMu.Unlock()
	if f, ok := formatNames[name]; ok {
		return f
	}
	f := nextFormat
	nextFormat++
	formatNames[name] = f
	return f
}

// ClipboardContent is the payload for a clipboard write.
type ClipboardContent struct {
	Text    string
	Formats map[Format][]byte
}

// Clipboard is the host clipboard contract.
type Clipboard interface {
	Get(format Format) ([]byte, bool)
	Set(content ClipboardContent) bool
	Has(format Format) bool
}
