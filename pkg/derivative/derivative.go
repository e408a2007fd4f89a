// Package derivative holds the static registry of precomputed alternate
// artifacts deliverable through the file gateway. The registry is read-only
// after process start.
package derivative

// Kind tells the gateway how a derivative is delivered.
type Kind string

const (
	// KindFile derivatives are streamed from storage.
	KindFile Kind = "file"
	// KindImage derivatives are redirected to the Image API.
	KindImage Kind = "image"
)

// Descriptor describes one named derivative.
type Descriptor struct {
	Name string
	// From is the item type the derivative is generated from.
	From        string
	To          Kind
	ContentType string
	Extension   string
	// ImageTier is appended to the item id in Image API redirects for
	// image-targeted derivatives, empty when the full image is meant.
	ImageTier string
	// Profile documents the data format for seeAlso links, if any.
	Profile string
}

// WaveformProfile identifies the audio waveform data format.
const WaveformProfile = "http://waveform.prototyping.bbc.co.uk"

var registry = map[string]Descriptor{
	"waveform": {
		Name:        "waveform",
		From:        "audio",
		To:          KindFile,
		ContentType: "application/octet-stream",
		Extension:   "dat",
		Profile:     WaveformProfile,
	},
	"watermarked": {
		Name:        "watermarked",
		From:        "image",
		To:          KindImage,
		ContentType: "image/jpeg",
		Extension:   "jpg",
		ImageTier:   "wm",
	},
}

// Lookup resolves a derivative key; ok is false for unregistered keys.
func Lookup(key string) (Descriptor, bool) {
	d, ok := registry[key]
	return d, ok
}

// Waveform returns the descriptor of the audio waveform derivative.
func Waveform() Descriptor {
	return registry["waveform"]
}
