package export

import (
	"net/http"
	"strings"
)

// Mode is how a finished artifact reaches the user.
type Mode string

const (
	// ModeDirectDownload streams the PDF in the export response as an attachment.
	ModeDirectDownload Mode = "direct_download"
	// ModeNativeShare hands a stored artifact link to the platform share sheet.
	ModeNativeShare Mode = "native_share"
	// ModeFallbackOpen opens a stored artifact link in a new browsing context.
	ModeFallbackOpen Mode = "fallback_open"
)

// NeedsStorage reports whether the mode hands out a link to a stored copy.
func (m Mode) NeedsStorage() bool {
	return m == ModeNativeShare || m == ModeFallbackOpen
}

// Capabilities describes what the requesting client can do with a file.
type Capabilities struct {
	Mobile        bool
	CanShare      bool
	CanDownload   bool
	downloadKnown bool
}

var mobileMarkers = []string{"iphone", "ipad", "ipod", "android", "mobile", "crios", "fxios"}

// DetectCapabilities reads client hints and explicit capability headers.
// X-Share-Capable and X-Download-Capable ("1"/"true") are set by the web client after feature detection.
func DetectCapabilities(h http.Header) Capabilities {
	var caps Capabilities
	switch strings.Trim(h.Get("Sec-CH-UA-Mobile"), `" `) {
	case "?1":
		caps.Mobile = true
	case "?0":
	default:
		ua := strings.ToLower(h.Get("User-Agent"))
		for _, m := range mobileMarkers {
			if strings.Contains(ua, m) {
				caps.Mobile = true
				break
			}
		}
	}
	caps.CanShare = truthy(h.Get("X-Share-Capable"))
	if raw := h.Get("X-Download-Capable"); raw != "" {
		caps.downloadKnown = true
		caps.CanDownload = truthy(raw)
	}
	return caps
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// ChooseMode picks the preferred delivery for the client. Clients that declare direct download
// support get it regardless of platform; otherwise mobile clients share when they can and open when they cannot.
func ChooseMode(caps Capabilities) Mode {
	if caps.downloadKnown && caps.CanDownload {
		return ModeDirectDownload
	}
	if !caps.Mobile && !caps.downloadKnown {
		return ModeDirectDownload
	}
	if caps.CanShare {
		return ModeNativeShare
	}
	return ModeFallbackOpen
}

// fallbackChain is the order in which modes are tried, starting with the preferred one.
func fallbackChain(preferred Mode) []Mode {
	switch preferred {
	case ModeNativeShare:
		return []Mode{ModeNativeShare, ModeFallbackOpen, ModeDirectDownload}
	case ModeFallbackOpen:
		return []Mode{ModeFallbackOpen, ModeDirectDownload}
	default:
		return []Mode{ModeDirectDownload}
	}
}
