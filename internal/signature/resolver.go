package signature

import (
	"sort"
	"strings"

	m "extfix.dev/pkg/extfix/internal/model"
)

// Resolver maps file types to their canonical extension and extensions back
// to the type they claim. Lookups are case-insensitive and alias-aware:
// "jpeg" and "jpg" both claim TypeJPEG, but Canonical always answers "jpg".
type Resolver struct {
	canonical map[m.FileType]string
	claimed   map[string]m.FileType
}

// NewResolver builds the resolver for the built-in type set. Every file type
// used by a DefaultTable rule has an entry here.
func NewResolver() Resolver {
	canonical := map[m.FileType]string{
		m.TypeGIF:  "gif",
		m.TypeMP3:  "mp3",
		m.TypePNG:  "png",
		m.TypePDF:  "pdf",
		m.TypeOGG:  "ogg",
		m.TypeMKV:  "mkv",
		m.TypeFLAC: "flac",
		m.TypeJPEG: "jpg",
		m.TypeWEBP: "webp",
		m.TypeWAV:  "wav",
		m.TypeMOV:  "mov",
		m.TypeMP4:  "mp4",
		m.TypeZIP:  "zip",
		m.TypeGZIP: "gz",
	}

	claimed := make(map[string]m.FileType, len(canonical))
	for t, ext := range canonical {
		claimed[ext] = t
	}

	// Alias spellings that claim the same type as their canonical form.
	claimed["jpeg"] = m.TypeJPEG
	claimed["oga"] = m.TypeOGG
	claimed["wave"] = m.TypeWAV
	claimed["gzip"] = m.TypeGZIP
	claimed["qt"] = m.TypeMOV
	claimed["m4v"] = m.TypeMP4

	return Resolver{canonical: canonical, claimed: claimed}
}

// Canonical returns the preferred extension for a file type, without the
// dot. TypeUnknown (and any unregistered type) has no spelling and yields "".
func (r Resolver) Canonical(t m.FileType) string {
	return r.canonical[t]
}

// Claimed returns the file type an extension claims, or TypeUnknown for an
// empty or unregistered extension. A leading dot and any casing are accepted.
func (r Resolver) Claimed(ext string) m.FileType {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return m.TypeUnknown
	}

	if t, ok := r.claimed[ext]; ok {
		return t
	}

	return m.TypeUnknown
}

// Aliases returns every registered spelling for a file type, canonical
// first, remaining aliases sorted so the output is stable.
func (r Resolver) Aliases(t m.FileType) []string {
	canonical, ok := r.canonical[t]
	if !ok {
		return nil
	}

	out := []string{canonical}

	for ext, claimedType := range r.claimed {
		if claimedType == t && ext != canonical {
			out = append(out, ext)
		}
	}

	sort.Strings(out[1:])

	return out
}
