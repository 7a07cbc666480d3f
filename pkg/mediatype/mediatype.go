// Package mediatype maps MIME types onto the coarse file categories Ultramsg
// distinguishes when sending media (image, document, audio, video).
package mediatype

import (
	"mime"
	"path"
	"strings"
)

const (
	Image    = "image"
	Document = "document"
	Audio    = "audio"
	Video    = "video"
	Unknown  = "unknown"

	// UnknownMIME is reported when neither probing nor the extension yields a type.
	UnknownMIME = "unknown/unknown"
)

// Classification is the result of classifying a file, URL or MIME hint.
type Classification struct {
	FileType string `json:"file_type"`
	MIME     string `json:"mime"`
}

var categories = map[string][]string{
	Image: {
		"image/jpeg", "image/png", "image/gif", "image/bmp", "image/webp",
		"image/tiff", "image/svg+xml", "image/x-icon", "image/heic",
		"image/heif", "image/x-raw",
	},
	Document: {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"text/plain", "text/csv", "text/html",
		"application/rtf", "application/x-tex",
		"application/vnd.oasis.opendocument.text",
		"application/vnd.oasis.opendocument.spreadsheet",
		"application/epub+zip", "application/x-mobipocket-ebook",
		"application/x-fictionbook+xml", "application/x-abiword",
		"application/vnd.apple.pages", "application/vnd.google-apps.document",
	},
	Audio: {
		"audio/mpeg", "audio/wav", "audio/ogg", "audio/flac", "audio/aac",
		"audio/mp3", "audio/webm", "audio/amr", "audio/midi", "audio/x-m4a",
		"audio/x-realaudio", "audio/x-aiff", "audio/x-wav", "audio/x-matroska",
	},
	Video: {
		"video/mp4", "video/mpeg", "video/ogg", "video/webm", "video/quicktime",
		"video/x-msvideo", "video/x-matroska", "video/x-flv", "video/x-ms-wmv",
		"video/3gpp", "video/3gpp2", "video/h264", "video/h265", "video/x-f4v",
		"video/avi",
	},
}

var byMIME = func() map[string]string {
	m := make(map[string]string)
	for category, list := range categories {
		for _, t := range list {
			m[t] = category
		}
	}
	return m
}()

// extensions is consulted before the platform MIME database so results do
// not depend on the host's /etc/mime.types.
var extensions = map[string]string{
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".png":   "image/png",
	".gif":   "image/gif",
	".bmp":   "image/bmp",
	".webp":  "image/webp",
	".tif":   "image/tiff",
	".tiff":  "image/tiff",
	".svg":   "image/svg+xml",
	".ico":   "image/x-icon",
	".heic":  "image/heic",
	".heif":  "image/heif",
	".pdf":   "application/pdf",
	".doc":   "application/msword",
	".docx":  "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":   "application/vnd.ms-excel",
	".xlsx":  "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":   "application/vnd.ms-powerpoint",
	".pptx":  "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".txt":   "text/plain",
	".csv":   "text/csv",
	".htm":   "text/html",
	".html":  "text/html",
	".rtf":   "application/rtf",
	".tex":   "application/x-tex",
	".odt":   "application/vnd.oasis.opendocument.text",
	".ods":   "application/vnd.oasis.opendocument.spreadsheet",
	".epub":  "application/epub+zip",
	".mobi":  "application/x-mobipocket-ebook",
	".abw":   "application/x-abiword",
	".pages": "application/vnd.apple.pages",
	".mp3":   "audio/mpeg",
	".wav":   "audio/x-wav",
	".ogg":   "audio/ogg",
	".oga":   "audio/ogg",
	".opus":  "audio/ogg",
	".flac":  "audio/flac",
	".aac":   "audio/aac",
	".amr":   "audio/amr",
	".mid":   "audio/midi",
	".midi":  "audio/midi",
	".m4a":   "audio/x-m4a",
	".aif":   "audio/x-aiff",
	".aiff":  "audio/x-aiff",
	".ra":    "audio/x-realaudio",
	".mka":   "audio/x-matroska",
	".mp4":   "video/mp4",
	".mpeg":  "video/mpeg",
	".mpg":   "video/mpeg",
	".ogv":   "video/ogg",
	".webm":  "video/webm",
	".mov":   "video/quicktime",
	".avi":   "video/x-msvideo",
	".mkv":   "video/x-matroska",
	".flv":   "video/x-flv",
	".wmv":   "video/x-ms-wmv",
	".3gp":   "video/3gpp",
	".3g2":   "video/3gpp2",
	".f4v":   "video/x-f4v",
}

// Normalize lower-cases a MIME type and drops parameters such as charset.
func Normalize(mimeType string) string {
	mt := strings.TrimSpace(mimeType)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.ToLower(strings.TrimSpace(mt))
}

// IsGeneric reports whether mimeType carries no useful information and the
// extension should be consulted instead.
func IsGeneric(mimeType string) bool {
	switch Normalize(mimeType) {
	case "", "binary/octet-stream", "application/octet-stream":
		return true
	}
	return false
}

// FromExtension guesses a MIME type from the extension of a file path or URL
// path. It returns "" when the extension is unknown.
func FromExtension(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return ""
	}
	if t, ok := extensions[ext]; ok {
		return t
	}
	return Normalize(mime.TypeByExtension(ext))
}

// Classify returns the category for mimeType. Unmatched types keep their
// MIME string with FileType Unknown; an empty type becomes UnknownMIME.
func Classify(mimeType string) Classification {
	mt := Normalize(mimeType)
	if mt == "" {
		mt = UnknownMIME
	}
	if category, ok := byMIME[mt]; ok {
		return Classification{FileType: category, MIME: mt}
	}
	return Classification{FileType: Unknown, MIME: mt}
}
