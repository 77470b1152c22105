package media

import "strings"

var audioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".ogg":  true,
}

var rawExts = map[string]bool{
	".raw": true,
	".pcm": true,
}

// IsSupportedExt returns true if the extension names a decodable container.
func IsSupportedExt(ext string) bool {
	return audioExts[strings.ToLower(ext)]
}

// IsRawExt returns true if the extension conventionally holds headerless PCM.
func IsRawExt(ext string) bool {
	return rawExts[strings.ToLower(ext)]
}

// IsViewableExt returns true if the file browser should offer the extension.
func IsViewableExt(ext string) bool {
	return IsSupportedExt(ext) || IsRawExt(ext)
}

// SupportedExtsList returns a human-readable list of viewable formats.
func SupportedExtsList() string {
	return ".wav, .mp3, .flac, .ogg, .raw, .pcm"
}
