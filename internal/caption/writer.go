package caption

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile renders segments in the given format and writes the result
// to path, creating parent directories as needed. The engine itself
// only returns content; writing is caller-side sugar.
func WriteFile(segments []Segment, format Format, path string) error {
	content, err := Render(segments, format)
	if err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// WritePackage writes one file per requested format into dir, named
// base plus the format's extension. Returns the written paths by
// format.
func WritePackage(
	segments []Segment,
	formats []Format,
	dir string,
	base string,
) (map[Format]string, error) {
	if len(formats) == 0 {
		formats = AllFormats()
	}

	paths := make(map[Format]string, len(formats))
	for _, format := range formats {
		path := filepath.Join(dir, base+ExtensionForFormat(format))
		if err := WriteFile(segments, format, path); err != nil {
			return nil, fmt.Errorf(
				"failed to write %s captions: %w", format, err,
			)
		}
		paths[format] = path
	}
	return paths, nil
}

// file extension for a format
func ExtensionForFormat(format Format) string {
	switch format {
	case FormatSRT:
		return ".srt"
	case FormatVTT:
		return ".vtt"
	case FormatJSON:
		return ".json"
	case FormatTranscript:
		return ".transcript.txt"
	case FormatScriptTiming:
		return ".timing.txt"
	default:
		return ".txt"
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
