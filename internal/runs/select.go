package runs

import "time"

// LogFile describes a candidate log file of a run.
type LogFile struct {
	// Name is the base name of the file.
	Name string

	// ModTime is the last modification time of the file.
	ModTime time.Time
}

// SelectLatest returns the most recently modified file.
// Files with the same modification time are ordered by name and the
// lexicographically greatest one wins, so the result does not depend on
// directory listing order. The second return value is false if files is empty.
func SelectLatest(files []LogFile) (LogFile, bool) {
	if len(files) == 0 {
		return LogFile{}, false
	}
	latest := files[0]
	for _, f := range files[1:] {
		switch {
		case f.ModTime.After(latest.ModTime):
			latest = f
		case f.ModTime.Equal(latest.ModTime) && f.Name > latest.Name:
			latest = f
		}
	}
	return latest, true
}
