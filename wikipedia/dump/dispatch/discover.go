package dispatch

import (
	"os"
	"path/filepath"
	"sort"

	"atlas/wikipedia/dump"
)

// Discover scans dumpDir for archive/index pairs and returns one task per wiki
// code, sorted by code. Archives without an index are still returned; the
// analyzer reports the unreadable index and the language gets skipped there.
func Discover(dumpDir string) ([]Task, error) {
	entries, err := os.ReadDir(dumpDir)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*Task)
	task := func(code string) *Task {
		t, ok := byCode[code]
		if !ok {
			t = &Task{WikiCode: code}
			byCode[code] = t
		}
		return t
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		if m := dump.ArchivePattern.FindStringSubmatch(name); m != nil {
			t := task(m[1])
			// Multiple dump dates for one wiki: keep the first seen, which is
			// the lexically smallest since ReadDir sorts.
			if t.ArchivePath == "" {
				t.ArchivePath = filepath.Join(dumpDir, name)
			}
			continue
		}
		if m := dump.IndexPattern.FindStringSubmatch(name); m != nil {
			t := task(m[1])
			if t.IndexPath == "" {
				t.IndexPath = filepath.Join(dumpDir, name)
			}
		}
	}

	tasks := make([]Task, 0, len(byCode))
	for _, t := range byCode {
		if t.ArchivePath == "" {
			// Index without archive, nothing to analyze.
			continue
		}
		tasks = append(tasks, *t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].WikiCode < tasks[j].WikiCode })

	return tasks, nil
}
