package kvstore

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"wayfare/utils"
)

const (
	tmpSuffix    = ".tmp"
	backupSuffix = ".bak"
	filePerms    = 0644
	backupQuiet  = 2 * time.Second
)

var unsafeKeyChars = regexp.MustCompile(`[^\w.\-]`)

// File stores each key as a JSON file under dir. Writes go to a temp file and
// are renamed into place; a .bak snapshot of the freshly written contents is
// refreshed at most once per quiescence window, so a burst of writes produces
// a single backup.
type File struct {
	dir        string
	mu         sync.Mutex
	debouncers map[string]*utils.Debouncer
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &File{dir: dir, debouncers: make(map[string]*utils.Debouncer)}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (f *File) Get(ctx context.Context, key string, out any) bool {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("kvstore: file get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("kvstore: file get %s: corrupt payload: %v", key, err)
		return false
	}
	return true
}

func (f *File) Set(ctx context.Context, key string, value any) bool {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		log.Printf("kvstore: file set %s: %v", key, err)
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.path(key)
	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, data, filePerms); err != nil {
		log.Printf("kvstore: file set %s: %v", key, err)
		return false
	}
	if err := os.Rename(tmp, path); err != nil {
		log.Printf("kvstore: file set %s: %v", key, err)
		return false
	}

	f.scheduleBackupLocked(key, path)
	return true
}

// scheduleBackupLocked re-arms the per-key debouncer; the backup is written
// once the key has been quiet for the full window.
func (f *File) scheduleBackupLocked(key, path string) {
	d, ok := f.debouncers[key]
	if !ok {
		d = utils.NewDebouncer(backupQuiet, func() {
			data, err := os.ReadFile(path)
			if err != nil {
				return
			}
			if err := os.WriteFile(path+backupSuffix, data, filePerms); err != nil {
				log.Printf("kvstore: backup %s: %v", key, err)
			}
		})
		f.debouncers[key] = d
	}
	d.Trigger()
}

// Close cancels pending backup snapshots.
func (f *File) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.debouncers {
		d.Stop()
	}
}
