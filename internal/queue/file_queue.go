package queue

import (
	"os"
	"spotter/internal/models"
	"spotter/internal/providers"
	"sync"

	json "github.com/goccy/go-json"
)

// FileQueue keeps the whole queue as one zstd-compressed JSON array and
// rewrites it atomically on every mutation. Undecodable content is logged
// and read as an empty queue.
type FileQueue struct {
	mu         sync.Mutex
	path       string
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileQueue(path string, compressor CompressorInterface, logger providers.Logger) *FileQueue {
	return &FileQueue{
		path:       path,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileQueue) Append(s models.Sighting) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.load()
	if err != nil {
		return err
	}
	return f.save(append(list, s))
}

func (f *FileQueue) All() ([]models.Sighting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *FileQueue) Remove(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.load()
	if err != nil {
		return err
	}
	drop := idSet(ids)
	kept := list[:0]
	for _, s := range list {
		if _, ok := drop[s.ID]; !ok {
			kept = append(kept, s)
		}
	}
	return f.save(kept)
}

func (f *FileQueue) Len() (int, error) {
	list, err := f.All()
	return len(list), err
}

func (f *FileQueue) Close() error {
	f.compressor.Close()
	return nil
}

func (f *FileQueue) load() ([]models.Sighting, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Sighting{}, nil
		}
		return nil, err
	}

	raw, err := f.compressor.Decompress(data)
	if err != nil {
		f.logger.Warnf(providers.TypeSync, "Offline queue %s is unreadable, treating as empty: %s", f.path, err)
		return []models.Sighting{}, nil
	}

	var list []models.Sighting
	if err := json.Unmarshal(raw, &list); err != nil {
		f.logger.Warnf(providers.TypeSync, "Offline queue %s is corrupted, treating as empty: %s", f.path, err)
		return []models.Sighting{}, nil
	}
	if list == nil {
		list = []models.Sighting{}
	}
	return list, nil
}

// save replaces the queue file; an empty queue removes it.
func (f *FileQueue) save(list []models.Sighting) error {
	if len(list) == 0 {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	jsonData, err := json.Marshal(list)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}
