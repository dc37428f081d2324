package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"sellpanel/internal/models"
)

// Journal — журнал попыток выставления заявок: JSON-массив в файле,
// только дозапись. Отсутствующий файл равнозначен пустому журналу.
// Мьютекс защищает файл внутри процесса; панель работает в одном процессе.
type Journal struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) Append(entry models.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.read()
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("Не удалось сериализовать журнал: %w", err)
	}

	if err := os.WriteFile(j.path, data, 0o644); err != nil {
		return fmt.Errorf("Не удалось записать журнал: %w", err)
	}
	return nil
}

// Recent возвращает не более limit последних записей, новые первыми.
func (j *Journal) Recent(limit int) ([]models.JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.read()
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Timestamp.After(entries[b].Timestamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (j *Journal) Len() (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.read()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (j *Journal) read() ([]models.JournalEntry, error) {
	data, err := os.ReadFile(j.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Не удалось прочитать журнал: %w", err)
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("Не удалось разобрать журнал: %w", err)
	}
	return entries, nil
}
