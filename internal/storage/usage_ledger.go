package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/models"
)

// UsageLedger журнал использования шаблонов: имя файла -> статистика.
// Изменения живут в памяти до явного вызова Flush.
type UsageLedger interface {
	RecordUsage(filename string, at time.Time)
	AppendAnalysis(filename, text string)
	Get(filename string) (models.UsageRecord, bool)
	Remove(filename string) bool
	Flush() error
}

// MemoryLedger держит журнал только в памяти. Flush ничего не делает.
type MemoryLedger struct {
	mu      sync.RWMutex
	entries map[string]*models.UsageRecord
}

// NewMemoryLedger создаёт пустой журнал в памяти.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]*models.UsageRecord)}
}

// RecordUsage увеличивает счётчик и обновляет время последнего использования.
func (l *MemoryLedger) RecordUsage(filename string, at time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.entry(filename)
	entry.UsageCount++
	ts := at
	entry.LastUsed = &ts
}

// AppendAnalysis добавляет заметку анализа к шаблону.
func (l *MemoryLedger) AppendAnalysis(filename, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.entry(filename)
	entry.AIAnalysis = append(entry.AIAnalysis, text)
}

// Get возвращает копию записи.
func (l *MemoryLedger) Get(filename string) (models.UsageRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.entries[filename]
	if !ok {
		return models.UsageRecord{AIAnalysis: []string{}}, false
	}

	out := *entry
	out.AIAnalysis = append([]string{}, entry.AIAnalysis...)
	return out, true
}

// Remove удаляет запись, возвращает true если она была.
func (l *MemoryLedger) Remove(filename string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.entries[filename]; !ok {
		return false
	}
	delete(l.entries, filename)
	return true
}

// Flush для журнала в памяти ничего не делает.
func (l *MemoryLedger) Flush() error {
	return nil
}

// entry возвращает запись, создавая её при отсутствии. Вызывать под блокировкой.
func (l *MemoryLedger) entry(filename string) *models.UsageRecord {
	entry, ok := l.entries[filename]
	if !ok {
		entry = &models.UsageRecord{AIAnalysis: []string{}}
		l.entries[filename] = entry
	}
	return entry
}

// snapshot копирует все записи для сериализации.
func (l *MemoryLedger) snapshot() map[string]models.UsageRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]models.UsageRecord, len(l.entries))
	for name, entry := range l.entries {
		rec := *entry
		if rec.AIAnalysis == nil {
			rec.AIAnalysis = []string{}
		}
		out[name] = rec
	}
	return out
}

// FileLedger журнал, который сбрасывается в JSON файл.
type FileLedger struct {
	*MemoryLedger
	path string
	// flushMu сериализует запись файла внутри процесса.
	flushMu sync.Mutex
}

// NewFileLedger читает журнал из файла. Отсутствующий или битый файл даёт пустой журнал.
func NewFileLedger(path string) (*FileLedger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог журнала: %w", err)
	}

	l := &FileLedger{MemoryLedger: NewMemoryLedger(), path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось прочитать журнал %s: %w", path, err)
	}

	l.entries = decodeLedger(path, data)
	return l, nil
}

// Path возвращает путь к файлу журнала.
func (l *FileLedger) Path() string {
	return l.path
}

// Flush записывает журнал на диск через временный файл.
func (l *FileLedger) Flush() error {
	l.flushMu.Lock()
	defer l.flushMu.Unlock()

	data, err := json.MarshalIndent(l.snapshot(), "", "    ")
	if err != nil {
		return fmt.Errorf("storage: не удалось сериализовать журнал: %w", err)
	}
	return writeFileAtomic(l.path, data)
}

// ledgerEntry формат записи на диске. last_used читается строкой,
// так как старые файлы содержат время без часового пояса.
type ledgerEntry struct {
	UsageCount int      `json:"usage_count"`
	LastUsed   *string  `json:"last_used"`
	AIAnalysis []string `json:"ai_analysis"`
}

var lastUsedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// decodeLedger разбирает файл журнала, пропуская битые записи.
func decodeLedger(path string, data []byte) map[string]*models.UsageRecord {
	log := logger.WithComponent("usage_ledger")
	entries := make(map[string]*models.UsageRecord)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		log.WithError(err).WithField("path", path).Warn("журнал использования повреждён, начинаем с пустого")
		return entries
	}

	for name, msg := range raw {
		var e ledgerEntry
		if err := json.Unmarshal(msg, &e); err != nil {
			log.WithError(err).WithField("filename", name).Warn("пропускаем битую запись журнала")
			continue
		}

		rec := &models.UsageRecord{UsageCount: e.UsageCount, AIAnalysis: e.AIAnalysis}
		if rec.UsageCount < 0 {
			rec.UsageCount = 0
		}
		if rec.AIAnalysis == nil {
			rec.AIAnalysis = []string{}
		}
		if e.LastUsed != nil {
			rec.LastUsed = parseLastUsed(*e.LastUsed)
		}
		entries[name] = rec
	}
	return entries
}

func parseLastUsed(v string) *time.Time {
	for _, layout := range lastUsedLayouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return &ts
		}
	}
	return nil
}
