// Package jsonfile реализует хранилище состояния приложения в одном
// JSON-файле на диске. Каждая мутация выполняется по схеме
// "прочитать весь документ — изменить — записать весь документ";
// мьютекс защищает цикл от потерянных обновлений при параллельных
// запросах, запись идёт через временный файл с переименованием.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/preocrypto/trading-backend/internal/models"
)

// Storage хранит путь к файлу документа и сериализует доступ к нему.
type Storage struct {
	path string
	mu   sync.Mutex
}

// New создаёт хранилище поверх указанного файла. Файл может не существовать:
// он появится при первой записи.
func New(path string) *Storage {
	return &Storage{path: path}
}

// Load читает документ с диска. Отсутствующий или нечитаемый файл ошибкой
// не считается: возвращается пустой документ.
func (s *Storage) Load() *models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Storage) load() *models.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return models.NewDocument()
	}
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.NewDocument()
	}
	doc.Normalize()
	return &doc
}

// Save сериализует документ и атомарно замещает файл на диске.
func (s *Storage) Save(doc *models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

func (s *Storage) save(doc *models.Document) error {
	const op = "jsonfile.Save"
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".db-*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// View выполняет fn над свежепрочитанным документом без записи на диск.
func (s *Storage) View(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.load())
}

// Update выполняет цикл "прочитать — изменить — записать" под мьютексом.
// Если fn возвращает ошибку, документ на диске не меняется.
func (s *Storage) Update(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}
