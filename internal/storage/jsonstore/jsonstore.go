// Package jsonstore реализует хранилище целых JSON-документов в файлах.
//
// Каждый Store владеет одним файлом и сериализует все операции над ним
// через мьютекс: изменение документа выполняется как цикл
// load-mutate-save под блокировкой, поэтому параллельные запросы
// не затирают изменения друг друга.
//
// Ошибки чтения — мягкие: отсутствующий или повреждённый файл
// логируется, а вызывающему возвращается значение по умолчанию.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store хранит один JSON-документ типа T в файле path.
type Store[T any] struct {
	path string
	log  *slog.Logger
	mu   sync.Mutex
}

// New создает Store для файла path. Файл не открывается до первой операции.
func New[T any](path string, log *slog.Logger) *Store[T] {
	return &Store[T]{path: path, log: log}
}

// Path возвращает путь к файлу документа.
func (s *Store[T]) Path() string {
	return s.path
}

// Ensure создает файл со значением по умолчанию, если его еще нет.
func (s *Store[T]) Ensure(defaultValue T) error {
	const op = "jsonstore.Ensure"
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.save(defaultValue); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created document file", slog.String("path", s.path))
	return nil
}

// Load читает документ из файла. Отсутствующий или нечитаемый файл —
// не фатальная ошибка: она логируется, возвращается defaultValue.
func (s *Store[T]) Load(defaultValue T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(defaultValue)
}

// Save записывает документ в файл целиком.
func (s *Store[T]) Save(value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(value)
}

// Update выполняет цикл load-mutate-save под блокировкой хранилища.
// fn получает текущий документ и возвращает документ для записи.
func (s *Store[T]) Update(defaultValue T, fn func(T) (T, error)) error {
	const op = "jsonstore.Update"
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := fn(s.load(defaultValue))
	if err != nil {
		return err
	}
	if err := s.save(value); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store[T]) load(defaultValue T) T {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultValue
	}
	if err != nil {
		s.log.Error("failed to read document, using default",
			slog.String("path", s.path), slog.Any("err", err))
		return defaultValue
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		s.log.Error("failed to decode document, using default",
			slog.String("path", s.path), slog.Any("err", err))
		return defaultValue
	}
	return value
}

// save пишет во временный файл и переименовывает его, чтобы читатель
// никогда не увидел частично записанный документ.
func (s *Store[T]) save(value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}
