// Package catalog реализует доступ к каталогу книг библиотеки.
//
// Каталог загружается из JSON-документа один раз при старте процесса и
// дальше читается из памяти. Единственная мутация — переключение
// доступности книги администратором — защищена RWMutex и сразу
// персистится обратно в файл.
//
// При первой загрузке выполняется разовая миграция схемы: книгам без
// поля available проставляется true, и каталог перезаписывается.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/clawcat502/library/internal/models"
	"github.com/clawcat502/library/internal/storage/jsonstore"
)

// ErrBookNotFound — книга с таким идентификатором отсутствует в каталоге.
var ErrBookNotFound = errors.New("book not found")

// rawBook — форма записи на диске. Available — указатель, чтобы отличить
// отсутствующее поле от явного false при миграции.
type rawBook struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Theme     []string `json:"theme"`
	Available *bool    `json:"available,omitempty"`
}

// Catalog — каталог книг, загруженный в память.
type Catalog struct {
	docs *jsonstore.Store[[]rawBook]
	log  *slog.Logger

	mu    sync.RWMutex
	books []models.Book
	index map[int]int // id книги → позиция в books
}

// New создает каталог: гарантирует существование файла, загружает книги
// и выполняет миграцию поля available.
func New(path string, log *slog.Logger) (*Catalog, error) {
	const op = "catalog.New"
	c := &Catalog{
		docs: jsonstore.New[[]rawBook](path, log),
		log:  log,
	}
	if err := c.docs.Ensure([]rawBook{}); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.Reload(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// Reload перечитывает каталог из файла. Используется при старте и как
// точка перезагрузки в тестах.
func (c *Catalog) Reload() error {
	raw := c.docs.Load([]rawBook{})

	books := make([]models.Book, 0, len(raw))
	index := make(map[int]int, len(raw))
	migrated := false
	for _, rb := range raw {
		available := true
		if rb.Available != nil {
			available = *rb.Available
		} else {
			migrated = true
		}
		index[rb.ID] = len(books)
		books = append(books, models.Book{
			ID:        rb.ID,
			Title:     rb.Title,
			Author:    rb.Author,
			Theme:     rb.Theme,
			Available: available,
		})
	}

	c.mu.Lock()
	c.books = books
	c.index = index
	c.mu.Unlock()

	if migrated {
		c.log.Info("backfilled missing available field", slog.Int("books", len(books)))
		if err := c.persist(); err != nil {
			return err
		}
	}
	c.log.Info("catalog loaded", slog.Int("books", len(books)))
	return nil
}

// Len возвращает количество книг в каталоге.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.books)
}

// All возвращает копию списка всех книг.
func (c *Catalog) All() []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Book, len(c.books))
	copy(out, c.books)
	return out
}

// FindByID возвращает книгу по идентификатору.
func (c *Catalog) FindByID(id int) (models.Book, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return models.Book{}, false
	}
	return c.books[i], true
}

// Search возвращает книги, у которых запрос входит подстрокой в название
// или в автора без учета регистра. Пустой запрос возвращает пустой список.
func (c *Catalog) Search(query string) []models.Book {
	if query == "" {
		return []models.Book{}
	}
	q := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []models.Book{}
	for _, b := range c.books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	return out
}

// FilterByTheme возвращает книги, у которых тема входит подстрокой хотя бы
// в одну из меток книги без учета регистра.
func (c *Catalog) FilterByTheme(theme string) []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return filterTheme(c.books, theme)
}

// Filter применяет поисковый запрос и фильтр по теме последовательно.
// Пустой параметр означает отсутствие соответствующего фильтра.
func (c *Catalog) Filter(query, theme string) []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	books := c.books
	if query != "" {
		q := strings.ToLower(query)
		filtered := []models.Book{}
		for _, b := range books {
			if strings.Contains(strings.ToLower(b.Title), q) ||
				strings.Contains(strings.ToLower(b.Author), q) {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}
	if theme != "" {
		books = filterTheme(books, theme)
	}

	out := make([]models.Book, len(books))
	copy(out, books)
	return out
}

func filterTheme(books []models.Book, theme string) []models.Book {
	if theme == "" {
		out := make([]models.Book, len(books))
		copy(out, books)
		return out
	}
	th := strings.ToLower(theme)
	out := []models.Book{}
	for _, b := range books {
		for _, t := range b.Theme {
			if strings.Contains(strings.ToLower(t), th) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// ListThemes возвращает отсортированное объединение тем всех книг.
func (c *Catalog) ListThemes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := map[string]struct{}{}
	themes := []string{}
	for _, b := range c.books {
		for _, t := range b.Theme {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				themes = append(themes, t)
			}
		}
	}
	sort.Strings(themes)
	return themes
}

// Featured возвращает рекомендованные книги по списку идентификаторов.
// Если найдено меньше трех, список добивается первыми книгами каталога.
func (c *Catalog) Featured(ids []int) []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []models.Book{}
	picked := map[int]struct{}{}
	for _, id := range ids {
		if i, ok := c.index[id]; ok {
			out = append(out, c.books[i])
			picked[id] = struct{}{}
		}
	}
	if len(out) < 3 {
		for _, b := range c.books {
			if len(out) >= 3 {
				break
			}
			if _, ok := picked[b.ID]; !ok {
				out = append(out, b)
				picked[b.ID] = struct{}{}
			}
		}
	}
	return out
}

// ToggleAvailability переключает доступность книги и персистит каталог.
// Возвращает обновлённую запись книги.
func (c *Catalog) ToggleAvailability(id int) (models.Book, error) {
	const op = "catalog.ToggleAvailability"

	c.mu.Lock()
	i, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return models.Book{}, ErrBookNotFound
	}
	c.books[i].Available = !c.books[i].Available
	book := c.books[i]
	c.mu.Unlock()

	if err := c.persist(); err != nil {
		return models.Book{}, fmt.Errorf("%s: %w", op, err)
	}
	c.log.Info("toggled book availability",
		slog.Int("id", book.ID), slog.Bool("available", book.Available))
	return book, nil
}

func (c *Catalog) persist() error {
	c.mu.RLock()
	raw := make([]rawBook, len(c.books))
	for i, b := range c.books {
		available := b.Available
		raw[i] = rawBook{
			ID:        b.ID,
			Title:     b.Title,
			Author:    b.Author,
			Theme:     b.Theme,
			Available: &available,
		}
	}
	c.mu.RUnlock()
	return c.docs.Save(raw)
}
