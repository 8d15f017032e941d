package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Category mirrors the scene's item categories at the persistence layer.
type Category string

const (
	CategoryGift  Category = "gift"
	CategoryFrame Category = "frame"
)

// Item is a persisted interactive item: stable identity plus the
// user-edited content that survives restarts.
type Item struct {
	ID        string
	Category  Category
	Slot      int
	Message   string
	ImagePath string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemRepository provides CRUD operations for items.
type ItemRepository struct {
	db *sql.DB
}

// Items returns the item repository for this store.
func (s *Store) Items() *ItemRepository {
	return &ItemRepository{db: s.db}
}

// Create inserts a new item into the database.
func (r *ItemRepository) Create(it *Item) error {
	now := time.Now()
	it.CreatedAt = now
	it.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO items (id, category, slot, message, image_path, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, string(it.Category), it.Slot, it.Message, it.ImagePath, it.CreatedAt, it.UpdatedAt,
	)
	return err
}

// GetByID retrieves an item by its ID.
func (r *ItemRepository) GetByID(id string) (*Item, error) {
	it := &Item{}
	var category string

	err := r.db.QueryRow(
		`SELECT id, category, slot, message, image_path, created_at, updated_at
		 FROM items WHERE id = ?`,
		id,
	).Scan(&it.ID, &category, &it.Slot, &it.Message, &it.ImagePath, &it.CreatedAt, &it.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	it.Category = Category(category)
	return it, nil
}

// List returns all items ordered by category and slot.
func (r *ItemRepository) List() ([]Item, error) {
	rows, err := r.db.Query(
		`SELECT id, category, slot, message, image_path, created_at, updated_at
		 FROM items ORDER BY category, slot`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var category string
		if err := rows.Scan(&it.ID, &category, &it.Slot, &it.Message, &it.ImagePath, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		it.Category = Category(category)
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListByCategory returns one category's items ordered by slot.
func (r *ItemRepository) ListByCategory(cat Category) ([]Item, error) {
	rows, err := r.db.Query(
		`SELECT id, category, slot, message, image_path, created_at, updated_at
		 FROM items WHERE category = ? ORDER BY slot`,
		string(cat),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		var category string
		if err := rows.Scan(&it.ID, &category, &it.Slot, &it.Message, &it.ImagePath, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		it.Category = Category(category)
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateContent replaces an item's editable content (message and image
// reference). Identity, category, and slot never change.
func (r *ItemRepository) UpdateContent(id, message, imagePath string) error {
	res, err := r.db.Exec(
		`UPDATE items SET message = ?, image_path = ?, updated_at = ? WHERE id = ?`,
		message, imagePath, time.Now(), id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item.
func (r *ItemRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
