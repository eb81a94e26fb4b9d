// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Sentinel errors returned by the repository. Handlers translate these into
// the HTTP error taxonomy; everything else is an unclassified storage failure.
var (
	// ErrRecordNotFound is returned when a query finds no matching row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateISBN is returned when an insert or update violates the
	// unique constraint on the isbn column.
	ErrDuplicateISBN = errors.New("duplicate isbn")

	// ErrNoFieldsToUpdate is returned when a partial update supplies no
	// recognized fields at all.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. Only this specific signal is translated into a conflict; all
// other driver errors pass through unclassified.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// bookColumns is the canonical select list, kept in one place so every query
// scans the same columns in the same order.
const bookColumns = "id, title, author, publication_year, isbn, created_at, updated_at"

// BookStore is the set of domain operations the handlers depend on.
// BookModel is the PostgreSQL implementation; tests substitute a mock.
type BookStore interface {
	Insert(ctx context.Context, book *Book) error
	GetAll(ctx context.Context, page, limit int) ([]Book, PageInfo, error)
	Get(ctx context.Context, id int64) (*Book, error)
	Update(ctx context.Context, id int64, input UpdateBookInput) (*Book, error)
	Delete(ctx context.Context, id int64) error
	SearchByTitle(ctx context.Context, title string) ([]Book, error)
	CountByYear(ctx context.Context, year int) (int, error)
	GetByYearRange(ctx context.Context, start, end int) ([]Book, error)
}

// Models is a top-level container that groups all database model types
// together. It is passed around the application via applicationDependencies
// so every handler has access to the database without importing sqlx directly.
type Models struct {
	Books BookStore // Handles all database operations for the books table
}

// NewModels constructs a Models value wired up to the given connection pool.
// Call this once during application startup.
func NewModels(db *sqlx.DB) Models {
	return Models{
		Books: BookModel{DB: db},
	}
}

// PageInfo contains pagination information returned alongside list responses.
type PageInfo struct {
	Total      int `json:"total"`      // Total number of records in the table
	Page       int `json:"page"`       // Current page number (1-indexed)
	TotalPages int `json:"totalPages"` // Ceiling of Total / page size
}

// BookModel wraps the shared connection pool and provides methods for
// creating, reading, updating, and deleting book records. Every statement is
// parameterized; values are never interpolated into SQL text.
type BookModel struct {
	DB *sqlx.DB // Shared database connection pool
}

// Insert adds a new book record to the database.
// After a successful insert, the database-assigned id, created_at, and
// updated_at values are written back into the book struct. A duplicate ISBN
// is reported as ErrDuplicateISBN.
func (m BookModel) Insert(ctx context.Context, book *Book) error {
	query := `
        INSERT INTO books (title, author, publication_year, isbn)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	err := m.DB.QueryRowxContext(
		ctx,
		query,
		book.Title,
		book.Author,
		book.PublicationYear,
		book.ISBN,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateISBN
		}
		return err
	}
	return nil
}

// GetAll retrieves one page of books ordered by creation time, newest first.
// The total count is read with a separate COUNT(*) so it stays correct even
// when the requested page lies beyond the last row.
func (m BookModel) GetAll(ctx context.Context, page, limit int) ([]Book, PageInfo, error) {
	var total int
	err := m.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM books`)
	if err != nil {
		return nil, PageInfo{}, err
	}

	offset := (page - 1) * limit

	query := fmt.Sprintf(`
        SELECT %s FROM books
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`, bookColumns)

	books := []Book{}
	err = m.DB.SelectContext(ctx, &books, query, limit, offset)
	if err != nil {
		return nil, PageInfo{}, err
	}

	info := PageInfo{
		Total:      total,
		Page:       page,
		TotalPages: (total + limit - 1) / limit, // ceiling division
	}
	return books, info, nil
}

// Get retrieves a single book by its primary key.
// Returns ErrRecordNotFound if no book with the given id exists.
func (m BookModel) Get(ctx context.Context, id int64) (*Book, error) {
	// Guard against obviously bad IDs before touching the database.
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)

	var book Book
	err := m.DB.GetContext(ctx, &book, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &book, nil
}

// Update applies a partial update to the book with the given id and returns
// the updated record. The existence check runs first so a missing id is
// reported as ErrRecordNotFound before anything else; a request that supplies
// zero recognized fields is rejected with ErrNoFieldsToUpdate before any
// UPDATE statement is issued.
//
// The SET clause is assembled from the non-nil input fields in a fixed order
// (title, author, publication_year, isbn) so the generated statement is
// deterministic. updated_at is always refreshed by the statement itself.
func (m BookModel) Update(ctx context.Context, id int64, input UpdateBookInput) (*Book, error) {
	if _, err := m.Get(ctx, id); err != nil {
		return nil, err
	}

	if input.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	var (
		assignments []string
		args        []any
	)

	if input.Title != nil {
		assignments = append(assignments, fmt.Sprintf("title = $%d", len(args)+1))
		args = append(args, *input.Title)
	}
	if input.Author != nil {
		assignments = append(assignments, fmt.Sprintf("author = $%d", len(args)+1))
		args = append(args, *input.Author)
	}
	if input.PublicationYear != nil {
		assignments = append(assignments, fmt.Sprintf("publication_year = $%d", len(args)+1))
		args = append(args, *input.PublicationYear)
	}
	if input.ISBN != nil {
		assignments = append(assignments, fmt.Sprintf("isbn = $%d", len(args)+1))
		args = append(args, *input.ISBN)
	}

	assignments = append(assignments, "updated_at = now()")

	query := fmt.Sprintf(`
        UPDATE books
        SET %s
        WHERE id = $%d
        RETURNING %s`, strings.Join(assignments, ", "), len(args)+1, bookColumns)
	args = append(args, id)

	var book Book
	err := m.DB.QueryRowxContext(ctx, query, args...).StructScan(&book)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateISBN
		}
		return nil, err
	}
	return &book, nil
}

// Delete removes the book with the given id from the database.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(ctx context.Context, id int64) error {
	if id < 1 {
		return ErrRecordNotFound
	}

	query := `DELETE FROM books WHERE id = $1`

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// If no rows were deleted, the book didn't exist.
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// SearchByTitle returns every book whose title contains the given substring,
// matched case-insensitively anywhere in the title, ordered alphabetically.
// The caller is responsible for rejecting empty search terms.
func (m BookModel) SearchByTitle(ctx context.Context, title string) ([]Book, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM books
        WHERE title ILIKE $1
        ORDER BY title ASC`, bookColumns)

	books := []Book{}
	err := m.DB.SelectContext(ctx, &books, query, "%"+title+"%")
	if err != nil {
		return nil, err
	}
	return books, nil
}

// CountByYear returns the number of books published in the given year.
// The aggregation is delegated to the count_books_by_year function installed
// by the schema script, so this is a single round trip.
func (m BookModel) CountByYear(ctx context.Context, year int) (int, error) {
	var count int
	err := m.DB.GetContext(ctx, &count, `SELECT count_books_by_year($1)`, year)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetByYearRange returns every book whose publication year falls inside the
// inclusive [start, end] range, ordered by year descending then title
// ascending.
func (m BookModel) GetByYearRange(ctx context.Context, start, end int) ([]Book, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM books
        WHERE publication_year BETWEEN $1 AND $2
        ORDER BY publication_year DESC, title ASC`, bookColumns)

	books := []Book{}
	err := m.DB.SelectContext(ctx, &books, query, start, end)
	if err != nil {
		return nil, err
	}
	return books, nil
}
