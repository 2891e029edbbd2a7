package books

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/libooktrac/libooktrac/pkg/database"
	"github.com/libooktrac/libooktrac/pkg/errcodes"
	"github.com/libooktrac/libooktrac/pkg/models"
	"github.com/libooktrac/libooktrac/pkg/reservation"
	"github.com/libooktrac/libooktrac/pkg/validation"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// maxIDAttempts bounds the generate-and-probe loop for fresh record IDs.
const maxIDAttempts = 5

type ListBooksOptions struct {
	Limit  int
	Offset int
}

type SearchBooksOptions struct {
	Title  *string
	Author *string
	Genre  *string
	Limit  int
	Offset int
}

type Service struct {
	store      database.Store
	collection string
	isbns      *reservation.Set

	now   func() time.Time
	newID func() string
}

func NewService(store database.Store, collection string, isbns *reservation.Set) *Service {
	return &Service{
		store:      store,
		collection: collection,
		isbns:      isbns,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WarmReservations claims the ISBN of every existing record so duplicate
// checks hold across restarts. Call once after the datastore is ready.
func (svc *Service) WarmReservations(ctx context.Context) error {
	books := []*models.Book{}
	err := svc.store.Find(ctx, svc.collection, database.Query{}, &books)
	if err != nil {
		return errors.WithStack(err)
	}
	for _, book := range books {
		if book.ISBN != nil {
			svc.isbns.Reserve(*book.ISBN)
		}
	}
	return nil
}

// CreateBook validates and normalizes the draft, claims its ISBN, and
// persists a new record. Every violation is reported in one rejection; the
// record is only written when the whole draft is acceptable.
func (svc *Service) CreateBook(ctx context.Context, draft *models.BookDraft) (*models.Book, error) {
	if violations := validation.Book(draft, svc.now()); len(violations) > 0 {
		return nil, errcodes.Rejected(violations)
	}

	// Claim the ISBN before the insert so two concurrent creates can't both
	// write the same one. Exactly one caller wins the claim.
	if draft.ISBN != nil {
		if !svc.isbns.Reserve(*draft.ISBN) {
			return nil, errcodes.Conflict("A book with this ISBN already exists.")
		}
	}

	book, err := svc.insertBook(ctx, draft)
	if err != nil && draft.ISBN != nil {
		svc.isbns.Release(*draft.ISBN)
	}
	return book, err
}

func (svc *Service) insertBook(ctx context.Context, draft *models.BookDraft) (*models.Book, error) {
	id, err := svc.freshID(ctx)
	if err != nil {
		return nil, err
	}

	now := svc.now()
	book := &models.Book{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Status:    models.StatusAvailable,
		BookDraft: *draft,
	}

	if _, err := svc.store.Insert(ctx, svc.collection, book); err != nil {
		return nil, errors.WithStack(err)
	}
	return book, nil
}

func (svc *Service) RetrieveBook(ctx context.Context, id string) (*models.Book, error) {
	book := &models.Book{}
	found, err := svc.store.FindOne(ctx, svc.collection, database.Query{
		Exact: map[string]any{"_id": id},
	}, book)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !found {
		return nil, errcodes.NotFound("Book")
	}
	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	books := []*models.Book{}
	err := svc.store.Find(ctx, svc.collection, database.Query{
		Sort:   "created_at",
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}, &books)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return books, nil
}

// SearchBooks matches case-insensitive substrings. The author term matches
// either author name field; title and genre terms narrow the result.
func (svc *Service) SearchBooks(ctx context.Context, opts SearchBooksOptions) ([]*models.Book, error) {
	base := map[string]string{}
	if opts.Title != nil {
		base["title"] = *opts.Title
	}
	if opts.Genre != nil {
		base["genre"] = *opts.Genre
	}

	if opts.Author == nil {
		return svc.searchQuery(ctx, base, opts)
	}

	// The store ANDs its predicates, so an author term needs one query per
	// name field, merged and de-duplicated.
	byFirst, err := svc.searchQuery(ctx, withField(base, "author_first_name", *opts.Author), opts)
	if err != nil {
		return nil, err
	}
	byLast, err := svc.searchQuery(ctx, withField(base, "author_last_name", *opts.Author), opts)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	merged := []*models.Book{}
	for _, book := range append(byFirst, byLast...) {
		if _, ok := seen[book.ID]; ok {
			continue
		}
		seen[book.ID] = struct{}{}
		merged = append(merged, book)
	}
	return merged, nil
}

func (svc *Service) searchQuery(ctx context.Context, substrings map[string]string, opts SearchBooksOptions) ([]*models.Book, error) {
	books := []*models.Book{}
	err := svc.store.Find(ctx, svc.collection, database.Query{
		Substring: substrings,
		Sort:      "created_at",
		Limit:     opts.Limit,
		Offset:    opts.Offset,
	}, &books)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return books, nil
}

func withField(base map[string]string, field, value string) map[string]string {
	out := map[string]string{field: value}
	for k, v := range base {
		out[k] = v
	}
	return out
}

// UpdateBook merges the patch into the stored record, re-runs the full
// validation pipeline on the merged draft, and persists only when the whole
// merge is acceptable. A rejected update leaves the record untouched.
func (svc *Service) UpdateBook(ctx context.Context, id string, patch UpdateBookPayload) (*models.Book, error) {
	book, err := svc.RetrieveBook(ctx, id)
	if err != nil {
		return nil, err
	}

	oldISBN := book.ISBN
	draft := book.Draft()
	patch.apply(&draft)

	if violations := validation.Book(&draft, svc.now()); len(violations) > 0 {
		return nil, errcodes.Rejected(violations)
	}

	// An ISBN change claims the new value before anything is written and
	// gives the old one back only after the write sticks.
	changedISBN := isbnChanged(oldISBN, draft.ISBN)
	if changedISBN && draft.ISBN != nil {
		if !svc.isbns.Reserve(*draft.ISBN) {
			return nil, errcodes.Conflict("A book with this ISBN already exists.")
		}
	}

	book.BookDraft = draft
	book.UpdatedAt = svc.now()

	ok, err := svc.store.Update(ctx, svc.collection, id, bookFields(book))
	if err != nil || !ok {
		if changedISBN && draft.ISBN != nil {
			svc.isbns.Release(*draft.ISBN)
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return nil, errcodes.NotFound("Book")
	}

	if changedISBN && oldISBN != nil {
		svc.isbns.Release(*oldISBN)
	}
	return book, nil
}

// DeleteBook removes the record and releases its ISBN. Deleting a missing
// record reports NotFound; the ISBN becomes claimable again immediately.
func (svc *Service) DeleteBook(ctx context.Context, id string) error {
	book, err := svc.RetrieveBook(ctx, id)
	if err != nil {
		return err
	}

	ok, err := svc.store.Delete(ctx, svc.collection, id)
	if err != nil {
		return errors.WithStack(err)
	}
	if !ok {
		return errcodes.NotFound("Book")
	}

	if book.ISBN != nil {
		svc.isbns.Release(*book.ISBN)
	}
	return nil
}

func (svc *Service) freshID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := svc.newID()
		existing := &models.Book{}
		found, err := svc.store.FindOne(ctx, svc.collection, database.Query{
			Exact: map[string]any{"_id": id},
		}, existing)
		if err != nil {
			return "", errors.WithStack(err)
		}
		if !found {
			return id, nil
		}
	}
	return "", errors.New("exhausted attempts generating a unique book id")
}

func isbnChanged(old, updated *string) bool {
	switch {
	case old == nil && updated == nil:
		return false
	case old == nil || updated == nil:
		return true
	default:
		return *old != *updated
	}
}

// bookFields lists every mutable field explicitly, nil pointers included, so
// a field cleared by a format rule is cleared in the datastore too instead of
// being skipped by omitempty.
func bookFields(book *models.Book) bson.M {
	return bson.M{
		"updated_at":        book.UpdatedAt,
		"status":            book.Status,
		"title":             book.Title,
		"author_first_name": book.AuthorFirstName,
		"author_middle_name": book.AuthorMiddleName,
		"author_last_name":  book.AuthorLastName,
		"description":       book.Description,
		"language":          book.Language,
		"book_type":         book.Format,
		"ebook_type":        book.EbookType,
		"condition":         book.Condition,
		"publisher":         book.Publisher,
		"edition":           book.Edition,
		"page_count":        book.PageCount,
		"tags":              book.Tags,
		"isbn":              book.ISBN,
		"genre":             book.Genre,
		"publication_year":  book.PublicationDate,
		"target_audience":   book.TargetAudience,
		"location":          book.Location,
		"replacement_cost":  book.ReplacementCost,
		"total_copies":      book.TotalCopies,
		"available_copies":  book.AvailableCopies,
	}
}
