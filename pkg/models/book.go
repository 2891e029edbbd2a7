package models

import "time"

// BookDraft is an untrusted book submission. It carries every field a caller
// may supply; the validation pipeline normalizes it in place before a Book is
// assembled from it.
type BookDraft struct {
	Title            string         `json:"title" bson:"title"`
	AuthorFirstName  string         `json:"author_first_name" bson:"author_first_name"`
	AuthorMiddleName *string        `json:"author_middle_name,omitempty" bson:"author_middle_name,omitempty"`
	AuthorLastName   *string        `json:"author_last_name,omitempty" bson:"author_last_name,omitempty"`
	Description      *string        `json:"description,omitempty" bson:"description,omitempty"`
	Language         BookLanguage   `json:"language" bson:"language"`
	Format           BookFormat     `json:"book_type" bson:"book_type"`
	EbookType        *EbookType     `json:"ebook_type,omitempty" bson:"ebook_type,omitempty"`
	Condition        *BookCondition `json:"condition,omitempty" bson:"condition,omitempty"`
	Publisher        *string        `json:"publisher,omitempty" bson:"publisher,omitempty"`
	Edition          int            `json:"edition" bson:"edition"`
	PageCount        *int           `json:"page_count,omitempty" bson:"page_count,omitempty"`
	Tags             []string       `json:"tags,omitempty" bson:"tags,omitempty"`
	ISBN             *string        `json:"isbn,omitempty" bson:"isbn,omitempty"`
	Genre            *string        `json:"genre,omitempty" bson:"genre,omitempty"`
	PublicationDate  *time.Time     `json:"publication_year,omitempty" bson:"publication_year,omitempty"`
	TargetAudience   BookAudience   `json:"target_audience" bson:"target_audience"`
	Location         BookLocation   `json:"location" bson:"location"`
	ReplacementCost  *float64       `json:"replacement_cost,omitempty" bson:"replacement_cost,omitempty"`
	TotalCopies      *int           `json:"total_copies,omitempty" bson:"total_copies,omitempty"`
	AvailableCopies  *int           `json:"available_copies,omitempty" bson:"available_copies,omitempty"`
}

// Book is an accepted catalog record.
type Book struct {
	ID        string            `json:"book_id" bson:"_id"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
	Status    CirculationStatus `json:"status" bson:"status"`

	BookDraft `bson:",inline"`
}

// Draft returns a copy of the record's mutable fields, used to re-run the
// validation pipeline against a merged update.
func (b *Book) Draft() BookDraft {
	draft := b.BookDraft
	draft.Tags = append([]string(nil), b.Tags...)
	return draft
}
