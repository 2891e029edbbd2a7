package books

import (
	"time"

	"github.com/libooktrac/libooktrac/pkg/models"
)

type ListBooksQuery struct {
	Limit  int `query:"limit" json:"limit,omitempty" default:"24" validate:"min=1,max=100"`
	Offset int `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

type SearchBooksQuery struct {
	Title  *string `query:"title" json:"title,omitempty" validate:"omitempty,max=200"`
	Author *string `query:"author" json:"author,omitempty" validate:"omitempty,max=100"`
	Genre  *string `query:"genre" json:"genre,omitempty" validate:"omitempty,max=50"`
	Limit  int     `query:"limit" json:"limit,omitempty" default:"24" validate:"min=1,max=100"`
	Offset int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

// UpdateBookPayload carries a partial update. A nil field leaves the stored
// value alone; the merged result is re-validated as a whole before anything
// is written.
type UpdateBookPayload struct {
	Title            *string               `json:"title,omitempty" validate:"omitempty,max=200"`
	AuthorFirstName  *string               `json:"author_first_name,omitempty" validate:"omitempty,max=100"`
	AuthorMiddleName *string               `json:"author_middle_name,omitempty" validate:"omitempty,max=100"`
	AuthorLastName   *string               `json:"author_last_name,omitempty" validate:"omitempty,max=100"`
	Description      *string               `json:"description,omitempty" validate:"omitempty,max=1000"`
	Language         *models.BookLanguage  `json:"language,omitempty"`
	Format           *models.BookFormat    `json:"book_type,omitempty"`
	EbookType        *models.EbookType     `json:"ebook_type,omitempty"`
	Condition        *models.BookCondition `json:"condition,omitempty"`
	Publisher        *string               `json:"publisher,omitempty" validate:"omitempty,max=100"`
	Edition          *int                  `json:"edition,omitempty" validate:"omitempty,min=1"`
	PageCount        *int                  `json:"page_count,omitempty" validate:"omitempty,min=1"`
	Tags             []string              `json:"tags,omitempty" validate:"omitempty,max=10,dive,max=50"`
	ISBN             *string               `json:"isbn,omitempty" validate:"omitempty,isbn"`
	Genre            *string               `json:"genre,omitempty" validate:"omitempty,max=50"`
	PublicationDate  *time.Time            `json:"publication_year,omitempty"`
	TargetAudience   *models.BookAudience  `json:"target_audience,omitempty"`
	Location         *models.BookLocation  `json:"location,omitempty"`
	ReplacementCost  *float64              `json:"replacement_cost,omitempty" validate:"omitempty,min=0"`
	TotalCopies      *int                  `json:"total_copies,omitempty" validate:"omitempty,min=0"`
	AvailableCopies  *int                  `json:"available_copies,omitempty" validate:"omitempty,min=0"`
}

func (p UpdateBookPayload) apply(draft *models.BookDraft) {
	if p.Title != nil {
		draft.Title = *p.Title
	}
	if p.AuthorFirstName != nil {
		draft.AuthorFirstName = *p.AuthorFirstName
	}
	if p.AuthorMiddleName != nil {
		draft.AuthorMiddleName = p.AuthorMiddleName
	}
	if p.AuthorLastName != nil {
		draft.AuthorLastName = p.AuthorLastName
	}
	if p.Description != nil {
		draft.Description = p.Description
	}
	if p.Language != nil {
		draft.Language = *p.Language
	}
	if p.Format != nil {
		draft.Format = *p.Format
	}
	if p.EbookType != nil {
		draft.EbookType = p.EbookType
	}
	if p.Condition != nil {
		draft.Condition = p.Condition
	}
	if p.Publisher != nil {
		draft.Publisher = p.Publisher
	}
	if p.Edition != nil {
		draft.Edition = *p.Edition
	}
	if p.PageCount != nil {
		draft.PageCount = p.PageCount
	}
	if p.Tags != nil {
		draft.Tags = p.Tags
	}
	if p.ISBN != nil {
		draft.ISBN = p.ISBN
	}
	if p.Genre != nil {
		draft.Genre = p.Genre
	}
	if p.PublicationDate != nil {
		draft.PublicationDate = p.PublicationDate
	}
	if p.TargetAudience != nil {
		draft.TargetAudience = *p.TargetAudience
	}
	if p.Location != nil {
		draft.Location = *p.Location
	}
	if p.ReplacementCost != nil {
		draft.ReplacementCost = p.ReplacementCost
	}
	if p.TotalCopies != nil {
		draft.TotalCopies = p.TotalCopies
	}
	if p.AvailableCopies != nil {
		draft.AvailableCopies = p.AvailableCopies
	}
}
