package validation

import (
	"fmt"
	"time"

	"github.com/libooktrac/libooktrac/pkg/models"
	"github.com/libooktrac/libooktrac/pkg/normalize"
)

const maxTags = 10

// formatRule captures which optional fields a book format requires and which
// it ignores. Ignored fields are cleared on acceptance rather than rejected.
type formatRule struct {
	requiresEbookType bool
	requiresCondition bool
	requiresCopies    bool
}

var formatRules = map[models.BookFormat]formatRule{
	models.FormatEbook:     {requiresEbookType: true},
	models.FormatPaperback: {requiresCondition: true, requiresCopies: true},
	models.FormatHardcover: {requiresCondition: true, requiresCopies: true},
	models.FormatAudiobook: {},
}

// Book validates and normalizes a book draft against the given "today".
// The ISBN is canonicalized as part of its own field check; fields irrelevant
// to the declared format are cleared only once the draft is fully valid.
func Book(draft *models.BookDraft, today time.Time) List {
	list := bookFields(draft, today)
	list = append(list, bookCrossField(draft)...)

	if len(list) == 0 {
		applyFormatRules(draft)
	}

	return list
}

// bookFields runs the per-field checks in declaration order.
func bookFields(draft *models.BookDraft, today time.Time) List {
	var list List

	checkLength(&list, "title", draft.Title, 1, 200)
	checkLength(&list, "author_first_name", draft.AuthorFirstName, 1, 100)
	if draft.AuthorMiddleName != nil {
		checkLength(&list, "author_middle_name", *draft.AuthorMiddleName, 0, 100)
	}
	if draft.AuthorLastName != nil {
		checkLength(&list, "author_last_name", *draft.AuthorLastName, 0, 100)
	}
	if draft.Description != nil {
		checkLength(&list, "description", *draft.Description, 0, 1000)
	}
	if !draft.Language.Valid() {
		list.add(CodeValidation, "language", fmt.Sprintf("%q is not a valid language", draft.Language))
	}
	if !draft.Format.Valid() {
		list.add(CodeValidation, "book_type", fmt.Sprintf("%q is not a valid book type", draft.Format))
	}
	if draft.EbookType != nil && !draft.EbookType.Valid() {
		list.add(CodeValidation, "ebook_type", fmt.Sprintf("%q is not a valid ebook type", *draft.EbookType))
	}
	if draft.Condition != nil && !draft.Condition.Valid() {
		list.add(CodeValidation, "condition", fmt.Sprintf("%q is not a valid condition", *draft.Condition))
	}
	if draft.Publisher != nil {
		checkLength(&list, "publisher", *draft.Publisher, 0, 200)
	}
	if draft.Edition < 1 {
		list.add(CodeValidation, "edition", "Edition must be at least 1")
	}
	if draft.PageCount != nil && *draft.PageCount < 1 {
		list.add(CodeValidation, "page_count", "Page count must be at least 1")
	}
	if len(draft.Tags) > maxTags {
		list.add(CodeValidation, "tags", fmt.Sprintf("At most %d tags are allowed", maxTags))
	}
	if draft.ISBN != nil && *draft.ISBN != "" {
		cleaned, err := normalize.ISBN(*draft.ISBN)
		if err != nil {
			list.add(CodeFormat, "isbn", err.Error())
		} else {
			draft.ISBN = &cleaned
		}
	}
	if draft.Genre != nil {
		checkLength(&list, "genre", *draft.Genre, 0, 50)
	}
	if draft.PublicationDate != nil && draft.PublicationDate.After(today) {
		list.add(CodeValidation, "publication_year", "Publication date cannot be in the future")
	}
	if !draft.TargetAudience.Valid() {
		list.add(CodeValidation, "target_audience", fmt.Sprintf("%q is not a valid target audience", draft.TargetAudience))
	}
	if !draft.Location.Valid() {
		list.add(CodeValidation, "location", fmt.Sprintf("%q is not a valid location", draft.Location))
	}
	if draft.ReplacementCost != nil && *draft.ReplacementCost < 0 {
		list.add(CodeValidation, "replacement_cost", "Replacement cost cannot be negative")
	}
	if draft.TotalCopies != nil && *draft.TotalCopies < 0 {
		list.add(CodeValidation, "total_copies", "Total copies cannot be negative")
	}
	if draft.AvailableCopies != nil && *draft.AvailableCopies < 0 {
		list.add(CodeValidation, "available_copies", "Available copies cannot be negative")
	}

	return list
}

// bookCrossField applies the format-dependent requirement table and the stock
// ordering rule. It runs against the full field set, never a partial one.
func bookCrossField(draft *models.BookDraft) List {
	var list List

	rule, ok := formatRules[draft.Format]
	if !ok {
		// Unknown format already reported by the field check.
		return list
	}

	if rule.requiresEbookType && draft.EbookType == nil {
		list.add(CodeValidation, "ebook_type", "ebook_type must be specified when book_type is 'ebook'")
	}
	if rule.requiresCondition && draft.Condition == nil {
		list.add(CodeValidation, "condition", fmt.Sprintf("condition is required for %s books", draft.Format))
	}
	if rule.requiresCopies {
		if draft.TotalCopies == nil {
			list.add(CodeValidation, "total_copies", fmt.Sprintf("total_copies is required for %s books", draft.Format))
		}
		if draft.AvailableCopies == nil {
			list.add(CodeValidation, "available_copies", fmt.Sprintf("available_copies is required for %s books", draft.Format))
		}
	}

	if draft.TotalCopies != nil && draft.AvailableCopies != nil && *draft.AvailableCopies > *draft.TotalCopies {
		list.addMulti(CodeConstraint, []string{"available_copies", "total_copies"},
			"Available copies cannot exceed total copies")
	}

	return list
}

// applyFormatRules clears fields the declared format ignores.
func applyFormatRules(draft *models.BookDraft) {
	rule := formatRules[draft.Format]

	if !rule.requiresEbookType {
		draft.EbookType = nil
	}
	if !rule.requiresCondition {
		draft.Condition = nil
	}
	if !rule.requiresCopies {
		draft.TotalCopies = nil
		draft.AvailableCopies = nil
	}
}

func checkLength(list *List, field, value string, min, max int) {
	if len(value) < min {
		if min == 1 {
			list.add(CodeValidation, field, fmt.Sprintf("%s is required", field))
			return
		}
		list.add(CodeValidation, field, fmt.Sprintf("%s must be at least %d characters", field, min))
		return
	}
	if len(value) > max {
		list.add(CodeValidation, field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
}
