package models

// BookFormat discriminates which optional fields of a book are mandatory.
type BookFormat string

const (
	FormatPaperback BookFormat = "paperback"
	FormatHardcover BookFormat = "hardcover"
	FormatEbook     BookFormat = "ebook"
	FormatAudiobook BookFormat = "audiobook"
)

// IsHardcopy reports whether the format represents a physical copy.
func (f BookFormat) IsHardcopy() bool {
	return f == FormatPaperback || f == FormatHardcover
}

func (f BookFormat) Valid() bool {
	switch f {
	case FormatPaperback, FormatHardcover, FormatEbook, FormatAudiobook:
		return true
	}
	return false
}

type EbookType string

const (
	EbookPDF  EbookType = "pdf"
	EbookEPUB EbookType = "epub"
	EbookMOBI EbookType = "mobi"
	EbookAZW  EbookType = "azw"
	EbookDOCX EbookType = "docx"
	EbookTXT  EbookType = "txt"
	EbookHTML EbookType = "html"
	EbookRTF  EbookType = "rtf"
)

func (t EbookType) Valid() bool {
	switch t {
	case EbookPDF, EbookEPUB, EbookMOBI, EbookAZW, EbookDOCX, EbookTXT, EbookHTML, EbookRTF:
		return true
	}
	return false
}

// BookCondition is the physical condition of a hardcopy at entry.
type BookCondition string

const (
	ConditionNew  BookCondition = "new"
	ConditionGood BookCondition = "good"
	ConditionFair BookCondition = "fair"
)

func (c BookCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionFair:
		return true
	}
	return false
}

type BookLanguage string

const (
	LanguageEnglish BookLanguage = "english"
	LanguageFrench  BookLanguage = "french"
	LanguageSpanish BookLanguage = "spanish"
	LanguageChinese BookLanguage = "chinese"
)

func (l BookLanguage) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageFrench, LanguageSpanish, LanguageChinese:
		return true
	}
	return false
}

type BookAudience string

const (
	AudienceAdult      BookAudience = "adult"
	AudienceYoungAdult BookAudience = "young_adult"
	AudienceChildren   BookAudience = "children"
)

func (a BookAudience) Valid() bool {
	switch a {
	case AudienceAdult, AudienceYoungAdult, AudienceChildren:
		return true
	}
	return false
}

type BookLocation string

const (
	LocationMain    BookLocation = "main"
	LocationBranch1 BookLocation = "branch1"
	LocationBranch2 BookLocation = "branch2"
)

func (l BookLocation) Valid() bool {
	switch l {
	case LocationMain, LocationBranch1, LocationBranch2:
		return true
	}
	return false
}

// CirculationStatus tracks where a record sits in its lending lifecycle. New
// records always start out available; transitions happen only through explicit
// circulation operations.
type CirculationStatus string

const (
	StatusAvailable  CirculationStatus = "available"
	StatusCheckedOut CirculationStatus = "checked_out"
	StatusReserved   CirculationStatus = "reserved"
	StatusOnHold     CirculationStatus = "on_hold"
	StatusDamaged    CirculationStatus = "damaged"
	StatusLost       CirculationStatus = "lost"
	StatusArchived   CirculationStatus = "archived"
)

func (s CirculationStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusCheckedOut, StatusReserved, StatusOnHold, StatusDamaged, StatusLost, StatusArchived:
		return true
	}
	return false
}

type UserCategory string

const (
	CategoryStudent UserCategory = "student"
	CategoryAdmin   UserCategory = "admin"
	CategoryStaff   UserCategory = "staff"
	CategoryParent  UserCategory = "parent"
)

func (c UserCategory) Valid() bool {
	switch c {
	case CategoryStudent, CategoryAdmin, CategoryStaff, CategoryParent:
		return true
	}
	return false
}

type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "active"
	MembershipInactive MembershipStatus = "inactive"
)
