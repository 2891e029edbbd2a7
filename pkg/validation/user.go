package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/libooktrac/libooktrac/pkg/models"
	"github.com/libooktrac/libooktrac/pkg/normalize"
)

const minimumAge = 13

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User validates and normalizes a user draft against the given "today".
// Names are title-cased, the phone number is canonicalized, and the username
// is lowercased in place. The password is checked only when present;
// requirePassword makes an empty password itself a violation (creation), while
// updates leave it empty to mean "unchanged".
func User(draft *models.UserDraft, today time.Time, requirePassword bool) List {
	var list List

	checkLength(&list, "first_name", draft.FirstName, 1, 50)
	checkLength(&list, "last_name", draft.LastName, 1, 50)

	if phone, err := normalize.Phone(draft.PhoneNumber); err != nil {
		list.add(CodeFormat, "phone_number", err.Error())
	} else {
		draft.PhoneNumber = phone
	}

	list = append(list, dateOfBirth(draft.DateOfBirth, today)...)

	checkLength(&list, "address", draft.Address, 5, 200)

	if !emailRE.MatchString(draft.Email) {
		list.add(CodeFormat, "email", fmt.Sprintf("%q is not a valid email address", draft.Email))
	}

	if username, err := normalize.Username(draft.Username); err != nil {
		list.add(CodeFormat, "username", err.Error())
	} else {
		draft.Username = username
	}
	checkLength(&list, "username", draft.Username, 3, 30)

	switch {
	case draft.Password != "":
		list = append(list, Password(draft.Password)...)
	case requirePassword:
		list.add(CodeValidation, "password", "password is required")
	}

	if !draft.Category.Valid() {
		list.add(CodeValidation, "user_category", fmt.Sprintf("%q is not a valid user category", draft.Category))
	}

	if len(list) == 0 {
		draft.FirstName = normalize.TitleCase(draft.FirstName)
		draft.LastName = normalize.TitleCase(draft.LastName)
	}

	return list
}

// dateOfBirth requires a strictly past date yielding an age of at least 13.
func dateOfBirth(dob, today time.Time) List {
	var list List

	if !dob.Before(today) {
		list.add(CodeValidation, "date_of_birth", "Date of birth must be in the past")
		return list
	}

	cutoff := today.AddDate(-minimumAge, 0, 0)
	if dob.After(cutoff) {
		list.add(CodeValidation, "date_of_birth", fmt.Sprintf("User must be at least %d years old", minimumAge))
	}

	return list
}
