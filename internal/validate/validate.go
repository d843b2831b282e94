// Package validate holds the form validators shared by signup, login and
// profile editing. Each validator returns nil for valid input or an error
// whose message is meant to be shown next to the field.
package validate

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	gmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

// Minimum lengths, in characters.
const (
	MinPasswordLength = 6
	MinNameLength     = 2
)

// Email accepts only @gmail.com addresses.
func Email(email string) error {
	if email == "" {
		return errors.New("Email is required")
	}
	if !gmailPattern.MatchString(email) {
		return errors.New("Email must be a valid @gmail.com address")
	}
	return nil
}

// Password requires at least MinPasswordLength characters.
func Password(password string) error {
	if password == "" {
		return errors.New("Password is required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return errors.New("Password must be at least 6 characters")
	}
	return nil
}

// Name requires at least MinNameLength characters.
func Name(name string) error {
	if name == "" {
		return errors.New("Name is required")
	}
	if utf8.RuneCountInString(name) < MinNameLength {
		return errors.New("Name must be at least 2 characters")
	}
	return nil
}

// Phone accepts E.164-like numbers: optional "+", 2 to 15 digits, no
// leading zero.
func Phone(phone string) error {
	if phone == "" {
		return errors.New("Contact number is required")
	}
	if !phonePattern.MatchString(phone) {
		return errors.New("Please enter a valid phone number")
	}
	return nil
}

// Required rejects values that are empty after trimming whitespace.
func Required(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// Errors maps a field name to its validation message.
type Errors map[string]string

// Error lists the messages in field order.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+e[f])
	}
	return strings.Join(msgs, "; ")
}

// add records err under field when err is non-nil.
func (e Errors) add(field string, err error) {
	if err != nil {
		e[field] = err.Error()
	}
}

// orNil returns nil for an empty set so callers can compare against nil.
func (e Errors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// SignupInput carries the signup form fields.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	ContactNumber   string
	Address         string
}

// Signup validates every signup field and returns Errors keyed by field
// name, or nil.
func Signup(in SignupInput) error {
	errs := Errors{}
	errs.add("name", Name(in.Name))
	errs.add("email", Email(in.Email))
	errs.add("password", Password(in.Password))
	if in.ConfirmPassword != in.Password {
		errs["confirmPassword"] = "Passwords do not match"
	}
	errs.add("contactNumber", Phone(in.ContactNumber))
	errs.add("address", Required(in.Address, "Address"))
	return errs.orNil()
}

// Login validates the login form.
func Login(email, password string) error {
	errs := Errors{}
	errs.add("email", Email(email))
	errs.add("password", Required(password, "Password"))
	return errs.orNil()
}
