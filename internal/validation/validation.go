// Package validation holds the request shapes accepted by the API and the
// pure functions that check them. Every check runs in a fixed order and the
// first failure wins, so error messages are reproducible.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result is the outcome of a validator.
type Result struct {
	IsValid      bool
	ErrorMessage string
}

// Ok is the passing result.
func Ok() Result { return Result{IsValid: true} }

// Fail returns a failing result with msg.
func Fail(msg string) Result { return Result{ErrorMessage: msg} }

// TypeRequest is the body of POST/PUT /api/types.
type TypeRequest struct {
	Name string `json:"name"`
}

// Normalize trims the name; bounds are checked on the trimmed value.
func (t TypeRequest) Normalize() TypeRequest {
	t.Name = strings.TrimSpace(t.Name)
	return t
}

// BlogRequest is the body of POST/PUT /api/blogs.
type BlogRequest struct {
	TypeID  string `json:"typeId"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
}

// Normalize trims the title.
func (b BlogRequest) Normalize() BlogRequest {
	b.Title = strings.TrimSpace(b.Title)
	return b
}

// UserRequest is the body of POST /api/users.
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var validate = validator.New()

// IsObjectID reports whether id is a well-formed identifier.
func IsObjectID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// ValidateID checks an identifier of the named entity ("type", "blog", ...).
func ValidateID(entity, id string) Result {
	if id == "" {
		return Fail("No Id sent.")
	}
	if !IsObjectID(id) {
		return Fail(fmt.Sprintf("Invalid %s Id %s.", entity, id))
	}
	return Ok()
}

func ValidateTypeID(id string) Result { return ValidateID("type", id) }

func ValidateBlogID(id string) Result { return ValidateID("blog", id) }

// ValidateType checks a type body.
func ValidateType(t TypeRequest) Result {
	return checkLength("name", t.Name, 5, 50)
}

// ValidateTypeUpdate checks the id of the type being replaced, then the body.
func ValidateTypeUpdate(id string, t TypeRequest) Result {
	if r := ValidateTypeID(id); !r.IsValid {
		return r
	}
	return ValidateType(t)
}

// ValidateBlog checks a blog body: typeId, title, content, author.
func ValidateBlog(b BlogRequest) Result {
	if b.TypeID == "" {
		return Fail("Parameter typeId is required.")
	}
	if !IsObjectID(b.TypeID) {
		return Fail(fmt.Sprintf("Invalid type Id %s.", b.TypeID))
	}
	return first(
		func() Result { return checkLength("title", b.Title, 5, 255) },
		func() Result { return checkLength("content", b.Content, 5, 255) },
		func() Result { return checkLength("author", b.Author, 5, 50) },
	)
}

// ValidateUser checks a registration body: name, email, password.
func ValidateUser(u UserRequest) Result {
	return first(
		func() Result { return checkLength("name", u.Name, 5, 50) },
		func() Result { return checkEmail(u.Email) },
		func() Result { return checkLength("password", u.Password, 5, 255) },
	)
}

// ValidateLogin checks a login body: email, password.
func ValidateLogin(l LoginRequest) Result {
	return first(
		func() Result { return checkEmail(l.Email) },
		func() Result { return checkLength("password", l.Password, 5, 255) },
	)
}

func first(checks ...func() Result) Result {
	for _, check := range checks {
		if r := check(); !r.IsValid {
			return r
		}
	}
	return Ok()
}

func checkLength(field, value string, min, max int) Result {
	if value == "" {
		return Fail(fmt.Sprintf("Parameter %s is required.", field))
	}
	if n := utf8.RuneCountInString(value); n < min || n > max {
		return Fail(fmt.Sprintf("Invalid parameter %s (Must be at least %d and maximum %d characters length).", field, min, max))
	}
	return Ok()
}

func checkEmail(email string) Result {
	if r := checkLength("email", email, 5, 255); !r.IsValid {
		return r
	}
	if err := validate.Var(email, "email"); err != nil {
		return Fail(fmt.Sprintf("Invalid parameter email (%s is not a valid email address).", email))
	}
	return Ok()
}
