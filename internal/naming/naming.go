package naming

import (
	"regexp"
	"strings"
)

var (
	// An uppercase letter starting a lowercase run ends the previous word
	// ("HTTPServer" -> "HTTP_Server").
	wordStart = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	// A lowercase letter or digit followed by an uppercase letter is a word
	// boundary ("UserPool" -> "User_Pool").
	caseBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ToSnake converts a canonical title-case name to snake_case.
func ToSnake(canonical string) string {
	s := wordStart.ReplaceAllString(canonical, "${1}_${2}")
	s = caseBoundary.ReplaceAllString(s, "${1}_${2}")

	return strings.ToLower(s)
}

// ToKebab converts a snake_case name to kebab-case.
func ToKebab(snake string) string {
	return strings.ReplaceAll(snake, "_", "-")
}

// ToUpperSnake converts a snake_case name to UPPER_SNAKE_CASE.
func ToUpperSnake(snake string) string {
	return strings.ToUpper(snake)
}

// Forms holds every casing variant of one canonical name.
type Forms struct {
	Camel      string // UserPoolId
	Snake      string // user_pool_id
	Kebab      string // user-pool-id
	UpperSnake string // USER_POOL_ID
}

// NewForms derives all casing variants of canonical.
func NewForms(canonical string) Forms {
	snake := ToSnake(canonical)

	return Forms{
		Camel:      canonical,
		Snake:      snake,
		Kebab:      ToKebab(snake),
		UpperSnake: ToUpperSnake(snake),
	}
}

// Cache memoizes Forms for the duration of one generation pass.
// The zero value is ready to use. A Cache is not safe for concurrent use.
type Cache struct {
	forms map[string]Forms
}

// Get returns the forms of canonical, computing them on first use.
func (c *Cache) Get(canonical string) Forms {
	if f, ok := c.forms[canonical]; ok {
		return f
	}

	if c.forms == nil {
		c.forms = make(map[string]Forms)
	}

	f := NewForms(canonical)
	c.forms[canonical] = f

	return f
}

// Reset drops every cached entry.
func (c *Cache) Reset() {
	c.forms = nil
}

// Len returns the number of cached names.
func (c *Cache) Len() int {
	return len(c.forms)
}
