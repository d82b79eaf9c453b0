// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Result is the outcome of validating a payload. IsValid is true iff Errors is empty.
type Result struct {
	Errors  map[string]string `json:"errors"`
	IsValid bool              `json:"isValid"`
}

func newResult(errs map[string]string) Result {
	return Result{Errors: errs, IsValid: len(errs) == 0}
}

// normalize treats absent and blank values identically.
func normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func isEmpty(s string) bool {
	return s == ""
}

// isLength counts characters, not bytes.
func isLength(s string, min, max int) bool {
	return validate.Var(s, fmt.Sprintf("min=%d,max=%d", min, max)) == nil
}

var urlSchemes = map[string]bool{"http": true, "https": true, "ftp": true}

// isURL accepts http, https and ftp links with or without a scheme. The host
// must be dotted and an explicit port must fit in 1..65535.
func isURL(s string) bool {
	candidate := strings.TrimSpace(s)
	if !strings.Contains(candidate, "://") {
		candidate = "http://" + candidate
	}
	if validate.Var(candidate, "url") != nil {
		return false
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	if !urlSchemes[strings.ToLower(parsed.Scheme)] {
		return false
	}
	if port := parsed.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return false
		}
	}
	host := parsed.Hostname()
	return strings.Contains(host, ".") && !strings.HasPrefix(host, ".") && !strings.HasSuffix(host, ".")
}
