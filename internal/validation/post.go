package validation

const (
	postTitleMin = 10
	postTitleMax = 300
)

// PostPayload is the subset of a post or comment submission that is checked.
type PostPayload struct {
	Title string
	Text  string
}

// ValidatePost checks a post (or comment) submission. A missing title reports
// the required message even when the length rule also fails.
func ValidatePost(p PostPayload) Result {
	errs := map[string]string{}

	title := normalize(p.Title)
	text := normalize(p.Text)

	if !isLength(title, postTitleMin, postTitleMax) {
		errs["title"] = "Post title must be between 10 and 300 characters"
	}
	if isEmpty(title) {
		errs["title"] = "Title field is required"
	}
	if isEmpty(text) {
		errs["text"] = "Text field is required"
	}

	return newResult(errs)
}
