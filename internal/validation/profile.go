package validation

// ProfilePayload is a profile submission. Skills arrive as the raw
// comma separated string the client typed.
type ProfilePayload struct {
	Handle    string
	Status    string
	Skills    string
	Website   string
	Youtube   string
	Facebook  string
	Instagram string
	Twitter   string
	Linkedin  string
}

// ValidateProfile checks required profile fields and any social links that were provided.
func ValidateProfile(p ProfilePayload) Result {
	errs := map[string]string{}

	handle := normalize(p.Handle)
	status := normalize(p.Status)
	skills := normalize(p.Skills)

	if !isLength(handle, 2, 50) {
		errs["handle"] = "Handle must be between 2 and 50 characters"
	}
	if isEmpty(handle) {
		errs["handle"] = "Profile Handle is required"
	}
	if isEmpty(status) {
		errs["status"] = "Profile Status is required"
	}
	if isEmpty(skills) {
		errs["skills"] = "Profile Skills is required"
	}

	links := []struct {
		field, value, message string
	}{
		{"website", p.Website, "Not a valid Website Url"},
		{"youtube", p.Youtube, "Not a valid Url"},
		{"facebook", p.Facebook, "Not a valid Url"},
		{"instagram", p.Instagram, "Not a valid Url"},
		{"twitter", p.Twitter, "Not a valid Url"},
		{"linkedin", p.Linkedin, "Not a valid Url"},
	}
	for _, l := range links {
		if v := normalize(l.value); !isEmpty(v) && !isURL(v) {
			errs[l.field] = l.message
		}
	}

	return newResult(errs)
}
