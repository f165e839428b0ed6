package validation

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"vidquiz/internal/domain"
	"vidquiz/internal/dto"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 150
	minPasswordLength = 8
	maxTitleLength    = 255
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.@+-]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateRegisterRequest checks the registration payload. All problems are
// collected and returned together so the client can fix them in one pass.
func ValidateRegisterRequest(req *dto.RegisterRequest) error {
	var errs domain.ValidationErrors

	username := strings.TrimSpace(req.Username)
	if username == "" {
		errs = append(errs, domain.NewMissingFieldError("username"))
	} else if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		errs = append(errs, domain.NewOutOfRangeError("username", len(username), minUsernameLength, maxUsernameLength))
	} else if !usernameRegex.MatchString(username) {
		errs = append(errs, domain.NewInvalidFormatError("username", "may only contain letters, digits and @.+-_"))
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		errs = append(errs, domain.NewMissingFieldError("email"))
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, domain.NewInvalidFormatError("email", "must be a valid email address"))
	}

	if req.Password == "" {
		errs = append(errs, domain.NewMissingFieldError("password"))
	} else if verr, ok := validatePasswordStrength(req.Password); !ok {
		errs = append(errs, verr)
	}

	if req.Password != req.ConfirmedPassword {
		errs = append(errs, domain.NewInvalidFormatError("confirmed_password", "passwords do not match"))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePasswordStrength(password string) (domain.ValidationError, bool) {
	if len(password) < minPasswordLength {
		return domain.NewInvalidFormatError("password", "must be at least 8 characters long"), false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return domain.NewInvalidFormatError("password", "must contain at least one letter and one digit"), false
	}
	return domain.ValidationError{}, true
}

// ValidateLoginRequest checks that credentials are present.
func ValidateLoginRequest(req *dto.LoginRequest) error {
	var errs domain.ValidationErrors
	if strings.TrimSpace(req.Username) == "" {
		errs = append(errs, domain.NewMissingFieldError("username"))
	}
	if req.Password == "" {
		errs = append(errs, domain.NewMissingFieldError("password"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateCreateQuizRequest checks that the submitted URL is an absolute
// http(s) URL. Reachability is not checked here; the fetch stage reports
// that separately.
func ValidateCreateQuizRequest(req *dto.CreateQuizRequest) error {
	var errs domain.ValidationErrors

	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		errs = append(errs, domain.NewMissingFieldError("url"))
		return errs
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		errs = append(errs, domain.NewInvalidFormatError("url", "must be a valid URL"))
		return errs
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errs = append(errs, domain.NewInvalidFormatError("url", "scheme must be http or https"))
	}
	if parsed.Host == "" {
		errs = append(errs, domain.NewInvalidFormatError("url", "must include a host"))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateUpdateQuizRequest checks a partial update. Absent fields are
// allowed; present fields must be usable as stored values.
func ValidateUpdateQuizRequest(req *dto.UpdateQuizRequest) error {
	var errs domain.ValidationErrors

	if req.Title == nil && req.Description == nil {
		errs = append(errs, domain.NewMissingFieldError("title"))
		return errs
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			errs = append(errs, domain.NewInvalidFormatError("title", "must not be empty"))
		} else if len(title) > maxTitleLength {
			errs = append(errs, domain.NewOutOfRangeError("title", len(title), 1, maxTitleLength))
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
