package formschema

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
)

// platformHosts maps a social platform to the registrable domain its links
// must live under. Platforms outside this table are not checked.
var platformHosts = map[string]string{
	"weibo":       "weibo.com",
	"douyin":      "douyin.com",
	"xiaohongshu": "xiaohongshu.com",
	"bilibili":    "bilibili.com",
}

// ValidateField checks one present, non-blank value against its FieldSpec and
// returns every violation. Callers handle required and blank values.
func ValidateField(value any, spec FieldSpec) []string {
	label := spec.DisplayName()
	rules := spec.Constraints
	var errs []string

	switch spec.Kind {
	case FieldText, FieldTextarea:
		text, ok := value.(string)
		if !ok {
			return []string{fmt.Sprintf("%s must be text", label)}
		}
		length := utf8.RuneCountInString(text)
		if rules.MinLength > 0 && length < rules.MinLength {
			errs = append(errs, fmt.Sprintf("%s must be at least %d characters", label, rules.MinLength))
		}
		if rules.MaxLength > 0 && length > rules.MaxLength {
			errs = append(errs, fmt.Sprintf("%s must be at most %d characters", label, rules.MaxLength))
		}
		if rules.Pattern != "" {
			pattern, err := regexp.Compile(rules.Pattern)
			if err == nil && !pattern.MatchString(text) {
				errs = append(errs, fmt.Sprintf("%s has an invalid format", label))
			}
		}

	case FieldNumber:
		number, ok := toNumber(value)
		if !ok {
			return []string{fmt.Sprintf("%s must be a number", label)}
		}
		if rules.Min != nil && number < *rules.Min {
			errs = append(errs, fmt.Sprintf("%s must be at least %s", label, formatNumber(*rules.Min)))
		}
		if rules.Max != nil && number > *rules.Max {
			errs = append(errs, fmt.Sprintf("%s must be at most %s", label, formatNumber(*rules.Max)))
		}

	case FieldEmail:
		text, ok := value.(string)
		if !ok || !emailPattern.MatchString(text) {
			errs = append(errs, fmt.Sprintf("%s must be a valid email address", label))
		}

	case FieldPhone:
		text, ok := value.(string)
		if !ok || !phonePattern.MatchString(text) {
			errs = append(errs, fmt.Sprintf("%s must be a valid mobile number", label))
		}

	case FieldURL:
		text, ok := value.(string)
		if !ok || !isAbsoluteURL(text) {
			errs = append(errs, fmt.Sprintf("%s must be a valid URL", label))
		}

	case FieldSelect, FieldRadio:
		if len(rules.Options) > 0 && !hasOption(rules.Options, value) {
			errs = append(errs, fmt.Sprintf("%s has an invalid option", label))
		}

	case FieldCheckbox:
		items, ok := asList(value)
		if !ok {
			return []string{fmt.Sprintf("%s must be a list of options", label)}
		}
		if len(rules.Options) > 0 {
			for _, item := range items {
				if !hasOption(rules.Options, item) {
					errs = append(errs, fmt.Sprintf("%s contains an invalid option", label))
				}
			}
		}

	case FieldDate:
		date, ok := parseDate(value)
		if !ok {
			return []string{fmt.Sprintf("%s must be a valid date", label)}
		}
		if rules.MinDate != "" {
			if bound, ok := parseDate(rules.MinDate); ok && date.Before(bound) {
				errs = append(errs, fmt.Sprintf("%s must not be earlier than %s", label, rules.MinDate))
			}
		}
		if rules.MaxDate != "" {
			if bound, ok := parseDate(rules.MaxDate); ok && date.After(bound) {
				errs = append(errs, fmt.Sprintf("%s must not be later than %s", label, rules.MaxDate))
			}
		}

	case FieldFile, FieldScreenshot:
		items, ok := asList(value)
		if !ok {
			if spec.Kind == FieldScreenshot {
				return []string{fmt.Sprintf("%s requires at least one screenshot", label)}
			}
			return []string{fmt.Sprintf("%s must be a list of files", label)}
		}
		if spec.Kind == FieldScreenshot && len(items) == 0 {
			errs = append(errs, fmt.Sprintf("%s requires at least one screenshot", label))
		}
		if rules.MaxFiles > 0 && len(items) > rules.MaxFiles {
			errs = append(errs, fmt.Sprintf("%s accepts at most %d files", label, rules.MaxFiles))
		}
		if rules.MinFiles > 0 && len(items) < rules.MinFiles {
			errs = append(errs, fmt.Sprintf("%s requires at least %d files", label, rules.MinFiles))
		}

	case FieldSocialMediaLink:
		domain, known := platformHosts[strings.ToLower(rules.Platform)]
		if !known {
			return nil
		}
		text, ok := value.(string)
		if !ok || !hostUnder(text, domain) {
			errs = append(errs, fmt.Sprintf("%s must be a valid %s link", label, rules.Platform))
		}
	}

	return errs
}

func hasOption(options []Option, value any) bool {
	text, ok := value.(string)
	if !ok {
		return false
	}
	for _, option := range options {
		if option.Value == text {
			return true
		}
	}
	return false
}

func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Scheme == "" {
		return false
	}
	return parsed.Host != "" || parsed.Opaque != ""
}

func hostUnder(raw string, domain string) bool {
	candidate := strings.TrimSpace(raw)
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	return host == domain || strings.HasSuffix(host, "."+domain)
}
