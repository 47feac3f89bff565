package formschema

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Default payload fields read by each requirement when FieldName is empty.
const (
	defaultFollowersField  = "followers_count"
	defaultAccountAgeField = "account_created_date"
	defaultContentField    = "content_description"
	defaultEngagementField = "engagement_rate"
)

func requirementField(req Requirement, fallback string) string {
	if req.FieldName != "" {
		return req.FieldName
	}
	return fallback
}

func checkMinFollowers(data Payload, req Requirement, _ time.Time) []string {
	count, ok := leadingInt(data[requirementField(req, defaultFollowersField)])
	if !ok || float64(count) < req.Threshold {
		return []string{fmt.Sprintf("follower count must be at least %s", formatNumber(req.Threshold))}
	}
	return nil
}

// checkAccountAge treats Threshold as whole months. An unparseable creation
// date fails the requirement.
func checkAccountAge(data Payload, req Requirement, now time.Time) []string {
	message := fmt.Sprintf("account must be at least %s months old", formatNumber(req.Threshold))
	created, ok := parseDate(data[requirementField(req, defaultAccountAgeField)])
	if !ok {
		return []string{message}
	}
	latest := now.UTC().AddDate(0, -int(req.Threshold), 0)
	if created.After(latest) {
		return []string{message}
	}
	return nil
}

func checkContentQuality(data Payload, req Requirement, _ time.Time) []string {
	content, _ := data[requirementField(req, defaultContentField)].(string)
	if float64(utf8.RuneCountInString(content)) < req.Threshold {
		return []string{fmt.Sprintf("content description must be at least %s characters", formatNumber(req.Threshold))}
	}
	return nil
}

// checkEngagementRate reads a percentage; "4.5%" and 4.5 are equivalent.
func checkEngagementRate(data Payload, req Requirement, _ time.Time) []string {
	rate, ok := leadingFloat(data[requirementField(req, defaultEngagementField)])
	if !ok || rate < req.Threshold {
		return []string{fmt.Sprintf("engagement rate must be at least %s%%", formatNumber(req.Threshold))}
	}
	return nil
}
