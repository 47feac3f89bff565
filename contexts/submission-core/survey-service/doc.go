// Package surveyservice accepts survey submissions validated against the
// active survey form and serves them back to their owners.
package surveyservice
