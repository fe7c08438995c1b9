// Package sqlutil provides small SQL helpers for gomissing.
package sqlutil

import (
	"fmt"
	"regexp"
	"strings"
)

// QuoteIdentifier quotes a MySQL identifier (table or column name) with
// backticks, doubling any embedded backtick.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Identifiers are restricted to alphanumerics and underscore; config
// values end up interpolated into queries, so anything else is refused.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// QuoteIdentifierSafe validates and quotes an identifier coming from
// configuration.
func QuoteIdentifierSafe(name string) (string, error) {
	if !validIdentifier.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q: must contain only alphanumeric characters and underscores", name)
	}
	return QuoteIdentifier(name), nil
}
