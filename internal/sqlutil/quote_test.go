package sqlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`samples`", QuoteIdentifier("samples"))
	assert.Equal(t, "`my``table`", QuoteIdentifier("my`table"))
}

func TestQuoteIdentifierSafe(t *testing.T) {
	quoted, err := QuoteIdentifierSafe("row_docs")
	assert.NoError(t, err)
	assert.Equal(t, "`row_docs`", quoted)

	for _, bad := range []string{"", "a b", "a-b", "a;b", "a`b", "名前"} {
		_, err := QuoteIdentifierSafe(bad)
		assert.Error(t, err, bad)
	}
}
