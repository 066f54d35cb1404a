package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetTextSeparatesCells(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<table><tr><td>Noe 1</td><td>Mon 02/09</td><td>9:00 PM</td></tr></table>`,
	))
	require.NoError(t, err)

	require.Equal(t, "Noe 1 Mon 02/09 9:00 PM", CleanText(GetText(doc)))
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b c", CleanText("  a \n\t b  c \x00"))
	require.Equal(t, "", CleanText(" \n "))
	require.Equal(t, "9:00 PM", CleanText("9:00\u00a0PM"))
	require.Equal(t, "Noe 1 Mon 02/09", CleanText("\u00a0Noe\u00a01\u2003Mon\u00a0\u00a002/09\u00a0"))
}

func TestHasClass(t *testing.T) {
	require.True(t, HasClass("slot reserved", "reserved"))
	require.False(t, HasClass("slot unreserved", "reserved"))
	require.False(t, HasClass("", "gray"))
}
