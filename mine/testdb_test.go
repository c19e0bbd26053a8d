package mine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grailbio/bide/output"
	"github.com/grailbio/bide/seq"
)

// buildDB parses a compact textual grammar for tests: sequences separated by
// ";", itemsets within a sequence separated by ")(", items space-separated.
// e.g. "(1)(2);(1)(3);(1)" is three sequences.
func buildDB(t *testing.T, spec string) *seq.Database {
	t.Helper()
	var raw [][]seq.Itemset
	for _, seqSpec := range splitTop(spec, ';') {
		var itemsets []seq.Itemset
		for _, isSpec := range splitItemsets(seqSpec) {
			items := parseItems(t, isSpec)
			is, err := seq.NewItemset(items)
			require.NoError(t, err)
			itemsets = append(itemsets, is)
		}
		raw = append(raw, itemsets)
	}
	db, err := seq.NewDatabase(raw)
	require.NoError(t, err)
	return db
}

func splitTop(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func splitItemsets(seqSpec string) []string {
	var out []string
	cur := ""
	for i := 0; i < len(seqSpec); i++ {
		switch seqSpec[i] {
		case '(':
		case ')':
			out = append(out, cur)
			cur = ""
		default:
			cur += string(seqSpec[i])
		}
	}
	return out
}

func parseItems(t *testing.T, s string) []seq.Item {
	t.Helper()
	var items []seq.Item
	n := 0
	has := false
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' {
			n = n*10 + int(s[i]-'0')
			has = true
			continue
		}
		if has {
			items = append(items, seq.Item(n))
		}
		n, has = 0, false
	}
	return items
}

// collectLines runs the driver to completion and returns the emitted
// patterns rendered as output.FormatLine strings, for easy comparison
// against expected output.
func collectLines(t *testing.T, db *seq.Database, minsup int) []string {
	t.Helper()
	mc := output.NewMemoryCollector()
	ctx := context.Background()
	_, err := Run(ctx, db, minsup, Opts{Sink: mc})
	require.NoError(t, err)
	var lines []string
	for _, p := range mc.All() {
		lines = append(lines, output.FormatLine(p))
	}
	return lines
}
