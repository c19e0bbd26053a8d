// Package seqfile loads a seq.Database from the plain-text grammar that
// mirrors the output format: one sequence per line, items space-separated,
// "-1" terminates an itemset. It is ambient tooling for the CLI and
// integration tests, not part of the mining core itself.
package seqfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/grailbio/bide/seq"
)

// Load parses r's contents into a Database. Blank lines are skipped; input
// with no sequences at all is an error.
func Load(r io.Reader) (*seq.Database, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var raw [][]seq.Itemset
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		itemsets, err := parseLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "seqfile: line %d", lineNo)
		}
		raw = append(raw, itemsets)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "seqfile: reading input")
	}
	if len(raw) == 0 {
		return nil, errors.New("seqfile: input contains no sequences")
	}
	db, err := seq.NewDatabase(raw)
	if err != nil {
		return nil, errors.Wrap(err, "seqfile: building database")
	}
	return db, nil
}

// parseLine splits a single sequence line into its itemsets, each terminated
// by the literal token "-1".
func parseLine(line string) ([]seq.Itemset, error) {
	fields := strings.Fields(line)
	var itemsets []seq.Itemset
	var cur []seq.Item
	for _, tok := range fields {
		if tok == "-1" {
			is, err := seq.NewItemset(cur)
			if err != nil {
				return nil, err
			}
			itemsets = append(itemsets, is)
			cur = nil
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, errors.Wrapf(err, "seqfile: parsing item %q", tok)
		}
		cur = append(cur, seq.Item(v))
	}
	if len(cur) > 0 {
		return nil, errors.Errorf("seqfile: trailing items %v without a terminating -1", cur)
	}
	return itemsets, nil
}
