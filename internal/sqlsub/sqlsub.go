// Package sqlsub performs batch table and column name substitution in
// SQL statement templates.
//
// Templates mark identifiers with {tab:<name>} and {col:<name>}
// placeholders; a Rewriter maps placeholder names to concrete
// identifiers and rewrites any number of statements with one replacer.
// Unknown placeholders pass through untouched so that a missing mapping
// stays visible (and greppable) in the emitted SQL instead of vanishing
// silently.
package sqlsub

import (
	"fmt"
	"strings"
)

// Rewriter substitutes table and column placeholders in SQL templates.
// Safe for concurrent use once constructed.
type Rewriter struct {
	replacer *strings.Replacer
}

// New builds a Rewriter from table and column mappings. Either map may be
// nil. Empty placeholder names are rejected; empty replacement values are
// not (erasing an identifier is the caller's own foot to aim at).
func New(tables, columns map[string]string) (*Rewriter, error) {
	pairs := make([]string, 0, 2*(len(tables)+len(columns)))
	for name, ident := range tables {
		if name == "" {
			return nil, fmt.Errorf("sqlsub: empty table placeholder name")
		}
		pairs = append(pairs, "{tab:"+name+"}", ident)
	}
	for name, ident := range columns {
		if name == "" {
			return nil, fmt.Errorf("sqlsub: empty column placeholder name")
		}
		pairs = append(pairs, "{col:"+name+"}", ident)
	}
	return &Rewriter{replacer: strings.NewReplacer(pairs...)}, nil
}

// Rewrite substitutes all known placeholders in one statement.
func (r *Rewriter) Rewrite(stmt string) string {
	return r.replacer.Replace(stmt)
}

// RewriteAll substitutes placeholders across a batch of statements,
// returning a new slice in the same order.
func (r *Rewriter) RewriteAll(stmts []string) []string {
	out := make([]string, len(stmts))
	for i, stmt := range stmts {
		out[i] = r.replacer.Replace(stmt)
	}
	return out
}
