// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sahilm/fuzzy"
)

// Match is one entry found by Search.
type Match struct {
	Template   string   `json:"template"`
	Category   string   `json:"category"`
	CategoryID string   `json:"category_id"`
	Entry      string   `json:"entry"`
	EntryID    string   `json:"entry_id"`
	Properties []string `json:"properties"`
	Score      int      `json:"score"`
}

type entryRow struct {
	Template   string `db:"template"`
	CategoryID string `db:"category_id"`
	Category   string `db:"category"`
	EntryID    string `db:"entry_id"`
	Entry      string `db:"entry"`
	Properties string `db:"properties"`
}

// Search fuzzy-matches query against "entry category" for every cataloged
// entry and returns the best matches, highest score first. An empty query
// returns nothing.
func (s *Store) Search(ctx context.Context, query string) ([]Match, error) {
	if query == "" {
		return nil, nil
	}

	sqlStr, args, err := s.sb.
		Select("t.name AS template", "e.category_id", "e.category", "e.entry_id", "e.entry", "e.properties").
		From("entries e").
		Join("templates t ON t.id = e.template_id").
		OrderBy("t.name", "e.position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	var rows []entryRow
	if err := s.db.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	searchStrings := make([]string, len(rows))
	for i, r := range rows {
		searchStrings[i] = r.Entry + " " + r.Category
	}

	found := fuzzy.Find(query, searchStrings)
	if len(found) > s.maxResults {
		found = found[:s.maxResults]
	}

	matches := make([]Match, 0, len(found))
	for _, f := range found {
		r := rows[f.Index]
		var props []string
		if err := json.Unmarshal([]byte(r.Properties), &props); err != nil {
			return nil, fmt.Errorf("decoding properties for %s: %w", r.EntryID, err)
		}
		matches = append(matches, Match{
			Template:   r.Template,
			Category:   r.Category,
			CategoryID: r.CategoryID,
			Entry:      r.Entry,
			EntryID:    r.EntryID,
			Properties: props,
			Score:      f.Score,
		})
	}
	return matches, nil
}
