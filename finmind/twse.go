package finmind

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// The TWSE open-data platform publishes the listed-company directory
// as a JSON array of objects keyed by Chinese column names.
const directoryURL = "https://openapi.twse.com.tw/v1/opendata/t187ap03_L"

// DirectoryEntry is one listed company from the TWSE directory.
type DirectoryEntry struct {
	SecurityID string
	Name       string
}

// StockDirectory downloads the TWSE listed-company directory and
// returns its entries sorted by security id. It is independent of the
// FinMind API (and needs no token); the directory backs offline id and
// name searches.
func StockDirectory() ([]DirectoryEntry, error) {
	return stockDirectory(newDailyCachingClient(), directoryURL)
}

func stockDirectory(client *http.Client, addr string) ([]DirectoryEntry, error) {
	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch TWSE directory: %w", err)
	}

	// Pick the two columns out of the raw rows by path rather than
	// declaring a struct full of Chinese field tags.
	ids, err := jsonlist(jobj, `$[*]["公司代號"]`)
	if err != nil {
		return nil, err
	}
	names, err := jsonlist(jobj, `$[*]["公司簡稱"]`)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(names) {
		return nil, fmt.Errorf("malformed TWSE directory: %d ids but %d names", len(ids), len(names))
	}

	entries := make([]DirectoryEntry, 0, len(ids))
	for i := range ids {
		entries = append(entries, DirectoryEntry{SecurityID: ids[i], Name: names[i]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].SecurityID < entries[j].SecurityID })
	return entries, nil
}

// jsonlist evaluates a jsonpath expression expected to yield a list of
// strings.
func jsonlist(jobj any, path string) ([]string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing TWSE directory: %q %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("error parsing TWSE directory: %q is not a list", path)
	}
	values := make([]string, 0, len(jlist))
	for _, v := range jlist {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("error parsing TWSE directory: %q holds a non-string %v", path, v)
		}
		values = append(values, strings.TrimSpace(s))
	}
	return values, nil
}

// SearchDirectory filters directory entries whose id or name contains
// the query (case-insensitive on the id side).
func SearchDirectory(entries []DirectoryEntry, query string) []DirectoryEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	var matches []DirectoryEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.SecurityID), query) || strings.Contains(e.Name, query) {
			matches = append(matches, e)
		}
	}
	return matches
}
