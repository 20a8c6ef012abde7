package jira

import (
	"context"
	"net/url"
	"strconv"

	"jira_tracker/internal/model"
	"jira_tracker/internal/tracker"
)

// searchIterator pages through /search/jql results one pull at a time.
// It holds the cursor (next offset, remaining quota) and fetches the
// next page only when the buffered one is exhausted, so network I/O is
// interleaved with consumption. Single-pass and not restartable.
type searchIterator struct {
	ctx    context.Context
	client *Client
	jql    string

	pageSize   int
	maxResults int

	page    []model.JiraIssue
	pageIdx int
	startAt int
	total   int
	fetched bool

	yielded int
	current tracker.Issue
	err     error
	done    bool
}

var _ tracker.IssueIterator = (*searchIterator)(nil)

// Next advances the iterator, fetching the next page when needed. It
// stops once maxResults issues were yielded, a page comes back empty,
// or the offset has passed the remote-reported total.
func (it *searchIterator) Next() bool {
	if it.done {
		return false
	}
	if it.yielded >= it.maxResults {
		it.done = true
		return false
	}
	if it.pageIdx >= len(it.page) {
		if it.fetched && it.startAt >= it.total {
			it.done = true
			return false
		}
		if !it.fetchPage() {
			it.done = true
			return false
		}
	}

	raw := it.page[it.pageIdx]
	it.pageIdx++
	it.current = NewIssue(raw.Key, raw.Fields)
	it.yielded++
	return true
}

// fetchPage requests the next page and reports whether it holds any
// issues.
func (it *searchIterator) fetchPage() bool {
	params := url.Values{}
	params.Set("jql", it.jql)
	params.Set("startAt", strconv.Itoa(it.startAt))
	params.Set("maxResults", strconv.Itoa(it.pageSize))
	params.Set("fields", "*all")

	var resp model.JiraSearchResponse
	if err := it.client.get(it.ctx, apiPrefix, "/search/jql", params, &resp); err != nil {
		it.err = err
		return false
	}
	if len(resp.Issues) == 0 {
		return false
	}

	it.page = resp.Issues
	it.pageIdx = 0
	it.startAt += len(resp.Issues)
	it.total = resp.Total
	it.fetched = true
	return true
}

// Issue returns the issue produced by the last successful Next.
func (it *searchIterator) Issue() tracker.Issue {
	return it.current
}

// Err returns the first fetch error, if any.
func (it *searchIterator) Err() error {
	return it.err
}
