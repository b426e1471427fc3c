// tasks.go implements the asynchronous operations: scan and search run in
// background goroutines and report through per-operation task bridges that
// the CLI and MCP server poll.

package document

import (
	"context"

	"github.com/jpl-au/docdex/internal/search"
	"github.com/jpl-au/docdex/internal/task"
)

// StartScan launches an incremental scan in the background. Returns
// task.ErrActive if a scan is already running.
func (s *Service) StartScan(ctx context.Context) error {
	if err := s.scanBridge.Start(); err != nil {
		return err
	}
	go s.scanner.Run(ctx, s.scanBridge)
	return nil
}

// PollScan drains pending scan messages.
func (s *Service) PollScan() []task.Message {
	return s.scanBridge.Poll()
}

// StartSearch launches a search in the background. Returns task.ErrActive
// while a previous search is still unfinished.
func (s *Service) StartSearch(ctx context.Context, query string) error {
	if err := s.searchBridge.Start(); err != nil {
		return err
	}
	go s.engine.Run(ctx, s.searchBridge, query)
	return nil
}

// PollSearch drains pending search messages.
func (s *Service) PollSearch() []task.Message {
	return s.searchBridge.Poll()
}

// Search runs a query synchronously.
func (s *Service) Search(ctx context.Context, query string) (*search.Results, error) {
	return s.engine.Search(ctx, query)
}
