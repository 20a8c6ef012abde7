package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jira_tracker/internal/tracker"
)

// registerTrackerTools registers all issue-tracker tools with the server
func registerTrackerTools(s *server.MCPServer, client tracker.IssueTrackerClient, newBoard func(boardID string) tracker.Board) error {
	getIssueTool := mcp.NewTool("get_issue",
		mcp.WithDescription("Get details of a specific issue"),
		mcp.WithString("issue_id",
			mcp.Required(),
			mcp.Description("Issue key (e.g., 'PROJ-123')"),
		),
	)

	searchIssuesTool := mcp.NewTool("search_issues",
		mcp.WithDescription("Search issues by optional filters, combined with AND logic"),
		mcp.WithString("title", mcp.Description("Fuzzy match on the issue title")),
		mcp.WithString("description", mcp.Description("Fuzzy match on the issue description")),
		mcp.WithString("status", mcp.Description("One of todo, in_progress, complete, cancelled")),
		mcp.WithString("assignee", mcp.Description("Assignee email or display name")),
		mcp.WithString("due_date", mcp.Description("Due date, e.g. '2026-12-31'")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of results to return")),
	)

	createIssueTool := mcp.NewTool("create_issue",
		mcp.WithDescription("Create a new issue"),
		mcp.WithString("title", mcp.Description("Issue title")),
		mcp.WithString("description", mcp.Description("Long-form description")),
		mcp.WithString("status", mcp.Description("Initial status, applied after creation")),
		mcp.WithString("assignee", mcp.Description("Assignee email")),
		mcp.WithString("due_date", mcp.Description("Due date, e.g. '2026-12-31'")),
	)

	updateIssueTool := mcp.NewTool("update_issue",
		mcp.WithDescription("Update fields of an existing issue; omitted fields stay unchanged"),
		mcp.WithString("issue_id", mcp.Required(), mcp.Description("Issue key")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("status", mcp.Description("New status")),
		mcp.WithString("assignee", mcp.Description("New assignee email")),
		mcp.WithString("due_date", mcp.Description("New due date")),
	)

	deleteIssueTool := mcp.NewTool("delete_issue",
		mcp.WithDescription("Delete an issue"),
		mcp.WithString("issue_id", mcp.Required(), mcp.Description("Issue key")),
	)

	listBoardIssuesTool := mcp.NewTool("list_board_issues",
		mcp.WithDescription("List the issues on a board, optionally restricted to one column"),
		mcp.WithString("board_id", mcp.Required(), mcp.Description("Board id")),
		mcp.WithString("status", mcp.Description("Column status filter")),
	)

	s.AddTool(getIssueTool, handleGetIssue(client))
	s.AddTool(searchIssuesTool, handleSearchIssues(client))
	s.AddTool(createIssueTool, handleCreateIssue(client))
	s.AddTool(updateIssueTool, handleUpdateIssue(client))
	s.AddTool(deleteIssueTool, handleDeleteIssue(client))
	s.AddTool(listBoardIssuesTool, handleListBoardIssues(newBoard))

	return nil
}

// stringArg pulls an optional string argument, rejecting non-string
// values up front.
func stringArg(args map[string]any, name string) (string, error) {
	raw, present := args[name]
	if !present || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", &tracker.InvalidInputError{Reason: fmt.Sprintf("%s must be a string, got %T", name, raw)}
	}
	return value, nil
}

// statusArg parses an optional status argument.
func statusArg(args map[string]any, name string) (*tracker.Status, error) {
	value, err := stringArg(args, name)
	if err != nil || value == "" {
		return nil, err
	}
	switch s := tracker.Status(value); s {
	case tracker.StatusTodo, tracker.StatusInProgress, tracker.StatusComplete, tracker.StatusCancelled:
		return &s, nil
	}
	return nil, &tracker.InvalidInputError{Reason: "unknown status " + value}
}

// issueResult renders an issue as a JSON tool result.
func issueResult(issue tracker.Issue) (*mcp.CallToolResult, error) {
	jsonResult, err := json.Marshal(tracker.ViewOf(issue))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %v", err)
	}
	return mcp.NewToolResultText(string(jsonResult)), nil
}

func handleGetIssue(client tracker.IssueTrackerClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueID, ok := request.Params.Arguments["issue_id"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid issue_id parameter")
		}
		issue, err := client.GetIssue(ctx, issueID)
		if err != nil {
			return nil, err
		}
		return issueResult(issue)
	}
}

func handleSearchIssues(client tracker.IssueTrackerClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments

		var filter tracker.SearchFilter
		var err error
		if filter.Title, err = stringArg(args, "title"); err != nil {
			return nil, err
		}
		if filter.Description, err = stringArg(args, "description"); err != nil {
			return nil, err
		}
		if filter.Status, err = statusArg(args, "status"); err != nil {
			return nil, err
		}
		if filter.Assignee, err = stringArg(args, "assignee"); err != nil {
			return nil, err
		}
		if filter.DueDate, err = stringArg(args, "due_date"); err != nil {
			return nil, err
		}
		if m, ok := args["max_results"].(float64); ok {
			filter.MaxResults = int(m)
		}

		views := []tracker.IssueView{}
		it := client.SearchIssues(ctx, filter)
		for it.Next() {
			views = append(views, tracker.ViewOf(it.Issue()))
		}
		if err := it.Err(); err != nil {
			return nil, err
		}

		jsonResult, err := json.Marshal(map[string]any{"issues": views, "total": len(views)})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %v", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	}
}

func handleCreateIssue(client tracker.IssueTrackerClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments

		var draft tracker.IssueDraft
		var err error
		if draft.Title, err = stringArg(args, "title"); err != nil {
			return nil, err
		}
		if draft.Description, err = stringArg(args, "description"); err != nil {
			return nil, err
		}
		if draft.Status, err = statusArg(args, "status"); err != nil {
			return nil, err
		}
		if draft.Assignee, err = stringArg(args, "assignee"); err != nil {
			return nil, err
		}
		if draft.DueDate, err = stringArg(args, "due_date"); err != nil {
			return nil, err
		}

		issue, err := client.CreateIssue(ctx, draft)
		if err != nil {
			return nil, err
		}
		return issueResult(issue)
	}
}

func handleUpdateIssue(client tracker.IssueTrackerClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments
		issueID, ok := args["issue_id"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid issue_id parameter")
		}

		var update tracker.IssueUpdate
		for name, target := range map[string]**string{
			"title":       &update.Title,
			"description": &update.Description,
			"assignee":    &update.Assignee,
			"due_date":    &update.DueDate,
		} {
			// absent and null both mean "leave unchanged"
			if raw, present := args[name]; !present || raw == nil {
				continue
			}
			value, err := stringArg(args, name)
			if err != nil {
				return nil, err
			}
			*target = &value
		}
		status, err := statusArg(args, "status")
		if err != nil {
			return nil, err
		}
		update.Status = status

		issue, err := client.UpdateIssue(ctx, issueID, update)
		if err != nil {
			return nil, err
		}
		return issueResult(issue)
	}
}

func handleDeleteIssue(client tracker.IssueTrackerClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueID, ok := request.Params.Arguments["issue_id"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid issue_id parameter")
		}
		if err := client.DeleteIssue(ctx, issueID); err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(fmt.Sprintf("deleted %s", issueID)), nil
	}
}

func handleListBoardIssues(newBoard func(boardID string) tracker.Board) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.Params.Arguments
		boardID, ok := args["board_id"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid board_id parameter")
		}
		status, err := statusArg(args, "status")
		if err != nil {
			return nil, err
		}

		issues, err := newBoard(boardID).ListIssues(ctx, status)
		if err != nil {
			return nil, err
		}
		views := make([]tracker.IssueView, 0, len(issues))
		for _, issue := range issues {
			views = append(views, tracker.ViewOf(issue))
		}

		jsonResult, err := json.Marshal(map[string]any{"issues": views, "total": len(views)})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %v", err)
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	}
}
