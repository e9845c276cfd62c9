// ABOUTME: MCP tool implementations for logging and querying activities.
// ABOUTME: Covers activity CRUD, activity types, summaries, and export/import.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/trainer/internal/goal"
	"github.com/harperreed/trainer/internal/models"
	"github.com/harperreed/trainer/internal/timefmt"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// log_activity
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_activity",
		Description: "Log an activity (type name, amount, optional timestamp and notes)",
	}, s.handleLogActivity)

	// list_activities
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_activities",
		Description: "List activities, optionally restricted to a date range or type",
	}, s.handleListActivities)

	// update_activity
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_activity",
		Description: "Update an activity's timestamp, amount, or notes by id",
	}, s.handleUpdateActivity)

	// delete_activity
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_activity",
		Description: "Delete an activity by id",
	}, s.handleDeleteActivity)

	// list_activity_types
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_activity_types",
		Description: "List activity types with their goal amounts",
	}, s.handleListActivityTypes)

	// add_activity_type
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_activity_type",
		Description: "Create an activity type with optional daily/weekly goals",
	}, s.handleAddActivityType)

	// get_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_summary",
		Description: "Total logged amount for a type over a duration, compared to its goal",
	}, s.handleGetSummary)

	// export_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "export_data",
		Description: "Export the full dataset as a portable JSON document",
	}, s.handleExportData)

	// import_data
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "import_data",
		Description: "Import a previously exported JSON document",
	}, s.handleImportData)
}

// Tool input/output types

type logActivityInput struct {
	Type   string `json:"type" jsonschema:"description=Activity type name,required"`
	Amount int    `json:"amount" jsonschema:"description=Amount performed,required"`
	When   string `json:"when,omitempty" jsonschema:"description=Timestamp (ISO 8601), defaults to now"`
	Notes  string `json:"notes,omitempty" jsonschema:"description=Optional notes"`
}

type activityOutput struct {
	ID      int    `json:"id"`
	Type    string `json:"type"`
	Amount  int    `json:"amount"`
	When    string `json:"when"`
	Message string `json:"message"`
}

type listActivitiesInput struct {
	Type  string `json:"type,omitempty" jsonschema:"description=Filter by activity type name"`
	Start string `json:"start,omitempty" jsonschema:"description=Range start (ISO 8601)"`
	End   string `json:"end,omitempty" jsonschema:"description=Range end (ISO 8601)"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type updateActivityInput struct {
	ID     int    `json:"id" jsonschema:"description=Activity id,required"`
	Amount *int   `json:"amount,omitempty" jsonschema:"description=New amount"`
	When   string `json:"when,omitempty" jsonschema:"description=New timestamp (ISO 8601)"`
	Notes  *string `json:"notes,omitempty" jsonschema:"description=New notes"`
}

type deleteActivityInput struct {
	ID int `json:"id" jsonschema:"description=Activity id,required"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type addActivityTypeInput struct {
	Name         string `json:"name" jsonschema:"description=Type name,required"`
	NetBenefit   string `json:"net_benefit,omitempty" jsonschema:"description=None, Positive, or Negative"`
	DailyAmount  *int   `json:"daily_amount,omitempty" jsonschema:"description=Daily goal amount"`
	WeeklyAmount *int   `json:"weekly_amount,omitempty" jsonschema:"description=Weekly goal amount"`
	Unit         string `json:"unit,omitempty" jsonschema:"description=Display unit"`
}

type getSummaryInput struct {
	Type     string `json:"type" jsonschema:"description=Activity type name,required"`
	Duration string `json:"duration,omitempty" jsonschema:"description=last24hours, last7days, week, or last4weeks (default week)"`
}

type summaryOutput struct {
	Type     string `json:"type"`
	Duration string `json:"duration"`
	Total    int    `json:"total"`
	Goal     *int   `json:"goal"`
	Message  string `json:"message"`
}

type importDataInput struct {
	JSON string `json:"json" jsonschema:"description=Export document to import,required"`
}

// Tool handlers

func (s *Server) handleLogActivity(ctx context.Context, req *mcp.CallToolRequest, input logActivityInput) (*mcp.CallToolResult, activityOutput, error) {
	t, err := s.types.GetByName(input.Type)
	if err != nil {
		return nil, activityOutput{}, err
	}
	if t == nil {
		return nil, activityOutput{}, fmt.Errorf("unknown activity type: %s", input.Type)
	}

	a := models.NewActivity(t.ID, input.Amount)
	if input.When != "" {
		when, err := parseTimestamp(input.When)
		if err != nil {
			return nil, activityOutput{}, fmt.Errorf("invalid timestamp: %s", input.When)
		}
		a = a.WithWhen(when)
	}
	if input.Notes != "" {
		a = a.WithNotes(input.Notes)
	}

	added, err := s.repo.Add(a)
	if err != nil {
		return nil, activityOutput{}, fmt.Errorf("failed to log activity: %w", err)
	}

	return nil, activityOutput{
		ID:      added.ID,
		Type:    t.Name,
		Amount:  added.Amount,
		When:    added.When.Format(time.RFC3339),
		Message: fmt.Sprintf("Logged %s: %d (id %d)", t.Name, added.Amount, added.ID),
	}, nil
}

func (s *Server) handleListActivities(ctx context.Context, req *mcp.CallToolRequest, input listActivitiesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var start, end *time.Time
	if input.Start != "" {
		t, err := parseTimestamp(input.Start)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start: %s", input.Start)
		}
		start = &t
	}
	if input.End != "" {
		t, err := parseTimestamp(input.End)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end: %s", input.End)
		}
		end = &t
	}

	activities, err := s.repo.List(start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list activities: %w", err)
	}

	if input.Type != "" {
		t, err := s.types.GetByName(input.Type)
		if err != nil {
			return nil, nil, err
		}
		if t == nil {
			return nil, nil, fmt.Errorf("unknown activity type: %s", input.Type)
		}
		var filtered []models.Activity
		for _, a := range activities {
			if a.ActivityTypeID == t.ID {
				filtered = append(filtered, a)
			}
		}
		activities = filtered
	}

	if len(activities) > input.Limit {
		activities = activities[:input.Limit]
	}
	if len(activities) == 0 {
		return nil, map[string]any{"message": "No activities found."}, nil
	}
	return nil, activities, nil
}

func (s *Server) handleUpdateActivity(ctx context.Context, req *mcp.CallToolRequest, input updateActivityInput) (*mcp.CallToolResult, simpleOutput, error) {
	existing, err := s.repo.Get(input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if existing == nil {
		return nil, simpleOutput{}, fmt.Errorf("activity not found: %d", input.ID)
	}

	updated := *existing
	if input.Amount != nil {
		updated.Amount = *input.Amount
	}
	if input.When != "" {
		when, err := parseTimestamp(input.When)
		if err != nil {
			return nil, simpleOutput{}, fmt.Errorf("invalid timestamp: %s", input.When)
		}
		updated.When = when
	}
	if input.Notes != nil {
		updated.Notes = *input.Notes
	}

	if err := s.repo.Update(updated); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to update activity: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Updated activity %d", input.ID)}, nil
}

func (s *Server) handleDeleteActivity(ctx context.Context, req *mcp.CallToolRequest, input deleteActivityInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.Delete(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted activity %d", input.ID)}, nil
}

func (s *Server) handleListActivityTypes(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	types, err := s.types.List()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list activity types: %w", err)
	}
	if len(types) == 0 {
		return nil, map[string]any{"message": "No activity types defined."}, nil
	}
	return nil, types, nil
}

func (s *Server) handleAddActivityType(ctx context.Context, req *mcp.CallToolRequest, input addActivityTypeInput) (*mcp.CallToolResult, any, error) {
	t := models.NewActivityType(input.Name)
	if input.NetBenefit != "" {
		if !models.IsValidNetBenefit(input.NetBenefit) {
			return nil, nil, fmt.Errorf("invalid net benefit: %s", input.NetBenefit)
		}
		t = t.WithNetBenefit(models.NetBenefit(input.NetBenefit))
	}
	if input.DailyAmount != nil {
		t = t.WithDailyAmount(*input.DailyAmount)
	}
	if input.WeeklyAmount != nil {
		t = t.WithWeeklyAmount(*input.WeeklyAmount)
	}
	if input.Unit != "" {
		t = t.WithUnit(input.Unit)
	}

	added, err := s.types.Add(t)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add activity type: %w", err)
	}
	return nil, added, nil
}

func (s *Server) handleGetSummary(ctx context.Context, req *mcp.CallToolRequest, input getSummaryInput) (*mcp.CallToolResult, summaryOutput, error) {
	t, err := s.types.GetByName(input.Type)
	if err != nil {
		return nil, summaryOutput{}, err
	}
	if t == nil {
		return nil, summaryOutput{}, fmt.Errorf("unknown activity type: %s", input.Type)
	}

	duration := goal.Duration(input.Duration)
	if input.Duration == "" {
		duration = goal.Week
	}

	start, end := timefmt.DateRange(duration, time.Now())
	activities, err := s.repo.List(&start, &end)
	if err != nil {
		return nil, summaryOutput{}, fmt.Errorf("failed to list activities: %w", err)
	}

	total := 0
	for _, a := range activities {
		if a.ActivityTypeID == t.ID {
			total += a.Amount
		}
	}

	target := goal.Amount(*t, duration)
	message := fmt.Sprintf("%s: %d logged", t.Name, total)
	if target != nil {
		message = fmt.Sprintf("%s: %d of %d", t.Name, total, *target)
	}

	return nil, summaryOutput{
		Type:     t.Name,
		Duration: string(duration),
		Total:    total,
		Goal:     target,
		Message:  message,
	}, nil
}

func (s *Server) handleExportData(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, simpleOutput, error) {
	data, err := s.codec.Export()
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to export: %w", err)
	}
	return nil, simpleOutput{Message: string(data)}, nil
}

func (s *Server) handleImportData(ctx context.Context, req *mcp.CallToolRequest, input importDataInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.codec.Import([]byte(input.JSON)); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to import: %w", err)
	}
	return nil, simpleOutput{Message: "Import complete"}, nil
}

// parseTimestamp accepts RFC 3339 or a bare "2006-01-02 15:04" local time.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
