package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gardenbook/internal/application/commands"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// RegisterReadTools adds all read-only garden tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.GardenStore) {
	s.AddTool(listTool(), listHandler(store))
	s.AddTool(showTool(), showHandler(store))
	s.AddTool(calendarTool(), calendarHandler(store))
	s.AddTool(plantMonthsTool(), plantMonthsHandler(store))
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List every client, plant or maintenance job as a tree. Clients expand to their plants, plants to their jobs, jobs to their months."),
		mcp.WithString("kind",
			mcp.Description("Record kind: client, plant or job"),
			mcp.Required(),
		),
	)
}

func listHandler(store ports.GardenStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind := domain.ParseKind(req.GetString("kind", ""))

		result, err := commands.NewListCommand(store, kind).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.Count() == 0 {
			return mcp.NewToolResultText("No results."), nil
		}
		return mcp.NewToolResultText(result.Render()), nil
	}
}

// --- show ---

func showTool() mcp.Tool {
	return mcp.NewTool("show",
		mcp.WithDescription("Show one client, plant or maintenance job with everything linked to it."),
		mcp.WithString("kind",
			mcp.Description("Record kind: client, plant or job"),
			mcp.Required(),
		),
		mcp.WithNumber("id",
			mcp.Description("Record ID"),
			mcp.Required(),
		),
	)
}

func showHandler(store ports.GardenStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind := domain.ParseKind(req.GetString("kind", ""))
		id := int64(req.GetInt("id", 0))

		result, err := commands.NewShowCommand(store, kind, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Render()), nil
	}
}

// --- calendar ---

func calendarTool() mcp.Tool {
	return mcp.NewTool("calendar",
		mcp.WithDescription("List the maintenance jobs scheduled in a month."),
		mcp.WithString("month",
			mcp.Description("English month name, e.g. March"),
			mcp.Required(),
		),
	)
}

func calendarHandler(store ports.GardenStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewCalendarCommand(store, req.GetString("month", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(result.Jobs, formatJob)
	}
}

// --- plant_months ---

func plantMonthsTool() mcp.Tool {
	return mcp.NewTool("plant_months",
		mcp.WithDescription("List the months in which any job of a plant applies."),
		mcp.WithNumber("id",
			mcp.Description("Plant ID"),
			mcp.Required(),
		),
	)
}

func plantMonthsHandler(store ports.GardenStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewPlantMonthsCommand(store, int64(req.GetInt("id", 0))).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Months) == 0 {
			return mcp.NewToolResultText("No months."), nil
		}
		return mcp.NewToolResultText(strings.Join(result.Months.Names(), ", ")), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatJob(m domain.Maintenance) string {
	return fmt.Sprintf("#%d  %s  [%s]", m.ID, m.Name, strings.Join(m.Months.Names(), ", "))
}
