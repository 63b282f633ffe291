package mcp

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gardenbook/internal/application/commands"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

// RegisterWriteTools adds all write garden tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store ports.GardenStore) {
	s.AddTool(recordTool("create", "Create a client, plant or maintenance job.", false), saveHandler(store, false))
	s.AddTool(recordTool("update", "Update a record by ID. Its links are replaced with the ones given here.", true), saveHandler(store, true))
	s.AddTool(deleteTool(), deleteHandler(store))
	s.AddTool(linkTool(), linkHandler(store))
	s.AddTool(unlinkTool(), unlinkHandler(store))
}

// --- create / update ---

func recordTool(name, description string, withID bool) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("kind",
			mcp.Description("Record kind: client, plant or job"),
			mcp.Required(),
		),
	}
	if withID {
		opts = append(opts, mcp.WithNumber("id",
			mcp.Description("ID of the record to update"),
			mcp.Required(),
		))
	}
	opts = append(opts,
		mcp.WithString("name",
			mcp.Description("Name of the record"),
			mcp.Required(),
		),
		mcp.WithString("latin_name",
			mcp.Description("Latin name (plants only, unique)"),
		),
		mcp.WithString("blooming_period",
			mcp.Description("Blooming period (plants only)"),
		),
		mcp.WithString("description",
			mcp.Description("Description (jobs only)"),
		),
		mcp.WithString("months",
			mcp.Description("Comma-separated month names (jobs only), e.g. January,March"),
		),
		mcp.WithString("links",
			mcp.Description("Comma-separated IDs to link: plant IDs for a client, job IDs for a plant"),
		),
	)
	return mcp.NewTool(name, opts...)
}

func saveHandler(store ports.GardenStore, update bool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var id int64
		if update {
			id = int64(req.GetInt("id", 0))
		}
		links, err := parseIDs(req.GetString("links", ""))
		if err != nil {
			return toolError(err)
		}
		name := req.GetString("name", "")

		var message string
		switch domain.ParseKind(req.GetString("kind", "")) {
		case domain.KindClient:
			c := domain.Client{ID: id, Name: name, Plants: domain.RefIDs[domain.Plant](links...)}
			var res *commands.ClientResult
			if update {
				res, err = commands.NewUpdateClientCommand(store, c).Execute(ctx)
			} else {
				res, err = commands.NewCreateClientCommand(store, c).Execute(ctx)
			}
			if err == nil {
				message = res.Message
			}

		case domain.KindPlant:
			p := domain.Plant{
				ID:             id,
				Name:           name,
				LatinName:      req.GetString("latin_name", ""),
				BloomingPeriod: req.GetString("blooming_period", ""),
				Jobs:           domain.RefIDs[domain.Maintenance](links...),
			}
			var res *commands.PlantResult
			if update {
				res, err = commands.NewUpdatePlantCommand(store, p).Execute(ctx)
			} else {
				res, err = commands.NewCreatePlantCommand(store, p).Execute(ctx)
			}
			if err == nil {
				message = res.Message
			}

		case domain.KindJob:
			m := domain.Maintenance{
				ID:          id,
				Name:        name,
				Description: req.GetString("description", ""),
				Months:      domain.ParseMonthSet(splitList(req.GetString("months", ""))...),
			}
			var res *commands.JobResult
			if update {
				res, err = commands.NewUpdateJobCommand(store, m).Execute(ctx)
			} else {
				res, err = commands.NewCreateJobCommand(store, m).Execute(ctx)
			}
			if err == nil {
				message = res.Message
			}

		default:
			return toolError(fmt.Errorf("unknown kind: %q (expected client, plant or job)", req.GetString("kind", "")))
		}
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(message), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a client, plant or job and every link that references it."),
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

func deleteHandler(store ports.GardenStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind := domain.ParseKind(req.GetString("kind", ""))
		result, err := commands.NewDeleteCommand(store, kind, int64(req.GetInt("id", 0))).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- link / unlink ---

func linkTool() mcp.Tool {
	return mcp.NewTool("link",
		mcp.WithDescription("Link a plant to a client (client-plant) or a job to a plant (plant-job)."),
		mcp.WithString("relation",
			mcp.Description("client-plant or plant-job"),
			mcp.Required(),
		),
		mcp.WithNumber("left",
			mcp.Description("Client ID for client-plant, plant ID for plant-job"),
			mcp.Required(),
		),
		mcp.WithNumber("right",
			mcp.Description("Plant ID for client-plant, job ID for plant-job"),
			mcp.Required(),
		),
	)
}

func linkHandler(store ports.GardenStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rel := commands.ParseRelation(req.GetString("relation", ""))
		cmd := commands.NewLinkCommand(store, rel, int64(req.GetInt("left", 0)), int64(req.GetInt("right", 0)))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func unlinkTool() mcp.Tool {
	return mcp.NewTool("unlink",
		mcp.WithDescription("Remove links. Give both sides to remove one link, one side to remove all links of that record. With neither side nothing is removed."),
		mcp.WithString("relation",
			mcp.Description("client-plant or plant-job"),
			mcp.Required(),
		),
		mcp.WithNumber("left",
			mcp.Description("Client ID for client-plant, plant ID for plant-job"),
		),
		mcp.WithNumber("right",
			mcp.Description("Plant ID for client-plant, job ID for plant-job"),
		),
	)
}

func unlinkHandler(store ports.GardenStore) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rel := commands.ParseRelation(req.GetString("relation", ""))
		left, err := optionalID(req, "left")
		if err != nil {
			return toolError(err)
		}
		right, err := optionalID(req, "right")
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewUnlinkCommand(store, rel, left, right).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- helpers ---

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(s) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ID in list: %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// optionalID reads a number argument that may be left out. Only an absent
// or null argument is unspecified; 0 is passed through as an ID.
func optionalID(req mcp.CallToolRequest, name string) (*int64, error) {
	v, ok := req.GetArguments()[name]
	if !ok || v == nil {
		return nil, nil
	}

	var id int64
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("invalid %s: %v is not an integer", name, n)
		}
		id = int64(n)
	case int:
		id = int64(n)
	case int64:
		id = n
	default:
		return nil, fmt.Errorf("invalid %s: %v is not a number", name, v)
	}
	return &id, nil
}
