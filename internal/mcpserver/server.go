// Package mcpserver exposes the Engine as MCP tools over stdio so an LLM
// client can read a project's design values and edit them in place.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	designsync "github.com/yacobolo/designsync"
	"github.com/yacobolo/designsync/internal/report"
	"github.com/yacobolo/designsync/internal/sourceloc"
	"github.com/yacobolo/designsync/internal/tokens"
	"github.com/yacobolo/designsync/internal/utility"
)

// KindsURI is the resource describing edit kinds.
const KindsURI = "designsync://edit-kinds"

// Server wraps the MCP server with designsync tools.
type Server struct {
	mcp    *server.MCPServer
	engine *designsync.Engine
}

// New returns a server with every tool registered.
func New(engine *designsync.Engine, version string) *Server {
	s := &Server{engine: engine}

	s.mcp = server.NewMCPServer(
		"designsync",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	kinds := make([]string, len(designsync.Kinds))
	for i, k := range designsync.Kinds {
		kinds[i] = string(k)
	}

	s.mcp.AddTool(mcp.NewTool("scan_project",
		mcp.WithDescription("List the design tokens and shadows of the project. Results are cached until rescan_project."),
		mcp.WithString("category", mcp.Description("Only tokens of this category"),
			mcp.Enum("color", "spacing", "radius", "shadow", "typography", "other")),
	), s.scanProject)

	s.mcp.AddTool(mcp.NewTool("rescan_project",
		mcp.WithDescription("Drop the cached scan and read the project again. Call after edits."),
	), s.rescanProject)

	s.mcp.AddTool(mcp.NewTool("apply_edit",
		mcp.WithDescription("Rewrite one design value in a project file. Read the "+KindsURI+" resource for what each kind expects."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("File path relative to the project root")),
		mcp.WithString("kind", mcp.Required(), mcp.Enum(kinds...)),
		mcp.WithString("identifier", mcp.Description("Variable name, token path, class or class string")),
		mcp.WithString("value", mcp.Description("New value")),
		mcp.WithString("selector", mcp.Description("css-variable block, default :root")),
		mcp.WithBoolean("create", mcp.Description("Insert the target when it does not exist")),
		mcp.WithString("token_type", mcp.Description("$type of a created design token")),
		mcp.WithNumber("line", mcp.Description("1-based line hint for class edits")),
		mcp.WithString("context", mcp.Description("Text near the element or class string")),
		mcp.WithString("eid", mcp.Description("Marker id of a marked element")),
		mcp.WithString("property", mcp.Description("class-property: CSS property, e.g. padding")),
		mcp.WithString("variant", mcp.Description("class-property: variant prefix, e.g. md:")),
	), s.applyEdit)

	s.mcp.AddTool(mcp.NewTool("inspect_element",
		mcp.WithDescription("Locate an element in a component file and parse its utility classes."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("File path relative to the project root")),
		mcp.WithString("identifier", mcp.Description("A class rendered on the element")),
		mcp.WithNumber("line", mcp.Description("1-based line hint")),
		mcp.WithString("context", mcp.Description("Text near the element")),
		mcp.WithString("eid", mcp.Description("Marker id of a marked element")),
	), s.inspectElement)

	s.mcp.AddTool(mcp.NewTool("class_for_value",
		mcp.WithDescription("Return the utility class that renders a CSS value."),
		mcp.WithString("property", mcp.Required(), mcp.Description("CSS property, e.g. border-radius")),
		mcp.WithString("value", mcp.Required(), mcp.Description("CSS value, e.g. 8px")),
		mcp.WithString("variant", mcp.Description("Variant prefix, e.g. hover:")),
	), s.classForValue)

	s.mcp.AddTool(mcp.NewTool("value_for_class",
		mcp.WithDescription("Return the CSS property and value a utility class renders."),
		mcp.WithString("class", mcp.Required(), mcp.Description("Utility class, e.g. p-4")),
	), s.valueForClass)

	s.mcp.AddResource(
		mcp.NewResource(KindsURI, "Edit kinds",
			mcp.WithResourceDescription("What apply_edit expects for each kind."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readKinds,
	)

	return s
}

// ServeStdio serves on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) scanProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.engine.Scan(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(filterTokens(report.BuildScanOutput(res), tokens.Category(req.GetString("category", ""))))
}

func (s *Server) rescanProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.engine.Rescan(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := report.BuildScanOutput(res)
	return mcp.NewToolResultText(fmt.Sprintf("rescanned: %d tokens, %d shadows", out.Summary.Tokens, out.Summary.Shadows)), nil
}

func (s *Server) applyEdit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := s.engine.Apply(ctx, designsync.Request{
		FilePath:   file,
		Kind:       designsync.Kind(kind),
		Identifier: req.GetString("identifier", ""),
		Value:      req.GetString("value", ""),
		Selector:   req.GetString("selector", ""),
		Create:     req.GetBool("create", false),
		TokenType:  req.GetString("token_type", ""),
		Line:       req.GetInt("line", 0),
		Context:    req.GetString("context", ""),
		EID:        req.GetString("eid", ""),
		Property:   req.GetString("property", ""),
		Variant:    req.GetString("variant", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resp)
}

func (s *Server) inspectElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	el, err := s.engine.Inspect(ctx, file, sourceloc.Hints{
		Identifier: req.GetString("identifier", ""),
		Line:       req.GetInt("line", 0),
		Context:    req.GetString("context", ""),
		EID:        req.GetString("eid", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(el)
}

func (s *Server) classForValue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	property, err := req.RequireString("property")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	class, err := utility.ClassForValue(property, value, req.GetString("variant", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(class), nil
}

func (s *Server) valueForClass(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	class, err := req.RequireString("class")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := utility.ValueForClass(strings.TrimSpace(class))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(res)
}

func (s *Server) readKinds(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      KindsURI,
			MIMEType: "text/markdown",
			Text:     KindsGuide,
		},
	}, nil
}

func filterTokens(out report.ScanOutput, category tokens.Category) report.ScanOutput {
	if category == "" {
		return out
	}
	kept := out.Tokens[:0:0]
	for _, tok := range out.Tokens {
		if tok.Category == category {
			kept = append(kept, tok)
		}
	}
	out.Tokens = kept
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}
