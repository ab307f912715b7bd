package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Greeting renders the fixed greeting template for a name.
func Greeting(name string) string {
	return fmt.Sprintf("Namastae, %s!", name)
}

func registerGreeting(s *server.MCPServer) {
	tmpl := mcp.NewResourceTemplate(
		"greeting://{name}",
		"greeting",
		mcp.WithTemplateDescription("A personalized greeting message"),
		mcp.WithTemplateMIMEType("text/plain"),
	)

	s.AddResourceTemplate(tmpl, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name := strings.TrimPrefix(req.Params.URI, "greeting://")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     Greeting(name),
			},
		}, nil
	})
}
