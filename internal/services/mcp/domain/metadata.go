package domain

import (
	"context"

	grpcmeta "github.com/louisbranch/bignumbers/internal/services/calc/api/grpc/metadata"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc/metadata"
)

// ToolCallMetadata carries correlation identifiers for MCP tool calls.
type ToolCallMetadata struct {
	RequestID string
}

// NewOutgoingContext attaches a fresh request ID to a context.
func NewOutgoingContext(ctx context.Context) (context.Context, ToolCallMetadata, error) {
	requestID, err := grpcmeta.NewRequestID()
	if err != nil {
		return nil, ToolCallMetadata{}, err
	}
	callCtx := metadata.AppendToOutgoingContext(ctx, grpcmeta.RequestIDHeader, requestID)
	return callCtx, ToolCallMetadata{RequestID: requestID}, nil
}

// MergeResponseMetadata overlays response headers on top of sent metadata.
func MergeResponseMetadata(sent ToolCallMetadata, header metadata.MD) ToolCallMetadata {
	requestID := grpcmeta.FirstMetadataValue(header, grpcmeta.RequestIDHeader)
	if requestID == "" {
		requestID = sent.RequestID
	}
	return ToolCallMetadata{RequestID: requestID}
}

// CallToolResultWithMetadata builds a tool result with correlation metadata.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Meta: map[string]any{
			grpcmeta.RequestIDHeader: meta.RequestID,
		},
	}
}
