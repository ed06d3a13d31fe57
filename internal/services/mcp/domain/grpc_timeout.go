package domain

import "time"

// grpcCallTimeout caps the time for a single gRPC call from an MCP tool handler.
const grpcCallTimeout = 5 * time.Second

// grpcLongCallTimeout caps calls whose cost grows with operand size, such as
// primality tests and square roots of very large values.
const grpcLongCallTimeout = 30 * time.Second
