package processor

import "context"

// Processor turns one caption capture file into transcript artifacts.
type Processor interface {
	Process(ctx context.Context, capturePath string) error
}
