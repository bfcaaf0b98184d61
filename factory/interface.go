package factory

import (
	"context"

	"github.com/iulianpascalau/ts-cache-doctor/common"
)

// Verifier defines the diagnostic check sequence operations
type Verifier interface {
	Run(ctx context.Context) (*common.Report, common.Verdict)
	IsInterfaceNil() bool
}

// Monitor defines the bounded delta poll session operations
type Monitor interface {
	Run(ctx context.Context)
	IsInterfaceNil() bool
}
