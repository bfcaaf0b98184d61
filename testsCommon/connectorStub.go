package testsCommon

import (
	"context"

	"github.com/iulianpascalau/ts-cache-doctor/store"
)

// ConnectorStub -
type ConnectorStub struct {
	ExistsHandler func() bool
	PathHandler   func() string
	OpenHandler   func(ctx context.Context) (store.Conn, error)
}

// Exists -
func (stub *ConnectorStub) Exists() bool {
	if stub.ExistsHandler != nil {
		return stub.ExistsHandler()
	}

	return true
}

// Path -
func (stub *ConnectorStub) Path() string {
	if stub.PathHandler != nil {
		return stub.PathHandler()
	}

	return "test.db"
}

// Open -
func (stub *ConnectorStub) Open(ctx context.Context) (store.Conn, error) {
	if stub.OpenHandler != nil {
		return stub.OpenHandler(ctx)
	}

	return &ConnStub{}, nil
}

// IsInterfaceNil -
func (stub *ConnectorStub) IsInterfaceNil() bool {
	return stub == nil
}
