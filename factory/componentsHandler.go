package factory

import (
	"io"

	"github.com/iulianpascalau/ts-cache-doctor/config"
	"github.com/iulianpascalau/ts-cache-doctor/monitor"
	"github.com/iulianpascalau/ts-cache-doctor/store"
	"github.com/iulianpascalau/ts-cache-doctor/verifier"
)

type componentsHandler struct {
	connector store.Connector
	verifier  Verifier
	monitor   Monitor
}

// NewComponentsHandler creates a new components handler wiring the connector, the
// verifier and the monitor onto the same cache file and output writer
func NewComponentsHandler(cfg config.Config, out io.Writer) (*componentsHandler, error) {
	connector := store.NewSQLiteConnector(cfg.Store.Path)

	verifierInstance, err := verifier.NewVerifier(cfg.Store, cfg.Verifier, connector, out)
	if err != nil {
		return nil, err
	}

	monitorInstance, err := monitor.NewMonitor(cfg.Store, cfg.Monitor, connector, out)
	if err != nil {
		return nil, err
	}

	return &componentsHandler{
		connector: connector,
		verifier:  verifierInstance,
		monitor:   monitorInstance,
	}, nil
}

// GetConnector returns the connector component
func (ch *componentsHandler) GetConnector() store.Connector {
	return ch.connector
}

// GetVerifier returns the verifier component
func (ch *componentsHandler) GetVerifier() Verifier {
	return ch.verifier
}

// GetMonitor returns the monitor component
func (ch *componentsHandler) GetMonitor() Monitor {
	return ch.monitor
}
