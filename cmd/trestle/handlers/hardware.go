package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/imamik/trestle/internal/hardware"
)

// NodesInput carries the hardware nodes command's arguments.
type NodesInput struct {
	NodeType string
	Free     bool
}

// Nodes prints the site's bare-metal nodes.
func Nodes(ctx context.Context, configPath string, in NodesInput) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	nodes, err := hardware.Nodes(ctx, client, hardware.NodeFilter{
		NodeType:       in.NodeType,
		FilterReserved: in.Free,
	})
	if err != nil {
		return err
	}

	fmt.Print(renderNodeTable(nodes))
	return nil
}

// DevicesInput carries the hardware devices command's arguments.
type DevicesInput struct {
	MachineName string
	Free        bool
}

// Devices prints the site's edge devices.
func Devices(ctx context.Context, configPath string, in DevicesInput) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	devices, err := hardware.Devices(ctx, client, hardware.DeviceFilter{
		MachineName:    in.MachineName,
		FilterReserved: in.Free,
	})
	if err != nil {
		return err
	}

	fmt.Print(renderDeviceTable(devices))
	return nil
}

// Timeslot prints the next window of at least minimum length during which
// a host is free to reserve.
func Timeslot(ctx context.Context, configPath, hostID string, minimum time.Duration) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	start, end, err := hardware.NextFreeTimeslot(ctx, client, hostID, minimum)
	if err != nil {
		return err
	}

	fmt.Printf("Next free window for host %s:\n", hostID)
	fmt.Printf("  from: %s\n", start.Format(time.RFC3339))
	if end.IsZero() {
		fmt.Printf("  to:   (open-ended)\n")
	} else {
		fmt.Printf("  to:   %s\n", end.Format(time.RFC3339))
	}
	return nil
}
