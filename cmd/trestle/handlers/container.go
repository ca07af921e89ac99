package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/trestle/internal/container"
	"github.com/imamik/trestle/internal/lease"
)

// ContainerCreateInput carries the container create command's arguments.
type ContainerCreateInput struct {
	Name         string
	Lease        string
	Image        string
	Command      []string
	Environment  map[string]string
	ExposedPorts []string
	Runtime      string
}

// ContainerCreate runs a container on the device reserved by a lease and
// blocks until the runtime reports it Running.
func ContainerCreate(ctx context.Context, configPath string, in ContainerCreateInput) error {
	_, client, observer, err := setup(configPath)
	if err != nil {
		return err
	}
	timeouts := loadTimeouts()

	l, err := lease.FromExisting(ctx, client, in.Lease)
	if err != nil {
		return err
	}
	reservationID, err := l.DeviceReservationID()
	if err != nil {
		return err
	}

	c := container.New(client, in.Name, container.CreateOptions{
		Image:         in.Image,
		Command:       in.Command,
		Environment:   in.Environment,
		ExposedPorts:  in.ExposedPorts,
		Runtime:       in.Runtime,
		ReservationID: reservationID,
	}, container.WithObserver(observer), container.WithTimeouts(timeouts))

	if err := c.Run(ctx, timeouts.ContainerWait); err != nil {
		return fmt.Errorf("container creation failed: %w", err)
	}

	fmt.Printf("Container %s is %s\n", c.Name, styledStatus(c.Status))
	return nil
}

// ContainerDelete stops and deletes a container by UUID or name.
func ContainerDelete(ctx context.Context, configPath, ref string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	remote, err := container.Get(ctx, client, ref)
	if err != nil {
		return err
	}
	if err := client.DeleteContainer(ctx, remote.UUID, true); err != nil {
		return fmt.Errorf("failed to delete container %s: %w", ref, err)
	}

	fmt.Printf("Container %s deleted\n", remote.Name)
	return nil
}

// ContainerExec runs a command inside a container and prints its output.
func ContainerExec(ctx context.Context, configPath, ref, command string) error {
	_, client, _, err := setup(configPath)
	if err != nil {
		return err
	}

	remote, err := container.Get(ctx, client, ref)
	if err != nil {
		return err
	}

	result, err := client.Execute(ctx, remote.UUID, command)
	if err != nil {
		return fmt.Errorf("exec failed in container %s: %w", ref, err)
	}

	fmt.Print(result.Output)
	if result.ExitCode != 0 {
		return fmt.Errorf("command exited with code %d", result.ExitCode)
	}
	return nil
}
