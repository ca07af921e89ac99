package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/trestle/internal/lease"
	"github.com/imamik/trestle/internal/platform/openstack"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	greenStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	redStyle     = lipgloss.NewStyle().Foreground(colorRed)
)

func styledStatus(status string) string {
	switch status {
	case string(lease.StatusActive), "Running":
		return greenStyle.Render(status)
	case string(lease.StatusError), "Error":
		return redStyle.Render(status)
	default:
		return status
	}
}

// renderLeaseTable produces a styled table of leases.
func renderLeaseTable(leases []openstack.Lease) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Leases"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-24s %-36s %-10s %-16s %s", "Name", "ID", "Status", "Start", "End")))
	b.WriteString("\n")

	for _, l := range leases {
		b.WriteString(fmt.Sprintf("  %-24s %-36s %-10s %-16s %s\n",
			l.Name, l.ID, styledStatus(l.Status), l.StartDate, l.EndDate))
	}
	if len(leases) == 0 {
		b.WriteString(dimStyle.Render("  (none)"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderLease produces a styled detail view of one lease.
func renderLease(l *lease.Lease) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Lease: " + l.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("    ID:     %s\n", l.ID))
	b.WriteString(fmt.Sprintf("    Status: %s\n", styledStatus(string(l.Status))))
	b.WriteString(fmt.Sprintf("    Window: %s .. %s\n", l.StartDate, l.EndDate))

	writeReservationSection(&b, "Node reservations", l.Reservations.Node)
	writeReservationSection(&b, "Network reservations", l.Reservations.Network)
	writeReservationSection(&b, "Floating IP reservations", l.Reservations.FloatingIP)
	writeReservationSection(&b, "Device reservations", l.Reservations.Device)
	writeReservationSection(&b, "Flavor reservations", l.Reservations.Flavor)
	writeReservationSection(&b, "Other reservations", l.Reservations.Other)

	return b.String()
}

func writeReservationSection(b *strings.Builder, title string, records []openstack.ReservationRecord) {
	if len(records) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render("    " + title))
	b.WriteString("\n")
	for _, r := range records {
		b.WriteString(fmt.Sprintf("      %s  %s  %s\n", r.ID, r.ResourceType, styledStatus(r.Status)))
	}
}

// renderNodeTable produces a styled table of bare-metal nodes.
func renderNodeTable(nodes []openstack.Host) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Nodes"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-28s %-22s %-10s", "Name", "Type", "Reservable")))
	b.WriteString("\n")

	for _, n := range nodes {
		b.WriteString(fmt.Sprintf("  %-28s %-22s %-10t\n", n.NodeName, n.NodeType, n.Reservable))
	}
	if len(nodes) == 0 {
		b.WriteString(dimStyle.Render("  (none)"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderNetworkTable produces a styled table of networks.
func renderNetworkTable(networks []openstack.Network) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Networks"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-28s %-36s %-14s %s", "Name", "ID", "Segment", "External")))
	b.WriteString("\n")

	for _, n := range networks {
		b.WriteString(fmt.Sprintf("  %-28s %-36s %-14s %t\n", n.Name, n.ID, n.PhysicalNetwork, n.External))
	}
	if len(networks) == 0 {
		b.WriteString(dimStyle.Render("  (none)"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderShareTable produces a styled table of file shares.
func renderShareTable(shares []openstack.Share) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Shares"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-24s %-36s %-8s %-10s %s", "Name", "ID", "Size", "Proto", "Status")))
	b.WriteString("\n")

	for _, s := range shares {
		b.WriteString(fmt.Sprintf("  %-24s %-36s %-8d %-10s %s\n", s.Name, s.ID, s.Size, s.Proto, styledStatus(s.Status)))
	}
	if len(shares) == 0 {
		b.WriteString(dimStyle.Render("  (none)"))
		b.WriteString("\n")
	}

	return b.String()
}

// renderDeviceTable produces a styled table of edge devices.
func renderDeviceTable(devices []openstack.Device) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Devices"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-28s %-22s %-14s %-10s", "Name", "Machine", "Model", "Reservable")))
	b.WriteString("\n")

	for _, d := range devices {
		b.WriteString(fmt.Sprintf("  %-28s %-22s %-14s %-10t\n", d.Name, d.MachineName, d.DeviceModel, d.Reservable))
	}
	if len(devices) == 0 {
		b.WriteString(dimStyle.Render("  (none)"))
		b.WriteString("\n")
	}

	return b.String()
}
